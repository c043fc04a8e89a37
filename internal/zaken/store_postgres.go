package zaken

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"zaakregister/internal/catalogi"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/platform/tx"
)

// PostgresStore persists zaken and their subresources in PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	runner *tx.Runner
}

// NewPostgresStore constructs a PostgreSQL-backed zaken store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, runner: tx.NewRunner(db)}
}

// InTx runs fn inside a transaction; nested calls join the ambient one.
func (s *PostgresStore) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.runner.InTx(ctx, fn)
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) q(ctx context.Context) querier {
	if ambient, ok := tx.From(ctx); ok {
		return ambient
	}
	return s.db
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func dateColumn(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func scanDate(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func uuidColumn(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func scanUUID(nu uuid.NullUUID) *uuid.UUID {
	if !nu.Valid {
		return nil
	}
	id := nu.UUID
	return &id
}

func nominatieColumn(n *catalogi.Archiefnominatie) sql.NullString {
	if n == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*n), Valid: true}
}

func scanNominatie(ns sql.NullString) *catalogi.Archiefnominatie {
	if !ns.Valid {
		return nil
	}
	n := catalogi.Archiefnominatie(ns.String)
	return &n
}

const zaakColumns = `id, identificatie, bronorganisatie, zaaktype_id, omschrijving, toelichting,
	vertrouwelijkheidaanduiding, registratiedatum, startdatum, einddatum, einddatum_gepland,
	archiefnominatie, archiefactiedatum, archiefstatus,
	archiefnominatie_berekend, archiefactiedatum_berekend,
	hoofdzaak_id, relevante_andere_zaken,
	betalingsindicatie, laatste_betaaldatum, producten_of_diensten`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanZaak(row rowScanner) (*Zaak, error) {
	var (
		zaak        Zaak
		einddatum   sql.NullTime
		gepland     sql.NullTime
		nominatie   sql.NullString
		actiedatum  sql.NullTime
		hoofdzaak   uuid.NullUUID
		betaaldatum sql.NullTime
		relevante   []uuid.UUID
		producten   []string
	)
	err := row.Scan(
		&zaak.ID, &zaak.Identificatie, &zaak.Bronorganisatie, &zaak.ZaaktypeID,
		&zaak.Omschrijving, &zaak.Toelichting, &zaak.Vertrouwelijkheidaanduiding,
		&zaak.Registratiedatum, &zaak.Startdatum, &einddatum, &gepland,
		&nominatie, &actiedatum, &zaak.Archiefstatus,
		&zaak.ArchiefnominatieBerekend, &zaak.ArchiefactiedatumBerekend,
		&hoofdzaak, pq.Array(&relevante),
		&zaak.Betalingsindicatie, &betaaldatum, pq.Array(&producten),
	)
	if err != nil {
		return nil, err
	}
	zaak.Einddatum = scanDate(einddatum)
	zaak.EinddatumGepland = scanDate(gepland)
	zaak.Archiefnominatie = scanNominatie(nominatie)
	zaak.Archiefactiedatum = scanDate(actiedatum)
	zaak.HoofdzaakID = scanUUID(hoofdzaak)
	zaak.RelevanteAndereZaken = relevante
	zaak.LaatsteBetaaldatum = scanDate(betaaldatum)
	zaak.ProductenOfDiensten = producten
	return &zaak, nil
}

func (s *PostgresStore) CreateZaak(ctx context.Context, zaak *Zaak) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO zaken (`+zaakColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		zaak.ID, zaak.Identificatie, zaak.Bronorganisatie, zaak.ZaaktypeID,
		zaak.Omschrijving, zaak.Toelichting, zaak.Vertrouwelijkheidaanduiding,
		zaak.Registratiedatum, zaak.Startdatum, dateColumn(zaak.Einddatum), dateColumn(zaak.EinddatumGepland),
		nominatieColumn(zaak.Archiefnominatie), dateColumn(zaak.Archiefactiedatum), zaak.Archiefstatus,
		zaak.ArchiefnominatieBerekend, zaak.ArchiefactiedatumBerekend,
		uuidColumn(zaak.HoofdzaakID), pq.Array(zaak.RelevanteAndereZaken),
		zaak.Betalingsindicatie, dateColumn(zaak.LaatsteBetaaldatum), pq.Array(zaak.ProductenOfDiensten),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.NewField("identificatie", domainerrors.CodeIdentificatieNietUniek,
				"a zaak with this identificatie already exists for the bronorganisatie")
		}
		return fmt.Errorf("create zaak: %w", err)
	}
	return nil
}

func (s *PostgresStore) getZaak(ctx context.Context, id uuid.UUID, forUpdate bool) (*Zaak, error) {
	query := `SELECT ` + zaakColumns + ` FROM zaken WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	zaak, err := scanZaak(s.q(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get zaak: %w", err)
	}
	return zaak, nil
}

func (s *PostgresStore) GetZaak(ctx context.Context, id uuid.UUID) (*Zaak, error) {
	return s.getZaak(ctx, id, false)
}

// LockZaak must run inside InTx; the row lock is released on commit.
func (s *PostgresStore) LockZaak(ctx context.Context, id uuid.UUID) (*Zaak, error) {
	return s.getZaak(ctx, id, true)
}

func (s *PostgresStore) UpdateZaak(ctx context.Context, zaak *Zaak) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE zaken SET
			omschrijving = $2, toelichting = $3, vertrouwelijkheidaanduiding = $4,
			registratiedatum = $5, startdatum = $6, einddatum = $7, einddatum_gepland = $8,
			archiefnominatie = $9, archiefactiedatum = $10, archiefstatus = $11,
			archiefnominatie_berekend = $12, archiefactiedatum_berekend = $13,
			hoofdzaak_id = $14, relevante_andere_zaken = $15,
			betalingsindicatie = $16, laatste_betaaldatum = $17, producten_of_diensten = $18
		 WHERE id = $1`,
		zaak.ID,
		zaak.Omschrijving, zaak.Toelichting, zaak.Vertrouwelijkheidaanduiding,
		zaak.Registratiedatum, zaak.Startdatum, dateColumn(zaak.Einddatum), dateColumn(zaak.EinddatumGepland),
		nominatieColumn(zaak.Archiefnominatie), dateColumn(zaak.Archiefactiedatum), zaak.Archiefstatus,
		zaak.ArchiefnominatieBerekend, zaak.ArchiefactiedatumBerekend,
		uuidColumn(zaak.HoofdzaakID), pq.Array(zaak.RelevanteAndereZaken),
		zaak.Betalingsindicatie, dateColumn(zaak.LaatsteBetaaldatum), pq.Array(zaak.ProductenOfDiensten),
	)
	if err != nil {
		return fmt.Errorf("update zaak: %w", err)
	}
	return requireRow(result, "update zaak")
}

func (s *PostgresStore) DeleteZaak(ctx context.Context, id uuid.UUID) error {
	// Subresources go via ON DELETE CASCADE.
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM zaken WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete zaak: %w", err)
	}
	return requireRow(result, "delete zaak")
}

func requireRow(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) listZaken(ctx context.Context, query string, args ...any) ([]*Zaak, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list zaken: %w", err)
	}
	defer rows.Close()

	var zaken []*Zaak
	for rows.Next() {
		zaak, err := scanZaak(rows)
		if err != nil {
			return nil, fmt.Errorf("list zaken: %w", err)
		}
		zaken = append(zaken, zaak)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list zaken: %w", err)
	}
	return zaken, nil
}

func (s *PostgresStore) ListZaken(ctx context.Context, bronorganisatie string) ([]*Zaak, error) {
	if bronorganisatie == "" {
		return s.listZaken(ctx, `SELECT `+zaakColumns+` FROM zaken ORDER BY registratiedatum`)
	}
	return s.listZaken(ctx,
		`SELECT `+zaakColumns+` FROM zaken WHERE bronorganisatie = $1 ORDER BY registratiedatum`,
		bronorganisatie)
}

func (s *PostgresStore) ListDeelzaken(ctx context.Context, hoofdzaakID uuid.UUID) ([]*Zaak, error) {
	return s.listZaken(ctx,
		`SELECT `+zaakColumns+` FROM zaken WHERE hoofdzaak_id = $1 ORDER BY registratiedatum`,
		hoofdzaakID)
}

func (s *PostgresStore) CreateStatus(ctx context.Context, status *Status) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO statussen (id, zaak_id, statustype_id, datum_status_gezet, statustoelichting)
		 VALUES ($1, $2, $3, $4, $5)`,
		status.ID, status.ZaakID, status.StatustypeID, status.DatumStatusGezet, status.Statustoelichting)
	if err != nil {
		return fmt.Errorf("create status: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListStatussen(ctx context.Context, zaakID uuid.UUID) ([]*Status, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaak_id, statustype_id, datum_status_gezet, statustoelichting
		 FROM statussen WHERE zaak_id = $1 ORDER BY datum_status_gezet`, zaakID)
	if err != nil {
		return nil, fmt.Errorf("list statussen: %w", err)
	}
	defer rows.Close()

	var statussen []*Status
	for rows.Next() {
		var status Status
		if err := rows.Scan(&status.ID, &status.ZaakID, &status.StatustypeID,
			&status.DatumStatusGezet, &status.Statustoelichting); err != nil {
			return nil, fmt.Errorf("list statussen: %w", err)
		}
		statussen = append(statussen, &status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list statussen: %w", err)
	}
	return statussen, nil
}

func (s *PostgresStore) LastStatus(ctx context.Context, zaakID uuid.UUID) (*Status, error) {
	var status Status
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, zaak_id, statustype_id, datum_status_gezet, statustoelichting
		 FROM statussen WHERE zaak_id = $1 ORDER BY datum_status_gezet DESC LIMIT 1`, zaakID).
		Scan(&status.ID, &status.ZaakID, &status.StatustypeID, &status.DatumStatusGezet, &status.Statustoelichting)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("last status: %w", err)
	}
	return &status, nil
}

func (s *PostgresStore) CreateResultaat(ctx context.Context, resultaat *Resultaat) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO resultaten (id, zaak_id, resultaattype_id, toelichting)
		 VALUES ($1, $2, $3, $4)`,
		resultaat.ID, resultaat.ZaakID, resultaat.ResultaattypeID, resultaat.Toelichting)
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.NewField("resultaat", domainerrors.CodeUnique, "the zaak already has a resultaat")
		}
		return fmt.Errorf("create resultaat: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetResultaatByZaak(ctx context.Context, zaakID uuid.UUID) (*Resultaat, error) {
	var resultaat Resultaat
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, zaak_id, resultaattype_id, toelichting FROM resultaten WHERE zaak_id = $1`, zaakID).
		Scan(&resultaat.ID, &resultaat.ZaakID, &resultaat.ResultaattypeID, &resultaat.Toelichting)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get resultaat: %w", err)
	}
	return &resultaat, nil
}

func (s *PostgresStore) DeleteResultaat(ctx context.Context, id uuid.UUID) error {
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM resultaten WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resultaat: %w", err)
	}
	return requireRow(result, "delete resultaat")
}

func (s *PostgresStore) CreateRol(ctx context.Context, rol *Rol) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO rollen (id, zaak_id, roltype_id, betrokkene, omschrijving_generiek, indicatie_machtiging, roltoelichting)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rol.ID, rol.ZaakID, rol.RoltypeID, rol.Betrokkene, rol.OmschrijvingGeneriek,
		rol.IndicatieMachtiging, rol.Roltoelichting)
	if err != nil {
		return fmt.Errorf("create rol: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRollen(ctx context.Context, zaakID uuid.UUID) ([]*Rol, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaak_id, roltype_id, betrokkene, omschrijving_generiek, indicatie_machtiging, roltoelichting
		 FROM rollen WHERE zaak_id = $1`, zaakID)
	if err != nil {
		return nil, fmt.Errorf("list rollen: %w", err)
	}
	defer rows.Close()

	var rollen []*Rol
	for rows.Next() {
		var rol Rol
		if err := rows.Scan(&rol.ID, &rol.ZaakID, &rol.RoltypeID, &rol.Betrokkene,
			&rol.OmschrijvingGeneriek, &rol.IndicatieMachtiging, &rol.Roltoelichting); err != nil {
			return nil, fmt.Errorf("list rollen: %w", err)
		}
		rollen = append(rollen, &rol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rollen: %w", err)
	}
	return rollen, nil
}

func (s *PostgresStore) DeleteRol(ctx context.Context, id uuid.UUID) error {
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM rollen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rol: %w", err)
	}
	return requireRow(result, "delete rol")
}

func (s *PostgresStore) CreateZaakEigenschap(ctx context.Context, eigenschap *ZaakEigenschap) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO zaakeigenschappen (id, zaak_id, eigenschap_id, naam, waarde)
		 VALUES ($1, $2, $3, $4, $5)`,
		eigenschap.ID, eigenschap.ZaakID, eigenschap.EigenschapID, eigenschap.Naam, eigenschap.Waarde)
	if err != nil {
		return fmt.Errorf("create zaakeigenschap: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListZaakEigenschappen(ctx context.Context, zaakID uuid.UUID) ([]*ZaakEigenschap, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaak_id, eigenschap_id, naam, waarde FROM zaakeigenschappen WHERE zaak_id = $1`, zaakID)
	if err != nil {
		return nil, fmt.Errorf("list zaakeigenschappen: %w", err)
	}
	defer rows.Close()

	var eigenschappen []*ZaakEigenschap
	for rows.Next() {
		var eigenschap ZaakEigenschap
		if err := rows.Scan(&eigenschap.ID, &eigenschap.ZaakID, &eigenschap.EigenschapID,
			&eigenschap.Naam, &eigenschap.Waarde); err != nil {
			return nil, fmt.Errorf("list zaakeigenschappen: %w", err)
		}
		eigenschappen = append(eigenschappen, &eigenschap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list zaakeigenschappen: %w", err)
	}
	return eigenschappen, nil
}

func (s *PostgresStore) CreateZaakObject(ctx context.Context, zaakobject *ZaakObject) error {
	payload, err := EncodeObjectIdentificatie(zaakobject.ObjectIdentificatie)
	if err != nil {
		return err
	}
	_, err = s.q(ctx).ExecContext(ctx,
		`INSERT INTO zaakobjecten (id, zaak_id, object, object_type, relatie_omschrijving, object_identificatie)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		zaakobject.ID, zaakobject.ZaakID, zaakobject.Object, zaakobject.ObjectType,
		zaakobject.RelatieOmschrijving, payload)
	if err != nil {
		return fmt.Errorf("create zaakobject: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListZaakObjecten(ctx context.Context, zaakID uuid.UUID) ([]*ZaakObject, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaak_id, object, object_type, relatie_omschrijving, object_identificatie
		 FROM zaakobjecten WHERE zaak_id = $1`, zaakID)
	if err != nil {
		return nil, fmt.Errorf("list zaakobjecten: %w", err)
	}
	defer rows.Close()

	var zaakobjecten []*ZaakObject
	for rows.Next() {
		var (
			zaakobject ZaakObject
			payload    []byte
		)
		if err := rows.Scan(&zaakobject.ID, &zaakobject.ZaakID, &zaakobject.Object,
			&zaakobject.ObjectType, &zaakobject.RelatieOmschrijving, &payload); err != nil {
			return nil, fmt.Errorf("list zaakobjecten: %w", err)
		}
		zaakobject.ObjectIdentificatie, err = DecodeObjectIdentificatie(zaakobject.ObjectType, payload)
		if err != nil {
			return nil, fmt.Errorf("list zaakobjecten: %w", err)
		}
		zaakobjecten = append(zaakobjecten, &zaakobject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list zaakobjecten: %w", err)
	}
	return zaakobjecten, nil
}

func (s *PostgresStore) CreateBesluit(ctx context.Context, besluit *Besluit) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO besluiten (id, zaak_id, identificatie, ingangsdatum, vervaldatum)
		 VALUES ($1, $2, $3, $4, $5)`,
		besluit.ID, besluit.ZaakID, besluit.Identificatie, besluit.Ingangsdatum, dateColumn(besluit.Vervaldatum))
	if err != nil {
		return fmt.Errorf("create besluit: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListBesluiten(ctx context.Context, zaakID uuid.UUID) ([]*Besluit, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaak_id, identificatie, ingangsdatum, vervaldatum
		 FROM besluiten WHERE zaak_id = $1 ORDER BY ingangsdatum`, zaakID)
	if err != nil {
		return nil, fmt.Errorf("list besluiten: %w", err)
	}
	defer rows.Close()

	var besluiten []*Besluit
	for rows.Next() {
		var (
			besluit     Besluit
			vervaldatum sql.NullTime
		)
		if err := rows.Scan(&besluit.ID, &besluit.ZaakID, &besluit.Identificatie,
			&besluit.Ingangsdatum, &vervaldatum); err != nil {
			return nil, fmt.Errorf("list besluiten: %w", err)
		}
		besluit.Vervaldatum = scanDate(vervaldatum)
		besluiten = append(besluiten, &besluit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list besluiten: %w", err)
	}
	return besluiten, nil
}

func (s *PostgresStore) CreateZaakInformatieObject(ctx context.Context, zio *ZaakInformatieObject) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO zaakinformatieobjecten (id, zaak_id, informatieobject, titel, beschrijving)
		 VALUES ($1, $2, $3, $4, $5)`,
		zio.ID, zio.ZaakID, zio.InformatieObject, zio.Titel, zio.Beschrijving)
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.NewField("informatieobject", domainerrors.CodeUnique,
				"the informatieobject is already linked to this zaak")
		}
		return fmt.Errorf("create zaakinformatieobject: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListZaakInformatieObjecten(ctx context.Context, zaakID uuid.UUID) ([]*ZaakInformatieObject, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaak_id, informatieobject, titel, beschrijving
		 FROM zaakinformatieobjecten WHERE zaak_id = $1`, zaakID)
	if err != nil {
		return nil, fmt.Errorf("list zaakinformatieobjecten: %w", err)
	}
	defer rows.Close()

	var zios []*ZaakInformatieObject
	for rows.Next() {
		var zio ZaakInformatieObject
		if err := rows.Scan(&zio.ID, &zio.ZaakID, &zio.InformatieObject, &zio.Titel, &zio.Beschrijving); err != nil {
			return nil, fmt.Errorf("list zaakinformatieobjecten: %w", err)
		}
		zios = append(zios, &zio)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list zaakinformatieobjecten: %w", err)
	}
	return zios, nil
}

// ReserveIdentificatie allocates the next volgnummer with an upsert on the
// per-(bronorganisatie, jaar) counter row, then records the reservation.
func (s *PostgresStore) ReserveIdentificatie(ctx context.Context, bronorganisatie string, jaar int) (*ZaakIdentificatie, error) {
	reservation := &ZaakIdentificatie{
		ID:              uuid.New(),
		Bronorganisatie: bronorganisatie,
		Jaar:            jaar,
	}
	err := s.runner.InTx(ctx, func(ctx context.Context) error {
		err := s.q(ctx).QueryRowContext(ctx,
			`INSERT INTO zaak_identificatie_reeksen (bronorganisatie, jaar, laatste_volgnummer)
			 VALUES ($1, $2, 1)
			 ON CONFLICT (bronorganisatie, jaar)
			 DO UPDATE SET laatste_volgnummer = zaak_identificatie_reeksen.laatste_volgnummer + 1
			 RETURNING laatste_volgnummer`,
			bronorganisatie, jaar).Scan(&reservation.Volgnummer)
		if err != nil {
			return fmt.Errorf("advance identificatie reeks: %w", err)
		}
		reservation.Identificatie = FormatIdentificatie(jaar, reservation.Volgnummer)
		_, err = s.q(ctx).ExecContext(ctx,
			`INSERT INTO zaak_identificaties (id, bronorganisatie, jaar, volgnummer, identificatie, consumed)
			 VALUES ($1, $2, $3, $4, $5, FALSE)`,
			reservation.ID, reservation.Bronorganisatie, reservation.Jaar,
			reservation.Volgnummer, reservation.Identificatie)
		if err != nil {
			return fmt.Errorf("record identificatie reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *PostgresStore) ConsumeIdentificatie(ctx context.Context, bronorganisatie, identificatie string) error {
	var consumed bool
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT consumed FROM zaak_identificaties
		 WHERE bronorganisatie = $1 AND identificatie = $2
		 FOR UPDATE`,
		bronorganisatie, identificatie).Scan(&consumed)
	if errors.Is(err, sql.ErrNoRows) {
		// No reservation to consume; zaak-level uniqueness still applies.
		return nil
	}
	if err != nil {
		return fmt.Errorf("consume identificatie: %w", err)
	}
	if consumed {
		return domainerrors.NewField("identificatie", domainerrors.CodeIdentificatieNietUniek,
			"the reserved identificatie has already been used")
	}
	_, err = s.q(ctx).ExecContext(ctx,
		`UPDATE zaak_identificaties SET consumed = TRUE
		 WHERE bronorganisatie = $1 AND identificatie = $2`,
		bronorganisatie, identificatie)
	if err != nil {
		return fmt.Errorf("consume identificatie: %w", err)
	}
	return nil
}
