package catalogi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/period"
	"zaakregister/pkg/platform/tx"
)

// PostgresStore persists the type graph in PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	runner *tx.Runner
}

// NewPostgresStore constructs a PostgreSQL-backed catalogi store.
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

func mapPQError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domainerrors.New(domainerrors.CodeUnique, "a record with these values already exists")
	}
	return fmt.Errorf("%s: %w", op, err)
}

func periodColumn(p *period.Period) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: p.String(), Valid: true}
}

func scanPeriod(ns sql.NullString) (*period.Period, error) {
	if !ns.Valid {
		return nil, nil
	}
	p, err := period.Parse(ns.String)
	if err != nil {
		return nil, fmt.Errorf("stored duration %q: %w", ns.String, err)
	}
	return &p, nil
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

func (s *PostgresStore) CreateCatalogus(ctx context.Context, catalogus *Catalogus) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO catalogussen (id, domein, rsin) VALUES ($1, $2, $3)`,
		catalogus.ID, catalogus.Domein, catalogus.RSIN)
	if err != nil {
		return mapPQError(err, "create catalogus")
	}
	return nil
}

func (s *PostgresStore) GetCatalogus(ctx context.Context, id uuid.UUID) (*Catalogus, error) {
	var catalogus Catalogus
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, domein, rsin FROM catalogussen WHERE id = $1`, id).
		Scan(&catalogus.ID, &catalogus.Domein, &catalogus.RSIN)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get catalogus: %w", err)
	}
	return &catalogus, nil
}

const zaaktypeColumns = `id, catalogus_id, identificatie, omschrijving, vertrouwelijkheidaanduiding,
	doorlooptijd, servicenorm, verlenging_mogelijk, verlengingstermijn, opschorting_mogelijk,
	concept, begin_geldigheid, einde_geldigheid, versiedatum, selectielijst_procestype,
	deelzaaktypen, gerelateerde_zaaktypen, besluittypen`

func (s *PostgresStore) CreateZaaktype(ctx context.Context, zaaktype *Zaaktype) error {
	gerelateerd, err := json.Marshal(zaaktype.GerelateerdeZaaktypen)
	if err != nil {
		return fmt.Errorf("encode gerelateerde zaaktypen: %w", err)
	}
	_, err = s.q(ctx).ExecContext(ctx,
		`INSERT INTO zaaktypen (`+zaaktypeColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		zaaktype.ID, zaaktype.CatalogusID, zaaktype.Identificatie, zaaktype.Omschrijving,
		string(zaaktype.Vertrouwelijkheidaanduiding), zaaktype.Doorlooptijd.String(),
		periodColumn(zaaktype.Servicenorm), zaaktype.VerlengingMogelijk,
		periodColumn(zaaktype.Verlengingstermijn), zaaktype.OpschortingMogelijk,
		zaaktype.Concept, zaaktype.BeginGeldigheid, dateColumn(zaaktype.EindeGeldigheid),
		zaaktype.Versiedatum, zaaktype.SelectielijstProcestype,
		pq.Array(zaaktype.Deelzaaktypen), gerelateerd, pq.Array(zaaktype.Besluittypen))
	if err != nil {
		return mapPQError(err, "create zaaktype")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanZaaktype(row rowScanner) (*Zaaktype, error) {
	var (
		zaaktype           Zaaktype
		vertrouwelijkheid  string
		doorlooptijd       string
		servicenorm        sql.NullString
		verlengingstermijn sql.NullString
		eindeGeldigheid    sql.NullTime
		gerelateerd        []byte
	)
	err := row.Scan(&zaaktype.ID, &zaaktype.CatalogusID, &zaaktype.Identificatie, &zaaktype.Omschrijving,
		&vertrouwelijkheid, &doorlooptijd, &servicenorm, &zaaktype.VerlengingMogelijk,
		&verlengingstermijn, &zaaktype.OpschortingMogelijk, &zaaktype.Concept,
		&zaaktype.BeginGeldigheid, &eindeGeldigheid, &zaaktype.Versiedatum,
		&zaaktype.SelectielijstProcestype,
		pq.Array(&zaaktype.Deelzaaktypen), &gerelateerd, pq.Array(&zaaktype.Besluittypen))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan zaaktype: %w", err)
	}

	zaaktype.Vertrouwelijkheidaanduiding = VertrouwelijkheidAanduiding(vertrouwelijkheid)
	if zaaktype.Doorlooptijd, err = period.Parse(doorlooptijd); err != nil {
		return nil, fmt.Errorf("stored doorlooptijd %q: %w", doorlooptijd, err)
	}
	if zaaktype.Servicenorm, err = scanPeriod(servicenorm); err != nil {
		return nil, err
	}
	if zaaktype.Verlengingstermijn, err = scanPeriod(verlengingstermijn); err != nil {
		return nil, err
	}
	zaaktype.EindeGeldigheid = scanDate(eindeGeldigheid)
	if len(gerelateerd) > 0 {
		if err := json.Unmarshal(gerelateerd, &zaaktype.GerelateerdeZaaktypen); err != nil {
			return nil, fmt.Errorf("decode gerelateerde zaaktypen: %w", err)
		}
	}
	return &zaaktype, nil
}

func (s *PostgresStore) GetZaaktype(ctx context.Context, id uuid.UUID) (*Zaaktype, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+zaaktypeColumns+` FROM zaaktypen WHERE id = $1`, id)
	return scanZaaktype(row)
}

func (s *PostgresStore) UpdateZaaktype(ctx context.Context, zaaktype *Zaaktype) error {
	gerelateerd, err := json.Marshal(zaaktype.GerelateerdeZaaktypen)
	if err != nil {
		return fmt.Errorf("encode gerelateerde zaaktypen: %w", err)
	}
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE zaaktypen SET identificatie = $2, omschrijving = $3, vertrouwelijkheidaanduiding = $4,
			doorlooptijd = $5, servicenorm = $6, verlenging_mogelijk = $7, verlengingstermijn = $8,
			opschorting_mogelijk = $9, concept = $10, begin_geldigheid = $11, einde_geldigheid = $12,
			versiedatum = $13, selectielijst_procestype = $14, deelzaaktypen = $15,
			gerelateerde_zaaktypen = $16, besluittypen = $17
		 WHERE id = $1`,
		zaaktype.ID, zaaktype.Identificatie, zaaktype.Omschrijving,
		string(zaaktype.Vertrouwelijkheidaanduiding), zaaktype.Doorlooptijd.String(),
		periodColumn(zaaktype.Servicenorm), zaaktype.VerlengingMogelijk,
		periodColumn(zaaktype.Verlengingstermijn), zaaktype.OpschortingMogelijk,
		zaaktype.Concept, zaaktype.BeginGeldigheid, dateColumn(zaaktype.EindeGeldigheid),
		zaaktype.Versiedatum, zaaktype.SelectielijstProcestype,
		pq.Array(zaaktype.Deelzaaktypen), gerelateerd, pq.Array(zaaktype.Besluittypen))
	if err != nil {
		return mapPQError(err, "update zaaktype")
	}
	return requireRow(result, "update zaaktype")
}

func (s *PostgresStore) DeleteZaaktype(ctx context.Context, id uuid.UUID) error {
	// Subordinate rows cascade through foreign keys.
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM zaaktypen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete zaaktype: %w", err)
	}
	return requireRow(result, "delete zaaktype")
}

func (s *PostgresStore) ListZaaktypen(ctx context.Context, catalogusID uuid.UUID) ([]*Zaaktype, error) {
	return s.queryZaaktypen(ctx,
		`SELECT `+zaaktypeColumns+` FROM zaaktypen WHERE catalogus_id = $1 ORDER BY begin_geldigheid, omschrijving`,
		catalogusID)
}

func (s *PostgresStore) ListZaaktypeVersies(ctx context.Context, catalogusID uuid.UUID, omschrijving string) ([]*Zaaktype, error) {
	return s.queryZaaktypen(ctx,
		`SELECT `+zaaktypeColumns+` FROM zaaktypen WHERE catalogus_id = $1 AND omschrijving = $2 ORDER BY begin_geldigheid`,
		catalogusID, omschrijving)
}

func (s *PostgresStore) queryZaaktypen(ctx context.Context, query string, args ...any) ([]*Zaaktype, error) {
	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query zaaktypen: %w", err)
	}
	defer rows.Close()

	var zaaktypen []*Zaaktype
	for rows.Next() {
		zaaktype, err := scanZaaktype(rows)
		if err != nil {
			return nil, err
		}
		zaaktypen = append(zaaktypen, zaaktype)
	}
	return zaaktypen, rows.Err()
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

func (s *PostgresStore) CreateStatustype(ctx context.Context, statustype *Statustype) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO statustypen (id, zaaktype_id, omschrijving, volgnummer, toelichting, concept)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		statustype.ID, statustype.ZaaktypeID, statustype.Omschrijving,
		statustype.Volgnummer, statustype.Toelichting, statustype.Concept)
	if err != nil {
		return mapPQError(err, "create statustype")
	}
	return nil
}

func scanStatustype(row rowScanner) (*Statustype, error) {
	var statustype Statustype
	err := row.Scan(&statustype.ID, &statustype.ZaaktypeID, &statustype.Omschrijving,
		&statustype.Volgnummer, &statustype.Toelichting, &statustype.Concept)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan statustype: %w", err)
	}
	return &statustype, nil
}

func (s *PostgresStore) GetStatustype(ctx context.Context, id uuid.UUID) (*Statustype, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, zaaktype_id, omschrijving, volgnummer, toelichting, concept
		 FROM statustypen WHERE id = $1`, id)
	return scanStatustype(row)
}

func (s *PostgresStore) UpdateStatustype(ctx context.Context, statustype *Statustype) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE statustypen SET omschrijving = $2, volgnummer = $3, toelichting = $4, concept = $5
		 WHERE id = $1`,
		statustype.ID, statustype.Omschrijving, statustype.Volgnummer,
		statustype.Toelichting, statustype.Concept)
	if err != nil {
		return mapPQError(err, "update statustype")
	}
	return requireRow(result, "update statustype")
}

func (s *PostgresStore) DeleteStatustype(ctx context.Context, id uuid.UUID) error {
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM statustypen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete statustype: %w", err)
	}
	return requireRow(result, "delete statustype")
}

func (s *PostgresStore) ListStatustypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*Statustype, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaaktype_id, omschrijving, volgnummer, toelichting, concept
		 FROM statustypen WHERE zaaktype_id = $1 ORDER BY volgnummer`, zaaktypeID)
	if err != nil {
		return nil, fmt.Errorf("list statustypen: %w", err)
	}
	defer rows.Close()

	var statustypen []*Statustype
	for rows.Next() {
		statustype, err := scanStatustype(rows)
		if err != nil {
			return nil, err
		}
		statustypen = append(statustypen, statustype)
	}
	return statustypen, rows.Err()
}

const resultaattypeColumns = `id, zaaktype_id, omschrijving, selectielijstklasse, archiefnominatie,
	archiefactietermijn, afleidingswijze, datumkenmerk, einddatum_bekend, objecttype, registratie,
	procestermijn, concept`

func (s *PostgresStore) CreateResultaattype(ctx context.Context, resultaattype *Resultaattype) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO resultaattypen (`+resultaattypeColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		resultaattype.ID, resultaattype.ZaaktypeID, resultaattype.Omschrijving,
		resultaattype.Selectielijstklasse, string(resultaattype.Archiefnominatie),
		periodColumn(resultaattype.Archiefactietermijn),
		string(resultaattype.Brondatum.Afleidingswijze), resultaattype.Brondatum.Datumkenmerk,
		resultaattype.Brondatum.EinddatumBekend, resultaattype.Brondatum.Objecttype,
		resultaattype.Brondatum.Registratie, periodColumn(resultaattype.Brondatum.Procestermijn),
		resultaattype.Concept)
	if err != nil {
		return mapPQError(err, "create resultaattype")
	}
	return nil
}

func scanResultaattype(row rowScanner) (*Resultaattype, error) {
	var (
		resultaattype       Resultaattype
		archiefnominatie    string
		archiefactietermijn sql.NullString
		afleidingswijze     string
		procestermijn       sql.NullString
	)
	err := row.Scan(&resultaattype.ID, &resultaattype.ZaaktypeID, &resultaattype.Omschrijving,
		&resultaattype.Selectielijstklasse, &archiefnominatie, &archiefactietermijn,
		&afleidingswijze, &resultaattype.Brondatum.Datumkenmerk,
		&resultaattype.Brondatum.EinddatumBekend, &resultaattype.Brondatum.Objecttype,
		&resultaattype.Brondatum.Registratie, &procestermijn, &resultaattype.Concept)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan resultaattype: %w", err)
	}

	resultaattype.Archiefnominatie = Archiefnominatie(archiefnominatie)
	resultaattype.Brondatum.Afleidingswijze = Afleidingswijze(afleidingswijze)
	if resultaattype.Archiefactietermijn, err = scanPeriod(archiefactietermijn); err != nil {
		return nil, err
	}
	if resultaattype.Brondatum.Procestermijn, err = scanPeriod(procestermijn); err != nil {
		return nil, err
	}
	return &resultaattype, nil
}

func (s *PostgresStore) GetResultaattype(ctx context.Context, id uuid.UUID) (*Resultaattype, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+resultaattypeColumns+` FROM resultaattypen WHERE id = $1`, id)
	return scanResultaattype(row)
}

func (s *PostgresStore) UpdateResultaattype(ctx context.Context, resultaattype *Resultaattype) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE resultaattypen SET omschrijving = $2, selectielijstklasse = $3, archiefnominatie = $4,
			archiefactietermijn = $5, afleidingswijze = $6, datumkenmerk = $7, einddatum_bekend = $8,
			objecttype = $9, registratie = $10, procestermijn = $11, concept = $12
		 WHERE id = $1`,
		resultaattype.ID, resultaattype.Omschrijving, resultaattype.Selectielijstklasse,
		string(resultaattype.Archiefnominatie), periodColumn(resultaattype.Archiefactietermijn),
		string(resultaattype.Brondatum.Afleidingswijze), resultaattype.Brondatum.Datumkenmerk,
		resultaattype.Brondatum.EinddatumBekend, resultaattype.Brondatum.Objecttype,
		resultaattype.Brondatum.Registratie, periodColumn(resultaattype.Brondatum.Procestermijn),
		resultaattype.Concept)
	if err != nil {
		return mapPQError(err, "update resultaattype")
	}
	return requireRow(result, "update resultaattype")
}

func (s *PostgresStore) DeleteResultaattype(ctx context.Context, id uuid.UUID) error {
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM resultaattypen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resultaattype: %w", err)
	}
	return requireRow(result, "delete resultaattype")
}

func (s *PostgresStore) ListResultaattypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*Resultaattype, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+resultaattypeColumns+` FROM resultaattypen WHERE zaaktype_id = $1 ORDER BY omschrijving`,
		zaaktypeID)
	if err != nil {
		return nil, fmt.Errorf("list resultaattypen: %w", err)
	}
	defer rows.Close()

	var resultaattypen []*Resultaattype
	for rows.Next() {
		resultaattype, err := scanResultaattype(rows)
		if err != nil {
			return nil, err
		}
		resultaattypen = append(resultaattypen, resultaattype)
	}
	return resultaattypen, rows.Err()
}

func (s *PostgresStore) CreateRoltype(ctx context.Context, roltype *Roltype) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO roltypen (id, zaaktype_id, omschrijving, omschrijving_generiek, concept)
		 VALUES ($1, $2, $3, $4, $5)`,
		roltype.ID, roltype.ZaaktypeID, roltype.Omschrijving,
		string(roltype.OmschrijvingGeneriek), roltype.Concept)
	if err != nil {
		return mapPQError(err, "create roltype")
	}
	return nil
}

func scanRoltype(row rowScanner) (*Roltype, error) {
	var (
		roltype  Roltype
		generiek string
	)
	err := row.Scan(&roltype.ID, &roltype.ZaaktypeID, &roltype.Omschrijving, &generiek, &roltype.Concept)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan roltype: %w", err)
	}
	roltype.OmschrijvingGeneriek = RolOmschrijvingGeneriek(generiek)
	return &roltype, nil
}

func (s *PostgresStore) GetRoltype(ctx context.Context, id uuid.UUID) (*Roltype, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, zaaktype_id, omschrijving, omschrijving_generiek, concept FROM roltypen WHERE id = $1`, id)
	return scanRoltype(row)
}

func (s *PostgresStore) UpdateRoltype(ctx context.Context, roltype *Roltype) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE roltypen SET omschrijving = $2, omschrijving_generiek = $3, concept = $4
		 WHERE id = $1`,
		roltype.ID, roltype.Omschrijving, string(roltype.OmschrijvingGeneriek), roltype.Concept)
	if err != nil {
		return mapPQError(err, "update roltype")
	}
	return requireRow(result, "update roltype")
}

func (s *PostgresStore) DeleteRoltype(ctx context.Context, id uuid.UUID) error {
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM roltypen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete roltype: %w", err)
	}
	return requireRow(result, "delete roltype")
}

func (s *PostgresStore) ListRoltypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*Roltype, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaaktype_id, omschrijving, omschrijving_generiek, concept
		 FROM roltypen WHERE zaaktype_id = $1 ORDER BY omschrijving`, zaaktypeID)
	if err != nil {
		return nil, fmt.Errorf("list roltypen: %w", err)
	}
	defer rows.Close()

	var roltypen []*Roltype
	for rows.Next() {
		roltype, err := scanRoltype(rows)
		if err != nil {
			return nil, err
		}
		roltypen = append(roltypen, roltype)
	}
	return roltypen, rows.Err()
}

func (s *PostgresStore) CreateEigenschap(ctx context.Context, eigenschap *Eigenschap) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO eigenschappen (id, zaaktype_id, naam, definitie, concept)
		 VALUES ($1, $2, $3, $4, $5)`,
		eigenschap.ID, eigenschap.ZaaktypeID, eigenschap.Naam, eigenschap.Definitie, eigenschap.Concept)
	if err != nil {
		return mapPQError(err, "create eigenschap")
	}
	return nil
}

func (s *PostgresStore) GetEigenschap(ctx context.Context, id uuid.UUID) (*Eigenschap, error) {
	var eigenschap Eigenschap
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, zaaktype_id, naam, definitie, concept FROM eigenschappen WHERE id = $1`, id).
		Scan(&eigenschap.ID, &eigenschap.ZaaktypeID, &eigenschap.Naam, &eigenschap.Definitie, &eigenschap.Concept)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get eigenschap: %w", err)
	}
	return &eigenschap, nil
}

func (s *PostgresStore) UpdateEigenschap(ctx context.Context, eigenschap *Eigenschap) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE eigenschappen SET naam = $2, definitie = $3, concept = $4 WHERE id = $1`,
		eigenschap.ID, eigenschap.Naam, eigenschap.Definitie, eigenschap.Concept)
	if err != nil {
		return mapPQError(err, "update eigenschap")
	}
	return requireRow(result, "update eigenschap")
}

func (s *PostgresStore) DeleteEigenschap(ctx context.Context, id uuid.UUID) error {
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM eigenschappen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete eigenschap: %w", err)
	}
	return requireRow(result, "delete eigenschap")
}

func (s *PostgresStore) ListEigenschappen(ctx context.Context, zaaktypeID uuid.UUID) ([]*Eigenschap, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaaktype_id, naam, definitie, concept
		 FROM eigenschappen WHERE zaaktype_id = $1 ORDER BY naam`, zaaktypeID)
	if err != nil {
		return nil, fmt.Errorf("list eigenschappen: %w", err)
	}
	defer rows.Close()

	var eigenschappen []*Eigenschap
	for rows.Next() {
		var eigenschap Eigenschap
		if err := rows.Scan(&eigenschap.ID, &eigenschap.ZaaktypeID, &eigenschap.Naam,
			&eigenschap.Definitie, &eigenschap.Concept); err != nil {
			return nil, fmt.Errorf("scan eigenschap: %w", err)
		}
		eigenschappen = append(eigenschappen, &eigenschap)
	}
	return eigenschappen, rows.Err()
}

func (s *PostgresStore) CreateZaakObjectType(ctx context.Context, zaakobjecttype *ZaakObjectType) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO zaakobjecttypen (id, zaaktype_id, ander_objecttype, objecttype, concept)
		 VALUES ($1, $2, $3, $4, $5)`,
		zaakobjecttype.ID, zaakobjecttype.ZaaktypeID, zaakobjecttype.AnderObjecttype,
		zaakobjecttype.Objecttype, zaakobjecttype.Concept)
	if err != nil {
		return mapPQError(err, "create zaakobjecttype")
	}
	return nil
}

func (s *PostgresStore) GetZaakObjectType(ctx context.Context, id uuid.UUID) (*ZaakObjectType, error) {
	var zaakobjecttype ZaakObjectType
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, zaaktype_id, ander_objecttype, objecttype, concept FROM zaakobjecttypen WHERE id = $1`, id).
		Scan(&zaakobjecttype.ID, &zaakobjecttype.ZaaktypeID, &zaakobjecttype.AnderObjecttype,
			&zaakobjecttype.Objecttype, &zaakobjecttype.Concept)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get zaakobjecttype: %w", err)
	}
	return &zaakobjecttype, nil
}

func (s *PostgresStore) UpdateZaakObjectType(ctx context.Context, zaakobjecttype *ZaakObjectType) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE zaakobjecttypen SET ander_objecttype = $2, objecttype = $3, concept = $4
		 WHERE id = $1`,
		zaakobjecttype.ID, zaakobjecttype.AnderObjecttype, zaakobjecttype.Objecttype, zaakobjecttype.Concept)
	if err != nil {
		return mapPQError(err, "update zaakobjecttype")
	}
	return requireRow(result, "update zaakobjecttype")
}

func (s *PostgresStore) DeleteZaakObjectType(ctx context.Context, id uuid.UUID) error {
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM zaakobjecttypen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete zaakobjecttype: %w", err)
	}
	return requireRow(result, "delete zaakobjecttype")
}

func (s *PostgresStore) ListZaakObjectTypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*ZaakObjectType, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaaktype_id, ander_objecttype, objecttype, concept
		 FROM zaakobjecttypen WHERE zaaktype_id = $1 ORDER BY objecttype`, zaaktypeID)
	if err != nil {
		return nil, fmt.Errorf("list zaakobjecttypen: %w", err)
	}
	defer rows.Close()

	var zaakobjecttypen []*ZaakObjectType
	for rows.Next() {
		var zaakobjecttype ZaakObjectType
		if err := rows.Scan(&zaakobjecttype.ID, &zaakobjecttype.ZaaktypeID, &zaakobjecttype.AnderObjecttype,
			&zaakobjecttype.Objecttype, &zaakobjecttype.Concept); err != nil {
			return nil, fmt.Errorf("scan zaakobjecttype: %w", err)
		}
		zaakobjecttypen = append(zaakobjecttypen, &zaakobjecttype)
	}
	return zaakobjecttypen, rows.Err()
}

func (s *PostgresStore) CreateInformatieObjectType(ctx context.Context, informatieobjecttype *InformatieObjectType) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO informatieobjecttypen (id, catalogus_id, omschrijving, vertrouwelijkheidaanduiding,
			concept, begin_geldigheid, einde_geldigheid)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		informatieobjecttype.ID, informatieobjecttype.CatalogusID, informatieobjecttype.Omschrijving,
		string(informatieobjecttype.Vertrouwelijkheidaanduiding), informatieobjecttype.Concept,
		informatieobjecttype.BeginGeldigheid, dateColumn(informatieobjecttype.EindeGeldigheid))
	if err != nil {
		return mapPQError(err, "create informatieobjecttype")
	}
	return nil
}

func (s *PostgresStore) GetInformatieObjectType(ctx context.Context, id uuid.UUID) (*InformatieObjectType, error) {
	var (
		informatieobjecttype InformatieObjectType
		vertrouwelijkheid    string
		eindeGeldigheid      sql.NullTime
	)
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, catalogus_id, omschrijving, vertrouwelijkheidaanduiding, concept, begin_geldigheid, einde_geldigheid
		 FROM informatieobjecttypen WHERE id = $1`, id).
		Scan(&informatieobjecttype.ID, &informatieobjecttype.CatalogusID, &informatieobjecttype.Omschrijving,
			&vertrouwelijkheid, &informatieobjecttype.Concept, &informatieobjecttype.BeginGeldigheid, &eindeGeldigheid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get informatieobjecttype: %w", err)
	}
	informatieobjecttype.Vertrouwelijkheidaanduiding = VertrouwelijkheidAanduiding(vertrouwelijkheid)
	informatieobjecttype.EindeGeldigheid = scanDate(eindeGeldigheid)
	return &informatieobjecttype, nil
}

func (s *PostgresStore) UpdateInformatieObjectType(ctx context.Context, informatieobjecttype *InformatieObjectType) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE informatieobjecttypen SET omschrijving = $2, vertrouwelijkheidaanduiding = $3,
			concept = $4, begin_geldigheid = $5, einde_geldigheid = $6
		 WHERE id = $1`,
		informatieobjecttype.ID, informatieobjecttype.Omschrijving,
		string(informatieobjecttype.Vertrouwelijkheidaanduiding), informatieobjecttype.Concept,
		informatieobjecttype.BeginGeldigheid, dateColumn(informatieobjecttype.EindeGeldigheid))
	if err != nil {
		return mapPQError(err, "update informatieobjecttype")
	}
	return requireRow(result, "update informatieobjecttype")
}

func (s *PostgresStore) DeleteInformatieObjectType(ctx context.Context, id uuid.UUID) error {
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM informatieobjecttypen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete informatieobjecttype: %w", err)
	}
	return requireRow(result, "delete informatieobjecttype")
}

const besluittypeColumns = `id, catalogus_id, omschrijving, concept, begin_geldigheid, einde_geldigheid,
	zaaktypen, informatieobjecttypen`

func (s *PostgresStore) CreateBesluitType(ctx context.Context, besluittype *BesluitType) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO besluittypen (`+besluittypeColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		besluittype.ID, besluittype.CatalogusID, besluittype.Omschrijving, besluittype.Concept,
		besluittype.BeginGeldigheid, dateColumn(besluittype.EindeGeldigheid),
		pq.Array(besluittype.Zaaktypen), pq.Array(besluittype.Informatieobjecttypen))
	if err != nil {
		return mapPQError(err, "create besluittype")
	}
	return nil
}

func scanBesluitType(row rowScanner) (*BesluitType, error) {
	var (
		besluittype     BesluitType
		eindeGeldigheid sql.NullTime
	)
	err := row.Scan(&besluittype.ID, &besluittype.CatalogusID, &besluittype.Omschrijving,
		&besluittype.Concept, &besluittype.BeginGeldigheid, &eindeGeldigheid,
		pq.Array(&besluittype.Zaaktypen), pq.Array(&besluittype.Informatieobjecttypen))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan besluittype: %w", err)
	}
	besluittype.EindeGeldigheid = scanDate(eindeGeldigheid)
	return &besluittype, nil
}

func (s *PostgresStore) GetBesluitType(ctx context.Context, id uuid.UUID) (*BesluitType, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT `+besluittypeColumns+` FROM besluittypen WHERE id = $1`, id)
	return scanBesluitType(row)
}

func (s *PostgresStore) UpdateBesluitType(ctx context.Context, besluittype *BesluitType) error {
	result, err := s.q(ctx).ExecContext(ctx,
		`UPDATE besluittypen SET omschrijving = $2, concept = $3, begin_geldigheid = $4,
			einde_geldigheid = $5, zaaktypen = $6, informatieobjecttypen = $7
		 WHERE id = $1`,
		besluittype.ID, besluittype.Omschrijving, besluittype.Concept, besluittype.BeginGeldigheid,
		dateColumn(besluittype.EindeGeldigheid), pq.Array(besluittype.Zaaktypen),
		pq.Array(besluittype.Informatieobjecttypen))
	if err != nil {
		return mapPQError(err, "update besluittype")
	}
	return requireRow(result, "update besluittype")
}

func (s *PostgresStore) DeleteBesluitType(ctx context.Context, id uuid.UUID) error {
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM besluittypen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete besluittype: %w", err)
	}
	return requireRow(result, "delete besluittype")
}

func (s *PostgresStore) ListBesluitTypeVersies(ctx context.Context, catalogusID uuid.UUID, omschrijving string) ([]*BesluitType, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT `+besluittypeColumns+` FROM besluittypen
		 WHERE catalogus_id = $1 AND omschrijving = $2 ORDER BY begin_geldigheid`,
		catalogusID, omschrijving)
	if err != nil {
		return nil, fmt.Errorf("list besluittype versies: %w", err)
	}
	defer rows.Close()

	var besluittypen []*BesluitType
	for rows.Next() {
		besluittype, err := scanBesluitType(rows)
		if err != nil {
			return nil, err
		}
		besluittypen = append(besluittypen, besluittype)
	}
	return besluittypen, rows.Err()
}

func (s *PostgresStore) CreateZaaktypeInformatieObjectType(ctx context.Context, relation *ZaaktypeInformatieObjectType) error {
	_, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO zaaktype_informatieobjecttypen (id, zaaktype_id, informatieobjecttype_id, volgnummer, richting)
		 VALUES ($1, $2, $3, $4, $5)`,
		relation.ID, relation.ZaaktypeID, relation.InformatieObjectTypeID, relation.Volgnummer, relation.Richting)
	if err != nil {
		return mapPQError(err, "create zaaktype-informatieobjecttype relation")
	}
	return nil
}

func (s *PostgresStore) GetZaaktypeInformatieObjectType(ctx context.Context, id uuid.UUID) (*ZaaktypeInformatieObjectType, error) {
	var relation ZaaktypeInformatieObjectType
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, zaaktype_id, informatieobjecttype_id, volgnummer, richting
		 FROM zaaktype_informatieobjecttypen WHERE id = $1`, id).
		Scan(&relation.ID, &relation.ZaaktypeID, &relation.InformatieObjectTypeID,
			&relation.Volgnummer, &relation.Richting)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get zaaktype-informatieobjecttype relation: %w", err)
	}
	return &relation, nil
}

func (s *PostgresStore) DeleteZaaktypeInformatieObjectType(ctx context.Context, id uuid.UUID) error {
	result, err := s.q(ctx).ExecContext(ctx, `DELETE FROM zaaktype_informatieobjecttypen WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete zaaktype-informatieobjecttype relation: %w", err)
	}
	return requireRow(result, "delete zaaktype-informatieobjecttype relation")
}

func (s *PostgresStore) ListZaaktypeInformatieObjectTypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*ZaaktypeInformatieObjectType, error) {
	rows, err := s.q(ctx).QueryContext(ctx,
		`SELECT id, zaaktype_id, informatieobjecttype_id, volgnummer, richting
		 FROM zaaktype_informatieobjecttypen WHERE zaaktype_id = $1 ORDER BY volgnummer`, zaaktypeID)
	if err != nil {
		return nil, fmt.Errorf("list zaaktype-informatieobjecttype relations: %w", err)
	}
	defer rows.Close()

	var relations []*ZaaktypeInformatieObjectType
	for rows.Next() {
		var relation ZaaktypeInformatieObjectType
		if err := rows.Scan(&relation.ID, &relation.ZaaktypeID, &relation.InformatieObjectTypeID,
			&relation.Volgnummer, &relation.Richting); err != nil {
			return nil, fmt.Errorf("scan zaaktype-informatieobjecttype relation: %w", err)
		}
		relations = append(relations, &relation)
	}
	return relations, rows.Err()
}
