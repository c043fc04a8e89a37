package handler

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"zaakregister/internal/catalogi"
	"zaakregister/internal/zaken"
	"zaakregister/pkg/domainerrors"
)

const dateLayout = "2006-01-02"

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domainerrors.NewField(field, domainerrors.CodeInvalid, "date must be formatted as YYYY-MM-DD")
	}
	return t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domainerrors.NewField(field, domainerrors.CodeInvalid, "must be an RFC 3339 timestamp")
	}
	return t, nil
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domainerrors.NewField(field, domainerrors.CodeInvalid, "must be a valid UUID")
	}
	return id, nil
}

func parseOptionalID(field string, value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := parseID(field, *value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseIDs(field string, values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := parseID(field, value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ZaakRequest is the create/update payload for a zaak. Derived attributes
// (einddatum, the archival pair, archiefstatus) are not accepted here.
type ZaakRequest struct {
	Identificatie               string   `json:"identificatie"`
	Bronorganisatie             string   `json:"bronorganisatie"`
	Zaaktype                    string   `json:"zaaktype"`
	Omschrijving                string   `json:"omschrijving"`
	Toelichting                 string   `json:"toelichting"`
	Vertrouwelijkheidaanduiding string   `json:"vertrouwelijkheidaanduiding"`
	Registratiedatum            *string  `json:"registratiedatum"`
	Startdatum                  string   `json:"startdatum"`
	EinddatumGepland            *string  `json:"einddatumGepland"`
	Hoofdzaak                   *string  `json:"hoofdzaak"`
	RelevanteAndereZaken        []string `json:"relevanteAndereZaken"`
	Betalingsindicatie          string   `json:"betalingsindicatie"`
	LaatsteBetaaldatum          *string  `json:"laatsteBetaaldatum"`
	ProductenOfDiensten         []string `json:"productenOfDiensten"`

	parsed *zaken.Zaak
}

func (r *ZaakRequest) Validate() error {
	var errs domainerrors.List

	zaaktypeID, err := parseID("zaaktype", r.Zaaktype)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	startdatum, err := parseDate("startdatum", r.Startdatum)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	registratiedatum, err := parseOptionalDate("registratiedatum", r.Registratiedatum)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	einddatumGepland, err := parseOptionalDate("einddatumGepland", r.EinddatumGepland)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	laatsteBetaaldatum, err := parseOptionalDate("laatsteBetaaldatum", r.LaatsteBetaaldatum)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	hoofdzaakID, err := parseOptionalID("hoofdzaak", r.Hoofdzaak)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	relevante, err := parseIDs("relevanteAndereZaken", r.RelevanteAndereZaken)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}

	var vertrouwelijkheid catalogi.VertrouwelijkheidAanduiding
	if r.Vertrouwelijkheidaanduiding != "" {
		if v, err := catalogi.ParseVertrouwelijkheidAanduiding(r.Vertrouwelijkheidaanduiding); err != nil {
			errs = append(errs, domainerrors.Flatten(err)...)
		} else {
			vertrouwelijkheid = v
		}
	}

	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	zaak := &zaken.Zaak{
		Identificatie:               strings.TrimSpace(r.Identificatie),
		Bronorganisatie:             r.Bronorganisatie,
		ZaaktypeID:                  zaaktypeID,
		Omschrijving:                r.Omschrijving,
		Toelichting:                 r.Toelichting,
		Vertrouwelijkheidaanduiding: vertrouwelijkheid,
		Startdatum:                  startdatum,
		EinddatumGepland:            einddatumGepland,
		HoofdzaakID:                 hoofdzaakID,
		RelevanteAndereZaken:        relevante,
		Betalingsindicatie:          zaken.Betalingsindicatie(r.Betalingsindicatie),
		LaatsteBetaaldatum:          laatsteBetaaldatum,
		ProductenOfDiensten:         r.ProductenOfDiensten,
	}
	if registratiedatum != nil {
		zaak.Registratiedatum = *registratiedatum
	}
	r.parsed = zaak
	return nil
}

func (r *ZaakRequest) Zaak() *zaken.Zaak {
	return r.parsed
}

type StatusRequest struct {
	Zaak              string `json:"zaak"`
	Statustype        string `json:"statustype"`
	DatumStatusGezet  string `json:"datumStatusGezet"`
	Statustoelichting string `json:"statustoelichting"`

	parsedZaakID       uuid.UUID
	parsedStatustypeID uuid.UUID
	parsedDatum        time.Time
}

func (r *StatusRequest) Validate() error {
	var err error
	if r.parsedZaakID, err = parseID("zaak", r.Zaak); err != nil {
		return err
	}
	if r.parsedStatustypeID, err = parseID("statustype", r.Statustype); err != nil {
		return err
	}
	if r.parsedDatum, err = parseTimestamp("datumStatusGezet", r.DatumStatusGezet); err != nil {
		return err
	}
	return nil
}

type ResultaatRequest struct {
	Zaak          string `json:"zaak"`
	Resultaattype string `json:"resultaattype"`
	Toelichting   string `json:"toelichting"`

	parsedZaakID          uuid.UUID
	parsedResultaattypeID uuid.UUID
}

func (r *ResultaatRequest) Validate() error {
	var err error
	if r.parsedZaakID, err = parseID("zaak", r.Zaak); err != nil {
		return err
	}
	if r.parsedResultaattypeID, err = parseID("resultaattype", r.Resultaattype); err != nil {
		return err
	}
	return nil
}

type RolRequest struct {
	Zaak                string `json:"zaak"`
	Roltype             string `json:"roltype"`
	Betrokkene          string `json:"betrokkene"`
	IndicatieMachtiging string `json:"indicatieMachtiging"`
	Roltoelichting      string `json:"roltoelichting"`

	parsed *zaken.Rol
}

func (r *RolRequest) Validate() error {
	zaakID, err := parseID("zaak", r.Zaak)
	if err != nil {
		return err
	}
	roltypeID, err := parseID("roltype", r.Roltype)
	if err != nil {
		return err
	}
	if r.Betrokkene == "" {
		return domainerrors.NewField("betrokkene", domainerrors.CodeRequired, "betrokkene is required")
	}
	r.parsed = &zaken.Rol{
		ZaakID:              zaakID,
		RoltypeID:           roltypeID,
		Betrokkene:          r.Betrokkene,
		IndicatieMachtiging: zaken.IndicatieMachtiging(r.IndicatieMachtiging),
		Roltoelichting:      r.Roltoelichting,
	}
	return nil
}

func (r *RolRequest) Rol() *zaken.Rol {
	return r.parsed
}

type ZaakEigenschapRequest struct {
	Zaak       string `json:"zaak"`
	Eigenschap string `json:"eigenschap"`
	Waarde     string `json:"waarde"`

	parsedZaakID       uuid.UUID
	parsedEigenschapID uuid.UUID
}

func (r *ZaakEigenschapRequest) Validate() error {
	var err error
	if r.parsedZaakID, err = parseID("zaak", r.Zaak); err != nil {
		return err
	}
	if r.parsedEigenschapID, err = parseID("eigenschap", r.Eigenschap); err != nil {
		return err
	}
	if r.Waarde == "" {
		return domainerrors.NewField("waarde", domainerrors.CodeRequired, "waarde is required")
	}
	return nil
}

type ZaakObjectRequest struct {
	Zaak                string          `json:"zaak"`
	Object              string          `json:"object"`
	ObjectType          string          `json:"objectType"`
	RelatieOmschrijving string          `json:"relatieomschrijving"`
	ObjectIdentificatie json.RawMessage `json:"objectIdentificatie"`

	parsed *zaken.ZaakObject
}

func (r *ZaakObjectRequest) Validate() error {
	zaakID, err := parseID("zaak", r.Zaak)
	if err != nil {
		return err
	}
	objectType := zaken.ObjectType(r.ObjectType)
	payload, err := zaken.DecodeObjectIdentificatie(objectType, r.ObjectIdentificatie)
	if err != nil {
		return err
	}
	r.parsed = &zaken.ZaakObject{
		ZaakID:              zaakID,
		Object:              r.Object,
		ObjectType:          objectType,
		RelatieOmschrijving: r.RelatieOmschrijving,
		ObjectIdentificatie: payload,
	}
	return nil
}

func (r *ZaakObjectRequest) ZaakObject() *zaken.ZaakObject {
	return r.parsed
}

type BesluitRequest struct {
	Zaak          string  `json:"zaak"`
	Identificatie string  `json:"identificatie"`
	Ingangsdatum  string  `json:"ingangsdatum"`
	Vervaldatum   *string `json:"vervaldatum"`

	parsed *zaken.Besluit
}

func (r *BesluitRequest) Validate() error {
	zaakID, err := parseID("zaak", r.Zaak)
	if err != nil {
		return err
	}
	ingangsdatum, err := parseDate("ingangsdatum", r.Ingangsdatum)
	if err != nil {
		return err
	}
	vervaldatum, err := parseOptionalDate("vervaldatum", r.Vervaldatum)
	if err != nil {
		return err
	}
	r.parsed = &zaken.Besluit{
		ZaakID:        zaakID,
		Identificatie: r.Identificatie,
		Ingangsdatum:  ingangsdatum,
		Vervaldatum:   vervaldatum,
	}
	return nil
}

func (r *BesluitRequest) Besluit() *zaken.Besluit {
	return r.parsed
}

type ZaakInformatieObjectRequest struct {
	Zaak             string `json:"zaak"`
	InformatieObject string `json:"informatieobject"`
	Titel            string `json:"titel"`
	Beschrijving     string `json:"beschrijving"`

	parsed *zaken.ZaakInformatieObject
}

func (r *ZaakInformatieObjectRequest) Validate() error {
	zaakID, err := parseID("zaak", r.Zaak)
	if err != nil {
		return err
	}
	r.parsed = &zaken.ZaakInformatieObject{
		ZaakID:           zaakID,
		InformatieObject: r.InformatieObject,
		Titel:            r.Titel,
		Beschrijving:     r.Beschrijving,
	}
	return nil
}

func (r *ZaakInformatieObjectRequest) ZaakInformatieObject() *zaken.ZaakInformatieObject {
	return r.parsed
}

type ArchiefstatusRequest struct {
	Archiefstatus string `json:"archiefstatus"`

	parsed zaken.Archiefstatus
}

func (r *ArchiefstatusRequest) Validate() error {
	status, err := zaken.ParseArchiefstatus(r.Archiefstatus)
	if err != nil {
		return err
	}
	r.parsed = status
	return nil
}

type ReserveIdentificatieRequest struct {
	Bronorganisatie string `json:"bronorganisatie"`
	Jaar            int    `json:"jaar"`
}

func (r *ReserveIdentificatieRequest) Validate() error {
	var errs domainerrors.List
	if len(r.Bronorganisatie) != 9 {
		errs = append(errs, domainerrors.NewField("bronorganisatie", domainerrors.CodeInvalid, "bronorganisatie must be exactly 9 digits"))
	}
	if r.Jaar < 1000 || r.Jaar > 9999 {
		errs = append(errs, domainerrors.NewField("jaar", domainerrors.CodeInvalid, "jaar must be a four-digit year"))
	}
	return errs.ErrOrNil()
}
