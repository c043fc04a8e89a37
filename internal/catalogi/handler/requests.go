package handler

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"zaakregister/internal/catalogi"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/period"
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

func parsePeriod(field, value string) (period.Period, error) {
	p, err := period.Parse(value)
	if err != nil {
		return period.Period{}, domainerrors.NewField(field, domainerrors.CodeInvalid, "duration must be an ISO 8601 period without a time component")
	}
	return p, nil
}

func parseOptionalPeriod(field string, value *string) (*period.Period, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	p, err := parsePeriod(field, *value)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domainerrors.NewField(field, domainerrors.CodeInvalid, "must be a valid UUID")
	}
	return id, nil
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

// CreateCatalogusRequest is the body for POST /catalogussen.
type CreateCatalogusRequest struct {
	Domein string `json:"domein"`
	RSIN   string `json:"rsin"`
}

func (r *CreateCatalogusRequest) Validate() error {
	r.Domein = strings.TrimSpace(r.Domein)
	r.RSIN = strings.TrimSpace(r.RSIN)
	var errs domainerrors.List
	if r.Domein == "" {
		errs = append(errs, domainerrors.NewField("domein", domainerrors.CodeRequired, "domein is required"))
	}
	if r.RSIN == "" {
		errs = append(errs, domainerrors.NewField("rsin", domainerrors.CodeRequired, "rsin is required"))
	}
	return errs.ErrOrNil()
}

// GerelateerdZaaktypeRequest qualifies a relation to another zaaktype.
type GerelateerdZaaktypeRequest struct {
	Zaaktype    string `json:"zaaktype"`
	AardRelatie string `json:"aardRelatie"`
	Toelichting string `json:"toelichting"`
}

// ZaaktypeRequest is the body for POST and PUT on zaaktypen.
type ZaaktypeRequest struct {
	Catalogus                   string                       `json:"catalogus"`
	Identificatie               string                       `json:"identificatie"`
	Omschrijving                string                       `json:"omschrijving"`
	Vertrouwelijkheidaanduiding string                       `json:"vertrouwelijkheidaanduiding"`
	Doorlooptijd                string                       `json:"doorlooptijd"`
	Servicenorm                 *string                      `json:"servicenorm"`
	VerlengingMogelijk          bool                         `json:"verlengingMogelijk"`
	Verlengingstermijn          *string                      `json:"verlengingstermijn"`
	OpschortingMogelijk         bool                         `json:"opschortingEnAanhoudingMogelijk"`
	BeginGeldigheid             string                       `json:"beginGeldigheid"`
	EindeGeldigheid             *string                      `json:"eindeGeldigheid"`
	Versiedatum                 string                       `json:"versiedatum"`
	SelectielijstProcestype     string                       `json:"selectielijstProcestype"`
	Deelzaaktypen               []string                     `json:"deelzaaktypen"`
	GerelateerdeZaaktypen       []GerelateerdZaaktypeRequest `json:"gerelateerdeZaaktypen"`
	Besluittypen                []string                     `json:"besluittypen"`

	parsed *catalogi.Zaaktype
}

func (r *ZaaktypeRequest) Validate() error {
	var errs domainerrors.List
	zaaktype := &catalogi.Zaaktype{
		Identificatie:           strings.TrimSpace(r.Identificatie),
		Omschrijving:            strings.TrimSpace(r.Omschrijving),
		VerlengingMogelijk:      r.VerlengingMogelijk,
		OpschortingMogelijk:     r.OpschortingMogelijk,
		SelectielijstProcestype: strings.TrimSpace(r.SelectielijstProcestype),
	}

	catalogusID, err := parseID("catalogus", r.Catalogus)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	zaaktype.CatalogusID = catalogusID

	if v, err := catalogi.ParseVertrouwelijkheidAanduiding(r.Vertrouwelijkheidaanduiding); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		zaaktype.Vertrouwelijkheidaanduiding = v
	}

	if r.Doorlooptijd == "" {
		errs = append(errs, domainerrors.NewField("doorlooptijd", domainerrors.CodeRequired, "doorlooptijd is required"))
	} else if p, err := parsePeriod("doorlooptijd", r.Doorlooptijd); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		zaaktype.Doorlooptijd = p
	}

	if p, err := parseOptionalPeriod("servicenorm", r.Servicenorm); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		zaaktype.Servicenorm = p
	}
	if p, err := parseOptionalPeriod("verlengingstermijn", r.Verlengingstermijn); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		zaaktype.Verlengingstermijn = p
	}

	if r.BeginGeldigheid == "" {
		errs = append(errs, domainerrors.NewField("beginGeldigheid", domainerrors.CodeRequired, "beginGeldigheid is required"))
	} else if t, err := parseDate("beginGeldigheid", r.BeginGeldigheid); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		zaaktype.BeginGeldigheid = t
	}

	if t, err := parseOptionalDate("eindeGeldigheid", r.EindeGeldigheid); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		zaaktype.EindeGeldigheid = t
	}

	if r.Versiedatum != "" {
		if t, err := parseDate("versiedatum", r.Versiedatum); err != nil {
			errs = append(errs, domainerrors.Flatten(err)...)
		} else {
			zaaktype.Versiedatum = t
		}
	}

	if ids, err := parseIDs("deelzaaktypen", r.Deelzaaktypen); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		zaaktype.Deelzaaktypen = ids
	}
	if ids, err := parseIDs("besluittypen", r.Besluittypen); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		zaaktype.Besluittypen = ids
	}
	for _, gerelateerd := range r.GerelateerdeZaaktypen {
		id, err := parseID("gerelateerdeZaaktypen", gerelateerd.Zaaktype)
		if err != nil {
			errs = append(errs, domainerrors.Flatten(err)...)
			continue
		}
		zaaktype.GerelateerdeZaaktypen = append(zaaktype.GerelateerdeZaaktypen, catalogi.GerelateerdZaaktype{
			ZaaktypeID:  id,
			AardRelatie: catalogi.AardRelatie(gerelateerd.AardRelatie),
			Toelichting: gerelateerd.Toelichting,
		})
	}

	if err := errs.ErrOrNil(); err != nil {
		return err
	}
	if err := zaaktype.Validate(); err != nil {
		return err
	}
	r.parsed = zaaktype
	return nil
}

// Zaaktype returns the parsed domain model. Only valid after Validate.
func (r *ZaaktypeRequest) Zaaktype() *catalogi.Zaaktype {
	return r.parsed
}

// StatustypeRequest is the body for POST /statustypen.
type StatustypeRequest struct {
	Zaaktype     string `json:"zaaktype"`
	Omschrijving string `json:"omschrijving"`
	Volgnummer   int    `json:"volgnummer"`
	Toelichting  string `json:"toelichting"`

	parsed *catalogi.Statustype
}

func (r *StatustypeRequest) Validate() error {
	zaaktypeID, err := parseID("zaaktype", r.Zaaktype)
	if err != nil {
		return err
	}
	r.parsed = &catalogi.Statustype{
		ZaaktypeID:   zaaktypeID,
		Omschrijving: strings.TrimSpace(r.Omschrijving),
		Volgnummer:   r.Volgnummer,
		Toelichting:  r.Toelichting,
	}
	return nil
}

func (r *StatustypeRequest) Statustype() *catalogi.Statustype {
	return r.parsed
}

// BrondatumArchiefprocedureRequest is the nested archival derivation record.
type BrondatumArchiefprocedureRequest struct {
	Afleidingswijze string  `json:"afleidingswijze"`
	Datumkenmerk    string  `json:"datumkenmerk"`
	EinddatumBekend bool    `json:"einddatumBekend"`
	Objecttype      string  `json:"objecttype"`
	Registratie     string  `json:"registratie"`
	Procestermijn   *string `json:"procestermijn"`
}

// ResultaattypeRequest is the body for POST and PUT on resultaattypen.
type ResultaattypeRequest struct {
	Zaaktype                  string                           `json:"zaaktype"`
	Omschrijving              string                           `json:"omschrijving"`
	Selectielijstklasse       string                           `json:"selectielijstklasse"`
	Archiefnominatie          string                           `json:"archiefnominatie"`
	Archiefactietermijn       *string                          `json:"archiefactietermijn"`
	BrondatumArchiefprocedure BrondatumArchiefprocedureRequest `json:"brondatumArchiefprocedure"`

	parsed *catalogi.Resultaattype
}

func (r *ResultaattypeRequest) Validate() error {
	var errs domainerrors.List

	zaaktypeID, err := parseID("zaaktype", r.Zaaktype)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}

	resultaattype := &catalogi.Resultaattype{
		ZaaktypeID:          zaaktypeID,
		Omschrijving:        strings.TrimSpace(r.Omschrijving),
		Selectielijstklasse: strings.TrimSpace(r.Selectielijstklasse),
	}

	switch catalogi.Archiefnominatie(r.Archiefnominatie) {
	case catalogi.ArchiefnominatieBlijvendBewaren, catalogi.ArchiefnominatieVernietigen:
		resultaattype.Archiefnominatie = catalogi.Archiefnominatie(r.Archiefnominatie)
	default:
		errs = append(errs, domainerrors.NewField("archiefnominatie", domainerrors.CodeInvalid, "unknown archiefnominatie"))
	}

	if p, err := parseOptionalPeriod("archiefactietermijn", r.Archiefactietermijn); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		resultaattype.Archiefactietermijn = p
	}

	afleidingswijze, err := catalogi.ParseAfleidingswijze(r.BrondatumArchiefprocedure.Afleidingswijze)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	procestermijn, err := parseOptionalPeriod("brondatumArchiefprocedure.procestermijn", r.BrondatumArchiefprocedure.Procestermijn)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	resultaattype.Brondatum = catalogi.BrondatumArchiefprocedure{
		Afleidingswijze: afleidingswijze,
		Datumkenmerk:    strings.TrimSpace(r.BrondatumArchiefprocedure.Datumkenmerk),
		EinddatumBekend: r.BrondatumArchiefprocedure.EinddatumBekend,
		Objecttype:      strings.TrimSpace(r.BrondatumArchiefprocedure.Objecttype),
		Registratie:     strings.TrimSpace(r.BrondatumArchiefprocedure.Registratie),
		Procestermijn:   procestermijn,
	}

	if err := errs.ErrOrNil(); err != nil {
		return err
	}
	r.parsed = resultaattype
	return nil
}

func (r *ResultaattypeRequest) Resultaattype() *catalogi.Resultaattype {
	return r.parsed
}

// RoltypeRequest is the body for POST /roltypen.
type RoltypeRequest struct {
	Zaaktype             string `json:"zaaktype"`
	Omschrijving         string `json:"omschrijving"`
	OmschrijvingGeneriek string `json:"omschrijvingGeneriek"`

	parsed *catalogi.Roltype
}

func (r *RoltypeRequest) Validate() error {
	zaaktypeID, err := parseID("zaaktype", r.Zaaktype)
	if err != nil {
		return err
	}
	r.parsed = &catalogi.Roltype{
		ZaaktypeID:           zaaktypeID,
		Omschrijving:         strings.TrimSpace(r.Omschrijving),
		OmschrijvingGeneriek: catalogi.RolOmschrijvingGeneriek(r.OmschrijvingGeneriek),
	}
	return nil
}

func (r *RoltypeRequest) Roltype() *catalogi.Roltype {
	return r.parsed
}

// EigenschapRequest is the body for POST /eigenschappen.
type EigenschapRequest struct {
	Zaaktype  string `json:"zaaktype"`
	Naam      string `json:"naam"`
	Definitie string `json:"definitie"`

	parsed *catalogi.Eigenschap
}

func (r *EigenschapRequest) Validate() error {
	zaaktypeID, err := parseID("zaaktype", r.Zaaktype)
	if err != nil {
		return err
	}
	r.parsed = &catalogi.Eigenschap{
		ZaaktypeID: zaaktypeID,
		Naam:       strings.TrimSpace(r.Naam),
		Definitie:  r.Definitie,
	}
	return nil
}

func (r *EigenschapRequest) Eigenschap() *catalogi.Eigenschap {
	return r.parsed
}

// ZaakObjectTypeRequest is the body for POST /zaakobjecttypen.
type ZaakObjectTypeRequest struct {
	Zaaktype        string `json:"zaaktype"`
	AnderObjecttype bool   `json:"anderObjecttype"`
	Objecttype      string `json:"objecttype"`

	parsed *catalogi.ZaakObjectType
}

func (r *ZaakObjectTypeRequest) Validate() error {
	zaaktypeID, err := parseID("zaaktype", r.Zaaktype)
	if err != nil {
		return err
	}
	r.parsed = &catalogi.ZaakObjectType{
		ZaaktypeID:      zaaktypeID,
		AnderObjecttype: r.AnderObjecttype,
		Objecttype:      strings.TrimSpace(r.Objecttype),
	}
	return nil
}

func (r *ZaakObjectTypeRequest) ZaakObjectType() *catalogi.ZaakObjectType {
	return r.parsed
}

// InformatieObjectTypeRequest is the body for POST /informatieobjecttypen.
type InformatieObjectTypeRequest struct {
	Catalogus                   string  `json:"catalogus"`
	Omschrijving                string  `json:"omschrijving"`
	Vertrouwelijkheidaanduiding string  `json:"vertrouwelijkheidaanduiding"`
	BeginGeldigheid             string  `json:"beginGeldigheid"`
	EindeGeldigheid             *string `json:"eindeGeldigheid"`

	parsed *catalogi.InformatieObjectType
}

func (r *InformatieObjectTypeRequest) Validate() error {
	var errs domainerrors.List

	catalogusID, err := parseID("catalogus", r.Catalogus)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	informatieobjecttype := &catalogi.InformatieObjectType{
		CatalogusID:  catalogusID,
		Omschrijving: strings.TrimSpace(r.Omschrijving),
	}

	if v, err := catalogi.ParseVertrouwelijkheidAanduiding(r.Vertrouwelijkheidaanduiding); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		informatieobjecttype.Vertrouwelijkheidaanduiding = v
	}

	if r.BeginGeldigheid == "" {
		errs = append(errs, domainerrors.NewField("beginGeldigheid", domainerrors.CodeRequired, "beginGeldigheid is required"))
	} else if t, err := parseDate("beginGeldigheid", r.BeginGeldigheid); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		informatieobjecttype.BeginGeldigheid = t
	}
	if t, err := parseOptionalDate("eindeGeldigheid", r.EindeGeldigheid); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		informatieobjecttype.EindeGeldigheid = t
	}

	if err := errs.ErrOrNil(); err != nil {
		return err
	}
	r.parsed = informatieobjecttype
	return nil
}

func (r *InformatieObjectTypeRequest) InformatieObjectType() *catalogi.InformatieObjectType {
	return r.parsed
}

// BesluitTypeRequest is the body for POST and PUT on besluittypen.
type BesluitTypeRequest struct {
	Catalogus             string   `json:"catalogus"`
	Omschrijving          string   `json:"omschrijving"`
	BeginGeldigheid       string   `json:"beginGeldigheid"`
	EindeGeldigheid       *string  `json:"eindeGeldigheid"`
	Zaaktypen             []string `json:"zaaktypen"`
	Informatieobjecttypen []string `json:"informatieobjecttypen"`

	parsed *catalogi.BesluitType
}

func (r *BesluitTypeRequest) Validate() error {
	var errs domainerrors.List

	catalogusID, err := parseID("catalogus", r.Catalogus)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	besluittype := &catalogi.BesluitType{
		CatalogusID:  catalogusID,
		Omschrijving: strings.TrimSpace(r.Omschrijving),
	}

	if r.BeginGeldigheid == "" {
		errs = append(errs, domainerrors.NewField("beginGeldigheid", domainerrors.CodeRequired, "beginGeldigheid is required"))
	} else if t, err := parseDate("beginGeldigheid", r.BeginGeldigheid); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		besluittype.BeginGeldigheid = t
	}
	if t, err := parseOptionalDate("eindeGeldigheid", r.EindeGeldigheid); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		besluittype.EindeGeldigheid = t
	}

	if ids, err := parseIDs("zaaktypen", r.Zaaktypen); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		besluittype.Zaaktypen = ids
	}
	if ids, err := parseIDs("informatieobjecttypen", r.Informatieobjecttypen); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	} else {
		besluittype.Informatieobjecttypen = ids
	}

	if err := errs.ErrOrNil(); err != nil {
		return err
	}
	r.parsed = besluittype
	return nil
}

func (r *BesluitTypeRequest) BesluitType() *catalogi.BesluitType {
	return r.parsed
}

// ZaaktypeInformatieObjectTypeRequest is the body for POST
// /zaaktype-informatieobjecttypen.
type ZaaktypeInformatieObjectTypeRequest struct {
	Zaaktype             string `json:"zaaktype"`
	InformatieObjectType string `json:"informatieobjecttype"`
	Volgnummer           int    `json:"volgnummer"`
	Richting             string `json:"richting"`

	parsed *catalogi.ZaaktypeInformatieObjectType
}

func (r *ZaaktypeInformatieObjectTypeRequest) Validate() error {
	var errs domainerrors.List
	zaaktypeID, err := parseID("zaaktype", r.Zaaktype)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	informatieobjecttypeID, err := parseID("informatieobjecttype", r.InformatieObjectType)
	if err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}
	r.parsed = &catalogi.ZaaktypeInformatieObjectType{
		ZaaktypeID:             zaaktypeID,
		InformatieObjectTypeID: informatieobjecttypeID,
		Volgnummer:             r.Volgnummer,
		Richting:               r.Richting,
	}
	return nil
}

func (r *ZaaktypeInformatieObjectTypeRequest) Relation() *catalogi.ZaaktypeInformatieObjectType {
	return r.parsed
}
