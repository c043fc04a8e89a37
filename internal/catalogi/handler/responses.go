package handler

import (
	"time"

	"zaakregister/internal/catalogi"
	"zaakregister/pkg/period"
)

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

func formatOptionalPeriod(p *period.Period) *string {
	if p == nil {
		return nil
	}
	s := p.String()
	return &s
}

// CatalogusResponse is the representation of a catalogus.
type CatalogusResponse struct {
	ID     string `json:"id"`
	Domein string `json:"domein"`
	RSIN   string `json:"rsin"`
}

func FromCatalogus(catalogus *catalogi.Catalogus) *CatalogusResponse {
	return &CatalogusResponse{
		ID:     catalogus.ID.String(),
		Domein: catalogus.Domein,
		RSIN:   catalogus.RSIN,
	}
}

// GerelateerdZaaktypeResponse mirrors GerelateerdZaaktypeRequest.
type GerelateerdZaaktypeResponse struct {
	Zaaktype    string `json:"zaaktype"`
	AardRelatie string `json:"aardRelatie"`
	Toelichting string `json:"toelichting"`
}

// ZaaktypeResponse is the representation of a zaaktype.
type ZaaktypeResponse struct {
	ID                          string                        `json:"id"`
	Catalogus                   string                        `json:"catalogus"`
	Identificatie               string                        `json:"identificatie"`
	Omschrijving                string                        `json:"omschrijving"`
	Vertrouwelijkheidaanduiding string                        `json:"vertrouwelijkheidaanduiding"`
	Doorlooptijd                string                        `json:"doorlooptijd"`
	Servicenorm                 *string                       `json:"servicenorm"`
	VerlengingMogelijk          bool                          `json:"verlengingMogelijk"`
	Verlengingstermijn          *string                       `json:"verlengingstermijn"`
	OpschortingMogelijk         bool                          `json:"opschortingEnAanhoudingMogelijk"`
	Concept                     bool                          `json:"concept"`
	BeginGeldigheid             string                        `json:"beginGeldigheid"`
	EindeGeldigheid             *string                       `json:"eindeGeldigheid"`
	Versiedatum                 string                        `json:"versiedatum"`
	SelectielijstProcestype     string                        `json:"selectielijstProcestype"`
	Deelzaaktypen               []string                      `json:"deelzaaktypen"`
	GerelateerdeZaaktypen       []GerelateerdZaaktypeResponse `json:"gerelateerdeZaaktypen"`
	Besluittypen                []string                      `json:"besluittypen"`
}

func FromZaaktype(zaaktype *catalogi.Zaaktype) *ZaaktypeResponse {
	resp := &ZaaktypeResponse{
		ID:                          zaaktype.ID.String(),
		Catalogus:                   zaaktype.CatalogusID.String(),
		Identificatie:               zaaktype.Identificatie,
		Omschrijving:                zaaktype.Omschrijving,
		Vertrouwelijkheidaanduiding: string(zaaktype.Vertrouwelijkheidaanduiding),
		Doorlooptijd:                zaaktype.Doorlooptijd.String(),
		Servicenorm:                 formatOptionalPeriod(zaaktype.Servicenorm),
		VerlengingMogelijk:          zaaktype.VerlengingMogelijk,
		Verlengingstermijn:          formatOptionalPeriod(zaaktype.Verlengingstermijn),
		OpschortingMogelijk:         zaaktype.OpschortingMogelijk,
		Concept:                     zaaktype.Concept,
		BeginGeldigheid:             formatDate(zaaktype.BeginGeldigheid),
		EindeGeldigheid:             formatOptionalDate(zaaktype.EindeGeldigheid),
		Versiedatum:                 formatDate(zaaktype.Versiedatum),
		SelectielijstProcestype:     zaaktype.SelectielijstProcestype,
		Deelzaaktypen:               make([]string, 0, len(zaaktype.Deelzaaktypen)),
		GerelateerdeZaaktypen:       make([]GerelateerdZaaktypeResponse, 0, len(zaaktype.GerelateerdeZaaktypen)),
		Besluittypen:                make([]string, 0, len(zaaktype.Besluittypen)),
	}
	for _, id := range zaaktype.Deelzaaktypen {
		resp.Deelzaaktypen = append(resp.Deelzaaktypen, id.String())
	}
	for _, gerelateerd := range zaaktype.GerelateerdeZaaktypen {
		resp.GerelateerdeZaaktypen = append(resp.GerelateerdeZaaktypen, GerelateerdZaaktypeResponse{
			Zaaktype:    gerelateerd.ZaaktypeID.String(),
			AardRelatie: string(gerelateerd.AardRelatie),
			Toelichting: gerelateerd.Toelichting,
		})
	}
	for _, id := range zaaktype.Besluittypen {
		resp.Besluittypen = append(resp.Besluittypen, id.String())
	}
	return resp
}

func FromZaaktypen(zaaktypen []*catalogi.Zaaktype) []*ZaaktypeResponse {
	out := make([]*ZaaktypeResponse, 0, len(zaaktypen))
	for _, zaaktype := range zaaktypen {
		out = append(out, FromZaaktype(zaaktype))
	}
	return out
}

// StatustypeResponse is the representation of a statustype.
type StatustypeResponse struct {
	ID           string `json:"id"`
	Zaaktype     string `json:"zaaktype"`
	Omschrijving string `json:"omschrijving"`
	Volgnummer   int    `json:"volgnummer"`
	Toelichting  string `json:"toelichting"`
	Concept      bool   `json:"concept"`
}

func FromStatustype(statustype *catalogi.Statustype) *StatustypeResponse {
	return &StatustypeResponse{
		ID:           statustype.ID.String(),
		Zaaktype:     statustype.ZaaktypeID.String(),
		Omschrijving: statustype.Omschrijving,
		Volgnummer:   statustype.Volgnummer,
		Toelichting:  statustype.Toelichting,
		Concept:      statustype.Concept,
	}
}

func FromStatustypen(statustypen []*catalogi.Statustype) []*StatustypeResponse {
	out := make([]*StatustypeResponse, 0, len(statustypen))
	for _, statustype := range statustypen {
		out = append(out, FromStatustype(statustype))
	}
	return out
}

// BrondatumArchiefprocedureResponse mirrors the request shape.
type BrondatumArchiefprocedureResponse struct {
	Afleidingswijze string  `json:"afleidingswijze"`
	Datumkenmerk    string  `json:"datumkenmerk"`
	EinddatumBekend bool    `json:"einddatumBekend"`
	Objecttype      string  `json:"objecttype"`
	Registratie     string  `json:"registratie"`
	Procestermijn   *string `json:"procestermijn"`
}

// ResultaattypeResponse is the representation of a resultaattype.
type ResultaattypeResponse struct {
	ID                        string                            `json:"id"`
	Zaaktype                  string                            `json:"zaaktype"`
	Omschrijving              string                            `json:"omschrijving"`
	Selectielijstklasse       string                            `json:"selectielijstklasse"`
	Archiefnominatie          string                            `json:"archiefnominatie"`
	Archiefactietermijn       *string                           `json:"archiefactietermijn"`
	BrondatumArchiefprocedure BrondatumArchiefprocedureResponse `json:"brondatumArchiefprocedure"`
	Concept                   bool                              `json:"concept"`
}

func FromResultaattype(resultaattype *catalogi.Resultaattype) *ResultaattypeResponse {
	return &ResultaattypeResponse{
		ID:                  resultaattype.ID.String(),
		Zaaktype:            resultaattype.ZaaktypeID.String(),
		Omschrijving:        resultaattype.Omschrijving,
		Selectielijstklasse: resultaattype.Selectielijstklasse,
		Archiefnominatie:    string(resultaattype.Archiefnominatie),
		Archiefactietermijn: formatOptionalPeriod(resultaattype.Archiefactietermijn),
		BrondatumArchiefprocedure: BrondatumArchiefprocedureResponse{
			Afleidingswijze: string(resultaattype.Brondatum.Afleidingswijze),
			Datumkenmerk:    resultaattype.Brondatum.Datumkenmerk,
			EinddatumBekend: resultaattype.Brondatum.EinddatumBekend,
			Objecttype:      resultaattype.Brondatum.Objecttype,
			Registratie:     resultaattype.Brondatum.Registratie,
			Procestermijn:   formatOptionalPeriod(resultaattype.Brondatum.Procestermijn),
		},
		Concept: resultaattype.Concept,
	}
}

func FromResultaattypen(resultaattypen []*catalogi.Resultaattype) []*ResultaattypeResponse {
	out := make([]*ResultaattypeResponse, 0, len(resultaattypen))
	for _, resultaattype := range resultaattypen {
		out = append(out, FromResultaattype(resultaattype))
	}
	return out
}

// RoltypeResponse is the representation of a roltype.
type RoltypeResponse struct {
	ID                   string `json:"id"`
	Zaaktype             string `json:"zaaktype"`
	Omschrijving         string `json:"omschrijving"`
	OmschrijvingGeneriek string `json:"omschrijvingGeneriek"`
	Concept              bool   `json:"concept"`
}

func FromRoltype(roltype *catalogi.Roltype) *RoltypeResponse {
	return &RoltypeResponse{
		ID:                   roltype.ID.String(),
		Zaaktype:             roltype.ZaaktypeID.String(),
		Omschrijving:         roltype.Omschrijving,
		OmschrijvingGeneriek: string(roltype.OmschrijvingGeneriek),
		Concept:              roltype.Concept,
	}
}

func FromRoltypen(roltypen []*catalogi.Roltype) []*RoltypeResponse {
	out := make([]*RoltypeResponse, 0, len(roltypen))
	for _, roltype := range roltypen {
		out = append(out, FromRoltype(roltype))
	}
	return out
}

// EigenschapResponse is the representation of an eigenschap.
type EigenschapResponse struct {
	ID        string `json:"id"`
	Zaaktype  string `json:"zaaktype"`
	Naam      string `json:"naam"`
	Definitie string `json:"definitie"`
	Concept   bool   `json:"concept"`
}

func FromEigenschap(eigenschap *catalogi.Eigenschap) *EigenschapResponse {
	return &EigenschapResponse{
		ID:        eigenschap.ID.String(),
		Zaaktype:  eigenschap.ZaaktypeID.String(),
		Naam:      eigenschap.Naam,
		Definitie: eigenschap.Definitie,
		Concept:   eigenschap.Concept,
	}
}

// ZaakObjectTypeResponse is the representation of a zaakobjecttype.
type ZaakObjectTypeResponse struct {
	ID              string `json:"id"`
	Zaaktype        string `json:"zaaktype"`
	AnderObjecttype bool   `json:"anderObjecttype"`
	Objecttype      string `json:"objecttype"`
	Concept         bool   `json:"concept"`
}

func FromZaakObjectType(zaakobjecttype *catalogi.ZaakObjectType) *ZaakObjectTypeResponse {
	return &ZaakObjectTypeResponse{
		ID:              zaakobjecttype.ID.String(),
		Zaaktype:        zaakobjecttype.ZaaktypeID.String(),
		AnderObjecttype: zaakobjecttype.AnderObjecttype,
		Objecttype:      zaakobjecttype.Objecttype,
		Concept:         zaakobjecttype.Concept,
	}
}

// InformatieObjectTypeResponse is the representation of an
// informatieobjecttype.
type InformatieObjectTypeResponse struct {
	ID                          string  `json:"id"`
	Catalogus                   string  `json:"catalogus"`
	Omschrijving                string  `json:"omschrijving"`
	Vertrouwelijkheidaanduiding string  `json:"vertrouwelijkheidaanduiding"`
	Concept                     bool    `json:"concept"`
	BeginGeldigheid             string  `json:"beginGeldigheid"`
	EindeGeldigheid             *string `json:"eindeGeldigheid"`
}

func FromInformatieObjectType(informatieobjecttype *catalogi.InformatieObjectType) *InformatieObjectTypeResponse {
	return &InformatieObjectTypeResponse{
		ID:                          informatieobjecttype.ID.String(),
		Catalogus:                   informatieobjecttype.CatalogusID.String(),
		Omschrijving:                informatieobjecttype.Omschrijving,
		Vertrouwelijkheidaanduiding: string(informatieobjecttype.Vertrouwelijkheidaanduiding),
		Concept:                     informatieobjecttype.Concept,
		BeginGeldigheid:             formatDate(informatieobjecttype.BeginGeldigheid),
		EindeGeldigheid:             formatOptionalDate(informatieobjecttype.EindeGeldigheid),
	}
}

// BesluitTypeResponse is the representation of a besluittype.
type BesluitTypeResponse struct {
	ID                    string   `json:"id"`
	Catalogus             string   `json:"catalogus"`
	Omschrijving          string   `json:"omschrijving"`
	Concept               bool     `json:"concept"`
	BeginGeldigheid       string   `json:"beginGeldigheid"`
	EindeGeldigheid       *string  `json:"eindeGeldigheid"`
	Zaaktypen             []string `json:"zaaktypen"`
	Informatieobjecttypen []string `json:"informatieobjecttypen"`
}

func FromBesluitType(besluittype *catalogi.BesluitType) *BesluitTypeResponse {
	resp := &BesluitTypeResponse{
		ID:                    besluittype.ID.String(),
		Catalogus:             besluittype.CatalogusID.String(),
		Omschrijving:          besluittype.Omschrijving,
		Concept:               besluittype.Concept,
		BeginGeldigheid:       formatDate(besluittype.BeginGeldigheid),
		EindeGeldigheid:       formatOptionalDate(besluittype.EindeGeldigheid),
		Zaaktypen:             make([]string, 0, len(besluittype.Zaaktypen)),
		Informatieobjecttypen: make([]string, 0, len(besluittype.Informatieobjecttypen)),
	}
	for _, id := range besluittype.Zaaktypen {
		resp.Zaaktypen = append(resp.Zaaktypen, id.String())
	}
	for _, id := range besluittype.Informatieobjecttypen {
		resp.Informatieobjecttypen = append(resp.Informatieobjecttypen, id.String())
	}
	return resp
}

// ZaaktypeInformatieObjectTypeResponse is the representation of the relation.
type ZaaktypeInformatieObjectTypeResponse struct {
	ID                   string `json:"id"`
	Zaaktype             string `json:"zaaktype"`
	InformatieObjectType string `json:"informatieobjecttype"`
	Volgnummer           int    `json:"volgnummer"`
	Richting             string `json:"richting"`
}

func FromZaaktypeInformatieObjectType(relation *catalogi.ZaaktypeInformatieObjectType) *ZaaktypeInformatieObjectTypeResponse {
	return &ZaaktypeInformatieObjectTypeResponse{
		ID:                   relation.ID.String(),
		Zaaktype:             relation.ZaaktypeID.String(),
		InformatieObjectType: relation.InformatieObjectTypeID.String(),
		Volgnummer:           relation.Volgnummer,
		Richting:             relation.Richting,
	}
}
