package handler

import (
	"time"

	"github.com/google/uuid"

	"zaakregister/internal/zaken"
)

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func formatOptionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func formatIDs(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// ZaakResponse is the wire representation of a zaak.
type ZaakResponse struct {
	ID                          string   `json:"id"`
	Identificatie               string   `json:"identificatie"`
	Bronorganisatie             string   `json:"bronorganisatie"`
	Zaaktype                    string   `json:"zaaktype"`
	Omschrijving                string   `json:"omschrijving"`
	Toelichting                 string   `json:"toelichting"`
	Vertrouwelijkheidaanduiding string   `json:"vertrouwelijkheidaanduiding"`
	Registratiedatum            string   `json:"registratiedatum"`
	Startdatum                  string   `json:"startdatum"`
	Einddatum                   *string  `json:"einddatum"`
	EinddatumGepland            *string  `json:"einddatumGepland"`
	Archiefnominatie            *string  `json:"archiefnominatie"`
	Archiefactiedatum           *string  `json:"archiefactiedatum"`
	Archiefstatus               string   `json:"archiefstatus"`
	Hoofdzaak                   *string  `json:"hoofdzaak"`
	RelevanteAndereZaken        []string `json:"relevanteAndereZaken"`
	Betalingsindicatie          string   `json:"betalingsindicatie"`
	LaatsteBetaaldatum          *string  `json:"laatsteBetaaldatum"`
	ProductenOfDiensten         []string `json:"productenOfDiensten"`
}

func FromZaak(zaak *zaken.Zaak) *ZaakResponse {
	resp := &ZaakResponse{
		ID:                          zaak.ID.String(),
		Identificatie:               zaak.Identificatie,
		Bronorganisatie:             zaak.Bronorganisatie,
		Zaaktype:                    zaak.ZaaktypeID.String(),
		Omschrijving:                zaak.Omschrijving,
		Toelichting:                 zaak.Toelichting,
		Vertrouwelijkheidaanduiding: string(zaak.Vertrouwelijkheidaanduiding),
		Registratiedatum:            formatDate(zaak.Registratiedatum),
		Startdatum:                  formatDate(zaak.Startdatum),
		Einddatum:                   formatOptionalDate(zaak.Einddatum),
		EinddatumGepland:            formatOptionalDate(zaak.EinddatumGepland),
		Archiefactiedatum:           formatOptionalDate(zaak.Archiefactiedatum),
		Archiefstatus:               string(zaak.Archiefstatus),
		Hoofdzaak:                   formatOptionalID(zaak.HoofdzaakID),
		RelevanteAndereZaken:        formatIDs(zaak.RelevanteAndereZaken),
		Betalingsindicatie:          string(zaak.Betalingsindicatie),
		LaatsteBetaaldatum:          formatOptionalDate(zaak.LaatsteBetaaldatum),
		ProductenOfDiensten:         zaak.ProductenOfDiensten,
	}
	if zaak.Archiefnominatie != nil {
		s := string(*zaak.Archiefnominatie)
		resp.Archiefnominatie = &s
	}
	return resp
}

func FromZaken(zaken []*zaken.Zaak) []*ZaakResponse {
	out := make([]*ZaakResponse, 0, len(zaken))
	for _, zaak := range zaken {
		out = append(out, FromZaak(zaak))
	}
	return out
}

type StatusResponse struct {
	ID                string `json:"id"`
	Zaak              string `json:"zaak"`
	Statustype        string `json:"statustype"`
	DatumStatusGezet  string `json:"datumStatusGezet"`
	Statustoelichting string `json:"statustoelichting"`
}

func FromStatus(status *zaken.Status) *StatusResponse {
	return &StatusResponse{
		ID:                status.ID.String(),
		Zaak:              status.ZaakID.String(),
		Statustype:        status.StatustypeID.String(),
		DatumStatusGezet:  status.DatumStatusGezet.UTC().Format(time.RFC3339),
		Statustoelichting: status.Statustoelichting,
	}
}

func FromStatussen(statussen []*zaken.Status) []*StatusResponse {
	out := make([]*StatusResponse, 0, len(statussen))
	for _, status := range statussen {
		out = append(out, FromStatus(status))
	}
	return out
}

type ResultaatResponse struct {
	ID            string `json:"id"`
	Zaak          string `json:"zaak"`
	Resultaattype string `json:"resultaattype"`
	Toelichting   string `json:"toelichting"`
}

func FromResultaat(resultaat *zaken.Resultaat) *ResultaatResponse {
	return &ResultaatResponse{
		ID:            resultaat.ID.String(),
		Zaak:          resultaat.ZaakID.String(),
		Resultaattype: resultaat.ResultaattypeID.String(),
		Toelichting:   resultaat.Toelichting,
	}
}

type RolResponse struct {
	ID                   string `json:"id"`
	Zaak                 string `json:"zaak"`
	Roltype              string `json:"roltype"`
	Betrokkene           string `json:"betrokkene"`
	OmschrijvingGeneriek string `json:"omschrijvingGeneriek"`
	IndicatieMachtiging  string `json:"indicatieMachtiging"`
	Roltoelichting       string `json:"roltoelichting"`
}

func FromRol(rol *zaken.Rol) *RolResponse {
	return &RolResponse{
		ID:                   rol.ID.String(),
		Zaak:                 rol.ZaakID.String(),
		Roltype:              rol.RoltypeID.String(),
		Betrokkene:           rol.Betrokkene,
		OmschrijvingGeneriek: string(rol.OmschrijvingGeneriek),
		IndicatieMachtiging:  string(rol.IndicatieMachtiging),
		Roltoelichting:       rol.Roltoelichting,
	}
}

func FromRollen(rollen []*zaken.Rol) []*RolResponse {
	out := make([]*RolResponse, 0, len(rollen))
	for _, rol := range rollen {
		out = append(out, FromRol(rol))
	}
	return out
}

type ZaakEigenschapResponse struct {
	ID         string `json:"id"`
	Zaak       string `json:"zaak"`
	Eigenschap string `json:"eigenschap"`
	Naam       string `json:"naam"`
	Waarde     string `json:"waarde"`
}

func FromZaakEigenschap(eigenschap *zaken.ZaakEigenschap) *ZaakEigenschapResponse {
	return &ZaakEigenschapResponse{
		ID:         eigenschap.ID.String(),
		Zaak:       eigenschap.ZaakID.String(),
		Eigenschap: eigenschap.EigenschapID.String(),
		Naam:       eigenschap.Naam,
		Waarde:     eigenschap.Waarde,
	}
}

func FromZaakEigenschappen(eigenschappen []*zaken.ZaakEigenschap) []*ZaakEigenschapResponse {
	out := make([]*ZaakEigenschapResponse, 0, len(eigenschappen))
	for _, eigenschap := range eigenschappen {
		out = append(out, FromZaakEigenschap(eigenschap))
	}
	return out
}

type ZaakObjectResponse struct {
	ID                  string              `json:"id"`
	Zaak                string              `json:"zaak"`
	Object              string              `json:"object"`
	ObjectType          string              `json:"objectType"`
	RelatieOmschrijving string              `json:"relatieomschrijving"`
	ObjectIdentificatie zaken.ObjectIdentificatie `json:"objectIdentificatie,omitempty"`
}

func FromZaakObject(zaakobject *zaken.ZaakObject) *ZaakObjectResponse {
	return &ZaakObjectResponse{
		ID:                  zaakobject.ID.String(),
		Zaak:                zaakobject.ZaakID.String(),
		Object:              zaakobject.Object,
		ObjectType:          string(zaakobject.ObjectType),
		RelatieOmschrijving: zaakobject.RelatieOmschrijving,
		ObjectIdentificatie: zaakobject.ObjectIdentificatie,
	}
}

func FromZaakObjecten(zaakobjecten []*zaken.ZaakObject) []*ZaakObjectResponse {
	out := make([]*ZaakObjectResponse, 0, len(zaakobjecten))
	for _, zaakobject := range zaakobjecten {
		out = append(out, FromZaakObject(zaakobject))
	}
	return out
}

type BesluitResponse struct {
	ID            string  `json:"id"`
	Zaak          string  `json:"zaak"`
	Identificatie string  `json:"identificatie"`
	Ingangsdatum  string  `json:"ingangsdatum"`
	Vervaldatum   *string `json:"vervaldatum"`
}

func FromBesluit(besluit *zaken.Besluit) *BesluitResponse {
	return &BesluitResponse{
		ID:            besluit.ID.String(),
		Zaak:          besluit.ZaakID.String(),
		Identificatie: besluit.Identificatie,
		Ingangsdatum:  formatDate(besluit.Ingangsdatum),
		Vervaldatum:   formatOptionalDate(besluit.Vervaldatum),
	}
}

func FromBesluiten(besluiten []*zaken.Besluit) []*BesluitResponse {
	out := make([]*BesluitResponse, 0, len(besluiten))
	for _, besluit := range besluiten {
		out = append(out, FromBesluit(besluit))
	}
	return out
}

type ZaakInformatieObjectResponse struct {
	ID               string `json:"id"`
	Zaak             string `json:"zaak"`
	InformatieObject string `json:"informatieobject"`
	Titel            string `json:"titel"`
	Beschrijving     string `json:"beschrijving"`
}

func FromZaakInformatieObject(zio *zaken.ZaakInformatieObject) *ZaakInformatieObjectResponse {
	return &ZaakInformatieObjectResponse{
		ID:               zio.ID.String(),
		Zaak:             zio.ZaakID.String(),
		InformatieObject: zio.InformatieObject,
		Titel:            zio.Titel,
		Beschrijving:     zio.Beschrijving,
	}
}

func FromZaakInformatieObjecten(zios []*zaken.ZaakInformatieObject) []*ZaakInformatieObjectResponse {
	out := make([]*ZaakInformatieObjectResponse, 0, len(zios))
	for _, zio := range zios {
		out = append(out, FromZaakInformatieObject(zio))
	}
	return out
}

type ZaakIdentificatieResponse struct {
	ID              string `json:"id"`
	Bronorganisatie string `json:"bronorganisatie"`
	Jaar            int    `json:"jaar"`
	Identificatie   string `json:"identificatie"`
}

func FromZaakIdentificatie(reservation *zaken.ZaakIdentificatie) *ZaakIdentificatieResponse {
	return &ZaakIdentificatieResponse{
		ID:              reservation.ID.String(),
		Bronorganisatie: reservation.Bronorganisatie,
		Jaar:            reservation.Jaar,
		Identificatie:   reservation.Identificatie,
	}
}
