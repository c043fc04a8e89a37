// Package catalogi models the type graph: catalogi, zaaktypen and their
// subordinate type definitions, together with the concept/published
// lifecycle rules that gate every mutation.
package catalogi

import (
	"time"

	"github.com/google/uuid"

	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/interval"
	"zaakregister/pkg/period"
)

// VertrouwelijkheidAanduiding classifies how confidential cases of a type are.
type VertrouwelijkheidAanduiding string

const (
	VertrouwelijkheidOpenbaar         VertrouwelijkheidAanduiding = "openbaar"
	VertrouwelijkheidBeperktOpenbaar  VertrouwelijkheidAanduiding = "beperkt_openbaar"
	VertrouwelijkheidIntern           VertrouwelijkheidAanduiding = "intern"
	VertrouwelijkheidZaakvertrouwelijk VertrouwelijkheidAanduiding = "zaakvertrouwelijk"
	VertrouwelijkheidVertrouwelijk    VertrouwelijkheidAanduiding = "vertrouwelijk"
	VertrouwelijkheidConfidentieel    VertrouwelijkheidAanduiding = "confidentieel"
	VertrouwelijkheidGeheim           VertrouwelijkheidAanduiding = "geheim"
	VertrouwelijkheidZeerGeheim       VertrouwelijkheidAanduiding = "zeer_geheim"
)

var validVertrouwelijkheden = map[VertrouwelijkheidAanduiding]bool{
	VertrouwelijkheidOpenbaar:          true,
	VertrouwelijkheidBeperktOpenbaar:   true,
	VertrouwelijkheidIntern:            true,
	VertrouwelijkheidZaakvertrouwelijk: true,
	VertrouwelijkheidVertrouwelijk:     true,
	VertrouwelijkheidConfidentieel:     true,
	VertrouwelijkheidGeheim:            true,
	VertrouwelijkheidZeerGeheim:        true,
}

// ParseVertrouwelijkheidAanduiding validates external input against the
// allowlist. Construct through this at trust boundaries.
func ParseVertrouwelijkheidAanduiding(s string) (VertrouwelijkheidAanduiding, error) {
	v := VertrouwelijkheidAanduiding(s)
	if !validVertrouwelijkheden[v] {
		return "", domainerrors.NewField("vertrouwelijkheidaanduiding", domainerrors.CodeInvalid, "unknown vertrouwelijkheidaanduiding")
	}
	return v, nil
}

// AardRelatie qualifies a relation between zaaktypen.
type AardRelatie string

const (
	AardRelatieVervolg  AardRelatie = "vervolg"
	AardRelatieBijdrage AardRelatie = "bijdrage"
	AardRelatieOnderwerp AardRelatie = "onderwerp"
)

// GerelateerdZaaktype relates a zaaktype to another with a qualified aard.
type GerelateerdZaaktype struct {
	ZaaktypeID  uuid.UUID
	AardRelatie AardRelatie
	Toelichting string
}

// Catalogus is the container for a coherent set of type definitions.
//
// Invariant: (Domein, RSIN) is unique across catalogi.
type Catalogus struct {
	ID     uuid.UUID
	Domein string // 5-character domain code
	RSIN   string // 9-digit organisation number
}

// Zaaktype defines a type of case.
//
// Lifecycle: created as concept; Publish flips Concept to false exactly once.
// A published zaaktype is immutable except for EindeGeldigheid, and deletable
// only with the forced-update scope (cascading) or while no zaken reference it.
type Zaaktype struct {
	ID          uuid.UUID
	CatalogusID uuid.UUID

	Identificatie               string
	Omschrijving                string
	Vertrouwelijkheidaanduiding VertrouwelijkheidAanduiding
	Doorlooptijd                period.Period
	Servicenorm                 *period.Period
	VerlengingMogelijk          bool
	Verlengingstermijn          *period.Period
	OpschortingMogelijk         bool

	Concept bool

	BeginGeldigheid time.Time
	EindeGeldigheid *time.Time
	Versiedatum     time.Time

	SelectielijstProcestype string // URI of the selectielijst procestype

	Deelzaaktypen         []uuid.UUID
	GerelateerdeZaaktypen []GerelateerdZaaktype
	Besluittypen          []uuid.UUID
}

// Geldigheid returns the validity interval of this version.
func (z *Zaaktype) Geldigheid() interval.Interval {
	return interval.Interval{Begin: z.BeginGeldigheid, End: z.EindeGeldigheid}
}

// Validate enforces the attribute-level invariants that do not need the graph.
func (z *Zaaktype) Validate() error {
	var errs domainerrors.List
	if z.Omschrijving == "" {
		errs = append(errs, domainerrors.NewField("omschrijving", domainerrors.CodeRequired, "omschrijving is required"))
	}
	if !validVertrouwelijkheden[z.Vertrouwelijkheidaanduiding] {
		errs = append(errs, domainerrors.NewField("vertrouwelijkheidaanduiding", domainerrors.CodeInvalid, "unknown vertrouwelijkheidaanduiding"))
	}
	if z.VerlengingMogelijk && z.Verlengingstermijn == nil {
		errs = append(errs, domainerrors.NewField("verlengingstermijn", domainerrors.CodeVerlengingMismatch, "verlengingstermijn must be set if verlengingMogelijk is true"))
	}
	if z.EindeGeldigheid != nil && z.EindeGeldigheid.Before(z.BeginGeldigheid) {
		errs = append(errs, domainerrors.NewField("eindeGeldigheid", domainerrors.CodeInvalid, "eindeGeldigheid precedes beginGeldigheid"))
	}
	return errs.ErrOrNil()
}

// Statustype is a milestone in the lifecycle of a zaaktype.
//
// The statustype with the highest volgnummer within its zaaktype is the
// eindstatus: assigning it to a zaak closes the zaak.
type Statustype struct {
	ID          uuid.UUID
	ZaaktypeID  uuid.UUID
	Omschrijving string
	Volgnummer  int
	Toelichting string
	Concept     bool
}

// Roltype names a party role within a zaaktype.
type Roltype struct {
	ID                   uuid.UUID
	ZaaktypeID           uuid.UUID
	Omschrijving         string
	OmschrijvingGeneriek RolOmschrijvingGeneriek
	Concept              bool
}

// RolOmschrijvingGeneriek is the standardised role classification.
type RolOmschrijvingGeneriek string

const (
	RolOmschrijvingAdviseur          RolOmschrijvingGeneriek = "adviseur"
	RolOmschrijvingBehandelaar       RolOmschrijvingGeneriek = "behandelaar"
	RolOmschrijvingBelanghebbende    RolOmschrijvingGeneriek = "belanghebbende"
	RolOmschrijvingBeslisser         RolOmschrijvingGeneriek = "beslisser"
	RolOmschrijvingInitiator         RolOmschrijvingGeneriek = "initiator"
	RolOmschrijvingKlantcontacter    RolOmschrijvingGeneriek = "klantcontacter"
	RolOmschrijvingZaakcoordinator   RolOmschrijvingGeneriek = "zaakcoordinator"
	RolOmschrijvingMedeInitiator     RolOmschrijvingGeneriek = "mede_initiator"
)

// Eigenschap is a typed attribute slot available on zaken of a zaaktype.
type Eigenschap struct {
	ID          uuid.UUID
	ZaaktypeID  uuid.UUID
	Naam        string
	Definitie   string
	Concept     bool
}

// ZaakObjectType declares a kind of object that may be related to zaken of a
// zaaktype.
type ZaakObjectType struct {
	ID              uuid.UUID
	ZaaktypeID      uuid.UUID
	AnderObjecttype bool
	Objecttype      string
	Concept         bool
}

// InformatieObjectType defines a type of document. It lives directly under a
// catalogus and carries its own concept flag; zaaktypen relate to it M2M.
type InformatieObjectType struct {
	ID              uuid.UUID
	CatalogusID     uuid.UUID
	Omschrijving    string
	Vertrouwelijkheidaanduiding VertrouwelijkheidAanduiding
	Concept         bool
	BeginGeldigheid time.Time
	EindeGeldigheid *time.Time
}

// Geldigheid returns the validity interval of this version.
func (t *InformatieObjectType) Geldigheid() interval.Interval {
	return interval.Interval{Begin: t.BeginGeldigheid, End: t.EindeGeldigheid}
}

// BesluitType defines a type of decision. Like InformatieObjectType it lives
// under a catalogus with its own concept flag.
type BesluitType struct {
	ID              uuid.UUID
	CatalogusID     uuid.UUID
	Omschrijving    string
	Concept         bool
	BeginGeldigheid time.Time
	EindeGeldigheid *time.Time

	Zaaktypen             []uuid.UUID
	Informatieobjecttypen []uuid.UUID
}

// Geldigheid returns the validity interval of this version.
func (t *BesluitType) Geldigheid() interval.Interval {
	return interval.Interval{Begin: t.BeginGeldigheid, End: t.EindeGeldigheid}
}

// ZaaktypeInformatieObjectType relates a zaaktype to an informatieobjecttype.
type ZaaktypeInformatieObjectType struct {
	ID                     uuid.UUID
	ZaaktypeID             uuid.UUID
	InformatieObjectTypeID uuid.UUID
	Volgnummer             int
	Richting               string
}

// Archiefnominatie is the retention classification of a resultaat.
type Archiefnominatie string

const (
	ArchiefnominatieBlijvendBewaren Archiefnominatie = "blijvend_bewaren"
	ArchiefnominatieVernietigen     Archiefnominatie = "vernietigen"
)

// Afleidingswijze selects how the brondatum is derived at case closure.
type Afleidingswijze string

const (
	AfleidingswijzeAfgehandeld        Afleidingswijze = "afgehandeld"
	AfleidingswijzeAnderDatumkenmerk  Afleidingswijze = "ander_datumkenmerk"
	AfleidingswijzeEigenschap         Afleidingswijze = "eigenschap"
	AfleidingswijzeGerelateerdeZaak   Afleidingswijze = "gerelateerde_zaak"
	AfleidingswijzeHoofdzaak          Afleidingswijze = "hoofdzaak"
	AfleidingswijzeIngangsdatumBesluit Afleidingswijze = "ingangsdatum_besluit"
	AfleidingswijzeTermijn            Afleidingswijze = "termijn"
	AfleidingswijzeVervaldatumBesluit Afleidingswijze = "vervaldatum_besluit"
	AfleidingswijzeZaakobject         Afleidingswijze = "zaakobject"
)

// ParseAfleidingswijze validates external input against the closed set.
func ParseAfleidingswijze(s string) (Afleidingswijze, error) {
	w := Afleidingswijze(s)
	if _, ok := afleidingswijzeShapes[w]; !ok {
		return "", domainerrors.NewField("brondatumArchiefprocedure.afleidingswijze", domainerrors.CodeInvalid, "unknown afleidingswijze")
	}
	return w, nil
}

// BrondatumArchiefprocedure declares, per resultaattype, how the brondatum is
// derived when a zaak with that resultaat is closed.
type BrondatumArchiefprocedure struct {
	Afleidingswijze Afleidingswijze
	Datumkenmerk    string
	EinddatumBekend bool
	Objecttype      string
	Registratie     string
	Procestermijn   *period.Period
}

// Resultaattype binds a possible outcome of a zaaktype to its archival
// parameters.
type Resultaattype struct {
	ID                  uuid.UUID
	ZaaktypeID          uuid.UUID
	Omschrijving        string
	Selectielijstklasse string // URI of the selectielijst resultaat
	Archiefnominatie    Archiefnominatie
	Archiefactietermijn *period.Period
	Brondatum           BrondatumArchiefprocedure
	Concept             bool
}
