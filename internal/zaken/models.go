// Package zaken models cases and their lifecycle: statuses, outcomes,
// parties, linked objects and the archival attributes computed at closure.
package zaken

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"zaakregister/internal/catalogi"
	"zaakregister/pkg/domainerrors"
)

// Archiefstatus tracks where a closed zaak is in the archival process.
type Archiefstatus string

const (
	ArchiefstatusNogTeArchiveren              Archiefstatus = "nog_te_archiveren"
	ArchiefstatusGearchiveerd                 Archiefstatus = "gearchiveerd"
	ArchiefstatusGearchiveerdTermijnOnbekend  Archiefstatus = "gearchiveerd_procestermijn_onbekend"
	ArchiefstatusOvergedragen                 Archiefstatus = "overgedragen"
)

var validArchiefstatussen = map[Archiefstatus]bool{
	ArchiefstatusNogTeArchiveren:             true,
	ArchiefstatusGearchiveerd:                true,
	ArchiefstatusGearchiveerdTermijnOnbekend: true,
	ArchiefstatusOvergedragen:                true,
}

// ParseArchiefstatus validates external input against the closed set.
func ParseArchiefstatus(s string) (Archiefstatus, error) {
	status := Archiefstatus(s)
	if !validArchiefstatussen[status] {
		return "", domainerrors.NewField("archiefstatus", domainerrors.CodeInvalid, "unknown archiefstatus")
	}
	return status, nil
}

// Betalingsindicatie tracks payment on a zaak.
type Betalingsindicatie string

const (
	BetalingsindicatieNvt         Betalingsindicatie = "nvt"
	BetalingsindicatieNogNiet     Betalingsindicatie = "nog_niet"
	BetalingsindicatieGedeeltelijk Betalingsindicatie = "gedeeltelijk"
	BetalingsindicatieGeheel      Betalingsindicatie = "geheel"
)

var bronorganisatiePattern = regexp.MustCompile(`^[0-9]{9}$`)

// Zaak is a single case.
//
// Einddatum is derived exclusively by the status engine; the archival fields
// are derived by the brondatum resolver on closure. The *Berekend flags
// record whether the resolver set them, so a reopen knows what to clear.
type Zaak struct {
	ID              uuid.UUID
	Identificatie   string
	Bronorganisatie string
	ZaaktypeID      uuid.UUID

	Omschrijving                string
	Toelichting                 string
	Vertrouwelijkheidaanduiding catalogi.VertrouwelijkheidAanduiding

	Registratiedatum time.Time
	Startdatum       time.Time
	Einddatum        *time.Time
	EinddatumGepland *time.Time

	Archiefnominatie  *catalogi.Archiefnominatie
	Archiefactiedatum *time.Time
	Archiefstatus     Archiefstatus

	// Set when the closure computation produced the corresponding field.
	ArchiefnominatieBerekend  bool
	ArchiefactiedatumBerekend bool

	HoofdzaakID          *uuid.UUID
	RelevanteAndereZaken []uuid.UUID

	Betalingsindicatie Betalingsindicatie
	LaatsteBetaaldatum *time.Time

	ProductenOfDiensten []string
}

// Validate enforces the attribute-level invariants.
func (z *Zaak) Validate() error {
	var errs domainerrors.List
	if !bronorganisatiePattern.MatchString(z.Bronorganisatie) {
		errs = append(errs, domainerrors.NewField("bronorganisatie", domainerrors.CodeInvalid, "bronorganisatie must be exactly 9 digits"))
	}
	if z.Startdatum.IsZero() {
		errs = append(errs, domainerrors.NewField("startdatum", domainerrors.CodeRequired, "startdatum is required"))
	}
	if z.Betalingsindicatie == BetalingsindicatieNvt && z.LaatsteBetaaldatum != nil {
		errs = append(errs, domainerrors.NewField("laatsteBetaaldatum", domainerrors.CodeMustBeEmpty,
			"laatsteBetaaldatum must be empty when betalingsindicatie is nvt"))
	}
	return errs.ErrOrNil()
}

// Open reports whether the zaak has not been closed.
func (z *Zaak) Open() bool {
	return z.Einddatum == nil
}

// Status is a timestamped assignment of a statustype to a zaak.
type Status struct {
	ID                uuid.UUID
	ZaakID            uuid.UUID
	StatustypeID      uuid.UUID
	DatumStatusGezet  time.Time
	Statustoelichting string
}

// Resultaat binds the outcome of a zaak to a resultaattype. At most one per
// zaak.
type Resultaat struct {
	ID              uuid.UUID
	ZaakID          uuid.UUID
	ResultaattypeID uuid.UUID
	Toelichting     string
}

// IndicatieMachtiging qualifies on whose behalf a party acts.
type IndicatieMachtiging string

const (
	MachtigingEigen           IndicatieMachtiging = "eigen"
	MachtigingGemachtigde     IndicatieMachtiging = "gemachtigde"
	MachtigingMachtiginggever IndicatieMachtiging = "machtiginggever"
)

// Rol is a party on a zaak.
//
// Invariant: per zaak at most one rol carries omschrijvingGeneriek initiator
// and at most one zaakcoordinator.
type Rol struct {
	ID                   uuid.UUID
	ZaakID               uuid.UUID
	RoltypeID            uuid.UUID
	Betrokkene           string
	OmschrijvingGeneriek catalogi.RolOmschrijvingGeneriek
	IndicatieMachtiging  IndicatieMachtiging
	Roltoelichting       string
}

// ZaakEigenschap is the value of an eigenschap on a zaak.
type ZaakEigenschap struct {
	ID           uuid.UUID
	ZaakID       uuid.UUID
	EigenschapID uuid.UUID
	Naam         string
	Waarde       string
}

// Besluit is a decision linked to a zaak.
type Besluit struct {
	ID            uuid.UUID
	ZaakID        uuid.UUID
	Identificatie string
	Ingangsdatum  time.Time
	Vervaldatum   *time.Time
}

// ZaakInformatieObject links an external document to a zaak.
type ZaakInformatieObject struct {
	ID               uuid.UUID
	ZaakID           uuid.UUID
	InformatieObject string // URI of the document in the documenten registry
	Titel            string
	Beschrijving     string
}

// ObjectType tags the identifying payload of a zaakobject.
type ObjectType string

const (
	ObjectTypeAdres             ObjectType = "adres"
	ObjectTypePand              ObjectType = "pand"
	ObjectTypeNatuurlijkPersoon ObjectType = "natuurlijk_persoon"
	ObjectTypeOverige           ObjectType = "overige"
)

// ObjectIdentificatie is one of the per-type identifying payloads embedded in
// a zaakobject.
type ObjectIdentificatie interface {
	objectType() ObjectType
}

// AdresIdentificatie identifies an address object.
type AdresIdentificatie struct {
	Identificatie    string `json:"identificatie"`
	WplWoonplaatsNaam string `json:"wplWoonplaatsNaam"`
	GorOpenbareRuimteNaam string `json:"gorOpenbareRuimteNaam"`
	Huisnummer       int    `json:"huisnummer"`
	Postcode         string `json:"postcode"`
}

func (AdresIdentificatie) objectType() ObjectType { return ObjectTypeAdres }

// PandIdentificatie identifies a building object.
type PandIdentificatie struct {
	Identificatie string `json:"identificatie"`
}

func (PandIdentificatie) objectType() ObjectType { return ObjectTypePand }

// NatuurlijkPersoonIdentificatie identifies a natural person.
type NatuurlijkPersoonIdentificatie struct {
	InpBsn           string `json:"inpBsn"`
	Geslachtsnaam    string `json:"geslachtsnaam"`
	Voornamen        string `json:"voornamen"`
	Geboortedatum    string `json:"geboortedatum"`
}

func (NatuurlijkPersoonIdentificatie) objectType() ObjectType { return ObjectTypeNatuurlijkPersoon }

// OverigeIdentificatie carries a free-form payload for object types without a
// dedicated record.
type OverigeIdentificatie struct {
	OverigeData json.RawMessage `json:"overigeData"`
}

func (OverigeIdentificatie) objectType() ObjectType { return ObjectTypeOverige }

// DecodeObjectIdentificatie decodes the payload variant for the given tag.
func DecodeObjectIdentificatie(objectType ObjectType, raw []byte) (ObjectIdentificatie, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var (
		payload ObjectIdentificatie
		err     error
	)
	switch objectType {
	case ObjectTypeAdres:
		var v AdresIdentificatie
		err = json.Unmarshal(raw, &v)
		payload = v
	case ObjectTypePand:
		var v PandIdentificatie
		err = json.Unmarshal(raw, &v)
		payload = v
	case ObjectTypeNatuurlijkPersoon:
		var v NatuurlijkPersoonIdentificatie
		err = json.Unmarshal(raw, &v)
		payload = v
	case ObjectTypeOverige:
		var v OverigeIdentificatie
		err = json.Unmarshal(raw, &v)
		payload = v
	default:
		return nil, domainerrors.NewField("objectType", domainerrors.CodeInvalid, "unknown objectType")
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", objectType, err)
	}
	return payload, nil
}

// EncodeObjectIdentificatie serializes a payload variant.
func EncodeObjectIdentificatie(payload ObjectIdentificatie) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", payload.objectType(), err)
	}
	return raw, nil
}

// ZaakObject links an external object to a zaak, optionally embedding an
// identifying payload.
type ZaakObject struct {
	ID                  uuid.UUID
	ZaakID              uuid.UUID
	Object              string // URI of the external object, may be empty when embedded
	ObjectType          ObjectType
	RelatieOmschrijving string
	ObjectIdentificatie ObjectIdentificatie
}

// ZaakIdentificatie is a pre-reserved case number for (bronorganisatie, year).
// A reservation is consumed exactly once by a subsequent create.
type ZaakIdentificatie struct {
	ID              uuid.UUID
	Bronorganisatie string
	Jaar            int
	Volgnummer      int64
	Identificatie   string
	Consumed        bool
}

// FormatIdentificatie renders the generated case number.
func FormatIdentificatie(jaar int, volgnummer int64) string {
	return fmt.Sprintf("ZAAK-%d-%010d", jaar, volgnummer)
}
