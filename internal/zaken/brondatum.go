package zaken

import (
	"context"
	"time"

	"github.com/google/uuid"

	"zaakregister/internal/catalogi"
	"zaakregister/internal/objecten"
	"zaakregister/pkg/domainerrors"
)

// ResolverStore is the subset of case persistence the brondatum resolver
// reads from.
type ResolverStore interface {
	GetZaak(ctx context.Context, id uuid.UUID) (*Zaak, error)
	ListBesluiten(ctx context.Context, zaakID uuid.UUID) ([]*Besluit, error)
	ListZaakEigenschappen(ctx context.Context, zaakID uuid.UUID) ([]*ZaakEigenschap, error)
	ListZaakObjecten(ctx context.Context, zaakID uuid.UUID) ([]*ZaakObject, error)
}

// Resolution carries the archival attributes derived at closure.
type Resolution struct {
	Archiefnominatie  catalogi.Archiefnominatie
	Archiefactiedatum *time.Time
}

// Resolver derives (archiefnominatie, archiefactiedatum) for a closing zaak
// from the declared brondatum procedure of its resultaattype. Resolution is
// idempotent: the same inputs always produce the same pair.
type Resolver struct {
	store   ResolverStore
	objects objecten.Client
}

// NewResolver constructs a brondatum resolver.
func NewResolver(store ResolverStore, objects objecten.Client) *Resolver {
	return &Resolver{store: store, objects: objects}
}

// Resolve computes the archival attributes for zaak closing at statusDatum
// with the given resultaattype. A nil brondatum leaves archiefactiedatum
// unset without failing, except for the modes that require a source value.
func (r *Resolver) Resolve(ctx context.Context, zaak *Zaak, resultaattype *catalogi.Resultaattype, statusDatum time.Time) (Resolution, error) {
	resolution := Resolution{Archiefnominatie: resultaattype.Archiefnominatie}

	brondatum, err := r.brondatum(ctx, zaak, resultaattype.Brondatum, statusDatum)
	if err != nil {
		return Resolution{}, err
	}
	if brondatum == nil {
		return resolution, nil
	}

	termijn := resultaattype.Archiefactietermijn
	if resultaattype.Brondatum.Afleidingswijze == catalogi.AfleidingswijzeTermijn {
		termijn = resultaattype.Brondatum.Procestermijn
	}

	actiedatum := *brondatum
	if termijn != nil {
		actiedatum = termijn.AddTo(actiedatum)
	}
	resolution.Archiefactiedatum = &actiedatum
	return resolution, nil
}

func (r *Resolver) brondatum(ctx context.Context, zaak *Zaak, proc catalogi.BrondatumArchiefprocedure, statusDatum time.Time) (*time.Time, error) {
	switch proc.Afleidingswijze {
	case catalogi.AfleidingswijzeAfgehandeld, catalogi.AfleidingswijzeTermijn:
		d := truncateToDate(statusDatum)
		return &d, nil

	case catalogi.AfleidingswijzeIngangsdatumBesluit:
		return r.earliestBesluitDatum(ctx, zaak.ID, func(besluit *Besluit) *time.Time {
			d := besluit.Ingangsdatum
			return &d
		})

	case catalogi.AfleidingswijzeVervaldatumBesluit:
		return r.earliestBesluitDatum(ctx, zaak.ID, func(besluit *Besluit) *time.Time {
			return besluit.Vervaldatum
		})

	case catalogi.AfleidingswijzeHoofdzaak:
		if zaak.HoofdzaakID == nil {
			return nil, nil
		}
		hoofdzaak, err := r.store.GetZaak(ctx, *zaak.HoofdzaakID)
		if err != nil {
			return nil, err
		}
		return hoofdzaak.Einddatum, nil

	case catalogi.AfleidingswijzeGerelateerdeZaak:
		var earliest *time.Time
		for _, relatedID := range zaak.RelevanteAndereZaken {
			related, err := r.store.GetZaak(ctx, relatedID)
			if err != nil {
				return nil, err
			}
			earliest = minDate(earliest, related.Einddatum)
		}
		return earliest, nil

	case catalogi.AfleidingswijzeEigenschap:
		return r.eigenschapDatum(ctx, zaak.ID, proc.Datumkenmerk)

	case catalogi.AfleidingswijzeZaakobject:
		return r.zaakobjectDatum(ctx, zaak.ID, proc)

	case catalogi.AfleidingswijzeAnderDatumkenmerk:
		// Resolved out of band; the caller sets archiefactiedatum later.
		return nil, nil

	default:
		return nil, domainerrors.NewField("brondatumArchiefprocedure.afleidingswijze",
			domainerrors.CodeInvalid, "unknown afleidingswijze")
	}
}

func (r *Resolver) earliestBesluitDatum(ctx context.Context, zaakID uuid.UUID, pick func(*Besluit) *time.Time) (*time.Time, error) {
	besluiten, err := r.store.ListBesluiten(ctx, zaakID)
	if err != nil {
		return nil, err
	}
	var earliest *time.Time
	for _, besluit := range besluiten {
		earliest = minDate(earliest, pick(besluit))
	}
	return earliest, nil
}

func (r *Resolver) eigenschapDatum(ctx context.Context, zaakID uuid.UUID, datumkenmerk string) (*time.Time, error) {
	eigenschappen, err := r.store.ListZaakEigenschappen(ctx, zaakID)
	if err != nil {
		return nil, err
	}
	for _, eigenschap := range eigenschappen {
		if eigenschap.Naam != datumkenmerk {
			continue
		}
		d, err := parseEigenschapDatum(eigenschap.Waarde)
		if err != nil {
			return nil, domainerrors.NewField("archiefactiedatum", domainerrors.CodeZonderArchiefactiedatum,
				"the eigenschap "+datumkenmerk+" does not hold a parseable date")
		}
		return &d, nil
	}
	return nil, domainerrors.NewField("archiefactiedatum", domainerrors.CodeZonderArchiefactiedatum,
		"no eigenschap "+datumkenmerk+" is set on the zaak")
}

func (r *Resolver) zaakobjectDatum(ctx context.Context, zaakID uuid.UUID, proc catalogi.BrondatumArchiefprocedure) (*time.Time, error) {
	zaakobjecten, err := r.store.ListZaakObjecten(ctx, zaakID)
	if err != nil {
		return nil, err
	}

	var earliest *time.Time
	matched := false
	for _, zaakobject := range zaakobjecten {
		if string(zaakobject.ObjectType) != proc.Objecttype {
			continue
		}
		matched = true
		doc, err := r.objects.Fetch(ctx, zaakobject.Object)
		if err != nil {
			return nil, err
		}
		raw, ok := doc[proc.Datumkenmerk].(string)
		if !ok {
			return nil, domainerrors.NewField("archiefactiedatum", domainerrors.CodeZonderArchiefactiedatum,
				"the object lacks the date field "+proc.Datumkenmerk)
		}
		d, err := parseEigenschapDatum(raw)
		if err != nil {
			return nil, domainerrors.NewField("archiefactiedatum", domainerrors.CodeZonderArchiefactiedatum,
				"the object field "+proc.Datumkenmerk+" does not hold a parseable date")
		}
		earliest = minDate(earliest, &d)
	}
	if !matched {
		return nil, domainerrors.NewField("archiefactiedatum", domainerrors.CodeZonderArchiefactiedatum,
			"no zaakobject of type "+proc.Objecttype+" is linked to the zaak")
	}
	return earliest, nil
}

// parseEigenschapDatum accepts plain dates and RFC 3339 timestamps, reducing
// both to a date.
func parseEigenschapDatum(value string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", value); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return truncateToDate(t), nil
}

func minDate(current, candidate *time.Time) *time.Time {
	if candidate == nil {
		return current
	}
	if current == nil || candidate.Before(*current) {
		return candidate
	}
	return current
}
