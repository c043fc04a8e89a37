package zaken

import (
	"time"
)

// The status engine is a pure transition function: given the zaak and the
// incoming status it decides what changes, and the service applies those
// changes atomically. It never touches persistence or external services.

// TransitionKind classifies what a status write does to the zaak.
type TransitionKind int

const (
	// TransitionAppend adds a status without changing open/closed state.
	TransitionAppend TransitionKind = iota
	// TransitionClose sets the einddatum and triggers archival computation.
	TransitionClose
	// TransitionReopen clears the einddatum of a closed zaak.
	TransitionReopen
)

// Transition is the outcome of applying a status to a zaak.
type Transition struct {
	Kind TransitionKind

	// Einddatum is set for TransitionClose: the date of the end status in
	// the case's local time.
	Einddatum time.Time

	// Cleared archival fields for TransitionReopen. Only fields the
	// preceding closure computed are reset.
	ClearArchiefnominatie  bool
	ClearArchiefactiedatum bool
}

// ApplyStatus decides the transition for adding a status with the given
// statustype volgnummer. eindVolgnummer is the highest volgnummer among the
// zaaktype's statustypen; the statustype carrying it is the end status.
func ApplyStatus(zaak *Zaak, volgnummer, eindVolgnummer int, datumStatusGezet time.Time) Transition {
	isEindstatus := volgnummer == eindVolgnummer

	switch {
	case zaak.Open() && isEindstatus:
		return Transition{
			Kind:      TransitionClose,
			Einddatum: truncateToDate(datumStatusGezet),
		}
	case !zaak.Open() && !isEindstatus:
		return Transition{
			Kind:                   TransitionReopen,
			ClearArchiefnominatie:  zaak.ArchiefnominatieBerekend,
			ClearArchiefactiedatum: zaak.ArchiefactiedatumBerekend,
		}
	default:
		return Transition{Kind: TransitionAppend}
	}
}

// Apply mutates the zaak per the transition. Archival attributes for a close
// are filled in separately by the brondatum resolver.
func (t Transition) Apply(zaak *Zaak) {
	switch t.Kind {
	case TransitionClose:
		einddatum := t.Einddatum
		zaak.Einddatum = &einddatum
	case TransitionReopen:
		zaak.Einddatum = nil
		if t.ClearArchiefnominatie {
			zaak.Archiefnominatie = nil
			zaak.ArchiefnominatieBerekend = false
		}
		if t.ClearArchiefactiedatum {
			zaak.Archiefactiedatum = nil
			zaak.ArchiefactiedatumBerekend = false
		}
	}
}

func truncateToDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
