package catalogi

import (
	"fmt"

	"zaakregister/pkg/domainerrors"
)

// PublishRequirements are the minimum counts of subordinate definitions a
// zaaktype needs before it may leave concept status.
type PublishRequirements struct {
	MinStatustypen    int
	MinResultaattypen int
	MinRoltypen       int
}

// DefaultPublishRequirements matches the national standard: a published
// zaaktype has a begin- and an eindstatus, an outcome and a party role.
func DefaultPublishRequirements() PublishRequirements {
	return PublishRequirements{MinStatustypen: 2, MinResultaattypen: 1, MinRoltypen: 1}
}

// PublishSnapshot carries everything the publish validation needs, gathered
// by the service so the validation itself stays pure.
type PublishSnapshot struct {
	Statustypen    int
	Resultaattypen int
	Roltypen       int

	// Resultaattypen that miss a selectielijstklasse block publication.
	ResultaattypenZonderSelectielijstklasse int

	// Overlap with another published version of the same
	// (catalogus, omschrijving).
	OverlapsPublishedVersion bool
}

// ValidatePublish checks all preconditions for the concept -> published
// transition and reports every failing one at once.
func ValidatePublish(snapshot PublishSnapshot, req PublishRequirements) error {
	var errs domainerrors.List

	if snapshot.Statustypen < req.MinStatustypen {
		errs = append(errs, domainerrors.NewField("statustypen", domainerrors.CodeConceptRelation,
			fmt.Sprintf("publishing a zaaktype requires at least %d statustypen", req.MinStatustypen)))
	}
	if snapshot.Resultaattypen < req.MinResultaattypen {
		errs = append(errs, domainerrors.NewField("resultaattypen", domainerrors.CodeConceptRelation,
			fmt.Sprintf("publishing a zaaktype requires at least %d resultaattype", req.MinResultaattypen)))
	} else if snapshot.ResultaattypenZonderSelectielijstklasse > 0 {
		errs = append(errs, domainerrors.NewField("resultaattypen", domainerrors.CodeConceptRelation,
			"this zaaktype has resultaattypen without a selectielijstklasse"))
	}
	if snapshot.Roltypen < req.MinRoltypen {
		errs = append(errs, domainerrors.NewField("roltypen", domainerrors.CodeConceptRelation,
			fmt.Sprintf("publishing a zaaktype requires at least %d roltype", req.MinRoltypen)))
	}
	if snapshot.OverlapsPublishedVersion {
		errs = append(errs, domainerrors.NewField("beginGeldigheid", domainerrors.CodeOverlap,
			"the validity interval overlaps with a published version of this zaaktype"))
	}

	return errs.ErrOrNil()
}
