package catalogi

import (
	"fmt"

	"zaakregister/internal/selectielijst"
	"zaakregister/pkg/domainerrors"
)

// Per afleidingswijze: which archiefprocedure fields must be set (true) or
// empty (false). Fields absent from the map are unchecked for that mode.
var afleidingswijzeShapes = map[Afleidingswijze]map[string]bool{
	AfleidingswijzeAfgehandeld: {
		"procestermijn":   false,
		"datumkenmerk":    false,
		"einddatumBekend": false,
		"objecttype":      false,
		"registratie":     false,
	},
	AfleidingswijzeAnderDatumkenmerk: {
		"procestermijn": false,
		"datumkenmerk":  true,
		"objecttype":    true,
		"registratie":   true,
	},
	AfleidingswijzeEigenschap: {
		"procestermijn": false,
		"datumkenmerk":  true,
		"objecttype":    false,
		"registratie":   false,
	},
	AfleidingswijzeGerelateerdeZaak: {
		"procestermijn": false,
		"datumkenmerk":  false,
		"objecttype":    false,
		"registratie":   false,
	},
	AfleidingswijzeHoofdzaak: {
		"procestermijn": false,
		"datumkenmerk":  false,
		"objecttype":    false,
		"registratie":   false,
	},
	AfleidingswijzeIngangsdatumBesluit: {
		"procestermijn": false,
		"datumkenmerk":  false,
		"objecttype":    false,
		"registratie":   false,
	},
	AfleidingswijzeTermijn: {
		"procestermijn":   true,
		"datumkenmerk":    false,
		"einddatumBekend": false,
		"objecttype":      false,
		"registratie":     false,
	},
	AfleidingswijzeVervaldatumBesluit: {
		"procestermijn": false,
		"datumkenmerk":  false,
		"objecttype":    false,
		"registratie":   false,
	},
	AfleidingswijzeZaakobject: {
		"procestermijn": false,
		"datumkenmerk":  true,
		"objecttype":    true,
		"registratie":   false,
	},
}

// shapeFieldOrder keeps the reported errors in a stable order.
var shapeFieldOrder = []string{"procestermijn", "datumkenmerk", "einddatumBekend", "objecttype", "registratie"}

func (p BrondatumArchiefprocedure) fieldSet(name string) bool {
	switch name {
	case "procestermijn":
		return p.Procestermijn != nil && !p.Procestermijn.IsZero()
	case "datumkenmerk":
		return p.Datumkenmerk != ""
	case "einddatumBekend":
		return p.EinddatumBekend
	case "objecttype":
		return p.Objecttype != ""
	case "registratie":
		return p.Registratie != ""
	}
	return false
}

// ValidateArchiefprocedure checks the record against the shape matrix for its
// afleidingswijze and reports every violated field at once.
func ValidateArchiefprocedure(p BrondatumArchiefprocedure) error {
	rules, ok := afleidingswijzeShapes[p.Afleidingswijze]
	if !ok {
		return domainerrors.NewField("brondatumArchiefprocedure.afleidingswijze", domainerrors.CodeInvalid, "unknown afleidingswijze")
	}

	var errs domainerrors.List
	for _, name := range shapeFieldOrder {
		want, checked := rules[name]
		if !checked {
			continue
		}
		got := p.fieldSet(name)
		if got == want {
			continue
		}
		field := "brondatumArchiefprocedure." + name
		if want {
			errs = append(errs, domainerrors.NewField(field, domainerrors.CodeRequired,
				fmt.Sprintf("this field is required for afleidingswijze %q", p.Afleidingswijze)))
		} else {
			errs = append(errs, domainerrors.NewField(field, domainerrors.CodeMustBeEmpty,
				fmt.Sprintf("this field must be empty for afleidingswijze %q", p.Afleidingswijze)))
		}
	}
	return errs.ErrOrNil()
}

// ValidateAfleidingswijzeForProcestermijn enforces the exclusive
// correspondence between the procestermijn of the selectielijstklasse and the
// afleidingswijze: nihil <=> afgehandeld and
// ingeschatte_bestaansduur_procesobject <=> termijn.
func ValidateAfleidingswijzeForProcestermijn(procestermijn selectielijst.Procestermijn, w Afleidingswijze) error {
	if procestermijn == "" {
		return nil
	}

	err := func(reason string) error {
		return domainerrors.NewField("brondatumArchiefprocedure.afleidingswijze",
			domainerrors.CodeInvalidAfleidingswijze, reason)
	}

	switch {
	case procestermijn == selectielijst.ProcestermijnNihil && w != AfleidingswijzeAfgehandeld:
		return err(fmt.Sprintf("afleidingswijze must be %q when selectielijstklasse.procestermijn is %q", AfleidingswijzeAfgehandeld, procestermijn))
	case procestermijn != selectielijst.ProcestermijnNihil && w == AfleidingswijzeAfgehandeld:
		return err(fmt.Sprintf("afleidingswijze cannot be %q when selectielijstklasse.procestermijn is %q", w, procestermijn))
	case procestermijn == selectielijst.ProcestermijnIngeschatteBestaansduur && w != AfleidingswijzeTermijn:
		return err(fmt.Sprintf("afleidingswijze must be %q when selectielijstklasse.procestermijn is %q", AfleidingswijzeTermijn, procestermijn))
	case procestermijn != selectielijst.ProcestermijnIngeschatteBestaansduur && w == AfleidingswijzeTermijn:
		return err(fmt.Sprintf("afleidingswijze cannot be %q when selectielijstklasse.procestermijn is %q", w, procestermijn))
	}
	return nil
}
