package service

import (
	"context"

	"github.com/google/uuid"

	"zaakregister/internal/authz"
	"zaakregister/internal/catalogi"
	"zaakregister/pkg/domainerrors"
)

// Subordinate definitions (statustypen, resultaattypen, roltypen,
// eigenschappen, zaakobjecttypen) inherit their lifecycle from the owning
// zaaktype: writable while the zaaktype is concept, frozen after publish.

func (s *Service) gatedZaaktype(ctx context.Context, zaaktypeID uuid.UUID, gate func(parentConcept bool, scopes authz.Scopes) error) (*catalogi.Zaaktype, error) {
	zaaktype, err := s.store.GetZaaktype(ctx, zaaktypeID)
	if err != nil {
		return nil, err
	}
	if err := gate(zaaktype.Concept, authz.FromContext(ctx)); err != nil {
		return nil, err
	}
	return zaaktype, nil
}

// CreateStatustype adds a milestone to a zaaktype. Volgnummer is unique
// within the zaaktype.
func (s *Service) CreateStatustype(ctx context.Context, statustype *catalogi.Statustype) (*catalogi.Statustype, error) {
	if statustype.Omschrijving == "" {
		return nil, domainerrors.NewField("omschrijving", domainerrors.CodeRequired, "omschrijving is required")
	}
	if statustype.Volgnummer < 1 {
		return nil, domainerrors.NewField("volgnummer", domainerrors.CodeInvalid, "volgnummer must be positive")
	}

	statustype.ID = uuid.New()
	statustype.Concept = true
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.gatedZaaktype(ctx, statustype.ZaaktypeID, catalogi.GateCreateSubordinate); err != nil {
			return err
		}
		existing, err := s.store.ListStatustypen(ctx, statustype.ZaaktypeID)
		if err != nil {
			return err
		}
		for _, other := range existing {
			if other.Volgnummer == statustype.Volgnummer {
				return domainerrors.NewField("volgnummer", domainerrors.CodeUnique,
					"a statustype with this volgnummer already exists for this zaaktype")
			}
		}
		return s.store.CreateStatustype(ctx, statustype)
	})
	if err != nil {
		return nil, err
	}
	return statustype, nil
}

func (s *Service) GetStatustype(ctx context.Context, id uuid.UUID) (*catalogi.Statustype, error) {
	return s.store.GetStatustype(ctx, id)
}

func (s *Service) ListStatustypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.Statustype, error) {
	return s.store.ListStatustypen(ctx, zaaktypeID)
}

func (s *Service) DeleteStatustype(ctx context.Context, id uuid.UUID) error {
	return s.store.InTx(ctx, func(ctx context.Context) error {
		statustype, err := s.store.GetStatustype(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.gatedZaaktype(ctx, statustype.ZaaktypeID, catalogi.GateUpdateSubordinate); err != nil {
			return err
		}
		return s.store.DeleteStatustype(ctx, id)
	})
}

// CreateResultaattype adds an outcome to a zaaktype. The archiefprocedure
// shape and the coupling with the selectielijstklasse are both enforced here,
// so a stored resultaattype is always resolvable at case closure.
func (s *Service) CreateResultaattype(ctx context.Context, resultaattype *catalogi.Resultaattype) (*catalogi.Resultaattype, error) {
	if err := s.validateResultaattype(ctx, resultaattype); err != nil {
		return nil, err
	}

	resultaattype.ID = uuid.New()
	resultaattype.Concept = true
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.gatedZaaktype(ctx, resultaattype.ZaaktypeID, catalogi.GateCreateSubordinate); err != nil {
			return err
		}
		return s.store.CreateResultaattype(ctx, resultaattype)
	})
	if err != nil {
		return nil, err
	}
	return resultaattype, nil
}

// UpdateResultaattype revalidates the full archival configuration.
func (s *Service) UpdateResultaattype(ctx context.Context, resultaattype *catalogi.Resultaattype) (*catalogi.Resultaattype, error) {
	if err := s.validateResultaattype(ctx, resultaattype); err != nil {
		return nil, err
	}

	err := s.store.InTx(ctx, func(ctx context.Context) error {
		current, err := s.store.GetResultaattype(ctx, resultaattype.ID)
		if err != nil {
			return err
		}
		resultaattype.ZaaktypeID = current.ZaaktypeID
		resultaattype.Concept = current.Concept
		if _, err := s.gatedZaaktype(ctx, current.ZaaktypeID, catalogi.GateUpdateSubordinate); err != nil {
			return err
		}
		return s.store.UpdateResultaattype(ctx, resultaattype)
	})
	if err != nil {
		return nil, err
	}
	return resultaattype, nil
}

func (s *Service) GetResultaattype(ctx context.Context, id uuid.UUID) (*catalogi.Resultaattype, error) {
	return s.store.GetResultaattype(ctx, id)
}

func (s *Service) ListResultaattypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.Resultaattype, error) {
	return s.store.ListResultaattypen(ctx, zaaktypeID)
}

func (s *Service) DeleteResultaattype(ctx context.Context, id uuid.UUID) error {
	return s.store.InTx(ctx, func(ctx context.Context) error {
		resultaattype, err := s.store.GetResultaattype(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.gatedZaaktype(ctx, resultaattype.ZaaktypeID, catalogi.GateUpdateSubordinate); err != nil {
			return err
		}
		return s.store.DeleteResultaattype(ctx, id)
	})
}

// validateResultaattype checks the archiefprocedure shape and, when a
// selectielijstklasse is set, resolves it and verifies the procestype and
// procestermijn couplings.
func (s *Service) validateResultaattype(ctx context.Context, resultaattype *catalogi.Resultaattype) error {
	var errs domainerrors.List
	if resultaattype.Omschrijving == "" {
		errs = append(errs, domainerrors.NewField("omschrijving", domainerrors.CodeRequired, "omschrijving is required"))
	}
	if err := catalogi.ValidateArchiefprocedure(resultaattype.Brondatum); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	if resultaattype.Selectielijstklasse == "" {
		return nil
	}

	zaaktype, err := s.store.GetZaaktype(ctx, resultaattype.ZaaktypeID)
	if err != nil {
		return err
	}
	klasse, err := s.selectielijst.Resultaat(ctx, resultaattype.Selectielijstklasse)
	if err != nil {
		s.metrics.IncrementSelectielijstLookup("error")
		return err
	}
	if klasse.ProcesType != zaaktype.SelectielijstProcestype {
		s.metrics.IncrementSelectielijstLookup("mismatch")
		return domainerrors.NewField("selectielijstklasse", domainerrors.CodeProcestypeMismatch,
			"the selectielijstklasse does not belong to the procestype of the zaaktype")
	}
	s.metrics.IncrementSelectielijstLookup("hit")
	return catalogi.ValidateAfleidingswijzeForProcestermijn(klasse.Procestermijn, resultaattype.Brondatum.Afleidingswijze)
}

// CreateRoltype adds a party role to a zaaktype.
func (s *Service) CreateRoltype(ctx context.Context, roltype *catalogi.Roltype) (*catalogi.Roltype, error) {
	if roltype.Omschrijving == "" {
		return nil, domainerrors.NewField("omschrijving", domainerrors.CodeRequired, "omschrijving is required")
	}

	roltype.ID = uuid.New()
	roltype.Concept = true
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.gatedZaaktype(ctx, roltype.ZaaktypeID, catalogi.GateCreateSubordinate); err != nil {
			return err
		}
		return s.store.CreateRoltype(ctx, roltype)
	})
	if err != nil {
		return nil, err
	}
	return roltype, nil
}

func (s *Service) GetRoltype(ctx context.Context, id uuid.UUID) (*catalogi.Roltype, error) {
	return s.store.GetRoltype(ctx, id)
}

func (s *Service) ListRoltypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.Roltype, error) {
	return s.store.ListRoltypen(ctx, zaaktypeID)
}

func (s *Service) DeleteRoltype(ctx context.Context, id uuid.UUID) error {
	return s.store.InTx(ctx, func(ctx context.Context) error {
		roltype, err := s.store.GetRoltype(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.gatedZaaktype(ctx, roltype.ZaaktypeID, catalogi.GateUpdateSubordinate); err != nil {
			return err
		}
		return s.store.DeleteRoltype(ctx, id)
	})
}

// CreateEigenschap adds an attribute slot to a zaaktype.
func (s *Service) CreateEigenschap(ctx context.Context, eigenschap *catalogi.Eigenschap) (*catalogi.Eigenschap, error) {
	if eigenschap.Naam == "" {
		return nil, domainerrors.NewField("naam", domainerrors.CodeRequired, "naam is required")
	}

	eigenschap.ID = uuid.New()
	eigenschap.Concept = true
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.gatedZaaktype(ctx, eigenschap.ZaaktypeID, catalogi.GateCreateSubordinate); err != nil {
			return err
		}
		return s.store.CreateEigenschap(ctx, eigenschap)
	})
	if err != nil {
		return nil, err
	}
	return eigenschap, nil
}

func (s *Service) ListEigenschappen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.Eigenschap, error) {
	return s.store.ListEigenschappen(ctx, zaaktypeID)
}

func (s *Service) DeleteEigenschap(ctx context.Context, id uuid.UUID) error {
	return s.store.InTx(ctx, func(ctx context.Context) error {
		eigenschap, err := s.store.GetEigenschap(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.gatedZaaktype(ctx, eigenschap.ZaaktypeID, catalogi.GateUpdateSubordinate); err != nil {
			return err
		}
		return s.store.DeleteEigenschap(ctx, id)
	})
}

// CreateZaakObjectType declares a kind of related object for a zaaktype.
func (s *Service) CreateZaakObjectType(ctx context.Context, zaakobjecttype *catalogi.ZaakObjectType) (*catalogi.ZaakObjectType, error) {
	if zaakobjecttype.Objecttype == "" {
		return nil, domainerrors.NewField("objecttype", domainerrors.CodeRequired, "objecttype is required")
	}

	zaakobjecttype.ID = uuid.New()
	zaakobjecttype.Concept = true
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.gatedZaaktype(ctx, zaakobjecttype.ZaaktypeID, catalogi.GateCreateSubordinate); err != nil {
			return err
		}
		return s.store.CreateZaakObjectType(ctx, zaakobjecttype)
	})
	if err != nil {
		return nil, err
	}
	return zaakobjecttype, nil
}

func (s *Service) ListZaakObjectTypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.ZaakObjectType, error) {
	return s.store.ListZaakObjectTypen(ctx, zaaktypeID)
}

func (s *Service) DeleteZaakObjectType(ctx context.Context, id uuid.UUID) error {
	return s.store.InTx(ctx, func(ctx context.Context) error {
		zaakobjecttype, err := s.store.GetZaakObjectType(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.gatedZaaktype(ctx, zaakobjecttype.ZaaktypeID, catalogi.GateUpdateSubordinate); err != nil {
			return err
		}
		return s.store.DeleteZaakObjectType(ctx, id)
	})
}
