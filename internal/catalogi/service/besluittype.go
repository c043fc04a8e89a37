package service

import (
	"context"

	"github.com/google/uuid"

	"zaakregister/internal/authz"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/notificaties"
	"zaakregister/pkg/domainerrors"
)

// Besluittypen and informatieobjecttypen live directly under a catalogus and
// carry their own concept flag, so their gates work on the entity itself
// instead of an owning zaaktype.

// CreateBesluitType registers a new besluittype as concept.
func (s *Service) CreateBesluitType(ctx context.Context, besluittype *catalogi.BesluitType) (*catalogi.BesluitType, error) {
	if besluittype.Omschrijving == "" {
		return nil, domainerrors.NewField("omschrijving", domainerrors.CodeRequired, "omschrijving is required")
	}
	if _, err := s.store.GetCatalogus(ctx, besluittype.CatalogusID); err != nil {
		return nil, err
	}

	scopes := authz.FromContext(ctx)
	besluittype.ID = uuid.New()
	besluittype.Concept = true
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		neighbourConcepts, err := s.besluitTypeRelations(ctx, besluittype)
		if err != nil {
			return err
		}
		if err := catalogi.GateRelateOnCreate(true, neighbourConcepts, scopes); err != nil {
			return err
		}
		return s.store.CreateBesluitType(ctx, besluittype)
	})
	if err != nil {
		return nil, err
	}
	return besluittype, nil
}

func (s *Service) GetBesluitType(ctx context.Context, id uuid.UUID) (*catalogi.BesluitType, error) {
	return s.store.GetBesluitType(ctx, id)
}

// UpdateBesluitType replaces the mutable attributes of a besluittype.
func (s *Service) UpdateBesluitType(ctx context.Context, besluittype *catalogi.BesluitType) (*catalogi.BesluitType, error) {
	scopes := authz.FromContext(ctx)
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		current, err := s.store.GetBesluitType(ctx, besluittype.ID)
		if err != nil {
			return err
		}
		besluittype.CatalogusID = current.CatalogusID
		besluittype.Concept = current.Concept

		onlyEinde := onlyBesluitTypeEindeChanged(current, besluittype)
		if err := catalogi.GateUpdate(current.Concept, onlyEinde, scopes); err != nil {
			return err
		}
		if !onlyEinde {
			if _, err := s.besluitTypeRelations(ctx, besluittype); err != nil {
				return err
			}
		}
		// A geldigheid change on a published besluittype can create an
		// overlap between published versions, so the publish-time check
		// runs again.
		if !besluittype.Concept {
			if err := s.besluitTypeOverlaps(ctx, besluittype); err != nil {
				return err
			}
		}
		return s.store.UpdateBesluitType(ctx, besluittype)
	})
	if err != nil {
		return nil, err
	}
	return besluittype, nil
}

func (s *Service) DeleteBesluitType(ctx context.Context, id uuid.UUID) error {
	scopes := authz.FromContext(ctx)
	return s.store.InTx(ctx, func(ctx context.Context) error {
		besluittype, err := s.store.GetBesluitType(ctx, id)
		if err != nil {
			return err
		}
		if err := catalogi.GateDelete(besluittype.Concept, scopes); err != nil {
			return err
		}
		var neighbourConcepts []bool
		for _, zaaktypeID := range besluittype.Zaaktypen {
			zaaktype, err := s.store.GetZaaktype(ctx, zaaktypeID)
			if err != nil {
				return err
			}
			neighbourConcepts = append(neighbourConcepts, zaaktype.Concept)
		}
		if err := catalogi.GateDeleteWithRelations(neighbourConcepts, scopes); err != nil {
			return err
		}
		return s.store.DeleteBesluitType(ctx, id)
	})
}

// PublishBesluitType flips a concept besluittype to published. Publication
// requires a validity interval free of overlap with other published versions.
func (s *Service) PublishBesluitType(ctx context.Context, id uuid.UUID) (besluittype *catalogi.BesluitType, err error) {
	defer func() {
		switch {
		case err == nil:
			s.metrics.IncrementPublish("besluittype", "published")
		case isDomainError(err):
			s.metrics.IncrementPublish("besluittype", "rejected")
		default:
			s.metrics.IncrementPublish("besluittype", "error")
		}
	}()

	err = s.store.InTx(ctx, func(ctx context.Context) error {
		besluittype, err = s.store.GetBesluitType(ctx, id)
		if err != nil {
			return err
		}
		if !besluittype.Concept {
			return domainerrors.New(domainerrors.CodeNonConceptObject, "the besluittype is already published")
		}

		if err := s.besluitTypeOverlaps(ctx, besluittype); err != nil {
			return err
		}

		besluittype.Concept = false
		return s.store.UpdateBesluitType(ctx, besluittype)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaaktypen,
		Hoofdobject: id.String(),
		Resource:    "besluittype",
		ResourceID:  id.String(),
		Actie:       notificaties.ActiePublish,
	})
	return besluittype, nil
}

// CreateInformatieObjectType registers a new informatieobjecttype as concept.
func (s *Service) CreateInformatieObjectType(ctx context.Context, informatieobjecttype *catalogi.InformatieObjectType) (*catalogi.InformatieObjectType, error) {
	var errs domainerrors.List
	if informatieobjecttype.Omschrijving == "" {
		errs = append(errs, domainerrors.NewField("omschrijving", domainerrors.CodeRequired, "omschrijving is required"))
	}
	if _, err := catalogi.ParseVertrouwelijkheidAanduiding(string(informatieobjecttype.Vertrouwelijkheidaanduiding)); err != nil {
		errs = append(errs, domainerrors.Flatten(err)...)
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCatalogus(ctx, informatieobjecttype.CatalogusID); err != nil {
		return nil, err
	}

	informatieobjecttype.ID = uuid.New()
	informatieobjecttype.Concept = true
	if err := s.store.CreateInformatieObjectType(ctx, informatieobjecttype); err != nil {
		return nil, err
	}
	return informatieobjecttype, nil
}

func (s *Service) GetInformatieObjectType(ctx context.Context, id uuid.UUID) (*catalogi.InformatieObjectType, error) {
	return s.store.GetInformatieObjectType(ctx, id)
}

// PublishInformatieObjectType flips a concept informatieobjecttype to
// published.
func (s *Service) PublishInformatieObjectType(ctx context.Context, id uuid.UUID) (*catalogi.InformatieObjectType, error) {
	var informatieobjecttype *catalogi.InformatieObjectType
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		var err error
		informatieobjecttype, err = s.store.GetInformatieObjectType(ctx, id)
		if err != nil {
			return err
		}
		if !informatieobjecttype.Concept {
			return domainerrors.New(domainerrors.CodeNonConceptObject, "the informatieobjecttype is already published")
		}
		informatieobjecttype.Concept = false
		return s.store.UpdateInformatieObjectType(ctx, informatieobjecttype)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementPublish("informatieobjecttype", "published")
	return informatieobjecttype, nil
}

func (s *Service) DeleteInformatieObjectType(ctx context.Context, id uuid.UUID) error {
	scopes := authz.FromContext(ctx)
	return s.store.InTx(ctx, func(ctx context.Context) error {
		informatieobjecttype, err := s.store.GetInformatieObjectType(ctx, id)
		if err != nil {
			return err
		}
		if err := catalogi.GateDelete(informatieobjecttype.Concept, scopes); err != nil {
			return err
		}
		return s.store.DeleteInformatieObjectType(ctx, id)
	})
}

// CreateZaaktypeInformatieObjectType relates a zaaktype to an
// informatieobjecttype. The relation itself may always be created; only
// removing a relation between two published sides is restricted.
func (s *Service) CreateZaaktypeInformatieObjectType(ctx context.Context, relation *catalogi.ZaaktypeInformatieObjectType) (*catalogi.ZaaktypeInformatieObjectType, error) {
	relation.ID = uuid.New()
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		zaaktype, err := s.store.GetZaaktype(ctx, relation.ZaaktypeID)
		if err != nil {
			return err
		}
		informatieobjecttype, err := s.store.GetInformatieObjectType(ctx, relation.InformatieObjectTypeID)
		if err != nil {
			return err
		}
		if zaaktype.CatalogusID != informatieobjecttype.CatalogusID {
			return domainerrors.NewField("informatieobjecttype", domainerrors.CodeRelationsIncorrectCatalogus,
				"the informatieobjecttype must belong to the zaaktype's catalogus")
		}
		return s.store.CreateZaaktypeInformatieObjectType(ctx, relation)
	})
	if err != nil {
		return nil, err
	}
	return relation, nil
}

func (s *Service) ListZaaktypeInformatieObjectTypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.ZaaktypeInformatieObjectType, error) {
	return s.store.ListZaaktypeInformatieObjectTypen(ctx, zaaktypeID)
}

func (s *Service) DeleteZaaktypeInformatieObjectType(ctx context.Context, id uuid.UUID) error {
	scopes := authz.FromContext(ctx)
	return s.store.InTx(ctx, func(ctx context.Context) error {
		relation, err := s.store.GetZaaktypeInformatieObjectType(ctx, id)
		if err != nil {
			return err
		}
		zaaktype, err := s.store.GetZaaktype(ctx, relation.ZaaktypeID)
		if err != nil {
			return err
		}
		informatieobjecttype, err := s.store.GetInformatieObjectType(ctx, relation.InformatieObjectTypeID)
		if err != nil {
			return err
		}
		if err := catalogi.GateZaaktypeInformatieObjectTypeDelete(zaaktype.Concept, informatieobjecttype.Concept, scopes); err != nil {
			return err
		}
		return s.store.DeleteZaaktypeInformatieObjectType(ctx, id)
	})
}

// besluitTypeRelations fetches the related zaaktypen and
// informatieobjecttypen, enforcing that every relation stays inside the
// besluittype's catalogus. It returns the concept flags of the neighbours for
// the relation gates.
func (s *Service) besluitTypeRelations(ctx context.Context, besluittype *catalogi.BesluitType) ([]bool, error) {
	var neighbourConcepts []bool
	for _, zaaktypeID := range besluittype.Zaaktypen {
		zaaktype, err := s.store.GetZaaktype(ctx, zaaktypeID)
		if err != nil {
			return nil, err
		}
		if zaaktype.CatalogusID != besluittype.CatalogusID {
			return nil, domainerrors.NewField("zaaktypen", domainerrors.CodeRelationsIncorrectCatalogus,
				"related zaaktypen must belong to the same catalogus")
		}
		neighbourConcepts = append(neighbourConcepts, zaaktype.Concept)
	}
	for _, informatieobjecttypeID := range besluittype.Informatieobjecttypen {
		informatieobjecttype, err := s.store.GetInformatieObjectType(ctx, informatieobjecttypeID)
		if err != nil {
			return nil, err
		}
		if informatieobjecttype.CatalogusID != besluittype.CatalogusID {
			return nil, domainerrors.NewField("informatieobjecttypen", domainerrors.CodeRelationsIncorrectCatalogus,
				"related informatieobjecttypen must belong to the same catalogus")
		}
		neighbourConcepts = append(neighbourConcepts, informatieobjecttype.Concept)
	}
	return neighbourConcepts, nil
}

// besluitTypeOverlaps rejects a validity interval that overlaps with another
// published version of the same besluittype.
func (s *Service) besluitTypeOverlaps(ctx context.Context, besluittype *catalogi.BesluitType) error {
	versions, err := s.store.ListBesluitTypeVersies(ctx, besluittype.CatalogusID, besluittype.Omschrijving)
	if err != nil {
		return err
	}
	for _, other := range versions {
		if other.ID == besluittype.ID || other.Concept {
			continue
		}
		if besluittype.Geldigheid().Overlaps(other.Geldigheid()) {
			return domainerrors.NewField("beginGeldigheid", domainerrors.CodeOverlap,
				"the validity interval overlaps with a published version of this besluittype")
		}
	}
	return nil
}

func onlyBesluitTypeEindeChanged(current, updated *catalogi.BesluitType) bool {
	if current.Omschrijving != updated.Omschrijving ||
		!current.BeginGeldigheid.Equal(updated.BeginGeldigheid) ||
		len(current.Zaaktypen) != len(updated.Zaaktypen) ||
		len(current.Informatieobjecttypen) != len(updated.Informatieobjecttypen) {
		return false
	}
	for i := range current.Zaaktypen {
		if current.Zaaktypen[i] != updated.Zaaktypen[i] {
			return false
		}
	}
	for i := range current.Informatieobjecttypen {
		if current.Informatieobjecttypen[i] != updated.Informatieobjecttypen[i] {
			return false
		}
	}
	return true
}
