package service

import (
	"context"

	"github.com/google/uuid"

	"zaakregister/internal/catalogi"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/zaken"
	"zaakregister/pkg/domainerrors"
)

// SetResultaat records the outcome of a zaak. At most one resultaat exists
// per zaak; closure requires it.
func (s *Service) SetResultaat(ctx context.Context, zaakID, resultaattypeID uuid.UUID, toelichting string) (*zaken.Resultaat, error) {
	zaak, err := s.store.GetZaak(ctx, zaakID)
	if err != nil {
		return nil, err
	}
	resultaattype, err := s.types.GetResultaattype(ctx, resultaattypeID)
	if err != nil {
		return nil, err
	}
	if resultaattype.ZaaktypeID != zaak.ZaaktypeID {
		return nil, domainerrors.NewField("resultaattype", domainerrors.CodeZaaktypeMismatch,
			"the resultaattype does not belong to the zaaktype of the zaak")
	}

	resultaat := &zaken.Resultaat{
		ID:              uuid.New(),
		ZaakID:          zaakID,
		ResultaattypeID: resultaattypeID,
		Toelichting:     toelichting,
	}
	if err := s.store.CreateResultaat(ctx, resultaat); err != nil {
		return nil, err
	}
	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaken,
		Hoofdobject: zaakID.String(),
		Resource:    "resultaat",
		ResourceID:  resultaat.ID.String(),
		Actie:       notificaties.ActieCreate,
	})
	return resultaat, nil
}

func (s *Service) GetResultaat(ctx context.Context, zaakID uuid.UUID) (*zaken.Resultaat, error) {
	return s.store.GetResultaatByZaak(ctx, zaakID)
}

func (s *Service) DeleteResultaat(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteResultaat(ctx, id)
}

// AddRol attaches a party to a zaak. The generic classification is copied
// from the roltype; per zaak at most one initiator and one zaakcoordinator
// may exist.
func (s *Service) AddRol(ctx context.Context, rol *zaken.Rol) (*zaken.Rol, error) {
	zaak, err := s.store.GetZaak(ctx, rol.ZaakID)
	if err != nil {
		return nil, err
	}
	roltype, err := s.types.GetRoltype(ctx, rol.RoltypeID)
	if err != nil {
		return nil, err
	}
	if roltype.ZaaktypeID != zaak.ZaaktypeID {
		return nil, domainerrors.NewField("roltype", domainerrors.CodeZaaktypeMismatch,
			"the roltype does not belong to the zaaktype of the zaak")
	}
	rol.OmschrijvingGeneriek = roltype.OmschrijvingGeneriek

	if rol.OmschrijvingGeneriek == catalogi.RolOmschrijvingInitiator || rol.OmschrijvingGeneriek == catalogi.RolOmschrijvingZaakcoordinator {
		rollen, err := s.store.ListRollen(ctx, rol.ZaakID)
		if err != nil {
			return nil, err
		}
		for _, existing := range rollen {
			if existing.OmschrijvingGeneriek == rol.OmschrijvingGeneriek {
				return nil, domainerrors.NewField("roltype", domainerrors.CodeUnique,
					"the zaak already has a rol with omschrijvingGeneriek "+string(rol.OmschrijvingGeneriek))
			}
		}
	}

	rol.ID = uuid.New()
	if err := s.store.CreateRol(ctx, rol); err != nil {
		return nil, err
	}
	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaken,
		Hoofdobject: rol.ZaakID.String(),
		Resource:    "rol",
		ResourceID:  rol.ID.String(),
		Actie:       notificaties.ActieCreate,
	})
	return rol, nil
}

func (s *Service) ListRollen(ctx context.Context, zaakID uuid.UUID) ([]*zaken.Rol, error) {
	return s.store.ListRollen(ctx, zaakID)
}

func (s *Service) DeleteRol(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteRol(ctx, id)
}

// AddZaakEigenschap records the value of a zaaktype eigenschap on a zaak.
// The naam is denormalised from the definition so the brondatum resolver can
// match on datumkenmerk without a catalogi read.
func (s *Service) AddZaakEigenschap(ctx context.Context, zaakID, eigenschapID uuid.UUID, waarde string) (*zaken.ZaakEigenschap, error) {
	zaak, err := s.store.GetZaak(ctx, zaakID)
	if err != nil {
		return nil, err
	}
	eigenschap, err := s.types.GetEigenschap(ctx, eigenschapID)
	if err != nil {
		return nil, err
	}
	if eigenschap.ZaaktypeID != zaak.ZaaktypeID {
		return nil, domainerrors.NewField("eigenschap", domainerrors.CodeZaaktypeMismatch,
			"the eigenschap does not belong to the zaaktype of the zaak")
	}

	zaakeigenschap := &zaken.ZaakEigenschap{
		ID:           uuid.New(),
		ZaakID:       zaakID,
		EigenschapID: eigenschapID,
		Naam:         eigenschap.Naam,
		Waarde:       waarde,
	}
	if err := s.store.CreateZaakEigenschap(ctx, zaakeigenschap); err != nil {
		return nil, err
	}
	return zaakeigenschap, nil
}

func (s *Service) ListZaakEigenschappen(ctx context.Context, zaakID uuid.UUID) ([]*zaken.ZaakEigenschap, error) {
	return s.store.ListZaakEigenschappen(ctx, zaakID)
}

// AddZaakObject links an external object to a zaak.
func (s *Service) AddZaakObject(ctx context.Context, zaakobject *zaken.ZaakObject) (*zaken.ZaakObject, error) {
	if _, err := s.store.GetZaak(ctx, zaakobject.ZaakID); err != nil {
		return nil, err
	}
	if zaakobject.Object == "" && zaakobject.ObjectIdentificatie == nil {
		return nil, domainerrors.NewField("object", domainerrors.CodeRequired,
			"either object or objectIdentificatie is required")
	}
	zaakobject.ID = uuid.New()
	if err := s.store.CreateZaakObject(ctx, zaakobject); err != nil {
		return nil, err
	}
	return zaakobject, nil
}

func (s *Service) ListZaakObjecten(ctx context.Context, zaakID uuid.UUID) ([]*zaken.ZaakObject, error) {
	return s.store.ListZaakObjecten(ctx, zaakID)
}

// AddBesluit links a decision to a zaak.
func (s *Service) AddBesluit(ctx context.Context, besluit *zaken.Besluit) (*zaken.Besluit, error) {
	if _, err := s.store.GetZaak(ctx, besluit.ZaakID); err != nil {
		return nil, err
	}
	if besluit.Ingangsdatum.IsZero() {
		return nil, domainerrors.NewField("ingangsdatum", domainerrors.CodeRequired, "ingangsdatum is required")
	}
	besluit.ID = uuid.New()
	if err := s.store.CreateBesluit(ctx, besluit); err != nil {
		return nil, err
	}
	return besluit, nil
}

func (s *Service) ListBesluiten(ctx context.Context, zaakID uuid.UUID) ([]*zaken.Besluit, error) {
	return s.store.ListBesluiten(ctx, zaakID)
}

// AddZaakInformatieObject links an external document to a zaak. The document
// must exist in the documenten registry.
func (s *Service) AddZaakInformatieObject(ctx context.Context, zio *zaken.ZaakInformatieObject) (*zaken.ZaakInformatieObject, error) {
	if _, err := s.store.GetZaak(ctx, zio.ZaakID); err != nil {
		return nil, err
	}
	if zio.InformatieObject == "" {
		return nil, domainerrors.NewField("informatieobject", domainerrors.CodeRequired, "informatieobject is required")
	}
	if _, err := s.documents.Probe(ctx, zio.InformatieObject); err != nil {
		return nil, err
	}
	zio.ID = uuid.New()
	if err := s.store.CreateZaakInformatieObject(ctx, zio); err != nil {
		return nil, err
	}
	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaken,
		Hoofdobject: zio.ZaakID.String(),
		Resource:    "zaakinformatieobject",
		ResourceID:  zio.ID.String(),
		Actie:       notificaties.ActieCreate,
	})
	return zio, nil
}

func (s *Service) ListZaakInformatieObjecten(ctx context.Context, zaakID uuid.UUID) ([]*zaken.ZaakInformatieObject, error) {
	return s.store.ListZaakInformatieObjecten(ctx, zaakID)
}
