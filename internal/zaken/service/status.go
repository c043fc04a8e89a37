package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"zaakregister/internal/authz"
	"zaakregister/internal/documenten"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/zaken"
	"zaakregister/pkg/domainerrors"
)

const probeConcurrency = 8

// AddStatus appends a status to a zaak and applies the resulting transition.
// A status carrying the end statustype closes the zaak and derives its
// archival attributes; closure is all-or-nothing, a failed derivation rolls
// the status write back and leaves the zaak open.
func (s *Service) AddStatus(ctx context.Context, zaakID, statustypeID uuid.UUID, datumStatusGezet time.Time, toelichting string) (*zaken.Status, error) {
	ctx, span := tracer.Start(ctx, "zaken.AddStatus", trace.WithAttributes(
		attribute.String("zaak.id", zaakID.String()),
	))
	defer span.End()

	var (
		status     *zaken.Status
		transition zaken.Transition
		start      = time.Now()
	)
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		zaak, err := s.store.LockZaak(ctx, zaakID)
		if err != nil {
			return err
		}

		statustype, err := s.types.GetStatustype(ctx, statustypeID)
		if err != nil {
			return err
		}
		if statustype.ZaaktypeID != zaak.ZaaktypeID {
			return domainerrors.NewField("statustype", domainerrors.CodeZaaktypeMismatch,
				"the statustype does not belong to the zaaktype of the zaak")
		}

		statustypen, err := s.types.ListStatustypen(ctx, zaak.ZaaktypeID)
		if err != nil {
			return err
		}
		eindVolgnummer := 0
		for _, st := range statustypen {
			if st.Volgnummer > eindVolgnummer {
				eindVolgnummer = st.Volgnummer
			}
		}

		if err := s.gateStatusWrite(ctx, zaak); err != nil {
			return err
		}

		transition = zaken.ApplyStatus(zaak, statustype.Volgnummer, eindVolgnummer, datumStatusGezet)
		if transition.Kind == zaken.TransitionReopen && !authz.FromContext(ctx).Has(authz.ScopeZakenHeropenen) {
			return domainerrors.New(domainerrors.CodePermissionDenied, "scope zaken.heropenen is required to reopen a zaak")
		}

		transition.Apply(zaak)
		if transition.Kind == zaken.TransitionClose {
			if err := s.close(ctx, zaak, datumStatusGezet); err != nil {
				s.metrics.IncrementClosure(closureOutcome(err))
				return err
			}
			s.metrics.IncrementClosure("closed")
			s.metrics.ObserveClosureLatency(time.Since(start))
		}

		status = &zaken.Status{
			ID:                uuid.New(),
			ZaakID:            zaak.ID,
			StatustypeID:      statustypeID,
			DatumStatusGezet:  datumStatusGezet,
			Statustoelichting: toelichting,
		}
		if err := s.store.CreateStatus(ctx, status); err != nil {
			return err
		}
		return s.store.UpdateZaak(ctx, zaak)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementTransition(transitionLabel(transition.Kind))
	s.logger.Info("status added", "zaak", zaakID, "statustype", statustypeID, "transition", transitionLabel(transition.Kind))
	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaken,
		Hoofdobject: zaakID.String(),
		Resource:    "status",
		ResourceID:  status.ID.String(),
		Actie:       notificaties.ActieCreate,
		Kenmerken:   map[string]string{"transition": transitionLabel(transition.Kind)},
	})
	return status, nil
}

// gateStatusWrite enforces the creator rule: a client holding only
// zaken.aanmaken may set the initial status and nothing after it.
func (s *Service) gateStatusWrite(ctx context.Context, zaak *zaken.Zaak) error {
	scopes := authz.FromContext(ctx)
	if scopes.Has(authz.ScopeStatussenToevoegen) {
		return nil
	}
	if !scopes.Has(authz.ScopeZakenAanmaken) {
		return domainerrors.New(domainerrors.CodePermissionDenied, "scope zaken.statussen.toevoegen is required")
	}
	_, err := s.store.LastStatus(ctx, zaak.ID)
	if errors.Is(err, zaken.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return domainerrors.New(domainerrors.CodePermissionDenied,
		"scope zaken.aanmaken only permits the initial status")
}

// close derives the archival attributes for a zaak whose einddatum was just
// set by the transition.
func (s *Service) close(ctx context.Context, zaak *zaken.Zaak, statusDatum time.Time) error {
	resultaat, err := s.store.GetResultaatByZaak(ctx, zaak.ID)
	if errors.Is(err, zaken.ErrNotFound) {
		return domainerrors.NewField("resultaat", domainerrors.CodeMissingResultaat,
			"closing a zaak requires a resultaat")
	}
	if err != nil {
		return err
	}
	resultaattype, err := s.types.GetResultaattype(ctx, resultaat.ResultaattypeID)
	if err != nil {
		return err
	}

	if err := s.probeDocuments(ctx, zaak.ID, checkClosable); err != nil {
		return err
	}

	resolution, err := s.resolver.Resolve(ctx, zaak, resultaattype, statusDatum)
	if err != nil {
		s.metrics.IncrementBrondatumResolution(string(resultaattype.Brondatum.Afleidingswijze), "error")
		return err
	}
	if resolution.Archiefactiedatum == nil {
		s.metrics.IncrementBrondatumResolution(string(resultaattype.Brondatum.Afleidingswijze), "empty")
	} else {
		s.metrics.IncrementBrondatumResolution(string(resultaattype.Brondatum.Afleidingswijze), "resolved")
	}

	nominatie := resolution.Archiefnominatie
	zaak.Archiefnominatie = &nominatie
	zaak.ArchiefnominatieBerekend = true
	zaak.Archiefactiedatum = resolution.Archiefactiedatum
	zaak.ArchiefactiedatumBerekend = resolution.Archiefactiedatum != nil
	return nil
}

// probeDocuments fetches every linked informatieobject and applies check to
// each. Probes run concurrently; validation failures are collected per
// document.
func (s *Service) probeDocuments(ctx context.Context, zaakID uuid.UUID, check func(*documenten.Document) error) error {
	zios, err := s.store.ListZaakInformatieObjecten(ctx, zaakID)
	if err != nil {
		return err
	}
	if len(zios) == 0 {
		return nil
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(probeConcurrency)
	results := make([]error, len(zios))
	for i, zio := range zios {
		group.Go(func() error {
			document, err := s.documents.Probe(ctx, zio.InformatieObject)
			if err != nil {
				return fmt.Errorf("probe %s: %w", zio.InformatieObject, err)
			}
			results[i] = check(document)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	var errs domainerrors.List
	for _, result := range results {
		if result != nil {
			errs = append(errs, domainerrors.Flatten(result)...)
		}
	}
	return errs.ErrOrNil()
}

func checkClosable(document *documenten.Document) error {
	var errs domainerrors.List
	if document.Locked {
		errs = append(errs, domainerrors.NewField("zaakinformatieobjecten", domainerrors.CodeInformatieobjectLocked,
			document.URL+" is locked"))
	}
	if document.IndicatieGebruiksrecht == nil {
		errs = append(errs, domainerrors.NewField("zaakinformatieobjecten", domainerrors.CodeIndicatieGebruiksrechtUnset,
			document.URL+" has no indicatieGebruiksrecht"))
	}
	return errs.ErrOrNil()
}

func checkArchived(document *documenten.Document) error {
	if document.Status != documenten.StatusGearchiveerd {
		return domainerrors.NewField("archiefstatus", domainerrors.CodeInvalid,
			document.URL+" is not archived")
	}
	return nil
}

func (s *Service) ListStatussen(ctx context.Context, zaakID uuid.UUID) ([]*zaken.Status, error) {
	return s.store.ListStatussen(ctx, zaakID)
}

func transitionLabel(kind zaken.TransitionKind) string {
	switch kind {
	case zaken.TransitionClose:
		return "close"
	case zaken.TransitionReopen:
		return "reopen"
	default:
		return "append"
	}
}

func closureOutcome(err error) string {
	var single *domainerrors.Error
	var list domainerrors.List
	if errors.As(err, &single) || errors.As(err, &list) {
		return "rejected"
	}
	return "error"
}

// UpdateArchiefstatus moves a closed zaak through the archival process.
// Transitioning to gearchiveerd requires the derived archival pair to be set
// and every linked informatieobject to be archived itself.
func (s *Service) UpdateArchiefstatus(ctx context.Context, zaakID uuid.UUID, archiefstatus zaken.Archiefstatus) (*zaken.Zaak, error) {
	var zaak *zaken.Zaak
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		var err error
		zaak, err = s.store.LockZaak(ctx, zaakID)
		if err != nil {
			return err
		}
		if archiefstatus == zaken.ArchiefstatusGearchiveerd {
			var errs domainerrors.List
			if zaak.Archiefnominatie == nil {
				errs = append(errs, domainerrors.NewField("archiefnominatie", domainerrors.CodeInvalid,
					"archiefnominatie must be set before archiving"))
			}
			if zaak.Archiefactiedatum == nil {
				errs = append(errs, domainerrors.NewField("archiefactiedatum", domainerrors.CodeInvalid,
					"archiefactiedatum must be set before archiving"))
			}
			if err := errs.ErrOrNil(); err != nil {
				return err
			}
			if err := s.probeDocuments(ctx, zaakID, checkArchived); err != nil {
				return err
			}
		}
		zaak.Archiefstatus = archiefstatus
		return s.store.UpdateZaak(ctx, zaak)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("archiefstatus updated", "zaak", zaakID, "archiefstatus", archiefstatus)
	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaken,
		Hoofdobject: zaakID.String(),
		Resource:    "zaak",
		ResourceID:  zaakID.String(),
		Actie:       notificaties.ActieUpdate,
		Kenmerken:   map[string]string{"archiefstatus": string(archiefstatus)},
	})
	return zaak, nil
}
