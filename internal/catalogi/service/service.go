// Package service orchestrates the catalogi operations: lifecycle of
// zaaktypen and their subordinate definitions, concept gating and the
// publish transition.
package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"zaakregister/internal/authz"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/catalogi/metrics"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/selectielijst"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/period"
)

var tracer = otel.Tracer("zaakregister/catalogi")

var (
	domeinPattern = regexp.MustCompile(`^[A-Za-z0-9]{5}$`)
	rsinPattern   = regexp.MustCompile(`^[0-9]{9}$`)
)

// Service orchestrates catalogi management.
type Service struct {
	store         catalogi.Store
	selectielijst selectielijst.Client
	publisher     notificaties.Publisher
	requirements  catalogi.PublishRequirements
	logger        *slog.Logger
	metrics       *metrics.Metrics
	now           func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithPublisher(publisher notificaties.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublishRequirements(req catalogi.PublishRequirements) Option {
	return func(s *Service) {
		s.requirements = req
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs a Service.
func New(store catalogi.Store, selectielijstClient selectielijst.Client, opts ...Option) *Service {
	s := &Service{
		store:         store,
		selectielijst: selectielijstClient,
		requirements:  catalogi.DefaultPublishRequirements(),
		logger:        slog.Default(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) notify(ctx context.Context, event notificaties.Event) {
	if s.publisher == nil {
		return
	}
	event.Aanmaakdatum = s.now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish notificatie", "error", err, "resource", event.Resource)
	}
}

// CreateCatalogus registers a new catalogus. (domein, rsin) must be unique.
func (s *Service) CreateCatalogus(ctx context.Context, domein, rsin string) (*catalogi.Catalogus, error) {
	var errs domainerrors.List
	if !domeinPattern.MatchString(domein) {
		errs = append(errs, domainerrors.NewField("domein", domainerrors.CodeInvalid, "domein must be exactly 5 alphanumeric characters"))
	}
	if !rsinPattern.MatchString(rsin) {
		errs = append(errs, domainerrors.NewField("rsin", domainerrors.CodeInvalid, "rsin must be exactly 9 digits"))
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	catalogus := &catalogi.Catalogus{ID: uuid.New(), Domein: domein, RSIN: rsin}
	if err := s.store.CreateCatalogus(ctx, catalogus); err != nil {
		return nil, err
	}
	s.logger.Info("catalogus created", "id", catalogus.ID, "domein", domein)
	return catalogus, nil
}

func (s *Service) GetCatalogus(ctx context.Context, id uuid.UUID) (*catalogi.Catalogus, error) {
	return s.store.GetCatalogus(ctx, id)
}

// CreateZaaktype registers a new zaaktype as concept.
func (s *Service) CreateZaaktype(ctx context.Context, zaaktype *catalogi.Zaaktype) (*catalogi.Zaaktype, error) {
	zaaktype.ID = uuid.New()
	zaaktype.Concept = true
	if zaaktype.Versiedatum.IsZero() {
		zaaktype.Versiedatum = zaaktype.BeginGeldigheid
	}
	if err := zaaktype.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCatalogus(ctx, zaaktype.CatalogusID); err != nil {
		return nil, err
	}

	err := s.store.InTx(ctx, func(ctx context.Context) error {
		if err := s.checkZaaktypeRelations(ctx, zaaktype, true); err != nil {
			return err
		}
		return s.store.CreateZaaktype(ctx, zaaktype)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaaktypen,
		Hoofdobject: zaaktype.ID.String(),
		Resource:    "zaaktype",
		ResourceID:  zaaktype.ID.String(),
		Actie:       notificaties.ActieCreate,
		Kenmerken:   map[string]string{"catalogus": zaaktype.CatalogusID.String(), "concept": "true"},
	})
	return zaaktype, nil
}

func (s *Service) GetZaaktype(ctx context.Context, id uuid.UUID) (*catalogi.Zaaktype, error) {
	return s.store.GetZaaktype(ctx, id)
}

func (s *Service) ListZaaktypen(ctx context.Context, catalogusID uuid.UUID) ([]*catalogi.Zaaktype, error) {
	return s.store.ListZaaktypen(ctx, catalogusID)
}

// UpdateZaaktype replaces the mutable attributes of a zaaktype. A published
// zaaktype only admits changes to eindeGeldigheid unless the caller carries
// the forced-update scope.
func (s *Service) UpdateZaaktype(ctx context.Context, zaaktype *catalogi.Zaaktype) (*catalogi.Zaaktype, error) {
	if err := zaaktype.Validate(); err != nil {
		return nil, err
	}

	scopes := authz.FromContext(ctx)
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		current, err := s.store.GetZaaktype(ctx, zaaktype.ID)
		if err != nil {
			return err
		}
		zaaktype.CatalogusID = current.CatalogusID
		zaaktype.Concept = current.Concept

		onlyEinde := onlyEindeGeldigheidChanged(current, zaaktype)
		if err := catalogi.GateUpdate(current.Concept, onlyEinde, scopes); err != nil {
			return err
		}
		if !onlyEinde {
			if err := s.checkZaaktypeRelations(ctx, zaaktype, false); err != nil {
				return err
			}
			if err := s.gateNewRelations(ctx, current, zaaktype, scopes); err != nil {
				return err
			}
		}
		if !zaaktype.Concept {
			overlaps, err := s.overlapsPublishedVersion(ctx, zaaktype)
			if err != nil {
				return err
			}
			if overlaps {
				return domainerrors.NewField("beginGeldigheid", domainerrors.CodeOverlap,
					"the validity interval overlaps with a published version of this zaaktype")
			}
		}
		return s.store.UpdateZaaktype(ctx, zaaktype)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaaktypen,
		Hoofdobject: zaaktype.ID.String(),
		Resource:    "zaaktype",
		ResourceID:  zaaktype.ID.String(),
		Actie:       notificaties.ActieUpdate,
	})
	return zaaktype, nil
}

// DeleteZaaktype removes a zaaktype and everything under it.
func (s *Service) DeleteZaaktype(ctx context.Context, id uuid.UUID) error {
	scopes := authz.FromContext(ctx)
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		zaaktype, err := s.store.GetZaaktype(ctx, id)
		if err != nil {
			return err
		}
		if err := catalogi.GateDelete(zaaktype.Concept, scopes); err != nil {
			return err
		}
		return s.store.DeleteZaaktype(ctx, id)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaaktypen,
		Hoofdobject: id.String(),
		Resource:    "zaaktype",
		ResourceID:  id.String(),
		Actie:       notificaties.ActieDestroy,
	})
	return nil
}

// PublishZaaktype flips a concept zaaktype to published, cascading to its
// subordinate definitions. The transition is idempotent-hostile on purpose:
// publishing an already published zaaktype fails the concept gate upstream,
// and all preconditions are checked inside one transaction.
func (s *Service) PublishZaaktype(ctx context.Context, id uuid.UUID) (zaaktype *catalogi.Zaaktype, err error) {
	ctx, span := tracer.Start(ctx, "catalogi.PublishZaaktype",
		trace.WithAttributes(attribute.String("zaaktype.id", id.String())))
	defer span.End()

	start := s.now()
	defer func() {
		s.metrics.ObservePublishLatency(s.now().Sub(start))
		switch {
		case err == nil:
			s.metrics.IncrementPublish("zaaktype", "published")
		case isDomainError(err):
			s.metrics.IncrementPublish("zaaktype", "rejected")
		default:
			s.metrics.IncrementPublish("zaaktype", "error")
		}
	}()

	err = s.store.InTx(ctx, func(ctx context.Context) error {
		zaaktype, err = s.store.GetZaaktype(ctx, id)
		if err != nil {
			return err
		}
		if !zaaktype.Concept {
			return domainerrors.New(domainerrors.CodeNonConceptObject, "the zaaktype is already published")
		}

		snapshot, err := s.publishSnapshot(ctx, zaaktype)
		if err != nil {
			return err
		}
		if err := catalogi.ValidatePublish(snapshot, s.requirements); err != nil {
			return err
		}

		zaaktype.Concept = false
		if err := s.store.UpdateZaaktype(ctx, zaaktype); err != nil {
			return err
		}
		return s.publishSubordinates(ctx, zaaktype.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("zaaktype published", "id", id, "omschrijving", zaaktype.Omschrijving)
	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaaktypen,
		Hoofdobject: id.String(),
		Resource:    "zaaktype",
		ResourceID:  id.String(),
		Actie:       notificaties.ActiePublish,
		Kenmerken:   map[string]string{"catalogus": zaaktype.CatalogusID.String(), "concept": "false"},
	})
	return zaaktype, nil
}

// publishSnapshot gathers the counts and overlap facts ValidatePublish needs.
func (s *Service) publishSnapshot(ctx context.Context, zaaktype *catalogi.Zaaktype) (catalogi.PublishSnapshot, error) {
	var snapshot catalogi.PublishSnapshot

	statustypen, err := s.store.ListStatustypen(ctx, zaaktype.ID)
	if err != nil {
		return snapshot, err
	}
	resultaattypen, err := s.store.ListResultaattypen(ctx, zaaktype.ID)
	if err != nil {
		return snapshot, err
	}
	roltypen, err := s.store.ListRoltypen(ctx, zaaktype.ID)
	if err != nil {
		return snapshot, err
	}

	snapshot.Statustypen = len(statustypen)
	snapshot.Resultaattypen = len(resultaattypen)
	snapshot.Roltypen = len(roltypen)
	for _, resultaattype := range resultaattypen {
		if resultaattype.Selectielijstklasse == "" {
			snapshot.ResultaattypenZonderSelectielijstklasse++
		}
	}

	snapshot.OverlapsPublishedVersion, err = s.overlapsPublishedVersion(ctx, zaaktype)
	if err != nil {
		return snapshot, err
	}
	return snapshot, nil
}

// overlapsPublishedVersion reports whether the zaaktype's validity interval
// overlaps any other published version of the same (catalogus, omschrijving).
func (s *Service) overlapsPublishedVersion(ctx context.Context, zaaktype *catalogi.Zaaktype) (bool, error) {
	versions, err := s.store.ListZaaktypeVersies(ctx, zaaktype.CatalogusID, zaaktype.Omschrijving)
	if err != nil {
		return false, err
	}
	for _, other := range versions {
		if other.ID == zaaktype.ID || other.Concept {
			continue
		}
		if zaaktype.Geldigheid().Overlaps(other.Geldigheid()) {
			return true, nil
		}
	}
	return false, nil
}

// publishSubordinates flips every subordinate definition of the zaaktype to
// published; their concept status follows the owning zaaktype.
func (s *Service) publishSubordinates(ctx context.Context, zaaktypeID uuid.UUID) error {
	statustypen, err := s.store.ListStatustypen(ctx, zaaktypeID)
	if err != nil {
		return err
	}
	for _, statustype := range statustypen {
		statustype.Concept = false
		if err := s.store.UpdateStatustype(ctx, statustype); err != nil {
			return err
		}
	}

	resultaattypen, err := s.store.ListResultaattypen(ctx, zaaktypeID)
	if err != nil {
		return err
	}
	for _, resultaattype := range resultaattypen {
		resultaattype.Concept = false
		if err := s.store.UpdateResultaattype(ctx, resultaattype); err != nil {
			return err
		}
	}

	roltypen, err := s.store.ListRoltypen(ctx, zaaktypeID)
	if err != nil {
		return err
	}
	for _, roltype := range roltypen {
		roltype.Concept = false
		if err := s.store.UpdateRoltype(ctx, roltype); err != nil {
			return err
		}
	}

	eigenschappen, err := s.store.ListEigenschappen(ctx, zaaktypeID)
	if err != nil {
		return err
	}
	for _, eigenschap := range eigenschappen {
		eigenschap.Concept = false
		if err := s.store.UpdateEigenschap(ctx, eigenschap); err != nil {
			return err
		}
	}

	zaakobjecttypen, err := s.store.ListZaakObjectTypen(ctx, zaaktypeID)
	if err != nil {
		return err
	}
	for _, zaakobjecttype := range zaakobjecttypen {
		zaakobjecttype.Concept = false
		if err := s.store.UpdateZaakObjectType(ctx, zaakobjecttype); err != nil {
			return err
		}
	}
	return nil
}

// checkZaaktypeRelations verifies deelzaaktypen and besluittypen share the
// catalogus and that referenced zaaktypen exist. When gateConcept is set the
// concept gate on relations to published neighbours applies too.
func (s *Service) checkZaaktypeRelations(ctx context.Context, zaaktype *catalogi.Zaaktype, gateConcept bool) error {
	scopes := authz.FromContext(ctx)
	var neighbourConcepts []bool

	for _, deelzaaktypeID := range zaaktype.Deelzaaktypen {
		deel, err := s.store.GetZaaktype(ctx, deelzaaktypeID)
		if err != nil {
			return err
		}
		if deel.CatalogusID != zaaktype.CatalogusID {
			return domainerrors.NewField("deelzaaktypen", domainerrors.CodeRelationsIncorrectCatalogus,
				"deelzaaktypen must belong to the same catalogus")
		}
		neighbourConcepts = append(neighbourConcepts, deel.Concept)
	}
	for _, gerelateerd := range zaaktype.GerelateerdeZaaktypen {
		if _, err := s.store.GetZaaktype(ctx, gerelateerd.ZaaktypeID); err != nil {
			return err
		}
	}
	for _, besluittypeID := range zaaktype.Besluittypen {
		besluittype, err := s.store.GetBesluitType(ctx, besluittypeID)
		if err != nil {
			return err
		}
		if besluittype.CatalogusID != zaaktype.CatalogusID {
			return domainerrors.NewField("besluittypen", domainerrors.CodeRelationsIncorrectCatalogus,
				"besluittypen must belong to the same catalogus")
		}
		neighbourConcepts = append(neighbourConcepts, besluittype.Concept)
	}

	if gateConcept {
		return catalogi.GateRelateOnCreate(zaaktype.Concept, neighbourConcepts, scopes)
	}
	return nil
}

// gateNewRelations applies the concept gate to relations an update adds.
func (s *Service) gateNewRelations(ctx context.Context, current, updated *catalogi.Zaaktype, scopes authz.Scopes) error {
	existing := make(map[uuid.UUID]bool, len(current.Deelzaaktypen)+len(current.Besluittypen))
	for _, id := range current.Deelzaaktypen {
		existing[id] = true
	}
	for _, id := range current.Besluittypen {
		existing[id] = true
	}

	var added []bool
	for _, id := range updated.Deelzaaktypen {
		if existing[id] {
			continue
		}
		deel, err := s.store.GetZaaktype(ctx, id)
		if err != nil {
			return err
		}
		added = append(added, deel.Concept)
	}
	for _, id := range updated.Besluittypen {
		if existing[id] {
			continue
		}
		besluittype, err := s.store.GetBesluitType(ctx, id)
		if err != nil {
			return err
		}
		added = append(added, besluittype.Concept)
	}
	return catalogi.GateRelateOnUpdate(added, false, scopes)
}

// onlyEindeGeldigheidChanged compares the mutable attribute set field by
// field; when eindeGeldigheid is the sole difference the concept gate waives.
func onlyEindeGeldigheidChanged(current, updated *catalogi.Zaaktype) bool {
	restore := updated.EindeGeldigheid
	updated.EindeGeldigheid = current.EindeGeldigheid
	same := zaaktypeAttributesEqual(current, updated)
	updated.EindeGeldigheid = restore
	return same
}

func zaaktypeAttributesEqual(a, b *catalogi.Zaaktype) bool {
	if a.Identificatie != b.Identificatie ||
		a.Omschrijving != b.Omschrijving ||
		a.Vertrouwelijkheidaanduiding != b.Vertrouwelijkheidaanduiding ||
		a.Doorlooptijd != b.Doorlooptijd ||
		a.VerlengingMogelijk != b.VerlengingMogelijk ||
		a.OpschortingMogelijk != b.OpschortingMogelijk ||
		!a.BeginGeldigheid.Equal(b.BeginGeldigheid) ||
		!a.Versiedatum.Equal(b.Versiedatum) ||
		a.SelectielijstProcestype != b.SelectielijstProcestype {
		return false
	}
	if !periodPtrEqual(a.Servicenorm, b.Servicenorm) || !periodPtrEqual(a.Verlengingstermijn, b.Verlengingstermijn) {
		return false
	}
	if !timePtrEqual(a.EindeGeldigheid, b.EindeGeldigheid) {
		return false
	}
	if len(a.Deelzaaktypen) != len(b.Deelzaaktypen) ||
		len(a.GerelateerdeZaaktypen) != len(b.GerelateerdeZaaktypen) ||
		len(a.Besluittypen) != len(b.Besluittypen) {
		return false
	}
	for i := range a.Deelzaaktypen {
		if a.Deelzaaktypen[i] != b.Deelzaaktypen[i] {
			return false
		}
	}
	for i := range a.GerelateerdeZaaktypen {
		if a.GerelateerdeZaaktypen[i] != b.GerelateerdeZaaktypen[i] {
			return false
		}
	}
	for i := range a.Besluittypen {
		if a.Besluittypen[i] != b.Besluittypen[i] {
			return false
		}
	}
	return true
}

func isDomainError(err error) bool {
	var single *domainerrors.Error
	var list domainerrors.List
	return errors.As(err, &single) || errors.As(err, &list)
}

func periodPtrEqual(a, b *period.Period) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
