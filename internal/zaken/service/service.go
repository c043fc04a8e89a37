// Package service orchestrates case operations: registration, the status
// lifecycle with closure and reopening, and the archival attributes derived
// at closure.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"zaakregister/internal/authz"
	"zaakregister/internal/catalogi"
	"zaakregister/internal/documenten"
	"zaakregister/internal/notificaties"
	"zaakregister/internal/objecten"
	"zaakregister/internal/zaken"
	"zaakregister/internal/zaken/metrics"
	"zaakregister/pkg/domainerrors"
)

var tracer = otel.Tracer("zaakregister/zaken")

// TypeCatalog is the slice of the catalogi store the zaken module reads.
// Cases reference type definitions but never mutate them.
type TypeCatalog interface {
	GetZaaktype(ctx context.Context, id uuid.UUID) (*catalogi.Zaaktype, error)
	ListStatustypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.Statustype, error)
	GetStatustype(ctx context.Context, id uuid.UUID) (*catalogi.Statustype, error)
	GetResultaattype(ctx context.Context, id uuid.UUID) (*catalogi.Resultaattype, error)
	GetRoltype(ctx context.Context, id uuid.UUID) (*catalogi.Roltype, error)
	GetEigenschap(ctx context.Context, id uuid.UUID) (*catalogi.Eigenschap, error)
	GetZaakObjectType(ctx context.Context, id uuid.UUID) (*catalogi.ZaakObjectType, error)
}

// Config carries the tunable behaviour of the zaken module.
type Config struct {
	// ReserveIdentificatieEnabled exposes the stand-alone reservation
	// operation. Auto-generation during create always works.
	ReserveIdentificatieEnabled bool
}

// Service orchestrates case management.
type Service struct {
	store     zaken.Store
	types     TypeCatalog
	documents documenten.Client
	resolver  *zaken.Resolver
	publisher notificaties.Publisher
	config    Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
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

func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs a Service.
func New(store zaken.Store, types TypeCatalog, documents documenten.Client, objects objecten.Client, opts ...Option) *Service {
	s := &Service{
		store:     store,
		types:     types,
		documents: documents,
		resolver:  zaken.NewResolver(store, objects),
		config:    Config{ReserveIdentificatieEnabled: true},
		logger:    slog.Default(),
		now:       time.Now,
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

// CreateZaak registers a new case against a published zaaktype. An omitted
// identificatie is generated from the per-(bronorganisatie, year) sequence; a
// provided one consumes its reservation when one exists.
func (s *Service) CreateZaak(ctx context.Context, zaak *zaken.Zaak) (*zaken.Zaak, error) {
	if zaak.ID == uuid.Nil {
		zaak.ID = uuid.New()
	}
	if zaak.Registratiedatum.IsZero() {
		zaak.Registratiedatum = s.now().UTC().Truncate(24 * time.Hour)
	}
	if zaak.Archiefstatus == "" {
		zaak.Archiefstatus = zaken.ArchiefstatusNogTeArchiveren
	}
	if zaak.Betalingsindicatie == "" {
		zaak.Betalingsindicatie = zaken.BetalingsindicatieNvt
	}
	if err := zaak.Validate(); err != nil {
		return nil, err
	}

	zaaktype, err := s.types.GetZaaktype(ctx, zaak.ZaaktypeID)
	if err != nil {
		return nil, err
	}
	if zaaktype.Concept {
		return nil, domainerrors.NewField("zaaktype", domainerrors.CodeInvalid,
			"cases cannot be created against a concept zaaktype")
	}
	if zaak.Vertrouwelijkheidaanduiding == "" {
		zaak.Vertrouwelijkheidaanduiding = zaaktype.Vertrouwelijkheidaanduiding
	}

	if zaak.HoofdzaakID != nil {
		if err := s.checkHoofdzaak(ctx, zaak, zaaktype); err != nil {
			return nil, err
		}
	}

	err = s.store.InTx(ctx, func(ctx context.Context) error {
		if zaak.Identificatie == "" {
			reservation, err := s.store.ReserveIdentificatie(ctx, zaak.Bronorganisatie, zaak.Startdatum.Year())
			if err != nil {
				return err
			}
			zaak.Identificatie = reservation.Identificatie
		}
		if err := s.store.ConsumeIdentificatie(ctx, zaak.Bronorganisatie, zaak.Identificatie); err != nil {
			return err
		}
		return s.store.CreateZaak(ctx, zaak)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("zaak created", "id", zaak.ID, "identificatie", zaak.Identificatie, "zaaktype", zaak.ZaaktypeID)
	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaken,
		Hoofdobject: zaak.ID.String(),
		Resource:    "zaak",
		ResourceID:  zaak.ID.String(),
		Actie:       notificaties.ActieCreate,
		Kenmerken: map[string]string{
			"bronorganisatie": zaak.Bronorganisatie,
			"zaaktype":        zaak.ZaaktypeID.String(),
		},
	})
	return zaak, nil
}

func (s *Service) checkHoofdzaak(ctx context.Context, zaak *zaken.Zaak, zaaktype *catalogi.Zaaktype) error {
	if *zaak.HoofdzaakID == zaak.ID {
		return domainerrors.NewField("hoofdzaak", domainerrors.CodeSelfForbidden, "a zaak cannot be its own hoofdzaak")
	}
	hoofdzaak, err := s.store.GetZaak(ctx, *zaak.HoofdzaakID)
	if err != nil {
		return err
	}
	if hoofdzaak.HoofdzaakID != nil {
		return domainerrors.NewField("hoofdzaak", domainerrors.CodeDeelzaakAlsHoofdzaak,
			"the hoofdzaak is itself a deelzaak")
	}
	hoofdzaaktype, err := s.types.GetZaaktype(ctx, hoofdzaak.ZaaktypeID)
	if err != nil {
		return err
	}
	for _, deelzaaktypeID := range hoofdzaaktype.Deelzaaktypen {
		if deelzaaktypeID == zaaktype.ID {
			return nil
		}
	}
	return domainerrors.NewField("hoofdzaak", domainerrors.CodeInvalid,
		"the hoofdzaak's zaaktype does not list this zaaktype among its deelzaaktypen")
}

func (s *Service) GetZaak(ctx context.Context, id uuid.UUID) (*zaken.Zaak, error) {
	return s.store.GetZaak(ctx, id)
}

func (s *Service) ListZaken(ctx context.Context, bronorganisatie string) ([]*zaken.Zaak, error) {
	return s.store.ListZaken(ctx, bronorganisatie)
}

func (s *Service) ListDeelzaken(ctx context.Context, hoofdzaakID uuid.UUID) ([]*zaken.Zaak, error) {
	return s.store.ListDeelzaken(ctx, hoofdzaakID)
}

// UpdateZaak applies attribute changes. Derived fields keep their stored
// values: einddatum belongs to the status engine and the archival pair to the
// closure computation.
func (s *Service) UpdateZaak(ctx context.Context, zaak *zaken.Zaak) (*zaken.Zaak, error) {
	current, err := s.store.GetZaak(ctx, zaak.ID)
	if err != nil {
		return nil, err
	}
	zaak.Identificatie = current.Identificatie
	zaak.Bronorganisatie = current.Bronorganisatie
	zaak.ZaaktypeID = current.ZaaktypeID
	zaak.Einddatum = current.Einddatum
	zaak.Archiefnominatie = current.Archiefnominatie
	zaak.Archiefactiedatum = current.Archiefactiedatum
	zaak.Archiefstatus = current.Archiefstatus
	zaak.ArchiefnominatieBerekend = current.ArchiefnominatieBerekend
	zaak.ArchiefactiedatumBerekend = current.ArchiefactiedatumBerekend
	if err := zaak.Validate(); err != nil {
		return nil, err
	}

	if zaak.HoofdzaakID != nil && (current.HoofdzaakID == nil || *current.HoofdzaakID != *zaak.HoofdzaakID) {
		zaaktype, err := s.types.GetZaaktype(ctx, zaak.ZaaktypeID)
		if err != nil {
			return nil, err
		}
		if err := s.checkHoofdzaak(ctx, zaak, zaaktype); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdateZaak(ctx, zaak); err != nil {
		return nil, err
	}
	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaken,
		Hoofdobject: zaak.ID.String(),
		Resource:    "zaak",
		ResourceID:  zaak.ID.String(),
		Actie:       notificaties.ActieUpdate,
	})
	return zaak, nil
}

func (s *Service) DeleteZaak(ctx context.Context, id uuid.UUID) error {
	zaak, err := s.store.GetZaak(ctx, id)
	if err != nil {
		return err
	}
	deelzaken, err := s.store.ListDeelzaken(ctx, id)
	if err != nil {
		return err
	}
	if len(deelzaken) > 0 {
		return domainerrors.NewField("hoofdzaak", domainerrors.CodeInvalid,
			"the zaak still has deelzaken")
	}
	if err := s.store.DeleteZaak(ctx, id); err != nil {
		return err
	}
	s.logger.Info("zaak deleted", "id", id, "identificatie", zaak.Identificatie)
	s.notify(ctx, notificaties.Event{
		Kanaal:      notificaties.KanaalZaken,
		Hoofdobject: id.String(),
		Resource:    "zaak",
		ResourceID:  id.String(),
		Actie:       notificaties.ActieDestroy,
	})
	return nil
}

// ReserveIdentificatie allocates a case number ahead of creation. The
// reservation is consumed by the first create that uses it.
func (s *Service) ReserveIdentificatie(ctx context.Context, bronorganisatie string, jaar int) (*zaken.ZaakIdentificatie, error) {
	if !s.config.ReserveIdentificatieEnabled {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "identificatie reservation is disabled")
	}
	if !authz.FromContext(ctx).Has(authz.ScopeZakenAanmaken) {
		return nil, domainerrors.New(domainerrors.CodePermissionDenied, "scope zaken.aanmaken is required")
	}
	return s.store.ReserveIdentificatie(ctx, bronorganisatie, jaar)
}
