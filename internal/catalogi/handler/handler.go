// Package handler exposes the catalogi API over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"zaakregister/internal/authz"
	"zaakregister/internal/catalogi"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/platform/httputil"
)

// Service defines the catalogi operations the handler exposes.
type Service interface {
	CreateCatalogus(ctx context.Context, domein, rsin string) (*catalogi.Catalogus, error)
	GetCatalogus(ctx context.Context, id uuid.UUID) (*catalogi.Catalogus, error)

	CreateZaaktype(ctx context.Context, zaaktype *catalogi.Zaaktype) (*catalogi.Zaaktype, error)
	GetZaaktype(ctx context.Context, id uuid.UUID) (*catalogi.Zaaktype, error)
	ListZaaktypen(ctx context.Context, catalogusID uuid.UUID) ([]*catalogi.Zaaktype, error)
	UpdateZaaktype(ctx context.Context, zaaktype *catalogi.Zaaktype) (*catalogi.Zaaktype, error)
	DeleteZaaktype(ctx context.Context, id uuid.UUID) error
	PublishZaaktype(ctx context.Context, id uuid.UUID) (*catalogi.Zaaktype, error)

	CreateStatustype(ctx context.Context, statustype *catalogi.Statustype) (*catalogi.Statustype, error)
	GetStatustype(ctx context.Context, id uuid.UUID) (*catalogi.Statustype, error)
	ListStatustypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.Statustype, error)
	DeleteStatustype(ctx context.Context, id uuid.UUID) error

	CreateResultaattype(ctx context.Context, resultaattype *catalogi.Resultaattype) (*catalogi.Resultaattype, error)
	GetResultaattype(ctx context.Context, id uuid.UUID) (*catalogi.Resultaattype, error)
	ListResultaattypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.Resultaattype, error)
	UpdateResultaattype(ctx context.Context, resultaattype *catalogi.Resultaattype) (*catalogi.Resultaattype, error)
	DeleteResultaattype(ctx context.Context, id uuid.UUID) error

	CreateRoltype(ctx context.Context, roltype *catalogi.Roltype) (*catalogi.Roltype, error)
	GetRoltype(ctx context.Context, id uuid.UUID) (*catalogi.Roltype, error)
	ListRoltypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.Roltype, error)
	DeleteRoltype(ctx context.Context, id uuid.UUID) error

	CreateEigenschap(ctx context.Context, eigenschap *catalogi.Eigenschap) (*catalogi.Eigenschap, error)
	ListEigenschappen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.Eigenschap, error)
	DeleteEigenschap(ctx context.Context, id uuid.UUID) error

	CreateZaakObjectType(ctx context.Context, zaakobjecttype *catalogi.ZaakObjectType) (*catalogi.ZaakObjectType, error)
	ListZaakObjectTypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.ZaakObjectType, error)
	DeleteZaakObjectType(ctx context.Context, id uuid.UUID) error

	CreateInformatieObjectType(ctx context.Context, informatieobjecttype *catalogi.InformatieObjectType) (*catalogi.InformatieObjectType, error)
	GetInformatieObjectType(ctx context.Context, id uuid.UUID) (*catalogi.InformatieObjectType, error)
	PublishInformatieObjectType(ctx context.Context, id uuid.UUID) (*catalogi.InformatieObjectType, error)
	DeleteInformatieObjectType(ctx context.Context, id uuid.UUID) error

	CreateBesluitType(ctx context.Context, besluittype *catalogi.BesluitType) (*catalogi.BesluitType, error)
	GetBesluitType(ctx context.Context, id uuid.UUID) (*catalogi.BesluitType, error)
	UpdateBesluitType(ctx context.Context, besluittype *catalogi.BesluitType) (*catalogi.BesluitType, error)
	PublishBesluitType(ctx context.Context, id uuid.UUID) (*catalogi.BesluitType, error)
	DeleteBesluitType(ctx context.Context, id uuid.UUID) error

	CreateZaaktypeInformatieObjectType(ctx context.Context, relation *catalogi.ZaaktypeInformatieObjectType) (*catalogi.ZaaktypeInformatieObjectType, error)
	ListZaaktypeInformatieObjectTypen(ctx context.Context, zaaktypeID uuid.UUID) ([]*catalogi.ZaaktypeInformatieObjectType, error)
	DeleteZaaktypeInformatieObjectType(ctx context.Context, id uuid.UUID) error
}

// Handler wires catalogi endpoints to the catalogi service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a catalogi handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the catalogi endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/catalogussen", func(r chi.Router) {
		r.Post("/", h.createCatalogus)
		r.Get("/{id}", h.getCatalogus)
	})

	r.Route("/zaaktypen", func(r chi.Router) {
		r.Post("/", h.createZaaktype)
		r.Get("/", h.listZaaktypen)
		r.Get("/{id}", h.getZaaktype)
		r.Put("/{id}", h.updateZaaktype)
		r.Delete("/{id}", h.deleteZaaktype)
		r.Post("/{id}/publish", h.publishZaaktype)
	})

	r.Route("/statustypen", func(r chi.Router) {
		r.Post("/", h.createStatustype)
		r.Get("/", h.listStatustypen)
		r.Get("/{id}", h.getStatustype)
		r.Delete("/{id}", h.deleteStatustype)
	})

	r.Route("/resultaattypen", func(r chi.Router) {
		r.Post("/", h.createResultaattype)
		r.Get("/", h.listResultaattypen)
		r.Get("/{id}", h.getResultaattype)
		r.Put("/{id}", h.updateResultaattype)
		r.Delete("/{id}", h.deleteResultaattype)
	})

	r.Route("/roltypen", func(r chi.Router) {
		r.Post("/", h.createRoltype)
		r.Get("/", h.listRoltypen)
		r.Get("/{id}", h.getRoltype)
		r.Delete("/{id}", h.deleteRoltype)
	})

	r.Route("/eigenschappen", func(r chi.Router) {
		r.Post("/", h.createEigenschap)
		r.Get("/", h.listEigenschappen)
		r.Delete("/{id}", h.deleteEigenschap)
	})

	r.Route("/zaakobjecttypen", func(r chi.Router) {
		r.Post("/", h.createZaakObjectType)
		r.Get("/", h.listZaakObjectTypen)
		r.Delete("/{id}", h.deleteZaakObjectType)
	})

	r.Route("/informatieobjecttypen", func(r chi.Router) {
		r.Post("/", h.createInformatieObjectType)
		r.Get("/{id}", h.getInformatieObjectType)
		r.Post("/{id}/publish", h.publishInformatieObjectType)
		r.Delete("/{id}", h.deleteInformatieObjectType)
	})

	r.Route("/besluittypen", func(r chi.Router) {
		r.Post("/", h.createBesluitType)
		r.Get("/{id}", h.getBesluitType)
		r.Put("/{id}", h.updateBesluitType)
		r.Post("/{id}/publish", h.publishBesluitType)
		r.Delete("/{id}", h.deleteBesluitType)
	})

	r.Route("/zaaktype-informatieobjecttypen", func(r chi.Router) {
		r.Post("/", h.createZaaktypeInformatieObjectType)
		r.Get("/", h.listZaaktypeInformatieObjectTypen)
		r.Delete("/{id}", h.deleteZaaktypeInformatieObjectType)
	})
}

func (h *Handler) requireScope(w http.ResponseWriter, r *http.Request, scopes ...authz.Scope) bool {
	if authz.FromContext(r.Context()).HasAny(scopes...) {
		return true
	}
	httputil.WriteError(w, domainerrors.New(domainerrors.CodePermissionDenied, "the client is missing the required scope"))
	return false
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, domainerrors.NewField("id", domainerrors.CodeInvalid, "must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func queryID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		httputil.WriteError(w, domainerrors.NewField(name, domainerrors.CodeRequired, "query parameter is required"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httputil.WriteError(w, domainerrors.NewField(name, domainerrors.CodeInvalid, "must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) createCatalogus(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	req, ok := httputil.Decode[*CreateCatalogusRequest](w, r, h.logger)
	if !ok {
		return
	}
	catalogus, err := h.service.CreateCatalogus(r.Context(), req.Domein, req.RSIN)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromCatalogus(catalogus))
}

func (h *Handler) getCatalogus(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	catalogus, err := h.service.GetCatalogus(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromCatalogus(catalogus))
}

func (h *Handler) createZaaktype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	req, ok := httputil.Decode[*ZaaktypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	zaaktype, err := h.service.CreateZaaktype(r.Context(), req.Zaaktype())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromZaaktype(zaaktype))
}

func (h *Handler) listZaaktypen(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	catalogusID, ok := queryID(w, r, "catalogus")
	if !ok {
		return
	}
	zaaktypen, err := h.service.ListZaaktypen(r.Context(), catalogusID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaaktypen(zaaktypen))
}

func (h *Handler) getZaaktype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	zaaktype, err := h.service.GetZaaktype(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaaktype(zaaktype))
}

func (h *Handler) updateZaaktype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[*ZaaktypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	zaaktype := req.Zaaktype()
	zaaktype.ID = id
	updated, err := h.service.UpdateZaaktype(r.Context(), zaaktype)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaaktype(updated))
}

func (h *Handler) deleteZaaktype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiVerwijderen, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteZaaktype(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) publishZaaktype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	zaaktype, err := h.service.PublishZaaktype(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaaktype(zaaktype))
}

func (h *Handler) createStatustype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	req, ok := httputil.Decode[*StatustypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	statustype, err := h.service.CreateStatustype(r.Context(), req.Statustype())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromStatustype(statustype))
}

func (h *Handler) listStatustypen(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	zaaktypeID, ok := queryID(w, r, "zaaktype")
	if !ok {
		return
	}
	statustypen, err := h.service.ListStatustypen(r.Context(), zaaktypeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStatustypen(statustypen))
}

func (h *Handler) getStatustype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	statustype, err := h.service.GetStatustype(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStatustype(statustype))
}

func (h *Handler) deleteStatustype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteStatustype(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createResultaattype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	req, ok := httputil.Decode[*ResultaattypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	resultaattype, err := h.service.CreateResultaattype(r.Context(), req.Resultaattype())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromResultaattype(resultaattype))
}

func (h *Handler) listResultaattypen(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	zaaktypeID, ok := queryID(w, r, "zaaktype")
	if !ok {
		return
	}
	resultaattypen, err := h.service.ListResultaattypen(r.Context(), zaaktypeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromResultaattypen(resultaattypen))
}

func (h *Handler) getResultaattype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	resultaattype, err := h.service.GetResultaattype(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromResultaattype(resultaattype))
}

func (h *Handler) updateResultaattype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[*ResultaattypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	resultaattype := req.Resultaattype()
	resultaattype.ID = id
	updated, err := h.service.UpdateResultaattype(r.Context(), resultaattype)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromResultaattype(updated))
}

func (h *Handler) deleteResultaattype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteResultaattype(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createRoltype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	req, ok := httputil.Decode[*RoltypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	roltype, err := h.service.CreateRoltype(r.Context(), req.Roltype())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromRoltype(roltype))
}

func (h *Handler) listRoltypen(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	zaaktypeID, ok := queryID(w, r, "zaaktype")
	if !ok {
		return
	}
	roltypen, err := h.service.ListRoltypen(r.Context(), zaaktypeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRoltypen(roltypen))
}

func (h *Handler) getRoltype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	roltype, err := h.service.GetRoltype(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRoltype(roltype))
}

func (h *Handler) deleteRoltype(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteRoltype(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createEigenschap(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	req, ok := httputil.Decode[*EigenschapRequest](w, r, h.logger)
	if !ok {
		return
	}
	eigenschap, err := h.service.CreateEigenschap(r.Context(), req.Eigenschap())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromEigenschap(eigenschap))
}

func (h *Handler) listEigenschappen(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	zaaktypeID, ok := queryID(w, r, "zaaktype")
	if !ok {
		return
	}
	eigenschappen, err := h.service.ListEigenschappen(r.Context(), zaaktypeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]*EigenschapResponse, 0, len(eigenschappen))
	for _, eigenschap := range eigenschappen {
		out = append(out, FromEigenschap(eigenschap))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) deleteEigenschap(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteEigenschap(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createZaakObjectType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	req, ok := httputil.Decode[*ZaakObjectTypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	zaakobjecttype, err := h.service.CreateZaakObjectType(r.Context(), req.ZaakObjectType())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromZaakObjectType(zaakobjecttype))
}

func (h *Handler) listZaakObjectTypen(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	zaaktypeID, ok := queryID(w, r, "zaaktype")
	if !ok {
		return
	}
	zaakobjecttypen, err := h.service.ListZaakObjectTypen(r.Context(), zaaktypeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]*ZaakObjectTypeResponse, 0, len(zaakobjecttypen))
	for _, zaakobjecttype := range zaakobjecttypen {
		out = append(out, FromZaakObjectType(zaakobjecttype))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) deleteZaakObjectType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteZaakObjectType(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createInformatieObjectType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	req, ok := httputil.Decode[*InformatieObjectTypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	informatieobjecttype, err := h.service.CreateInformatieObjectType(r.Context(), req.InformatieObjectType())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromInformatieObjectType(informatieobjecttype))
}

func (h *Handler) getInformatieObjectType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	informatieobjecttype, err := h.service.GetInformatieObjectType(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromInformatieObjectType(informatieobjecttype))
}

func (h *Handler) publishInformatieObjectType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	informatieobjecttype, err := h.service.PublishInformatieObjectType(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromInformatieObjectType(informatieobjecttype))
}

func (h *Handler) deleteInformatieObjectType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiVerwijderen, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteInformatieObjectType(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createBesluitType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	req, ok := httputil.Decode[*BesluitTypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	besluittype, err := h.service.CreateBesluitType(r.Context(), req.BesluitType())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromBesluitType(besluittype))
}

func (h *Handler) getBesluitType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	besluittype, err := h.service.GetBesluitType(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromBesluitType(besluittype))
}

func (h *Handler) updateBesluitType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[*BesluitTypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	besluittype := req.BesluitType()
	besluittype.ID = id
	updated, err := h.service.UpdateBesluitType(r.Context(), besluittype)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromBesluitType(updated))
}

func (h *Handler) publishBesluitType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	besluittype, err := h.service.PublishBesluitType(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromBesluitType(besluittype))
}

func (h *Handler) deleteBesluitType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiVerwijderen, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteBesluitType(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createZaaktypeInformatieObjectType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	req, ok := httputil.Decode[*ZaaktypeInformatieObjectTypeRequest](w, r, h.logger)
	if !ok {
		return
	}
	relation, err := h.service.CreateZaaktypeInformatieObjectType(r.Context(), req.Relation())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromZaaktypeInformatieObjectType(relation))
}

func (h *Handler) listZaaktypeInformatieObjectTypen(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiLezen, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	zaaktypeID, ok := queryID(w, r, "zaaktype")
	if !ok {
		return
	}
	relations, err := h.service.ListZaaktypeInformatieObjectTypen(r.Context(), zaaktypeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]*ZaaktypeInformatieObjectTypeResponse, 0, len(relations))
	for _, relation := range relations {
		out = append(out, FromZaaktypeInformatieObjectType(relation))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) deleteZaaktypeInformatieObjectType(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeCatalogiSchrijven, authz.ScopeCatalogiGeforceerdBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteZaaktypeInformatieObjectType(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
