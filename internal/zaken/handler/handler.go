// Package handler exposes the zaken API over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"zaakregister/internal/authz"
	"zaakregister/internal/zaken"
	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/platform/httputil"
)

// Service defines the zaken operations the handler exposes.
type Service interface {
	CreateZaak(ctx context.Context, zaak *zaken.Zaak) (*zaken.Zaak, error)
	GetZaak(ctx context.Context, id uuid.UUID) (*zaken.Zaak, error)
	ListZaken(ctx context.Context, bronorganisatie string) ([]*zaken.Zaak, error)
	ListDeelzaken(ctx context.Context, hoofdzaakID uuid.UUID) ([]*zaken.Zaak, error)
	UpdateZaak(ctx context.Context, zaak *zaken.Zaak) (*zaken.Zaak, error)
	DeleteZaak(ctx context.Context, id uuid.UUID) error
	UpdateArchiefstatus(ctx context.Context, zaakID uuid.UUID, archiefstatus zaken.Archiefstatus) (*zaken.Zaak, error)
	ReserveIdentificatie(ctx context.Context, bronorganisatie string, jaar int) (*zaken.ZaakIdentificatie, error)

	AddStatus(ctx context.Context, zaakID, statustypeID uuid.UUID, datumStatusGezet time.Time, toelichting string) (*zaken.Status, error)
	ListStatussen(ctx context.Context, zaakID uuid.UUID) ([]*zaken.Status, error)

	SetResultaat(ctx context.Context, zaakID, resultaattypeID uuid.UUID, toelichting string) (*zaken.Resultaat, error)
	GetResultaat(ctx context.Context, zaakID uuid.UUID) (*zaken.Resultaat, error)
	DeleteResultaat(ctx context.Context, id uuid.UUID) error

	AddRol(ctx context.Context, rol *zaken.Rol) (*zaken.Rol, error)
	ListRollen(ctx context.Context, zaakID uuid.UUID) ([]*zaken.Rol, error)
	DeleteRol(ctx context.Context, id uuid.UUID) error

	AddZaakEigenschap(ctx context.Context, zaakID, eigenschapID uuid.UUID, waarde string) (*zaken.ZaakEigenschap, error)
	ListZaakEigenschappen(ctx context.Context, zaakID uuid.UUID) ([]*zaken.ZaakEigenschap, error)

	AddZaakObject(ctx context.Context, zaakobject *zaken.ZaakObject) (*zaken.ZaakObject, error)
	ListZaakObjecten(ctx context.Context, zaakID uuid.UUID) ([]*zaken.ZaakObject, error)

	AddBesluit(ctx context.Context, besluit *zaken.Besluit) (*zaken.Besluit, error)
	ListBesluiten(ctx context.Context, zaakID uuid.UUID) ([]*zaken.Besluit, error)

	AddZaakInformatieObject(ctx context.Context, zio *zaken.ZaakInformatieObject) (*zaken.ZaakInformatieObject, error)
	ListZaakInformatieObjecten(ctx context.Context, zaakID uuid.UUID) ([]*zaken.ZaakInformatieObject, error)
}

// Handler wires zaken endpoints to the zaken service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a zaken handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the zaken endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/zaken", func(r chi.Router) {
		r.Post("/", h.createZaak)
		r.Get("/", h.listZaken)
		r.Get("/{id}", h.getZaak)
		r.Put("/{id}", h.updateZaak)
		r.Delete("/{id}", h.deleteZaak)
		r.Get("/{id}/deelzaken", h.listDeelzaken)
		r.Put("/{id}/archiefstatus", h.updateArchiefstatus)
	})

	r.Route("/zaakidentificaties", func(r chi.Router) {
		r.Post("/", h.reserveIdentificatie)
	})

	r.Route("/statussen", func(r chi.Router) {
		r.Post("/", h.addStatus)
		r.Get("/", h.listStatussen)
	})

	r.Route("/resultaten", func(r chi.Router) {
		r.Post("/", h.setResultaat)
		r.Get("/", h.getResultaat)
		r.Delete("/{id}", h.deleteResultaat)
	})

	r.Route("/rollen", func(r chi.Router) {
		r.Post("/", h.addRol)
		r.Get("/", h.listRollen)
		r.Delete("/{id}", h.deleteRol)
	})

	r.Route("/zaakeigenschappen", func(r chi.Router) {
		r.Post("/", h.addZaakEigenschap)
		r.Get("/", h.listZaakEigenschappen)
	})

	r.Route("/zaakobjecten", func(r chi.Router) {
		r.Post("/", h.addZaakObject)
		r.Get("/", h.listZaakObjecten)
	})

	r.Route("/besluiten", func(r chi.Router) {
		r.Post("/", h.addBesluit)
		r.Get("/", h.listBesluiten)
	})

	r.Route("/zaakinformatieobjecten", func(r chi.Router) {
		r.Post("/", h.addZaakInformatieObject)
		r.Get("/", h.listZaakInformatieObjecten)
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

func (h *Handler) createZaak(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenAanmaken) {
		return
	}
	req, ok := httputil.Decode[*ZaakRequest](w, r, h.logger)
	if !ok {
		return
	}
	zaak, err := h.service.CreateZaak(r.Context(), req.Zaak())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromZaak(zaak))
}

func (h *Handler) listZaken(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenLezen, authz.ScopeZakenBijwerken) {
		return
	}
	zakenList, err := h.service.ListZaken(r.Context(), r.URL.Query().Get("bronorganisatie"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaken(zakenList))
}

func (h *Handler) getZaak(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenLezen, authz.ScopeZakenBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	zaak, err := h.service.GetZaak(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaak(zaak))
}

func (h *Handler) updateZaak(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[*ZaakRequest](w, r, h.logger)
	if !ok {
		return
	}
	zaak := req.Zaak()
	zaak.ID = id
	updated, err := h.service.UpdateZaak(r.Context(), zaak)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaak(updated))
}

func (h *Handler) deleteZaak(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenVerwijderen) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteZaak(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listDeelzaken(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenLezen, authz.ScopeZakenBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deelzaken, err := h.service.ListDeelzaken(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaken(deelzaken))
}

func (h *Handler) updateArchiefstatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.Decode[*ArchiefstatusRequest](w, r, h.logger)
	if !ok {
		return
	}
	zaak, err := h.service.UpdateArchiefstatus(r.Context(), id, req.parsed)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaak(zaak))
}

func (h *Handler) reserveIdentificatie(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenAanmaken) {
		return
	}
	req, ok := httputil.Decode[*ReserveIdentificatieRequest](w, r, h.logger)
	if !ok {
		return
	}
	reservation, err := h.service.ReserveIdentificatie(r.Context(), req.Bronorganisatie, req.Jaar)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromZaakIdentificatie(reservation))
}

// addStatus leaves the fine-grained rules (creator-only initial status,
// reopen scope) to the service; only the coarse access check happens here.
func (h *Handler) addStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeStatussenToevoegen, authz.ScopeZakenAanmaken) {
		return
	}
	req, ok := httputil.Decode[*StatusRequest](w, r, h.logger)
	if !ok {
		return
	}
	status, err := h.service.AddStatus(r.Context(), req.parsedZaakID, req.parsedStatustypeID, req.parsedDatum, req.Statustoelichting)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromStatus(status))
}

func (h *Handler) listStatussen(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenLezen, authz.ScopeZakenBijwerken) {
		return
	}
	zaakID, ok := queryID(w, r, "zaak")
	if !ok {
		return
	}
	statussen, err := h.service.ListStatussen(r.Context(), zaakID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStatussen(statussen))
}

func (h *Handler) setResultaat(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenBijwerken, authz.ScopeZakenAanmaken) {
		return
	}
	req, ok := httputil.Decode[*ResultaatRequest](w, r, h.logger)
	if !ok {
		return
	}
	resultaat, err := h.service.SetResultaat(r.Context(), req.parsedZaakID, req.parsedResultaattypeID, req.Toelichting)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromResultaat(resultaat))
}

func (h *Handler) getResultaat(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenLezen, authz.ScopeZakenBijwerken) {
		return
	}
	zaakID, ok := queryID(w, r, "zaak")
	if !ok {
		return
	}
	resultaat, err := h.service.GetResultaat(r.Context(), zaakID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromResultaat(resultaat))
}

func (h *Handler) deleteResultaat(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteResultaat(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addRol(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenBijwerken, authz.ScopeZakenAanmaken) {
		return
	}
	req, ok := httputil.Decode[*RolRequest](w, r, h.logger)
	if !ok {
		return
	}
	rol, err := h.service.AddRol(r.Context(), req.Rol())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromRol(rol))
}

func (h *Handler) listRollen(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenLezen, authz.ScopeZakenBijwerken) {
		return
	}
	zaakID, ok := queryID(w, r, "zaak")
	if !ok {
		return
	}
	rollen, err := h.service.ListRollen(r.Context(), zaakID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRollen(rollen))
}

func (h *Handler) deleteRol(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenBijwerken) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteRol(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addZaakEigenschap(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenBijwerken, authz.ScopeZakenAanmaken) {
		return
	}
	req, ok := httputil.Decode[*ZaakEigenschapRequest](w, r, h.logger)
	if !ok {
		return
	}
	eigenschap, err := h.service.AddZaakEigenschap(r.Context(), req.parsedZaakID, req.parsedEigenschapID, req.Waarde)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromZaakEigenschap(eigenschap))
}

func (h *Handler) listZaakEigenschappen(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenLezen, authz.ScopeZakenBijwerken) {
		return
	}
	zaakID, ok := queryID(w, r, "zaak")
	if !ok {
		return
	}
	eigenschappen, err := h.service.ListZaakEigenschappen(r.Context(), zaakID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaakEigenschappen(eigenschappen))
}

func (h *Handler) addZaakObject(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenBijwerken, authz.ScopeZakenAanmaken) {
		return
	}
	req, ok := httputil.Decode[*ZaakObjectRequest](w, r, h.logger)
	if !ok {
		return
	}
	zaakobject, err := h.service.AddZaakObject(r.Context(), req.ZaakObject())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromZaakObject(zaakobject))
}

func (h *Handler) listZaakObjecten(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenLezen, authz.ScopeZakenBijwerken) {
		return
	}
	zaakID, ok := queryID(w, r, "zaak")
	if !ok {
		return
	}
	zaakobjecten, err := h.service.ListZaakObjecten(r.Context(), zaakID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaakObjecten(zaakobjecten))
}

func (h *Handler) addBesluit(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenBijwerken, authz.ScopeZakenAanmaken) {
		return
	}
	req, ok := httputil.Decode[*BesluitRequest](w, r, h.logger)
	if !ok {
		return
	}
	besluit, err := h.service.AddBesluit(r.Context(), req.Besluit())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromBesluit(besluit))
}

func (h *Handler) listBesluiten(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenLezen, authz.ScopeZakenBijwerken) {
		return
	}
	zaakID, ok := queryID(w, r, "zaak")
	if !ok {
		return
	}
	besluiten, err := h.service.ListBesluiten(r.Context(), zaakID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromBesluiten(besluiten))
}

func (h *Handler) addZaakInformatieObject(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenBijwerken, authz.ScopeZakenAanmaken) {
		return
	}
	req, ok := httputil.Decode[*ZaakInformatieObjectRequest](w, r, h.logger)
	if !ok {
		return
	}
	zio, err := h.service.AddZaakInformatieObject(r.Context(), req.ZaakInformatieObject())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromZaakInformatieObject(zio))
}

func (h *Handler) listZaakInformatieObjecten(w http.ResponseWriter, r *http.Request) {
	if !h.requireScope(w, r, authz.ScopeZakenLezen, authz.ScopeZakenBijwerken) {
		return
	}
	zaakID, ok := queryID(w, r, "zaak")
	if !ok {
		return
	}
	zios, err := h.service.ListZaakInformatieObjecten(r.Context(), zaakID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromZaakInformatieObjecten(zios))
}
