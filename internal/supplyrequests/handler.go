package supplyrequests

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/supplydesk/internal/platform/httpx"
	"github.com/odyssey-erp/supplydesk/internal/rbac"
	"github.com/odyssey-erp/supplydesk/internal/shared"
)

// MutationRecorder counts successful writes; observability.Metrics implements it.
type MutationRecorder interface {
	RecordSupplyRequestMutation(op string)
}

// Handler exposes the supply-request JSON API.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
	metrics MutationRecorder
}

// NewHandler constructs a Handler. metrics may be nil.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware, metrics MutationRecorder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, rbac: guard, metrics: metrics}
}

// MountRoutes registers the API on r. Callers are expected to have
// already required a logged-in session.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(rbac.PermSupplyView))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.With(h.rbac.RequireAll(rbac.PermSupplyView, rbac.PermSupplyExport)).Get("/export.xlsx", h.export)
	r.With(h.rbac.RequireAny(rbac.PermSupplyCreate)).Post("/", h.create)
	r.With(h.rbac.RequireAny(rbac.PermSupplyEdit)).Put("/{id}", h.update)
	r.With(h.rbac.RequireAny(rbac.PermSupplyDelete)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListViews(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	req, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, req.ToView())
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, shared.Validation("request body must be a JSON object", nil))
		return
	}
	id, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.record("create")
	h.logger.Info("supply request created", slog.String("id", FormatID(id)), slog.String("by", actor(r)))
	httpx.JSON(w, http.StatusCreated, httpx.Message{Message: "Supply request created", ID: &id})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, shared.Validation("request body must be a JSON object", nil))
		return
	}
	if err := h.service.Update(r.Context(), id, in); err != nil {
		h.fail(w, r, err)
		return
	}
	h.record("update")
	h.logger.Info("supply request updated", slog.String("id", FormatID(id)), slog.String("by", actor(r)))
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Supply request updated"})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.record("delete")
	h.logger.Info("supply request deleted", slog.String("id", FormatID(id)), slog.String("by", actor(r)))
	httpx.JSON(w, http.StatusOK, httpx.Message{Message: "Supply request deleted"})
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListViews(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	filename := "supply-requests-" + time.Now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", ContentTypeXLSX)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	if err := WriteWorkbook(w, views); err != nil {
		h.logger.Error("export supply requests", slog.Any("error", err))
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := ParseID(raw)
	if errors.Is(err, ErrIDOutOfRange) {
		h.fail(w, r, shared.NotFound(fmt.Sprintf("supply request %s not found", raw)))
		return 0, false
	}
	if err != nil {
		h.fail(w, r, shared.Validation(err.Error(), map[string]string{"id": "must be a positive number or SR-prefixed id"}))
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if shared.CodeOf(err) == shared.CodeInternal {
		h.logger.Error("supply request api",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

func (h *Handler) record(op string) {
	if h.metrics != nil {
		h.metrics.RecordSupplyRequestMutation(op)
	}
}

func actor(r *http.Request) string {
	id, _ := shared.IdentityFromContext(r.Context())
	return id.Username
}
