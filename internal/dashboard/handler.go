// Package dashboard serves the logged-in landing pages.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/supplydesk/internal/auth"
	"github.com/odyssey-erp/supplydesk/internal/rbac"
	"github.com/odyssey-erp/supplydesk/internal/shared"
	"github.com/odyssey-erp/supplydesk/internal/supplyrequests"
	"github.com/odyssey-erp/supplydesk/internal/view"
)

// RequestLister is the slice of the supply-request service the list page needs.
type RequestLister interface {
	ListViews(ctx context.Context) ([]supplyrequests.View, error)
}

// Stats is the dashboard summary panel. Values are placeholders until the
// panel is backed by a real aggregate.
type Stats struct {
	Total     int
	Pending   int
	Approved  int
	Fulfilled int
}

type dashboardPage struct {
	Welcome string
	Stats   Stats
}

type requestsPage struct {
	Requests  []supplyrequests.View
	CanExport bool
}

// Handler renders the dashboard and the request list page.
type Handler struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
	requests  RequestLister
	rbac      *rbac.Service
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager, requests RequestLister, rbacService *rbac.Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, templates: templates, csrf: csrf, requests: requests, rbac: rbacService}
}

// MountRoutes registers the page routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.root)
	r.Get(auth.PathDashboard, h.dashboard)
	r.With(auth.RequireLogin).Get(auth.PathRequests, h.requestList)
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, auth.PathLogin, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, auth.LandingPath(id.Role), http.StatusSeeOther)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.Get(shared.SessionKeyLoggedIn) != "true" {
		http.Redirect(w, r, auth.PathLogin, http.StatusSeeOther)
		return
	}
	id, _ := sess.Identity()
	h.render(w, r, "pages/dashboard.html", "Dashboard", id, dashboardPage{
		Welcome: "Welcome, " + view.DisplayName(id.Username),
	})
}

func (h *Handler) requestList(w http.ResponseWriter, r *http.Request) {
	id, _ := shared.IdentityFromContext(r.Context())
	if h.rbac != nil && !h.rbac.Can(id.Role, rbac.PermSupplyView) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	views, err := h.requests.ListViews(r.Context())
	if err != nil {
		h.logger.Error("list supply requests for page", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, r, "pages/requests.html", "Supply requests", id, requestsPage{
		Requests:  views,
		CanExport: h.rbac != nil && h.rbac.Can(id.Role, rbac.PermSupplyExport),
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, id shared.Identity, data any) {
	sess := shared.SessionFromContext(r.Context())
	var csrfToken string
	if h.csrf != nil {
		csrfToken, _ = h.csrf.EnsureToken(r.Context(), sess)
	}
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	err := h.templates.Render(w, name, view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		User:        id,
		Data:        data,
	})
	if err != nil {
		h.logger.Error("render page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
