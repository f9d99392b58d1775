package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/supplydesk/internal/shared"
	"github.com/odyssey-erp/supplydesk/internal/view"
)

const invalidLoginMessage = "Invalid username or password"

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	templates      *view.Engine
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	validator      *validator.Validate
	logins         LoginRecorder
}

// LoginRecorder counts login outcomes; observability.Metrics implements it.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:         logger,
		service:        service,
		templates:      templates,
		sessionManager: sessions,
		csrfManager:    csrf,
		validator:      validator.New(),
	}
}

// WithLoginRecorder attaches a login counter and returns h.
func (h *Handler) WithLoginRecorder(rec LoginRecorder) *Handler {
	h.logins = rec
	return h
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

type loginForm struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=128"`
}

type loginPageData struct {
	Form   loginForm
	Errors map[string]string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if id, ok := sess.Identity(); ok {
		http.Redirect(w, r, LandingPath(id.Role), http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, loginPageData{}, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// The password is never echoed back into the form.
	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	fieldErrors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fieldErr := range verrs {
				fieldErrors[fieldErr.Field()] = fieldErr.Field() + " is " + fieldErr.Tag()
			}
		}
		h.renderLogin(w, r, loginPageData{Form: loginForm{Username: form.Username}, Errors: fieldErrors}, http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			h.logger.Error("authenticate", slog.Any("error", err))
			h.record("error")
			status = http.StatusInternalServerError
		} else {
			h.logger.Info("login rejected", slog.String("username", form.Username), slog.String("ip", r.RemoteAddr))
			h.record("failure")
		}
		fieldErrors["general"] = invalidLoginMessage
		h.renderLogin(w, r, loginPageData{Form: loginForm{Username: form.Username}, Errors: fieldErrors}, status)
		return
	}

	h.sessionManager.Renew(sess)
	if _, err := h.csrfManager.Rotate(r.Context(), sess); err != nil {
		h.logger.Warn("rotate csrf token", slog.Any("error", err))
	}
	sess.SignIn(shared.Identity{Username: user.Username, Role: user.Role})
	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Welcome back, " + view.DisplayName(user.Username)})
	h.logger.Info("login", slog.String("username", user.Username), slog.String("role", user.Role))
	h.record("success")
	http.Redirect(w, r, LandingPath(user.Role), http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.SignOut()
		h.sessionManager.Destroy(sess)
	}
	http.Redirect(w, r, PathLogin, http.StatusSeeOther)
}

func (h *Handler) record(outcome string) {
	if h.logins != nil {
		h.logins.RecordLogin(outcome)
	}
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, data loginPageData, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrfManager.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Sign in",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, "pages/login.html", viewData); err != nil {
		h.logger.Error("render login", slog.Any("error", err))
	}
}
