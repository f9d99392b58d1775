package auth

import (
	"net/http"

	"github.com/odyssey-erp/supplydesk/internal/platform/httpx"
	"github.com/odyssey-erp/supplydesk/internal/shared"
)

// RequireLogin redirects requests without a logged-in session to the login page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !shared.SessionFromContext(r.Context()).LoggedIn() {
			http.Redirect(w, r, PathLogin, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireLoginAPI answers 401 problem JSON instead of redirecting.
func RequireLoginAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !shared.SessionFromContext(r.Context()).LoggedIn() {
			httpx.RespondError(w, shared.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
