package httpapi

import (
	"net/http"
	"strings"
	"time"

	"municipio.org/internal/audit"
	"municipio.org/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Identity  auth.Identity `json:"identity"`
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.login(w, r)
	case http.MethodGet:
		a.whoami(w, r)
	case http.MethodDelete:
		a.logout(w, r)
	default:
		methodNotAllowed(w, r, http.MethodPost, http.MethodGet, http.MethodDelete)
	}
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	if a.loginLimit != nil && !a.loginLimit.Allow(clientIP(r)) {
		writeError(w, r, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	identity, err := a.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		_ = audit.LogEvent(r.Context(), "session.login.denied", map[string]any{
			"remote_ip": clientIP(r),
		})
		handleAuthError(w, r, err)
		return
	}

	token, expiresAt, err := a.tokens.Issue(identity)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "session issuance failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "session.login", map[string]any{
		"account_id": identity.ID,
		"role":       string(identity.Role),
	})

	setSessionCookie(w, r, token, expiresAt)
	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Identity:  identity,
	})
}

func (a *API) whoami(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	identity, err := a.auth.Identity(r.Context(), claims.AccountID)
	if err != nil {
		// The account behind a still-valid token may have been deleted.
		clearSessionCookie(w, r)
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		_ = audit.LogEvent(r.Context(), "session.logout", nil)
	}
	clearSessionCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}
