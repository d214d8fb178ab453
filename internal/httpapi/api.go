// Package httpapi is the HTTP layer of the municipal portal: public
// informational endpoints plus the authenticated admin surface.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"municipio.org/internal/audit"
	"municipio.org/internal/auth"
	"municipio.org/internal/obs"
	"municipio.org/internal/portal"
	"municipio.org/internal/upload"
)

// ReadyProbe reports readiness, pinging the database when one is configured.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Options wires the API's collaborators.
type Options struct {
	Auth    *auth.Service
	Tokens  *auth.Tokens
	Portal  *portal.Service
	Uploads *upload.Saver

	ReadyProbe ReadyProbe
	Version    string

	// UploadDir, when set, is served read-only under /uploads/.
	UploadDir string

	// Global per-IP throttling, applied to every request.
	RateBurst  int
	RatePerSec int

	// Login throttling, applied only to POST /v1/session.
	LoginBurst  int
	LoginPerSec int
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	auth       *auth.Service
	tokens     *auth.Tokens
	portal     *portal.Service
	uploads    *upload.Saver
	readyProbe ReadyProbe
	version    string
	rateBurst  int
	ratePerSec int
	loginLimit *ipLimiter
}

func New(opts Options) *API {
	a := &API{
		mux:        http.NewServeMux(),
		auth:       opts.Auth,
		tokens:     opts.Tokens,
		portal:     opts.Portal,
		uploads:    opts.Uploads,
		readyProbe: opts.ReadyProbe,
		version:    opts.Version,
		rateBurst:  opts.RateBurst,
		ratePerSec: opts.RatePerSec,
	}
	if opts.LoginBurst > 0 && opts.LoginPerSec > 0 {
		a.loginLimit = newIPLimiter(opts.LoginBurst, opts.LoginPerSec)
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// session
	a.mux.HandleFunc("/v1/session", a.handleSession)

	// accounts and the role matrix
	a.mux.HandleFunc("/v1/usuarios", a.handleAccountsCollection)
	a.mux.HandleFunc("/v1/usuarios/", a.handleAccountResource)
	a.mux.HandleFunc("/v1/permissoes", a.handlePermissions)

	// secretariats
	a.mux.HandleFunc("/v1/secretarias", a.handleOrgUnitsCollection)
	a.mux.HandleFunc("/v1/secretarias/", a.handleOrgUnitResource)

	// content
	a.mux.HandleFunc("/v1/noticias", a.handleNewsCollection)
	a.mux.HandleFunc("/v1/noticias/", a.handleNewsResource)
	a.mux.HandleFunc("/v1/licitacoes", a.handleTendersCollection)
	a.mux.HandleFunc("/v1/licitacoes/", a.handleTenderResource)
	a.mux.HandleFunc("/v1/emendas", a.handleAmendmentsCollection)
	a.mux.HandleFunc("/v1/emendas/", a.handleAmendmentResource)
	a.mux.HandleFunc("/v1/documentos", a.handleDocumentsCollection)
	a.mux.HandleFunc("/v1/documentos/", a.handleDocumentResource)

	// gallery, tourism, mayors, site configuration
	a.mux.HandleFunc("/v1/midias", a.handleMediaCollection)
	a.mux.HandleFunc("/v1/midias/", a.handleMediaResource)
	a.mux.HandleFunc("/v1/turismo", a.handleAttractionsCollection)
	a.mux.HandleFunc("/v1/turismo/", a.handleAttractionResource)
	a.mux.HandleFunc("/v1/prefeitos", a.handleMayorsCollection)
	a.mux.HandleFunc("/v1/prefeitos/", a.handleMayorResource)
	a.mux.HandleFunc("/v1/configuracao", a.handleSiteConfig)

	// file uploads and the static files they produce
	a.mux.HandleFunc("/v1/uploads/", a.handleUpload)
	if opts.UploadDir != "" {
		a.mux.Handle("/uploads/", http.StripPrefix("/uploads/",
			http.FileServer(http.Dir(opts.UploadDir))))
	}

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
// maxRequestBytes caps any request body. It sits above the largest upload
// limit plus multipart overhead; JSON bodies get a far tighter cap in
// decodeJSON and uploads a per-kind one in handleUpload.
const maxRequestBytes = 64 << 20

func (a *API) Handler() http.Handler {
	h := a.withSession(a.mux)
	h = MaxBodyBytes(h, maxRequestBytes)
	h = SecurityHeaders(h)
	h = CORS(h)
	if a.rateBurst > 0 && a.ratePerSec > 0 {
		h = RateLimit(h, a.rateBurst, a.ratePerSec)
	}
	h = RequestID(h)
	h = Logging(h)
	return obs.Instrument(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "municipio-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "municipio-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

func (a *API) audit(ctx context.Context, event, resourceType, resourceID string, meta map[string]string) {
	fields := map[string]any{
		"resource_type": resourceType,
		"resource_id":   resourceID,
	}
	for k, v := range meta {
		fields[k] = v
	}
	_ = audit.LogEvent(ctx, event, fields)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := audit.RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

// handleAuthError maps auth package errors onto HTTP statuses.
func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, r, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, auth.ErrForbidden), errors.Is(err, auth.ErrSelfDeletion):
		writeError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, auth.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrConflict):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// handlePortalError maps portal and auth errors onto HTTP statuses. Portal
// operations surface auth errors too, since authorization happens inside the
// content service.
func handlePortalError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, portal.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, portal.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, portal.ErrConflict):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, r, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, r, http.StatusForbidden, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// resourceID extracts the trailing id segment after a collection prefix.
func resourceID(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	id = strings.Trim(id, "/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
