package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"municipio.org/internal/auth"
	"municipio.org/internal/portal"
	"municipio.org/internal/upload"
)

type mediaRequest struct {
	Title string `json:"title"`
	Kind  string `json:"kind"`
	URL   string `json:"url"`
}

func (a *API) handleMediaCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listMedia(w, r)
	case http.MethodPost:
		a.createMedia(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleMediaResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(r.URL.Path, "/v1/midias/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getMedia(w, r, id)
	case http.MethodPut:
		a.updateMedia(w, r, id)
	case http.MethodDelete:
		a.deleteMedia(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listMedia(w http.ResponseWriter, r *http.Request) {
	items, err := a.portal.ListMedia(r.Context())
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) getMedia(w http.ResponseWriter, r *http.Request, id string) {
	item, err := a.portal.GetMedia(r.Context(), id)
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) createMedia(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.CreateMedia(r.Context(), portal.MediaItem{
		Title: req.Title,
		Kind:  req.Kind,
		URL:   req.URL,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "media.create", portal.TypeMedia, item.ID, map[string]string{
		"kind": item.Kind,
	})
	w.Header().Set("Location", "/v1/midias/"+item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) updateMedia(w http.ResponseWriter, r *http.Request, id string) {
	var req mediaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.UpdateMedia(r.Context(), portal.MediaItem{
		ID:    id,
		Title: req.Title,
		Kind:  req.Kind,
		URL:   req.URL,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "media.update", portal.TypeMedia, item.ID, nil)
	writeJSON(w, http.StatusOK, item)
}

func (a *API) deleteMedia(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.portal.DeleteMedia(r.Context(), id); err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "media.delete", portal.TypeMedia, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// handleUpload receives one multipart file at POST /v1/uploads/{kind} and
// stores it through the upload saver. Any authenticated role may upload.
func (a *API) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	kind, ok := resourceID(r.URL.Path, "/v1/uploads/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if auth.ClaimsFromContext(r.Context()) == nil {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	if a.uploads == nil {
		writeError(w, r, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	limit := upload.Limit(kind)
	if limit == 0 {
		writeError(w, r, http.StatusBadRequest, "unknown upload kind")
		return
	}
	// Multipart framing overhead on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	result, err := a.uploads.Save(r.Context(), kind, file, header)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			writeError(w, r, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, upload.ErrUnsupportedType), errors.Is(err, upload.ErrUnknownKind):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			writeError(w, r, http.StatusInternalServerError, "upload failed")
		}
		return
	}

	a.audit(r.Context(), "upload.store", "upload", result.Name, map[string]string{
		"kind": kind,
		"type": result.Type,
		"name": strings.TrimSpace(header.Filename),
	})
	writeJSON(w, http.StatusCreated, result)
}
