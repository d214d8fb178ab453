package httpapi

import (
	"net/http"

	"municipio.org/internal/portal"
)

type documentRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Year        int    `json:"year"`
	DocumentURL string `json:"document_url"`
	OrgUnitID   string `json:"org_unit_id"`
}

func (a *API) handleDocumentsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listDocuments(w, r)
	case http.MethodPost:
		a.createDocument(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleDocumentResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(r.URL.Path, "/v1/documentos/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getDocument(w, r, id)
	case http.MethodPut:
		a.updateDocument(w, r, id)
	case http.MethodDelete:
		a.deleteDocument(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listDocuments(w http.ResponseWriter, r *http.Request) {
	items, err := a.portal.ListDocuments(r.Context())
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) getDocument(w http.ResponseWriter, r *http.Request, id string) {
	item, err := a.portal.GetDocument(r.Context(), id)
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) createDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.CreateDocument(r.Context(), portal.TransparencyDocument{
		Title:       req.Title,
		Category:    req.Category,
		Year:        req.Year,
		DocumentURL: req.DocumentURL,
		OrgUnitID:   req.OrgUnitID,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "document.create", portal.TypeDocument, item.ID, map[string]string{
		"category": item.Category,
	})
	w.Header().Set("Location", "/v1/documentos/"+item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) updateDocument(w http.ResponseWriter, r *http.Request, id string) {
	var req documentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.UpdateDocument(r.Context(), portal.TransparencyDocument{
		ID:          id,
		Title:       req.Title,
		Category:    req.Category,
		Year:        req.Year,
		DocumentURL: req.DocumentURL,
		OrgUnitID:   req.OrgUnitID,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "document.update", portal.TypeDocument, item.ID, nil)
	writeJSON(w, http.StatusOK, item)
}

func (a *API) deleteDocument(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.portal.DeleteDocument(r.Context(), id); err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "document.delete", portal.TypeDocument, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
