package httpapi

import (
	"net/http"

	"municipio.org/internal/portal"
)

type amendmentRequest struct {
	Number      string `json:"number"`
	Year        int    `json:"year"`
	Author      string `json:"author"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	DocumentURL string `json:"document_url"`
	OrgUnitID   string `json:"org_unit_id"`
}

func (a *API) handleAmendmentsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listAmendments(w, r)
	case http.MethodPost:
		a.createAmendment(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleAmendmentResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(r.URL.Path, "/v1/emendas/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getAmendment(w, r, id)
	case http.MethodPut:
		a.updateAmendment(w, r, id)
	case http.MethodDelete:
		a.deleteAmendment(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listAmendments(w http.ResponseWriter, r *http.Request) {
	items, err := a.portal.ListAmendments(r.Context())
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) getAmendment(w http.ResponseWriter, r *http.Request, id string) {
	item, err := a.portal.GetAmendment(r.Context(), id)
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) createAmendment(w http.ResponseWriter, r *http.Request) {
	var req amendmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.CreateAmendment(r.Context(), portal.Amendment{
		Number:      req.Number,
		Year:        req.Year,
		Author:      req.Author,
		Description: req.Description,
		AmountCents: req.AmountCents,
		DocumentURL: req.DocumentURL,
		OrgUnitID:   req.OrgUnitID,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "amendment.create", portal.TypeAmendment, item.ID, map[string]string{
		"number": item.Number,
	})
	w.Header().Set("Location", "/v1/emendas/"+item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) updateAmendment(w http.ResponseWriter, r *http.Request, id string) {
	var req amendmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.UpdateAmendment(r.Context(), portal.Amendment{
		ID:          id,
		Number:      req.Number,
		Year:        req.Year,
		Author:      req.Author,
		Description: req.Description,
		AmountCents: req.AmountCents,
		DocumentURL: req.DocumentURL,
		OrgUnitID:   req.OrgUnitID,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "amendment.update", portal.TypeAmendment, item.ID, nil)
	writeJSON(w, http.StatusOK, item)
}

func (a *API) deleteAmendment(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.portal.DeleteAmendment(r.Context(), id); err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "amendment.delete", portal.TypeAmendment, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
