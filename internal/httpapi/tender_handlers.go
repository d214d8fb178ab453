package httpapi

import (
	"net/http"
	"time"

	"municipio.org/internal/portal"
)

type tenderRequest struct {
	Title       string    `json:"title"`
	Number      string    `json:"number"`
	Status      string    `json:"status"`
	DocumentURL string    `json:"document_url"`
	OrgUnitID   string    `json:"org_unit_id"`
	OpensAt     time.Time `json:"opens_at"`
	ClosesAt    time.Time `json:"closes_at"`
}

func (a *API) handleTendersCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listTenders(w, r)
	case http.MethodPost:
		a.createTender(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleTenderResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(r.URL.Path, "/v1/licitacoes/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getTender(w, r, id)
	case http.MethodPut:
		a.updateTender(w, r, id)
	case http.MethodDelete:
		a.deleteTender(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listTenders(w http.ResponseWriter, r *http.Request) {
	items, err := a.portal.ListTenders(r.Context())
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) getTender(w http.ResponseWriter, r *http.Request, id string) {
	item, err := a.portal.GetTender(r.Context(), id)
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) createTender(w http.ResponseWriter, r *http.Request) {
	var req tenderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.CreateTender(r.Context(), portal.Tender{
		Title:       req.Title,
		Number:      req.Number,
		Status:      req.Status,
		DocumentURL: req.DocumentURL,
		OrgUnitID:   req.OrgUnitID,
		OpensAt:     req.OpensAt,
		ClosesAt:    req.ClosesAt,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "tender.create", portal.TypeTender, item.ID, map[string]string{
		"number": item.Number,
	})
	w.Header().Set("Location", "/v1/licitacoes/"+item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) updateTender(w http.ResponseWriter, r *http.Request, id string) {
	var req tenderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.UpdateTender(r.Context(), portal.Tender{
		ID:          id,
		Title:       req.Title,
		Number:      req.Number,
		Status:      req.Status,
		DocumentURL: req.DocumentURL,
		OrgUnitID:   req.OrgUnitID,
		OpensAt:     req.OpensAt,
		ClosesAt:    req.ClosesAt,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "tender.update", portal.TypeTender, item.ID, nil)
	writeJSON(w, http.StatusOK, item)
}

func (a *API) deleteTender(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.portal.DeleteTender(r.Context(), id); err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "tender.delete", portal.TypeTender, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
