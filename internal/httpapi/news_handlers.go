package httpapi

import (
	"net/http"
	"time"

	"municipio.org/internal/portal"
)

type newsRequest struct {
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	CoverURL    string    `json:"cover_url"`
	OrgUnitID   string    `json:"org_unit_id"`
	PublishedAt time.Time `json:"published_at"`
}

func (a *API) handleNewsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listNews(w, r)
	case http.MethodPost:
		a.createNews(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleNewsResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(r.URL.Path, "/v1/noticias/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getNews(w, r, id)
	case http.MethodPut:
		a.updateNews(w, r, id)
	case http.MethodDelete:
		a.deleteNews(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listNews(w http.ResponseWriter, r *http.Request) {
	items, err := a.portal.ListNews(r.Context())
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) getNews(w http.ResponseWriter, r *http.Request, id string) {
	item, err := a.portal.GetNews(r.Context(), id)
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) createNews(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.CreateNews(r.Context(), portal.NewsItem{
		Title:       req.Title,
		Body:        req.Body,
		CoverURL:    req.CoverURL,
		OrgUnitID:   req.OrgUnitID,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "news.create", portal.TypeNews, item.ID, nil)
	w.Header().Set("Location", "/v1/noticias/"+item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) updateNews(w http.ResponseWriter, r *http.Request, id string) {
	var req newsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.UpdateNews(r.Context(), portal.NewsItem{
		ID:          id,
		Title:       req.Title,
		Body:        req.Body,
		CoverURL:    req.CoverURL,
		OrgUnitID:   req.OrgUnitID,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "news.update", portal.TypeNews, item.ID, nil)
	writeJSON(w, http.StatusOK, item)
}

func (a *API) deleteNews(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.portal.DeleteNews(r.Context(), id); err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "news.delete", portal.TypeNews, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
