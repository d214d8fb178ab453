package httpapi

import (
	"net/http"

	"municipio.org/internal/portal"
)

type attractionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
}

type mayorRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photo_url"`
	TermStart int    `json:"term_start"`
	TermEnd   int    `json:"term_end"`
	Current   bool   `json:"current"`
}

type siteConfigRequest struct {
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	FacebookURL  string `json:"facebook_url"`
	InstagramURL string `json:"instagram_url"`
	GazetteURL   string `json:"gazette_url"`
}

// --- Tourist attractions ---

func (a *API) handleAttractionsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listAttractions(w, r)
	case http.MethodPost:
		a.createAttraction(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleAttractionResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(r.URL.Path, "/v1/turismo/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getAttraction(w, r, id)
	case http.MethodPut:
		a.updateAttraction(w, r, id)
	case http.MethodDelete:
		a.deleteAttraction(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listAttractions(w http.ResponseWriter, r *http.Request) {
	items, err := a.portal.ListAttractions(r.Context())
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) getAttraction(w http.ResponseWriter, r *http.Request, id string) {
	item, err := a.portal.GetAttraction(r.Context(), id)
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) createAttraction(w http.ResponseWriter, r *http.Request) {
	var req attractionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.CreateAttraction(r.Context(), portal.TouristAttraction{
		Name:        req.Name,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "attraction.create", portal.TypeAttraction, item.ID, nil)
	w.Header().Set("Location", "/v1/turismo/"+item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) updateAttraction(w http.ResponseWriter, r *http.Request, id string) {
	var req attractionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.UpdateAttraction(r.Context(), portal.TouristAttraction{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "attraction.update", portal.TypeAttraction, item.ID, nil)
	writeJSON(w, http.StatusOK, item)
}

func (a *API) deleteAttraction(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.portal.DeleteAttraction(r.Context(), id); err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "attraction.delete", portal.TypeAttraction, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// --- Mayors gallery ---

func (a *API) handleMayorsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listMayors(w, r)
	case http.MethodPost:
		a.createMayor(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleMayorResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(r.URL.Path, "/v1/prefeitos/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getMayor(w, r, id)
	case http.MethodPut:
		a.updateMayor(w, r, id)
	case http.MethodDelete:
		a.deleteMayor(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listMayors(w http.ResponseWriter, r *http.Request) {
	items, err := a.portal.ListMayors(r.Context())
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) getMayor(w http.ResponseWriter, r *http.Request, id string) {
	item, err := a.portal.GetMayor(r.Context(), id)
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) createMayor(w http.ResponseWriter, r *http.Request) {
	var req mayorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.CreateMayor(r.Context(), portal.Mayor{
		Name:      req.Name,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		TermStart: req.TermStart,
		TermEnd:   req.TermEnd,
		Current:   req.Current,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "mayor.create", portal.TypeMayor, item.ID, nil)
	w.Header().Set("Location", "/v1/prefeitos/"+item.ID)
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) updateMayor(w http.ResponseWriter, r *http.Request, id string) {
	var req mayorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.portal.UpdateMayor(r.Context(), portal.Mayor{
		ID:        id,
		Name:      req.Name,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		TermStart: req.TermStart,
		TermEnd:   req.TermEnd,
		Current:   req.Current,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "mayor.update", portal.TypeMayor, item.ID, nil)
	writeJSON(w, http.StatusOK, item)
}

func (a *API) deleteMayor(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.portal.DeleteMayor(r.Context(), id); err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "mayor.delete", portal.TypeMayor, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// --- Site configuration ---

func (a *API) handleSiteConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cfg, err := a.portal.GetSiteConfig(r.Context())
		if err != nil {
			handlePortalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	case http.MethodPut:
		var req siteConfigRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		cfg, err := a.portal.UpdateSiteConfig(r.Context(), portal.SiteConfig{
			Phone:        req.Phone,
			Email:        req.Email,
			Address:      req.Address,
			FacebookURL:  req.FacebookURL,
			InstagramURL: req.InstagramURL,
			GazetteURL:   req.GazetteURL,
		})
		if err != nil {
			handlePortalError(w, r, err)
			return
		}
		a.audit(r.Context(), "site_config.update", portal.TypeSiteConfig, "1", nil)
		writeJSON(w, http.StatusOK, cfg)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}
