package httpapi

import (
	"net/http"

	"municipio.org/internal/portal"
)

type orgUnitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (a *API) handleOrgUnitsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listOrgUnits(w, r)
	case http.MethodPost:
		a.createOrgUnit(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleOrgUnitResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(r.URL.Path, "/v1/secretarias/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getOrgUnit(w, r, id)
	case http.MethodPut:
		a.updateOrgUnit(w, r, id)
	case http.MethodDelete:
		a.deleteOrgUnit(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listOrgUnits(w http.ResponseWriter, r *http.Request) {
	units, err := a.portal.ListOrgUnits(r.Context())
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

func (a *API) getOrgUnit(w http.ResponseWriter, r *http.Request, id string) {
	unit, err := a.portal.GetOrgUnit(r.Context(), id)
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, unit)
}

func (a *API) createOrgUnit(w http.ResponseWriter, r *http.Request) {
	var req orgUnitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	unit, err := a.portal.CreateOrgUnit(r.Context(), portal.OrgUnit{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "org_unit.create", portal.TypeOrgUnit, unit.ID, nil)
	w.Header().Set("Location", "/v1/secretarias/"+unit.ID)
	writeJSON(w, http.StatusCreated, unit)
}

func (a *API) updateOrgUnit(w http.ResponseWriter, r *http.Request, id string) {
	var req orgUnitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	unit, err := a.portal.UpdateOrgUnit(r.Context(), portal.OrgUnit{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "org_unit.update", portal.TypeOrgUnit, unit.ID, nil)
	writeJSON(w, http.StatusOK, unit)
}

func (a *API) deleteOrgUnit(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.portal.DeleteOrgUnit(r.Context(), id); err != nil {
		handlePortalError(w, r, err)
		return
	}
	a.audit(r.Context(), "org_unit.delete", portal.TypeOrgUnit, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
