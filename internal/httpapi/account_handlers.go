package httpapi

import (
	"net/http"

	"municipio.org/internal/auth"
)

type createAccountRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	OrgUnitID string `json:"org_unit_id"`
}

type updateAccountRequest struct {
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
	OrgUnitID *string `json:"org_unit_id"`
}

// requireAdminister gates account management behind the administrator role.
func (a *API) requireAdminister(w http.ResponseWriter, r *http.Request, resourceType string) bool {
	claims := auth.ClaimsFromContext(r.Context())
	if err := auth.Decide(claims, auth.ActionAdminister, auth.Resource{Type: resourceType}); err != nil {
		handleAuthError(w, r, err)
		return false
	}
	return true
}

func (a *API) handleAccountsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listAccounts(w, r)
	case http.MethodPost:
		a.createAccount(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleAccountResource(w http.ResponseWriter, r *http.Request) {
	id, ok := resourceID(r.URL.Path, "/v1/usuarios/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		a.getAccount(w, r, id)
	case http.MethodPut:
		a.updateAccount(w, r, id)
	case http.MethodDelete:
		a.deleteAccount(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listAccounts(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdminister(w, r, "account") {
		return
	}
	accounts, err := a.auth.ListAccounts(r.Context())
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (a *API) createAccount(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdminister(w, r, "account") {
		return
	}
	var req createAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	acct, err := a.auth.CreateAccount(r.Context(), auth.NewAccount{
		Email:     req.Email,
		Name:      req.Name,
		Password:  req.Password,
		Role:      req.Role,
		OrgUnitID: req.OrgUnitID,
	})
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	a.audit(r.Context(), "account.create", "account", acct.ID, map[string]string{
		"role": string(acct.Role),
	})
	w.Header().Set("Location", "/v1/usuarios/"+acct.ID)
	writeJSON(w, http.StatusCreated, acct)
}

func (a *API) getAccount(w http.ResponseWriter, r *http.Request, id string) {
	if !a.requireAdminister(w, r, "account") {
		return
	}
	acct, err := a.auth.GetAccount(r.Context(), id)
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (a *API) updateAccount(w http.ResponseWriter, r *http.Request, id string) {
	if !a.requireAdminister(w, r, "account") {
		return
	}
	var req updateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	acct, err := a.auth.UpdateAccount(r.Context(), id, auth.AccountChanges{
		Email:     req.Email,
		Name:      req.Name,
		Password:  req.Password,
		Role:      req.Role,
		OrgUnitID: req.OrgUnitID,
	})
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	a.audit(r.Context(), "account.update", "account", acct.ID, nil)
	writeJSON(w, http.StatusOK, acct)
}

func (a *API) deleteAccount(w http.ResponseWriter, r *http.Request, id string) {
	if !a.requireAdminister(w, r, "account") {
		return
	}
	actorID := ""
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		actorID = claims.AccountID
	}
	if err := a.auth.DeleteAccount(r.Context(), actorID, id); err != nil {
		handleAuthError(w, r, err)
		return
	}
	a.audit(r.Context(), "account.delete", "account", id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// rolePermission is one row of the role capability matrix consumed by the
// admin frontend to hide actions a role cannot perform.
type rolePermission struct {
	Role             auth.Role `json:"role"`
	ManageAccounts   bool      `json:"manage_accounts"`
	ManageOrgUnits   bool      `json:"manage_org_units"`
	ManageSiteConfig bool      `json:"manage_site_config"`
	CreateContent    bool      `json:"create_content"`
	UpdateAnyContent bool      `json:"update_any_content"`
	UpdateOwnUnit    bool      `json:"update_own_unit"`
	DeleteContent    bool      `json:"delete_content"`
	ScopedToOwnUnit  bool      `json:"scoped_to_own_unit"`
}

func (a *API) handlePermissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, []rolePermission{
		{
			Role:             auth.RoleAdministrator,
			ManageAccounts:   true,
			ManageOrgUnits:   true,
			ManageSiteConfig: true,
			CreateContent:    true,
			UpdateAnyContent: true,
			UpdateOwnUnit:    true,
			DeleteContent:    true,
		},
		{
			Role:            auth.RoleManager,
			CreateContent:   true,
			UpdateOwnUnit:   true,
			DeleteContent:   true,
			ScopedToOwnUnit: true,
		},
		{
			Role:             auth.RoleEditor,
			CreateContent:    true,
			UpdateAnyContent: true,
			UpdateOwnUnit:    true,
		},
	})
}
