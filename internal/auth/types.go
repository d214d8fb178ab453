// Package auth implements the portal's credential verifier, session claims
// and role based access control.
package auth

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of portal roles.
type Role string

const (
	// RoleAdministrator has unrestricted access, including account,
	// secretariat and site configuration management.
	RoleAdministrator Role = "administrator"
	// RoleManager runs a single secretariat and may only touch content
	// belonging to it.
	RoleManager Role = "manager"
	// RoleEditor creates and edits content but never deletes or administers.
	RoleEditor Role = "editor"
)

// ParseRole validates a raw role value against the closed enumeration.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.TrimSpace(strings.ToLower(raw))) {
	case RoleAdministrator:
		return RoleAdministrator, nil
	case RoleManager:
		return RoleManager, nil
	case RoleEditor:
		return RoleEditor, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, raw)
	}
}

// Account is a portal user. The password hash never leaves this package.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	OrgUnitID    string    `json:"org_unit_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated view of an account returned by the verifier.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	OrgUnitID   string `json:"org_unit_id,omitempty"`
	OrgUnitName string `json:"org_unit_name,omitempty"`
}

// Claims is the decoded, verified payload of a session token.
type Claims struct {
	AccountID   string `json:"account_id"`
	Role        Role   `json:"role"`
	OrgUnitID   string `json:"org_unit_id,omitempty"`
	OrgUnitName string `json:"org_unit_name,omitempty"`
}
