package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"municipio.org/internal/auth"
)

// Resource type names used in access decisions and audit events.
const (
	TypeOrgUnit    = "org_unit"
	TypeNews       = "news"
	TypeTender     = "tender"
	TypeAmendment  = "amendment"
	TypeMedia      = "media"
	TypeDocument   = "document"
	TypeAttraction = "attraction"
	TypeMayor      = "mayor"
	TypeSiteConfig = "site_config"
)

// Service exposes the portal content operations. Every mutating method reads
// the actor's claims from the context and routes the decision through
// auth.Decide before touching the store.
type Service struct {
	store Store
}

// NewService constructs the content service.
func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("portal store is required")
	}
	return &Service{store: store}, nil
}

// OrgUnitName implements auth.OrgUnitNamer for session issuance.
func (s *Service) OrgUnitName(ctx context.Context, id string) (string, error) {
	unit, err := s.store.GetOrgUnit(ctx, id)
	if err != nil {
		return "", err
	}
	return unit.Name, nil
}

// authorizeScopedCreate checks a create on a secretariat-scoped resource type
// and resolves the effective secretariat: managers default to their own unit,
// and the unit must exist when set.
func (s *Service) authorizeScopedCreate(ctx context.Context, typ, requested string, required bool) (string, error) {
	claims := auth.ClaimsFromContext(ctx)
	unit := strings.TrimSpace(requested)
	res := auth.Resource{Type: typ, OrgUnitID: unit, Public: true, Scoped: true}
	if err := auth.Decide(claims, auth.ActionCreate, res); err != nil {
		return "", err
	}
	if unit == "" && claims != nil && claims.Role == auth.RoleManager {
		unit = claims.OrgUnitID
	}
	if required && unit == "" {
		return "", fmt.Errorf("%w: org_unit_id is required", ErrInvalidInput)
	}
	if unit != "" {
		if _, err := s.store.GetOrgUnit(ctx, unit); err != nil {
			if errors.Is(err, ErrNotFound) {
				return "", fmt.Errorf("%w: unknown org_unit_id %q", ErrInvalidInput, unit)
			}
			return "", err
		}
	}
	return unit, nil
}

// authorizeScopedWrite checks an update or delete against the stored owner of
// a secretariat-scoped resource.
func (s *Service) authorizeScopedWrite(ctx context.Context, action auth.Action, typ, ownerUnit string) error {
	claims := auth.ClaimsFromContext(ctx)
	res := auth.Resource{Type: typ, OrgUnitID: ownerUnit, Public: true, Scoped: true}
	return auth.Decide(claims, action, res)
}

// resolveScopedUpdateUnit picks the secretariat for an updated resource.
// Managers always keep their own unit; everyone else takes the requested one.
func (s *Service) resolveScopedUpdateUnit(ctx context.Context, requested, existing string, required bool) (string, error) {
	claims := auth.ClaimsFromContext(ctx)
	unit := strings.TrimSpace(requested)
	if claims != nil && claims.Role == auth.RoleManager {
		unit = claims.OrgUnitID
	} else if unit == "" {
		unit = existing
	}
	if required && unit == "" {
		return "", fmt.Errorf("%w: org_unit_id is required", ErrInvalidInput)
	}
	if unit != "" && unit != existing {
		if _, err := s.store.GetOrgUnit(ctx, unit); err != nil {
			if errors.Is(err, ErrNotFound) {
				return "", fmt.Errorf("%w: unknown org_unit_id %q", ErrInvalidInput, unit)
			}
			return "", err
		}
	}
	return unit, nil
}

// requireSession rejects anonymous mutation attempts before any store
// lookup, so a missing session reads as 401 rather than 404.
func requireSession(ctx context.Context) error {
	if auth.ClaimsFromContext(ctx) == nil {
		return auth.ErrUnauthenticated
	}
	return nil
}

// authorizeUnscoped checks an action on a resource type without secretariat
// affiliation.
func authorizeUnscoped(ctx context.Context, action auth.Action, typ string) error {
	claims := auth.ClaimsFromContext(ctx)
	return auth.Decide(claims, action, auth.Resource{Type: typ, Public: true})
}

// authorizeAdminister gates secretariat and site configuration management.
func authorizeAdminister(ctx context.Context, typ string) error {
	claims := auth.ClaimsFromContext(ctx)
	return auth.Decide(claims, auth.ActionAdminister, auth.Resource{Type: typ, Public: true})
}

// --- Secretariats ---

// CreateOrgUnit creates a secretariat. Administrator only.
func (s *Service) CreateOrgUnit(ctx context.Context, unit OrgUnit) (OrgUnit, error) {
	if err := authorizeAdminister(ctx, TypeOrgUnit); err != nil {
		return OrgUnit{}, err
	}
	unit.Name = strings.TrimSpace(unit.Name)
	if unit.Name == "" {
		return OrgUnit{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.store.CreateOrgUnit(ctx, unit)
}

// ListOrgUnits is public.
func (s *Service) ListOrgUnits(ctx context.Context) ([]OrgUnit, error) {
	return s.store.ListOrgUnits(ctx)
}

// GetOrgUnit is public.
func (s *Service) GetOrgUnit(ctx context.Context, id string) (OrgUnit, error) {
	return s.store.GetOrgUnit(ctx, id)
}

// UpdateOrgUnit updates a secretariat. Administrator only.
func (s *Service) UpdateOrgUnit(ctx context.Context, unit OrgUnit) (OrgUnit, error) {
	if err := authorizeAdminister(ctx, TypeOrgUnit); err != nil {
		return OrgUnit{}, err
	}
	unit.Name = strings.TrimSpace(unit.Name)
	if unit.Name == "" {
		return OrgUnit{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.store.UpdateOrgUnit(ctx, unit)
}

// DeleteOrgUnit removes a secretariat. The delete conflicts while tenders or
// amendments still belong to it; nullable references are cleared instead.
func (s *Service) DeleteOrgUnit(ctx context.Context, id string) error {
	if err := authorizeAdminister(ctx, TypeOrgUnit); err != nil {
		return err
	}
	return s.store.DeleteOrgUnit(ctx, id)
}

// --- Site configuration ---

// GetSiteConfig is public.
func (s *Service) GetSiteConfig(ctx context.Context) (SiteConfig, error) {
	return s.store.GetSiteConfig(ctx)
}

// UpdateSiteConfig replaces the singleton configuration. Administrator only.
func (s *Service) UpdateSiteConfig(ctx context.Context, cfg SiteConfig) (SiteConfig, error) {
	if err := authorizeAdminister(ctx, TypeSiteConfig); err != nil {
		return SiteConfig{}, err
	}
	return s.store.PutSiteConfig(ctx, cfg)
}
