package auth

// Action is an access-controlled operation kind.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
	// ActionAdminister covers account, secretariat and site configuration
	// management.
	ActionAdminister
)

// Resource describes the target of an access decision.
type Resource struct {
	// Type is the resource kind, e.g. "news" or "tender".
	Type string
	// OrgUnitID is the secretariat the resource belongs to, empty when the
	// resource is not affiliated.
	OrgUnitID string
	// Public marks resources readable without a session.
	Public bool
	// Scoped marks resource types that carry a secretariat reference.
	Scoped bool
}

// Decide applies the role decision table to an operation. A nil claims value
// means the request is unauthenticated. It returns nil on allow,
// ErrUnauthenticated when a session is required, and ErrForbidden when the
// identity's role or secretariat scope does not cover the operation.
//
// Every protected handler routes through this single policy function.
func Decide(claims *Claims, action Action, res Resource) error {
	if claims == nil {
		if action == ActionRead && res.Public {
			return nil
		}
		return ErrUnauthenticated
	}

	switch claims.Role {
	case RoleAdministrator:
		// Administrators bypass all scoping.
		return nil
	case RoleManager:
		return decideManager(claims, action, res)
	case RoleEditor:
		return decideEditor(action)
	default:
		return ErrForbidden
	}
}

func decideManager(claims *Claims, action Action, res Resource) error {
	switch action {
	case ActionRead:
		return nil
	case ActionCreate:
		if !res.Scoped {
			return ErrForbidden
		}
		// A manager creates within their own secretariat; an explicit
		// foreign secretariat is rejected, an empty one is defaulted by
		// the content service.
		if res.OrgUnitID != "" && res.OrgUnitID != claims.OrgUnitID {
			return ErrForbidden
		}
		return nil
	case ActionUpdate, ActionDelete:
		if !res.Scoped || res.OrgUnitID == "" || res.OrgUnitID != claims.OrgUnitID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

func decideEditor(action Action) error {
	switch action {
	case ActionRead, ActionCreate, ActionUpdate:
		return nil
	default:
		return ErrForbidden
	}
}
