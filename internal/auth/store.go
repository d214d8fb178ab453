package auth

import "context"

// AccountStore describes the persistence operations required by the
// credential verifier and account administration. Implementations must
// enforce email uniqueness (ErrConflict on violation).
type AccountStore interface {
	CreateAccount(ctx context.Context, acct Account) (Account, error)
	GetAccount(ctx context.Context, id string) (Account, error)
	// GetAccountByEmail performs the exact-match lookup used by Authenticate.
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	UpdateAccount(ctx context.Context, id string, upd AccountUpdate) (Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// AccountUpdate mutates only the fields whose pointers are non-nil.
type AccountUpdate struct {
	Email        *string
	Name         *string
	Role         *Role
	OrgUnitID    *string
	PasswordHash *string
}

// OrgUnitNamer resolves a secretariat id to its display name. The account's
// secretariat is a weak reference, so a missing unit resolves to an empty name
// rather than an error.
type OrgUnitNamer interface {
	OrgUnitName(ctx context.Context, id string) (string, error)
}
