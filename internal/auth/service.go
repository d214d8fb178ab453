package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Service provides credential verification and account administration.
type Service struct {
	accounts AccountStore
	orgs     OrgUnitNamer
}

// NewService constructs the auth service. The secretariat resolver may be nil
// when org-unit names are not needed (e.g. migration tooling).
func NewService(accounts AccountStore, orgs OrgUnitNamer) (*Service, error) {
	if accounts == nil {
		return nil, errors.New("account store is required")
	}
	return &Service{accounts: accounts, orgs: orgs}, nil
}

// Authenticate verifies an email/password pair. Unknown emails, wrong
// passwords and any surrounding lookup failure all collapse into
// ErrInvalidCredentials so the response never signals account existence.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}
	acct, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	if err := VerifyPassword(acct.PasswordHash, password); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return s.identity(ctx, acct), nil
}

// Identity resolves the account behind verified claims, for whoami-style reads.
func (s *Service) Identity(ctx context.Context, accountID string) (Identity, error) {
	acct, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return Identity{}, err
	}
	return s.identity(ctx, acct), nil
}

func (s *Service) identity(ctx context.Context, acct Account) Identity {
	id := Identity{
		ID:        acct.ID,
		Email:     acct.Email,
		Name:      acct.Name,
		Role:      acct.Role,
		OrgUnitID: acct.OrgUnitID,
	}
	if acct.OrgUnitID != "" && s.orgs != nil {
		if name, err := s.orgs.OrgUnitName(ctx, acct.OrgUnitID); err == nil {
			id.OrgUnitName = name
		}
	}
	return id
}

// NewAccount is the input for account creation.
type NewAccount struct {
	Email     string
	Name      string
	Password  string
	Role      string
	OrgUnitID string
}

// CreateAccount validates and persists a new account.
func (s *Service) CreateAccount(ctx context.Context, in NewAccount) (Account, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return Account{}, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Account{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Password) == "" {
		return Account{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	role, err := ParseRole(in.Role)
	if err != nil {
		return Account{}, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return Account{}, err
	}
	return s.accounts.CreateAccount(ctx, Account{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		OrgUnitID:    strings.TrimSpace(in.OrgUnitID),
	})
}

// ListAccounts returns every account.
func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.accounts.ListAccounts(ctx)
}

// GetAccount returns a single account by id.
func (s *Service) GetAccount(ctx context.Context, id string) (Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Account{}, fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	return s.accounts.GetAccount(ctx, id)
}

// AccountChanges is the input for account updates; nil fields are untouched.
type AccountChanges struct {
	Email     *string
	Name      *string
	Role      *string
	OrgUnitID *string
	Password  *string
}

// UpdateAccount validates and applies a partial account update.
func (s *Service) UpdateAccount(ctx context.Context, id string, in AccountChanges) (Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Account{}, fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	var upd AccountUpdate
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" || !strings.Contains(email, "@") {
			return Account{}, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
		}
		upd.Email = &email
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Account{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		upd.Name = &name
	}
	if in.Role != nil {
		role, err := ParseRole(*in.Role)
		if err != nil {
			return Account{}, err
		}
		upd.Role = &role
	}
	if in.OrgUnitID != nil {
		unit := strings.TrimSpace(*in.OrgUnitID)
		upd.OrgUnitID = &unit
	}
	if in.Password != nil {
		if strings.TrimSpace(*in.Password) == "" {
			return Account{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
		}
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return Account{}, err
		}
		upd.PasswordHash = &hash
	}
	return s.accounts.UpdateAccount(ctx, id, upd)
}

// DeleteAccount removes an account. An account can never delete itself, not
// even an administrator.
func (s *Service) DeleteAccount(ctx context.Context, actorID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	if actorID != "" && actorID == id {
		return ErrSelfDeletion
	}
	return s.accounts.DeleteAccount(ctx, id)
}
