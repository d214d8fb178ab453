package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeAccounts is a minimal in-memory AccountStore for service tests.
type fakeAccounts struct {
	byID    map[string]Account
	byEmail map[string]string
	nextID  int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		byID:    make(map[string]Account),
		byEmail: make(map[string]string),
	}
}

func (f *fakeAccounts) CreateAccount(_ context.Context, acct Account) (Account, error) {
	if _, exists := f.byEmail[acct.Email]; exists {
		return Account{}, ErrConflict
	}
	f.nextID++
	acct.ID = fmt.Sprintf("acct-%d", f.nextID)
	acct.CreatedAt = time.Now().UTC()
	acct.UpdatedAt = acct.CreatedAt
	f.byID[acct.ID] = acct
	f.byEmail[acct.Email] = acct.ID
	return acct, nil
}

func (f *fakeAccounts) GetAccount(_ context.Context, id string) (Account, error) {
	acct, ok := f.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (f *fakeAccounts) GetAccountByEmail(_ context.Context, email string) (Account, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return Account{}, ErrNotFound
	}
	return f.byID[id], nil
}

func (f *fakeAccounts) ListAccounts(_ context.Context) ([]Account, error) {
	out := make([]Account, 0, len(f.byID))
	for _, acct := range f.byID {
		out = append(out, acct)
	}
	return out, nil
}

func (f *fakeAccounts) UpdateAccount(_ context.Context, id string, upd AccountUpdate) (Account, error) {
	acct, ok := f.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	if upd.Email != nil {
		delete(f.byEmail, acct.Email)
		acct.Email = *upd.Email
		f.byEmail[acct.Email] = id
	}
	if upd.Name != nil {
		acct.Name = *upd.Name
	}
	if upd.Role != nil {
		acct.Role = *upd.Role
	}
	if upd.OrgUnitID != nil {
		acct.OrgUnitID = *upd.OrgUnitID
	}
	if upd.PasswordHash != nil {
		acct.PasswordHash = *upd.PasswordHash
	}
	acct.UpdatedAt = time.Now().UTC()
	f.byID[id] = acct
	return acct, nil
}

func (f *fakeAccounts) DeleteAccount(_ context.Context, id string) error {
	acct, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(f.byEmail, acct.Email)
	delete(f.byID, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeAccounts) {
	t.Helper()
	store := newFakeAccounts()
	svc, err := NewService(store, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	acct, err := svc.CreateAccount(ctx, NewAccount{
		Email:    "Prefeito@Example.org",
		Name:     "Prefeito",
		Password: "corrected-horse",
		Role:     "administrator",
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if acct.Email != "prefeito@example.org" {
		t.Fatalf("email was not normalized: %s", acct.Email)
	}

	identity, err := svc.Authenticate(ctx, "  PREFEITO@example.org ", "corrected-horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if identity.ID != acct.ID || identity.Role != RoleAdministrator {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

// Wrong passwords and unknown emails must be indistinguishable so login
// responses never leak which accounts exist.
func TestAuthenticateFailuresAreUniform(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, NewAccount{
		Email:    "editor@example.org",
		Name:     "Editor",
		Password: "right-password",
		Role:     "editor",
	}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	_, wrongPass := svc.Authenticate(ctx, "editor@example.org", "wrong-password")
	_, unknown := svc.Authenticate(ctx, "ghost@example.org", "whatever")
	_, empty := svc.Authenticate(ctx, "", "")

	for name, err := range map[string]error{
		"wrong password": wrongPass,
		"unknown email":  unknown,
		"empty input":    empty,
	} {
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("failure modes are distinguishable: %q vs %q", wrongPass, unknown)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   NewAccount
	}{
		{"missing email", NewAccount{Name: "X", Password: "p", Role: "editor"}},
		{"malformed email", NewAccount{Email: "not-an-email", Name: "X", Password: "p", Role: "editor"}},
		{"missing name", NewAccount{Email: "x@example.org", Password: "p", Role: "editor"}},
		{"missing password", NewAccount{Email: "x@example.org", Name: "X", Role: "editor"}},
		{"unknown role", NewAccount{Email: "x@example.org", Name: "X", Password: "p", Role: "chief"}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateAccount(ctx, tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestCreateAccountStoresHashNotPassword(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	acct, err := svc.CreateAccount(ctx, NewAccount{
		Email:    "gestor@example.org",
		Name:     "Gestor",
		Password: "plain-password",
		Role:     "manager",
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	stored := store.byID[acct.ID]
	if stored.PasswordHash == "plain-password" || stored.PasswordHash == "" {
		t.Fatalf("password was not hashed")
	}
	if err := VerifyPassword(stored.PasswordHash, "plain-password"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestDeleteAccountRejectsSelf(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	acct, err := svc.CreateAccount(ctx, NewAccount{
		Email:    "admin@example.org",
		Name:     "Admin",
		Password: "p4ssword",
		Role:     "administrator",
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	if err := svc.DeleteAccount(ctx, acct.ID, acct.ID); !errors.Is(err, ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if err := svc.DeleteAccount(ctx, "someone-else", acct.ID); err != nil {
		t.Fatalf("delete by another actor: %v", err)
	}
}

func TestUpdateAccountRehashesPassword(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	acct, err := svc.CreateAccount(ctx, NewAccount{
		Email:    "editor@example.org",
		Name:     "Editor",
		Password: "old-password",
		Role:     "editor",
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	newPass := "new-password"
	if _, err := svc.UpdateAccount(ctx, acct.ID, AccountChanges{Password: &newPass}); err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	stored := store.byID[acct.ID]
	if err := VerifyPassword(stored.PasswordHash, newPass); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
	if err := VerifyPassword(stored.PasswordHash, "old-password"); err == nil {
		t.Fatalf("old password still verifies")
	}
}
