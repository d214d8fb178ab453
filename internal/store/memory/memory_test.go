package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"municipio.org/internal/auth"
	"municipio.org/internal/portal"
)

func TestAccountEmailUniqueness(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.CreateAccount(ctx, auth.Account{
		Email: "admin@example.org",
		Name:  "Admin",
		Role:  auth.RoleAdministrator,
	}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	if _, err := store.CreateAccount(ctx, auth.Account{
		Email: "admin@example.org",
		Name:  "Clone",
		Role:  auth.RoleEditor,
	}); !errors.Is(err, auth.ErrConflict) {
		t.Fatalf("duplicate email: expected ErrConflict, got %v", err)
	}
}

func TestAccountLifecycle(t *testing.T) {
	store := New()
	ctx := context.Background()

	acct, err := store.CreateAccount(ctx, auth.Account{
		Email: "gestor@example.org",
		Name:  "Gestor",
		Role:  auth.RoleManager,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if acct.ID == "" || acct.CreatedAt.IsZero() {
		t.Fatalf("id or timestamps missing: %+v", acct)
	}

	byEmail, err := store.GetAccountByEmail(ctx, "gestor@example.org")
	if err != nil || byEmail.ID != acct.ID {
		t.Fatalf("GetAccountByEmail: %v (%+v)", err, byEmail)
	}

	newName := "Gestora"
	updated, err := store.UpdateAccount(ctx, acct.ID, auth.AccountUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}
	if updated.Name != "Gestora" {
		t.Fatalf("name was not updated: %+v", updated)
	}

	if err := store.DeleteAccount(ctx, acct.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if _, err := store.GetAccount(ctx, acct.ID); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteAccount(ctx, acct.ID); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("double delete: expected ErrNotFound, got %v", err)
	}
}

func TestOrgUnitNameUniqueness(t *testing.T) {
	store := New()
	ctx := context.Background()

	unit, err := store.CreateOrgUnit(ctx, portal.OrgUnit{Name: "Secretaria de Obras"})
	if err != nil {
		t.Fatalf("CreateOrgUnit: %v", err)
	}

	// Case-insensitive collision.
	if _, err := store.CreateOrgUnit(ctx, portal.OrgUnit{Name: "SECRETARIA DE OBRAS"}); !errors.Is(err, portal.ErrConflict) {
		t.Fatalf("duplicate name: expected ErrConflict, got %v", err)
	}

	name, err := store.OrgUnitName(ctx, unit.ID)
	if err != nil || name != "Secretaria de Obras" {
		t.Fatalf("OrgUnitName: %v (%q)", err, name)
	}
}

func TestNewsOrdering(t *testing.T) {
	store := New()
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	if _, err := store.CreateNews(ctx, portal.NewsItem{Title: "Antiga", Body: "x", PublishedAt: base}); err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	newer, err := store.CreateNews(ctx, portal.NewsItem{Title: "Recente", Body: "y", PublishedAt: base.Add(time.Hour)})
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}

	items, err := store.ListNews(ctx)
	if err != nil {
		t.Fatalf("ListNews: %v", err)
	}
	if len(items) != 2 || items[0].ID != newer.ID {
		t.Fatalf("expected newest first, got %+v", items)
	}
}

func TestSiteConfigSingleton(t *testing.T) {
	store := New()
	ctx := context.Background()

	cfg, err := store.GetSiteConfig(ctx)
	if err != nil {
		t.Fatalf("GetSiteConfig on empty store: %v", err)
	}
	if cfg.Phone != "" || cfg.Email != "" {
		t.Fatalf("expected empty singleton, got %+v", cfg)
	}

	if _, err := store.PutSiteConfig(ctx, portal.SiteConfig{Phone: "190"}); err != nil {
		t.Fatalf("PutSiteConfig: %v", err)
	}
	cfg, err = store.GetSiteConfig(ctx)
	if err != nil || cfg.Phone != "190" {
		t.Fatalf("config did not persist: %v (%+v)", err, cfg)
	}
}

func TestDeleteOrgUnitBlockedByTenders(t *testing.T) {
	store := New()
	ctx := context.Background()

	unit, err := store.CreateOrgUnit(ctx, portal.OrgUnit{Name: "Obras"})
	if err != nil {
		t.Fatalf("CreateOrgUnit: %v", err)
	}
	if _, err := store.CreateTender(ctx, portal.Tender{
		Title:     "Pavimentação",
		Number:    "1/2026",
		OrgUnitID: unit.ID,
	}); err != nil {
		t.Fatalf("CreateTender: %v", err)
	}

	if err := store.DeleteOrgUnit(ctx, unit.ID); !errors.Is(err, portal.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := store.GetOrgUnit(ctx, unit.ID); err != nil {
		t.Fatalf("unit should survive a blocked delete: %v", err)
	}
}

func TestDeleteOrgUnitClearsNullableReferences(t *testing.T) {
	store := New()
	ctx := context.Background()

	unit, err := store.CreateOrgUnit(ctx, portal.OrgUnit{Name: "Saúde"})
	if err != nil {
		t.Fatalf("CreateOrgUnit: %v", err)
	}
	item, err := store.CreateNews(ctx, portal.NewsItem{
		Title:     "Campanha de vacinação",
		Body:      "Postos abertos.",
		OrgUnitID: unit.ID,
	})
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	acct, err := store.CreateAccount(ctx, auth.Account{
		Email:     "gestora@example.org",
		Name:      "Gestora",
		Role:      auth.RoleManager,
		OrgUnitID: unit.ID,
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	if err := store.DeleteOrgUnit(ctx, unit.ID); err != nil {
		t.Fatalf("DeleteOrgUnit: %v", err)
	}

	got, err := store.GetNews(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if got.OrgUnitID != "" {
		t.Fatalf("news still references deleted unit: %q", got.OrgUnitID)
	}
	gotAcct, err := store.GetAccount(ctx, acct.ID)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if gotAcct.OrgUnitID != "" {
		t.Fatalf("account still references deleted unit: %q", gotAcct.OrgUnitID)
	}
}
