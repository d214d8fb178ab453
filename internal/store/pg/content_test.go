package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"municipio.org/internal/portal"
)

func TestCreateNews(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`insert into news`).
		WithArgs(sqlmock.AnyArg(), "Título", "Corpo", nil, "unit-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "body", "cover_url", "org_unit_id", "published_at", "created_at", "updated_at",
		}).AddRow("news-1", "Título", "Corpo", "", "unit-1", now, now, now))

	item, err := store.CreateNews(context.Background(), portal.NewsItem{
		Title:       "Título",
		Body:        "Corpo",
		OrgUnitID:   "unit-1",
		PublishedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	if item.ID != "news-1" || item.OrgUnitID != "unit-1" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestGetNewsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`select .* from news where id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "body", "cover_url", "org_unit_id", "published_at", "created_at", "updated_at",
		}))

	if _, err := store.GetNews(context.Background(), "missing"); !errors.Is(err, portal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNews(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`delete from news where id`).
		WithArgs("news-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.DeleteNews(context.Background(), "news-1"); err != nil {
		t.Fatalf("DeleteNews: %v", err)
	}

	mock.ExpectExec(`delete from news where id`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := store.DeleteNews(context.Background(), "missing"); !errors.Is(err, portal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTenderMapsForeignKeyViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`insert into tenders`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tenders_org_unit_id_fkey"})

	_, err := store.CreateTender(context.Background(), portal.Tender{
		Title:     "Pregão",
		Number:    "1/2026",
		OrgUnitID: "ghost-unit",
	})
	if !errors.Is(err, portal.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestTenderNullableTimestamps(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`select .* from tenders where id`).
		WithArgs("tender-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "number", "status", "document_url", "org_unit_id",
			"opens_at", "closes_at", "created_at", "updated_at",
		}).AddRow("tender-1", "Pregão", "1/2026", "aberta", "", "unit-1", nil, nil, now, now))

	tender, err := store.GetTender(context.Background(), "tender-1")
	if err != nil {
		t.Fatalf("GetTender: %v", err)
	}
	if !tender.OpensAt.IsZero() || !tender.ClosesAt.IsZero() {
		t.Fatalf("null timestamps should stay zero: %+v", tender)
	}
}

func TestSiteConfigGetOnEmptyDatabase(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`select .* from site_config where id = 1`).
		WillReturnRows(sqlmock.NewRows([]string{
			"phone", "email", "address", "facebook_url", "instagram_url", "gazette_url", "updated_at",
		}))

	cfg, err := store.GetSiteConfig(context.Background())
	if err != nil {
		t.Fatalf("GetSiteConfig: %v", err)
	}
	if cfg.Phone != "" || cfg.Email != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}
