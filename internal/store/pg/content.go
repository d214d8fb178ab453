package pg

import (
	"context"
	"database/sql"
	"errors"

	"municipio.org/internal/ids"
	"municipio.org/internal/portal"
)

// --- News ---

const newsColumns = `id, title, body, coalesce(cover_url, ''), coalesce(org_unit_id, ''), published_at, created_at, updated_at`

func scanNews(row interface{ Scan(...any) error }) (portal.NewsItem, error) {
	var item portal.NewsItem
	err := row.Scan(&item.ID, &item.Title, &item.Body, &item.CoverURL, &item.OrgUnitID,
		&item.PublishedAt, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

func (s *Store) CreateNews(ctx context.Context, item portal.NewsItem) (portal.NewsItem, error) {
	row := s.db.QueryRowContext(ctx, `
		insert into news (id, title, body, cover_url, org_unit_id, published_at)
		values ($1, $2, $3, $4, $5, $6)
		returning `+newsColumns+`
	`, ids.New(), item.Title, item.Body, nullable(item.CoverURL), nullable(item.OrgUnitID), item.PublishedAt)
	created, err := scanNews(row)
	if err != nil {
		return portal.NewsItem{}, err
	}
	return created, nil
}

func (s *Store) ListNews(ctx context.Context) ([]portal.NewsItem, error) {
	rows, err := s.db.QueryContext(ctx, `select `+newsColumns+` from news order by published_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []portal.NewsItem
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) GetNews(ctx context.Context, id string) (portal.NewsItem, error) {
	row := s.db.QueryRowContext(ctx, `select `+newsColumns+` from news where id = $1`, id)
	item, err := scanNews(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.NewsItem{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.NewsItem{}, err
	}
	return item, nil
}

func (s *Store) UpdateNews(ctx context.Context, item portal.NewsItem) (portal.NewsItem, error) {
	row := s.db.QueryRowContext(ctx, `
		update news
		set title = $2, body = $3, cover_url = $4, org_unit_id = $5, published_at = $6, updated_at = now()
		where id = $1
		returning `+newsColumns+`
	`, item.ID, item.Title, item.Body, nullable(item.CoverURL), nullable(item.OrgUnitID), item.PublishedAt)
	updated, err := scanNews(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.NewsItem{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.NewsItem{}, err
	}
	return updated, nil
}

func (s *Store) DeleteNews(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `delete from news where id = $1`, id)
}

// --- Tenders ---

const tenderColumns = `id, title, number, coalesce(status, ''), coalesce(document_url, ''), org_unit_id, opens_at, closes_at, created_at, updated_at`

func scanTender(row interface{ Scan(...any) error }) (portal.Tender, error) {
	var t portal.Tender
	var opensAt, closesAt sql.NullTime
	err := row.Scan(&t.ID, &t.Title, &t.Number, &t.Status, &t.DocumentURL, &t.OrgUnitID,
		&opensAt, &closesAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return portal.Tender{}, err
	}
	if opensAt.Valid {
		t.OpensAt = opensAt.Time
	}
	if closesAt.Valid {
		t.ClosesAt = closesAt.Time
	}
	return t, nil
}

func (s *Store) CreateTender(ctx context.Context, t portal.Tender) (portal.Tender, error) {
	row := s.db.QueryRowContext(ctx, `
		insert into tenders (id, title, number, status, document_url, org_unit_id, opens_at, closes_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		returning `+tenderColumns+`
	`, ids.New(), t.Title, t.Number, nullable(t.Status), nullable(t.DocumentURL), t.OrgUnitID,
		nullableTime(t.OpensAt), nullableTime(t.ClosesAt))
	created, err := scanTender(row)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
			return portal.Tender{}, portal.ErrConflict
		}
		return portal.Tender{}, err
	}
	return created, nil
}

func (s *Store) ListTenders(ctx context.Context) ([]portal.Tender, error) {
	rows, err := s.db.QueryContext(ctx, `select `+tenderColumns+` from tenders order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []portal.Tender
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) GetTender(ctx context.Context, id string) (portal.Tender, error) {
	row := s.db.QueryRowContext(ctx, `select `+tenderColumns+` from tenders where id = $1`, id)
	t, err := scanTender(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.Tender{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.Tender{}, err
	}
	return t, nil
}

func (s *Store) UpdateTender(ctx context.Context, t portal.Tender) (portal.Tender, error) {
	row := s.db.QueryRowContext(ctx, `
		update tenders
		set title = $2, number = $3, status = $4, document_url = $5, org_unit_id = $6,
		    opens_at = $7, closes_at = $8, updated_at = now()
		where id = $1
		returning `+tenderColumns+`
	`, t.ID, t.Title, t.Number, nullable(t.Status), nullable(t.DocumentURL), t.OrgUnitID,
		nullableTime(t.OpensAt), nullableTime(t.ClosesAt))
	updated, err := scanTender(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.Tender{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.Tender{}, err
	}
	return updated, nil
}

func (s *Store) DeleteTender(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `delete from tenders where id = $1`, id)
}

// --- Budget amendments ---

const amendmentColumns = `id, number, year, author, coalesce(description, ''), amount_cents, coalesce(document_url, ''), org_unit_id, created_at, updated_at`

func scanAmendment(row interface{ Scan(...any) error }) (portal.Amendment, error) {
	var a portal.Amendment
	err := row.Scan(&a.ID, &a.Number, &a.Year, &a.Author, &a.Description, &a.AmountCents,
		&a.DocumentURL, &a.OrgUnitID, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (s *Store) CreateAmendment(ctx context.Context, a portal.Amendment) (portal.Amendment, error) {
	row := s.db.QueryRowContext(ctx, `
		insert into amendments (id, number, year, author, description, amount_cents, document_url, org_unit_id)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		returning `+amendmentColumns+`
	`, ids.New(), a.Number, a.Year, a.Author, nullable(a.Description), a.AmountCents,
		nullable(a.DocumentURL), a.OrgUnitID)
	created, err := scanAmendment(row)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
			return portal.Amendment{}, portal.ErrConflict
		}
		return portal.Amendment{}, err
	}
	return created, nil
}

func (s *Store) ListAmendments(ctx context.Context) ([]portal.Amendment, error) {
	rows, err := s.db.QueryContext(ctx, `select `+amendmentColumns+` from amendments order by year desc, number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []portal.Amendment
	for rows.Next() {
		a, err := scanAmendment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) GetAmendment(ctx context.Context, id string) (portal.Amendment, error) {
	row := s.db.QueryRowContext(ctx, `select `+amendmentColumns+` from amendments where id = $1`, id)
	a, err := scanAmendment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.Amendment{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.Amendment{}, err
	}
	return a, nil
}

func (s *Store) UpdateAmendment(ctx context.Context, a portal.Amendment) (portal.Amendment, error) {
	row := s.db.QueryRowContext(ctx, `
		update amendments
		set number = $2, year = $3, author = $4, description = $5, amount_cents = $6,
		    document_url = $7, org_unit_id = $8, updated_at = now()
		where id = $1
		returning `+amendmentColumns+`
	`, a.ID, a.Number, a.Year, a.Author, nullable(a.Description), a.AmountCents,
		nullable(a.DocumentURL), a.OrgUnitID)
	updated, err := scanAmendment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.Amendment{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.Amendment{}, err
	}
	return updated, nil
}

func (s *Store) DeleteAmendment(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `delete from amendments where id = $1`, id)
}

// --- Transparency documents ---

const documentColumns = `id, title, category, year, document_url, coalesce(org_unit_id, ''), created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (portal.TransparencyDocument, error) {
	var d portal.TransparencyDocument
	err := row.Scan(&d.ID, &d.Title, &d.Category, &d.Year, &d.DocumentURL, &d.OrgUnitID,
		&d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (s *Store) CreateDocument(ctx context.Context, d portal.TransparencyDocument) (portal.TransparencyDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		insert into transparency_documents (id, title, category, year, document_url, org_unit_id)
		values ($1, $2, $3, $4, $5, $6)
		returning `+documentColumns+`
	`, ids.New(), d.Title, d.Category, d.Year, d.DocumentURL, nullable(d.OrgUnitID))
	created, err := scanDocument(row)
	if err != nil {
		return portal.TransparencyDocument{}, err
	}
	return created, nil
}

func (s *Store) ListDocuments(ctx context.Context) ([]portal.TransparencyDocument, error) {
	rows, err := s.db.QueryContext(ctx, `select `+documentColumns+` from transparency_documents order by year desc, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []portal.TransparencyDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) GetDocument(ctx context.Context, id string) (portal.TransparencyDocument, error) {
	row := s.db.QueryRowContext(ctx, `select `+documentColumns+` from transparency_documents where id = $1`, id)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.TransparencyDocument{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.TransparencyDocument{}, err
	}
	return d, nil
}

func (s *Store) UpdateDocument(ctx context.Context, d portal.TransparencyDocument) (portal.TransparencyDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		update transparency_documents
		set title = $2, category = $3, year = $4, document_url = $5, org_unit_id = $6, updated_at = now()
		where id = $1
		returning `+documentColumns+`
	`, d.ID, d.Title, d.Category, d.Year, d.DocumentURL, nullable(d.OrgUnitID))
	updated, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.TransparencyDocument{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.TransparencyDocument{}, err
	}
	return updated, nil
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `delete from transparency_documents where id = $1`, id)
}

// deleteByID runs a single-row delete and maps zero affected rows to ErrNotFound.
func (s *Store) deleteByID(ctx context.Context, query, id string) error {
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return portal.ErrNotFound
	}
	return nil
}
