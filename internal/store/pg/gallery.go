package pg

import (
	"context"
	"database/sql"
	"errors"

	"municipio.org/internal/ids"
	"municipio.org/internal/portal"
)

// --- Media gallery ---

func (s *Store) CreateMedia(ctx context.Context, m portal.MediaItem) (portal.MediaItem, error) {
	row := s.db.QueryRowContext(ctx, `
		insert into media_items (id, title, kind, url)
		values ($1, $2, $3, $4)
		returning id, title, kind, url, created_at
	`, ids.New(), m.Title, m.Kind, m.URL)
	var created portal.MediaItem
	if err := row.Scan(&created.ID, &created.Title, &created.Kind, &created.URL, &created.CreatedAt); err != nil {
		return portal.MediaItem{}, err
	}
	return created, nil
}

func (s *Store) ListMedia(ctx context.Context) ([]portal.MediaItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, title, kind, url, created_at
		from media_items
		order by created_at desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []portal.MediaItem
	for rows.Next() {
		var m portal.MediaItem
		if err := rows.Scan(&m.ID, &m.Title, &m.Kind, &m.URL, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) GetMedia(ctx context.Context, id string) (portal.MediaItem, error) {
	var m portal.MediaItem
	err := s.db.QueryRowContext(ctx, `
		select id, title, kind, url, created_at
		from media_items
		where id = $1
	`, id).Scan(&m.ID, &m.Title, &m.Kind, &m.URL, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.MediaItem{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.MediaItem{}, err
	}
	return m, nil
}

func (s *Store) UpdateMedia(ctx context.Context, m portal.MediaItem) (portal.MediaItem, error) {
	row := s.db.QueryRowContext(ctx, `
		update media_items
		set title = $2, kind = $3, url = $4
		where id = $1
		returning id, title, kind, url, created_at
	`, m.ID, m.Title, m.Kind, m.URL)
	var updated portal.MediaItem
	err := row.Scan(&updated.ID, &updated.Title, &updated.Kind, &updated.URL, &updated.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.MediaItem{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.MediaItem{}, err
	}
	return updated, nil
}

func (s *Store) DeleteMedia(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `delete from media_items where id = $1`, id)
}

// --- Tourist attractions ---

func (s *Store) CreateAttraction(ctx context.Context, a portal.TouristAttraction) (portal.TouristAttraction, error) {
	row := s.db.QueryRowContext(ctx, `
		insert into tourist_attractions (id, name, description, photo_url)
		values ($1, $2, $3, $4)
		returning id, name, coalesce(description, ''), coalesce(photo_url, ''), created_at, updated_at
	`, ids.New(), a.Name, nullable(a.Description), nullable(a.PhotoURL))
	var created portal.TouristAttraction
	err := row.Scan(&created.ID, &created.Name, &created.Description, &created.PhotoURL,
		&created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return portal.TouristAttraction{}, err
	}
	return created, nil
}

func (s *Store) ListAttractions(ctx context.Context) ([]portal.TouristAttraction, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, name, coalesce(description, ''), coalesce(photo_url, ''), created_at, updated_at
		from tourist_attractions
		order by name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []portal.TouristAttraction
	for rows.Next() {
		var a portal.TouristAttraction
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.PhotoURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) GetAttraction(ctx context.Context, id string) (portal.TouristAttraction, error) {
	var a portal.TouristAttraction
	err := s.db.QueryRowContext(ctx, `
		select id, name, coalesce(description, ''), coalesce(photo_url, ''), created_at, updated_at
		from tourist_attractions
		where id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Description, &a.PhotoURL, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.TouristAttraction{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.TouristAttraction{}, err
	}
	return a, nil
}

func (s *Store) UpdateAttraction(ctx context.Context, a portal.TouristAttraction) (portal.TouristAttraction, error) {
	row := s.db.QueryRowContext(ctx, `
		update tourist_attractions
		set name = $2, description = $3, photo_url = $4, updated_at = now()
		where id = $1
		returning id, name, coalesce(description, ''), coalesce(photo_url, ''), created_at, updated_at
	`, a.ID, a.Name, nullable(a.Description), nullable(a.PhotoURL))
	var updated portal.TouristAttraction
	err := row.Scan(&updated.ID, &updated.Name, &updated.Description, &updated.PhotoURL,
		&updated.CreatedAt, &updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.TouristAttraction{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.TouristAttraction{}, err
	}
	return updated, nil
}

func (s *Store) DeleteAttraction(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `delete from tourist_attractions where id = $1`, id)
}

// --- Mayors gallery ---

const mayorColumns = `id, name, coalesce(bio, ''), coalesce(photo_url, ''), term_start, coalesce(term_end, 0), current, created_at, updated_at`

func scanMayor(row interface{ Scan(...any) error }) (portal.Mayor, error) {
	var m portal.Mayor
	err := row.Scan(&m.ID, &m.Name, &m.Bio, &m.PhotoURL, &m.TermStart, &m.TermEnd, &m.Current,
		&m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (s *Store) CreateMayor(ctx context.Context, m portal.Mayor) (portal.Mayor, error) {
	var termEnd any
	if m.TermEnd > 0 {
		termEnd = m.TermEnd
	}
	row := s.db.QueryRowContext(ctx, `
		insert into mayors (id, name, bio, photo_url, term_start, term_end, current)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning `+mayorColumns+`
	`, ids.New(), m.Name, nullable(m.Bio), nullable(m.PhotoURL), m.TermStart, termEnd, m.Current)
	created, err := scanMayor(row)
	if err != nil {
		return portal.Mayor{}, err
	}
	return created, nil
}

func (s *Store) ListMayors(ctx context.Context) ([]portal.Mayor, error) {
	rows, err := s.db.QueryContext(ctx, `select `+mayorColumns+` from mayors order by term_start desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []portal.Mayor
	for rows.Next() {
		m, err := scanMayor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) GetMayor(ctx context.Context, id string) (portal.Mayor, error) {
	row := s.db.QueryRowContext(ctx, `select `+mayorColumns+` from mayors where id = $1`, id)
	m, err := scanMayor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.Mayor{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.Mayor{}, err
	}
	return m, nil
}

func (s *Store) UpdateMayor(ctx context.Context, m portal.Mayor) (portal.Mayor, error) {
	var termEnd any
	if m.TermEnd > 0 {
		termEnd = m.TermEnd
	}
	row := s.db.QueryRowContext(ctx, `
		update mayors
		set name = $2, bio = $3, photo_url = $4, term_start = $5, term_end = $6, current = $7, updated_at = now()
		where id = $1
		returning `+mayorColumns+`
	`, m.ID, m.Name, nullable(m.Bio), nullable(m.PhotoURL), m.TermStart, termEnd, m.Current)
	updated, err := scanMayor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.Mayor{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.Mayor{}, err
	}
	return updated, nil
}

func (s *Store) DeleteMayor(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `delete from mayors where id = $1`, id)
}

// --- Site configuration ---

const siteConfigColumns = `coalesce(phone, ''), coalesce(email, ''), coalesce(address, ''), coalesce(facebook_url, ''), coalesce(instagram_url, ''), coalesce(gazette_url, ''), updated_at`

func (s *Store) GetSiteConfig(ctx context.Context) (portal.SiteConfig, error) {
	var cfg portal.SiteConfig
	err := s.db.QueryRowContext(ctx, `select `+siteConfigColumns+` from site_config where id = 1`).
		Scan(&cfg.Phone, &cfg.Email, &cfg.Address, &cfg.FacebookURL, &cfg.InstagramURL,
			&cfg.GazetteURL, &cfg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// The singleton row may not exist yet; an empty config is valid.
		return portal.SiteConfig{}, nil
	}
	if err != nil {
		return portal.SiteConfig{}, err
	}
	return cfg, nil
}

func (s *Store) PutSiteConfig(ctx context.Context, cfg portal.SiteConfig) (portal.SiteConfig, error) {
	row := s.db.QueryRowContext(ctx, `
		insert into site_config (id, phone, email, address, facebook_url, instagram_url, gazette_url)
		values (1, $1, $2, $3, $4, $5, $6)
		on conflict (id) do update
		set phone = excluded.phone, email = excluded.email, address = excluded.address,
		    facebook_url = excluded.facebook_url, instagram_url = excluded.instagram_url,
		    gazette_url = excluded.gazette_url, updated_at = now()
		returning `+siteConfigColumns+`
	`, nullable(cfg.Phone), nullable(cfg.Email), nullable(cfg.Address),
		nullable(cfg.FacebookURL), nullable(cfg.InstagramURL), nullable(cfg.GazetteURL))
	var updated portal.SiteConfig
	err := row.Scan(&updated.Phone, &updated.Email, &updated.Address, &updated.FacebookURL,
		&updated.InstagramURL, &updated.GazetteURL, &updated.UpdatedAt)
	if err != nil {
		return portal.SiteConfig{}, err
	}
	return updated, nil
}
