package pg

import (
	"context"
	"database/sql"
	"errors"

	"municipio.org/internal/ids"
	"municipio.org/internal/portal"
)

var _ portal.Store = (*Store)(nil)

func (s *Store) CreateOrgUnit(ctx context.Context, unit portal.OrgUnit) (portal.OrgUnit, error) {
	row := s.db.QueryRowContext(ctx, `
		insert into org_units (id, name, description)
		values ($1, $2, $3)
		returning id, name, coalesce(description, ''), created_at, updated_at
	`, ids.New(), unit.Name, nullable(unit.Description))
	var created portal.OrgUnit
	err := row.Scan(&created.ID, &created.Name, &created.Description, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return portal.OrgUnit{}, portal.ErrConflict
		}
		return portal.OrgUnit{}, err
	}
	return created, nil
}

func (s *Store) ListOrgUnits(ctx context.Context) ([]portal.OrgUnit, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, name, coalesce(description, ''), created_at, updated_at
		from org_units
		order by name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []portal.OrgUnit
	for rows.Next() {
		var unit portal.OrgUnit
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.Description, &unit.CreatedAt, &unit.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) GetOrgUnit(ctx context.Context, id string) (portal.OrgUnit, error) {
	var unit portal.OrgUnit
	err := s.db.QueryRowContext(ctx, `
		select id, name, coalesce(description, ''), created_at, updated_at
		from org_units
		where id = $1
	`, id).Scan(&unit.ID, &unit.Name, &unit.Description, &unit.CreatedAt, &unit.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.OrgUnit{}, portal.ErrNotFound
	}
	if err != nil {
		return portal.OrgUnit{}, err
	}
	return unit, nil
}

func (s *Store) UpdateOrgUnit(ctx context.Context, unit portal.OrgUnit) (portal.OrgUnit, error) {
	row := s.db.QueryRowContext(ctx, `
		update org_units
		set name = $2, description = $3, updated_at = now()
		where id = $1
		returning id, name, coalesce(description, ''), created_at, updated_at
	`, unit.ID, unit.Name, nullable(unit.Description))
	var updated portal.OrgUnit
	err := row.Scan(&updated.ID, &updated.Name, &updated.Description, &updated.CreatedAt, &updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return portal.OrgUnit{}, portal.ErrNotFound
	}
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return portal.OrgUnit{}, portal.ErrConflict
		}
		return portal.OrgUnit{}, err
	}
	return updated, nil
}

func (s *Store) DeleteOrgUnit(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from org_units where id = $1`, id)
	if err != nil {
		// Tenders and amendments hold restricting references to their
		// secretariat.
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
			return portal.ErrConflict
		}
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

// OrgUnitName implements auth.OrgUnitNamer.
func (s *Store) OrgUnitName(ctx context.Context, id string) (string, error) {
	unit, err := s.GetOrgUnit(ctx, id)
	if err != nil {
		return "", err
	}
	return unit.Name, nil
}
