package pg

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"municipio.org/internal/auth"
	"municipio.org/internal/ids"
)

var _ auth.AccountStore = (*Store)(nil)

const accountColumns = `id, email, name, password_hash, role, coalesce(org_unit_id, ''), created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (auth.Account, error) {
	var acct auth.Account
	var role string
	err := row.Scan(&acct.ID, &acct.Email, &acct.Name, &acct.PasswordHash, &role,
		&acct.OrgUnitID, &acct.CreatedAt, &acct.UpdatedAt)
	if err != nil {
		return auth.Account{}, err
	}
	acct.Role = auth.Role(role)
	return acct, nil
}

func (s *Store) CreateAccount(ctx context.Context, acct auth.Account) (auth.Account, error) {
	id := ids.New()
	row := s.db.QueryRowContext(ctx, `
		insert into accounts (id, email, name, password_hash, role, org_unit_id)
		values ($1, $2, $3, $4, $5, $6)
		returning `+accountColumns+`
	`, id, acct.Email, acct.Name, acct.PasswordHash, string(acct.Role), nullable(acct.OrgUnitID))
	created, err := scanAccount(row)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return auth.Account{}, auth.ErrConflict
		}
		return auth.Account{}, err
	}
	return created, nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (auth.Account, error) {
	row := s.db.QueryRowContext(ctx, `select `+accountColumns+` from accounts where id = $1`, id)
	acct, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Account{}, auth.ErrNotFound
	}
	if err != nil {
		return auth.Account{}, err
	}
	return acct, nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (auth.Account, error) {
	row := s.db.QueryRowContext(ctx, `select `+accountColumns+` from accounts where email = $1`, email)
	acct, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Account{}, auth.ErrNotFound
	}
	if err != nil {
		return auth.Account{}, err
	}
	return acct, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]auth.Account, error) {
	rows, err := s.db.QueryContext(ctx, `select `+accountColumns+` from accounts order by email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []auth.Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) UpdateAccount(ctx context.Context, id string, upd auth.AccountUpdate) (auth.Account, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, strings.Replace(expr, "?", placeholder(len(args)), 1))
	}
	if upd.Email != nil {
		add("email = ?", *upd.Email)
	}
	if upd.Name != nil {
		add("name = ?", *upd.Name)
	}
	if upd.Role != nil {
		add("role = ?", string(*upd.Role))
	}
	if upd.OrgUnitID != nil {
		add("org_unit_id = ?", nullable(*upd.OrgUnitID))
	}
	if upd.PasswordHash != nil {
		add("password_hash = ?", *upd.PasswordHash)
	}
	if len(sets) == 0 {
		return s.GetAccount(ctx, id)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := `update accounts set ` + strings.Join(sets, ", ") +
		` where id = ` + placeholder(len(args)) +
		` returning ` + accountColumns
	row := s.db.QueryRowContext(ctx, query, args...)
	acct, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Account{}, auth.ErrNotFound
	}
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return auth.Account{}, auth.ErrConflict
		}
		return auth.Account{}, err
	}
	return acct, nil
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from accounts where id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
