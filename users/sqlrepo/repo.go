// Package sqlrepo stores accounts in PostgreSQL (pgx) or SQLite (modernc).
package sqlrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrsteele09/go-api-skeleton/internal/dbx"
	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

const userColumns = `id, email, name, password_hash, scopes, disabled, superuser, created_at, updated_at`

var _ users.UserRepo = (*Repo)(nil)

type Repo struct {
	db      *sql.DB
	dialect Dialect
	nowFunc func() time.Time
}

type Option func(*Repo)

func WithNowFunc(now func() time.Time) Option {
	return func(r *Repo) {
		r.nowFunc = now
	}
}

func New(db *sql.DB, dialect Dialect, options ...Option) *Repo {
	r := &Repo{
		db:      db,
		dialect: dialect,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *Repo) now() time.Time {
	return r.nowFunc().UTC().Truncate(time.Microsecond)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getOne(ctx, r.db, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return r.getOne(ctx, r.db, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *Repo) List(ctx context.Context) ([]*users.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY email`)
	if err != nil {
		return nil, errors.Wrap(err, "db error")
	}
	defer rows.Close()

	list := make([]*users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "db error")
	}
	return list, nil
}

// Create checks for an existing email before inserting, inside one
// transaction. A unique violation from a concurrent insert maps to the same error.
func (r *Repo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	stored := user.Clone()
	stored.ID = uuid.New().String()
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var n int
		if err := tx.QueryRowContext(ctx, r.dialect.rebind(`SELECT COUNT(*) FROM users WHERE email = $1`), stored.Email).Scan(&n); err != nil {
			return errors.Wrap(err, "db error")
		}
		if n > 0 {
			return errors.Wrapf(apperrors.ErrDuplicateEmail, "email %q", stored.Email)
		}

		_, err := tx.ExecContext(ctx, r.dialect.rebind(
			`INSERT INTO users (`+userColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`),
			stored.ID, stored.Email, nullString(stored.Name), stored.PasswordHash, stored.Scopes.String(),
			stored.Disabled, stored.Superuser, stored.CreatedAt, stored.UpdatedAt)
		if isUniqueViolation(err) {
			return errors.Wrapf(apperrors.ErrDuplicateEmail, "email %q", stored.Email)
		}
		if err != nil {
			return errors.Wrap(err, "db error")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *Repo) Update(ctx context.Context, email string, patch users.UserPatch) (*users.User, error) {
	var scopes sql.NullString
	if patch.Scopes != nil {
		scopes = sql.NullString{String: users.NewScopes(*patch.Scopes...).String(), Valid: true}
	}

	var updated *users.User
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, r.dialect.rebind(
			`UPDATE users SET
			   name = COALESCE($1, name),
			   password_hash = COALESCE($2, password_hash),
			   scopes = COALESCE($3, scopes),
			   disabled = COALESCE($4, disabled),
			   superuser = COALESCE($5, superuser),
			   updated_at = $6
			 WHERE email = $7`),
			optString(patch.Name), optString(patch.PasswordHash), scopes,
			optBool(patch.Disabled), optBool(patch.Superuser), r.now(), email)
		if err != nil {
			return errors.Wrap(err, "db error")
		}
		if err := expectRows(res, email); err != nil {
			return err
		}
		updated, err = r.getOne(ctx, tx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repo) UpdatePassword(ctx context.Context, user *users.User, passwordHash string) (*users.User, error) {
	var updated *users.User
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, r.dialect.rebind(
			`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`),
			passwordHash, r.now(), user.ID)
		if err != nil {
			return errors.Wrap(err, "db error")
		}
		if err := expectRows(res, user.Email); err != nil {
			return err
		}
		updated, err = r.getOne(ctx, tx, `SELECT `+userColumns+` FROM users WHERE id = $1`, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repo) Delete(ctx context.Context, user *users.User) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.rebind(`DELETE FROM users WHERE id = $1`), user.ID)
	if err != nil {
		return false, errors.Wrap(err, "db error")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "db error")
	}
	return n > 0, nil
}

func (r *Repo) getOne(ctx context.Context, db dbx.DBTX, query string, arg string) (*users.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, r.dialect.rebind(query), arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "user %q", arg)
	}
	return u, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*users.User, error) {
	var (
		u      users.User
		name   sql.NullString
		scopes string
	)
	err := row.Scan(&u.ID, &u.Email, &name, &u.PasswordHash, &scopes,
		&u.Disabled, &u.Superuser, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, errors.Wrap(err, "db error")
	}
	u.Name = name.String
	u.Scopes = users.ParseScopes(scopes)
	return &u, nil
}

func expectRows(res sql.Result, email string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "db error")
	}
	if n == 0 {
		return errors.Wrapf(apperrors.ErrNotFound, "user %q", email)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func optString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func optBool(p *bool) sql.NullBool {
	if p == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *p, Valid: true}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
