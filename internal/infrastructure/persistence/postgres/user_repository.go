package postgres

import (
	"context"
	"database/sql"

	"talent-track/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository keeps prepared statements for the hot auth paths.
type UserRepository struct {
	db *sql.DB

	stmtCreate     *sql.Stmt
	stmtGetByID    *sql.Stmt
	stmtGetByEmail *sql.Stmt
	stmtExists     *sql.Stmt
}

func NewUserRepository(db *sql.DB) (*UserRepository, error) {
	r := &UserRepository{db: db}

	prepare := func(query string) (*sql.Stmt, error) {
		return db.PrepareContext(context.Background(), query)
	}

	var err error
	r.stmtCreate, err = prepare(
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByID, err = prepare(
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByEmail, err = prepare(
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE lower(email) = lower($1)`)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtExists, err = prepare(
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtExists)

	return firstErr
}

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Email, u.PasswordHash)
	return err
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.stmtGetByEmail.QueryRowContext(ctx, email))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.stmtExists.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
