package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type sqlUserRepository struct {
	db SQLQuerier
}

// NewSqlUserRepository creates sqlUserRepository that implements port.UserRepository
func NewSqlUserRepository(db SQLQuerier) port.UserRepository {
	return &sqlUserRepository{
		db: db,
	}
}

// Create creates a new user
func (s *sqlUserRepository) Create(ctx context.Context, id uuid.UUID, username, passwordHash string, role domain.Role) error {
	query := `INSERT INTO users (user_id, username, password_hash, role) VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query, id, username, passwordHash, role)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("user %s: %w", username, domain.ErrDuplicateUsername)
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

// FindByUsername finds by unique username
func (s *sqlUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT user_id, username, password_hash, role, created_at
              FROM users
              WHERE username = $1`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID finds by id
func (s *sqlUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT user_id, username, password_hash, role, created_at
              FROM users
              WHERE user_id = $1`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns all users, used by the reconciliation sweep
func (s *sqlUserRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT user_id, username, password_hash, role, created_at FROM users`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
