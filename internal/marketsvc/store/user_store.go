package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) CreateUser(ctx context.Context, user models.User) (int64, error) {
	var userId int64

	query := `
        INSERT INTO users (name, email, password_hash, role, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING user_id;
    `

	err := s.db.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Status,
	).Scan(&userId)
	if err != nil {
		return 0, fmt.Errorf("could not create user: %w", err)
	}

	return userId, nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRow(ctx, `
        SELECT user_id, name, email, password_hash, role, status, created_at, updated_at
        FROM users
        WHERE user_id = $1
    `, id)

	return scanUser(row)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRow(ctx, `
        SELECT user_id, name, email, password_hash, role, status, created_at, updated_at
        FROM users
        WHERE email = $1
    `, email)

	return scanUser(row)
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.UserId,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}
