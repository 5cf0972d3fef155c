package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
)

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

func (s *CardStore) CreateCard(ctx context.Context, card models.Card) (int64, error) {
	var id int64
	query := `
		INSERT INTO cards (name, category, attack, defense, price, stock, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`
	err := s.db.QueryRow(ctx, query,
		card.Name, card.Category, card.Attack, card.Defense, card.Price, card.Stock, card.ImageURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("could not create card: %w", err)
	}
	return id, nil
}

func (s *CardStore) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, category, attack, defense, price, stock, image_url, created_at, updated_at
		FROM cards
		WHERE id = $1
	`, id)

	c := &models.Card{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Category, &c.Attack, &c.Defense,
		&c.Price, &c.Stock, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card by ID: %w", err)
	}
	return c, nil
}

// ListPage returns one catalog page plus the total card count.
func (s *CardStore) ListPage(ctx context.Context, limit, offset int) ([]models.Card, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM cards`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, name, category, attack, defense, price, stock, image_url, created_at, updated_at
		FROM cards
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards, err := collectCards(rows)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// ListAll returns the full catalog, used as the opponent draw pool.
func (s *CardStore) ListAll(ctx context.Context) ([]models.Card, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, category, attack, defense, price, stock, image_url, created_at, updated_at
		FROM cards
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

func collectCards(rows pgx.Rows) ([]models.Card, error) {
	var cards []models.Card
	for rows.Next() {
		var c models.Card
		err := rows.Scan(
			&c.ID, &c.Name, &c.Category, &c.Attack, &c.Defense,
			&c.Price, &c.Stock, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return cards, nil
}
