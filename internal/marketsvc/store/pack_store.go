package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
)

type PackStore struct {
	db *pgxpool.Pool
}

func NewPackStore(db *pgxpool.Pool) *PackStore {
	return &PackStore{db: db}
}

func (s *PackStore) GetByID(ctx context.Context, id int64) (*models.Pack, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, price, stock, cards_per_pack, image_url, created_at, updated_at
		FROM packs
		WHERE id = $1
	`, id)

	p := &models.Pack{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Stock, &p.CardsPerPack,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pack by ID: %w", err)
	}
	return p, nil
}

func (s *PackStore) List(ctx context.Context) ([]models.Pack, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, price, stock, cards_per_pack, image_url, created_at, updated_at
		FROM packs
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list packs: %w", err)
	}
	defer rows.Close()

	var packs []models.Pack
	for rows.Next() {
		var p models.Pack
		err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Stock, &p.CardsPerPack,
			&p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pack: %w", err)
		}
		packs = append(packs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read packs: %w", err)
	}
	return packs, nil
}
