package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
)

type InventoryStore struct {
	db *pgxpool.Pool
}

func NewInventoryStore(db *pgxpool.Pool) *InventoryStore {
	return &InventoryStore{db: db}
}

// ListPage returns one page of the user's owned cards, optionally filtered
// by name substring and card category, plus the total matching count.
func (s *InventoryStore) ListPage(ctx context.Context, userId int64, limit, offset int, itemName, cardAttribute string) ([]models.OwnedCard, int, error) {
	where := `inv.user_id = $1`
	args := []interface{}{userId}

	if itemName != "" {
		args = append(args, "%"+itemName+"%")
		where += fmt.Sprintf(" AND c.name ILIKE $%d", len(args))
	}
	if cardAttribute != "" {
		args = append(args, cardAttribute)
		where += fmt.Sprintf(" AND c.category = $%d", len(args))
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM inventory inv
		JOIN cards c ON c.id = inv.card_id
		WHERE ` + where
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.category, c.attack, c.defense, c.price, c.stock,
		       c.image_url, c.created_at, c.updated_at, inv.quantity
		FROM inventory inv
		JOIN cards c ON c.id = inv.card_id
		WHERE %s
		ORDER BY c.id
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var owned []models.OwnedCard
	for rows.Next() {
		var oc models.OwnedCard
		err := rows.Scan(
			&oc.ID, &oc.Name, &oc.Category, &oc.Attack, &oc.Defense,
			&oc.Price, &oc.Stock, &oc.ImageURL, &oc.CreatedAt, &oc.UpdatedAt,
			&oc.Quantity,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		owned = append(owned, oc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read inventory: %w", err)
	}
	return owned, total, nil
}

// GetOwnedCards returns the user's owned cards for the given ids, used to
// validate a duel hand selection.
func (s *InventoryStore) GetOwnedCards(ctx context.Context, userId int64, cardIds []int64) ([]models.Card, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.name, c.category, c.attack, c.defense, c.price, c.stock,
		       c.image_url, c.created_at, c.updated_at
		FROM inventory inv
		JOIN cards c ON c.id = inv.card_id
		WHERE inv.user_id = $1 AND c.id = ANY($2)
	`, userId, cardIds)
	if err != nil {
		return nil, fmt.Errorf("failed to get owned cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}
