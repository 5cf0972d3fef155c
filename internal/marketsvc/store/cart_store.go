package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
)

type CartStore struct {
	db *pgxpool.Pool
}

func NewCartStore(db *pgxpool.Pool) *CartStore {
	return &CartStore{db: db}
}

// GetLines returns the user's cart joined with product display fields, one
// branch of the union per product kind.
func (s *CartStore) GetLines(ctx context.Context, userId int64) ([]models.CartLine, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ci.id, ci.product_id, ci.kind, c.name, c.image_url, c.price, ci.quantity
		FROM cart_items ci
		JOIN cards c ON c.id = ci.product_id AND ci.kind = 'card'
		WHERE ci.user_id = $1
		UNION ALL
		SELECT ci.id, ci.product_id, ci.kind, p.name, p.image_url, p.price, ci.quantity
		FROM cart_items ci
		JOIN packs p ON p.id = ci.product_id AND ci.kind = 'pack'
		WHERE ci.user_id = $1
		ORDER BY 1
	`, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart lines: %w", err)
	}
	defer rows.Close()

	var lines []models.CartLine
	for rows.Next() {
		var l models.CartLine
		err := rows.Scan(&l.ID, &l.ProductID, &l.Kind, &l.Name, &l.Image, &l.UnitPrice, &l.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart lines: %w", err)
	}
	return lines, nil
}

// AddItem inserts a line for the product or bumps its quantity when the
// product is already in the cart.
func (s *CartStore) AddItem(ctx context.Context, userId, productId int64, kind models.ProductKind) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO cart_items (user_id, product_id, kind, quantity)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (user_id, product_id, kind)
		DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = now()
	`, userId, productId, kind)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

// SetQuantity updates one line's quantity. Quantities below 1 are a caller
// bug; the check constraint on the table rejects them.
func (s *CartStore) SetQuantity(ctx context.Context, userId, itemId int64, quantity int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE cart_items SET quantity = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
	`, quantity, itemId, userId)
	if err != nil {
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cart item %d not found", itemId)
	}
	return nil
}

// RemoveItem deletes one line entirely.
func (s *CartStore) RemoveItem(ctx context.Context, userId, itemId int64) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM cart_items WHERE id = $1 AND user_id = $2
	`, itemId, userId)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear deletes every line for the user. Safe on an already-empty cart.
func (s *CartStore) Clear(ctx context.Context, userId int64) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM cart_items WHERE user_id = $1
	`, userId)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
