package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
)

// Checkout failure classes. The message text is part of the client contract:
// the reconciler pattern-matches these substrings.
var (
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientStock   = errors.New("insufficient stock")
)

type CheckoutStore struct {
	db *pgxpool.Pool
}

func NewCheckoutStore(db *pgxpool.Pool) *CheckoutStore {
	return &CheckoutStore{db: db}
}

type checkoutLine struct {
	itemId    int64
	productId int64
	kind      models.ProductKind
	quantity  int
	price     decimal.Decimal
	stock     int
}

// Checkout settles the user's cart in one transaction: validates stock and
// balance, writes the credit ledger row, decrements stock, grants cards to
// the inventory (packs open into random cards), and empties the cart.
// Returns the charged total.
func (s *CheckoutStore) Checkout(ctx context.Context, userId int64) (decimal.Decimal, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to begin checkout: %w", err)
	}
	defer tx.Rollback(ctx)

	lines, err := lockCartLines(ctx, tx, userId)
	if err != nil {
		return decimal.Zero, err
	}
	if len(lines) == 0 {
		return decimal.Zero, ErrCartEmpty
	}

	total := decimal.Zero
	for _, l := range lines {
		if l.stock < l.quantity {
			return decimal.Zero, fmt.Errorf("%w for %s %d", ErrInsufficientStock, l.kind, l.productId)
		}
		total = total.Add(l.price.Mul(decimal.NewFromInt(int64(l.quantity))))
	}

	balance, err := balanceForUpdate(ctx, tx, userId)
	if err != nil {
		return decimal.Zero, err
	}
	if balance.LessThan(total) {
		return decimal.Zero, ErrInsufficientBalance
	}

	tref := uuid.New().String()
	_, err = tx.Exec(ctx, `
		INSERT INTO balances (user_id, ttype, dr, cr, tref, status)
		VALUES ($1, 'purchase', 0, $2, $3, 'completed')
	`, userId, total, tref)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to record purchase: %w", err)
	}

	for _, l := range lines {
		if err := settleLine(ctx, tx, userId, l); err != nil {
			return decimal.Zero, err
		}
	}

	_, err = tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userId)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to empty cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to commit checkout: %w", err)
	}
	return total, nil
}

func lockCartLines(ctx context.Context, tx pgx.Tx, userId int64) ([]checkoutLine, error) {
	rows, err := tx.Query(ctx, `
		SELECT ci.id, ci.product_id, ci.kind, ci.quantity, c.price, c.stock
		FROM cart_items ci
		JOIN cards c ON c.id = ci.product_id AND ci.kind = 'card'
		WHERE ci.user_id = $1
		FOR UPDATE OF c
	`, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart card lines: %w", err)
	}
	lines, err := collectCheckoutLines(rows)
	if err != nil {
		return nil, err
	}

	rows, err = tx.Query(ctx, `
		SELECT ci.id, ci.product_id, ci.kind, ci.quantity, p.price, p.stock
		FROM cart_items ci
		JOIN packs p ON p.id = ci.product_id AND ci.kind = 'pack'
		WHERE ci.user_id = $1
		FOR UPDATE OF p
	`, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart pack lines: %w", err)
	}
	packLines, err := collectCheckoutLines(rows)
	if err != nil {
		return nil, err
	}

	return append(lines, packLines...), nil
}

func collectCheckoutLines(rows pgx.Rows) ([]checkoutLine, error) {
	defer rows.Close()
	var lines []checkoutLine
	for rows.Next() {
		var l checkoutLine
		if err := rows.Scan(&l.itemId, &l.productId, &l.kind, &l.quantity, &l.price, &l.stock); err != nil {
			return nil, fmt.Errorf("failed to scan checkout line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checkout lines: %w", err)
	}
	return lines, nil
}

func balanceForUpdate(ctx context.Context, tx pgx.Tx, userId int64) (decimal.Decimal, error) {
	var totalDr, totalCr decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(dr), 0), COALESCE(SUM(cr), 0)
		FROM balances
		WHERE user_id = $1 AND status = 'completed'
	`, userId).Scan(&totalDr, &totalCr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balance: %w", err)
	}
	return totalDr.Sub(totalCr), nil
}

// settleLine decrements stock and grants the purchased cards. A pack line
// opens into cards_per_pack random catalog cards per unit bought.
func settleLine(ctx context.Context, tx pgx.Tx, userId int64, l checkoutLine) error {
	switch l.kind {
	case models.KindCard:
		_, err := tx.Exec(ctx, `
			UPDATE cards SET stock = stock - $1, updated_at = now() WHERE id = $2
		`, l.quantity, l.productId)
		if err != nil {
			return fmt.Errorf("failed to decrement card stock: %w", err)
		}
		return grantCard(ctx, tx, userId, l.productId, l.quantity)

	case models.KindPack:
		_, err := tx.Exec(ctx, `
			UPDATE packs SET stock = stock - $1, updated_at = now() WHERE id = $2
		`, l.quantity, l.productId)
		if err != nil {
			return fmt.Errorf("failed to decrement pack stock: %w", err)
		}

		var perPack int
		if err := tx.QueryRow(ctx, `SELECT cards_per_pack FROM packs WHERE id = $1`, l.productId).Scan(&perPack); err != nil {
			return fmt.Errorf("failed to read pack size: %w", err)
		}

		rows, err := tx.Query(ctx, `
			SELECT id FROM cards ORDER BY random() LIMIT $1
		`, perPack*l.quantity)
		if err != nil {
			return fmt.Errorf("failed to draw pack cards: %w", err)
		}
		var drawn []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan pack card: %w", err)
			}
			drawn = append(drawn, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read pack cards: %w", err)
		}

		for _, cardId := range drawn {
			if err := grantCard(ctx, tx, userId, cardId, 1); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown product kind %q on cart item %d", l.kind, l.itemId)
	}
}

func grantCard(ctx context.Context, tx pgx.Tx, userId, cardId int64, quantity int) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO inventory (user_id, card_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, card_id)
		DO UPDATE SET quantity = inventory.quantity + $3, updated_at = now()
	`, userId, cardId, quantity)
	if err != nil {
		return fmt.Errorf("failed to grant card %d: %w", cardId, err)
	}
	return nil
}
