package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type BalanceStore struct {
	db *pgxpool.Pool
}

func NewBalanceStore(db *pgxpool.Pool) *BalanceStore {
	return &BalanceStore{db: db}
}

func (s *BalanceStore) GetBalanceByUserID(ctx context.Context, userId int64) (decimal.Decimal, error) {
	var totalDr, totalCr decimal.Decimal

	err := s.db.QueryRow(ctx, `
        SELECT
            COALESCE(SUM(dr), 0),
            COALESCE(SUM(cr), 0)
        FROM balances
        WHERE user_id = $1 AND status = 'completed'
    `, userId).Scan(&totalDr, &totalCr)

	if err != nil {
		return decimal.Zero, err
	}

	balance := totalDr.Sub(totalCr)
	return balance, nil
}

// Deposit writes one debit ledger row for a funds top-up.
func (s *BalanceStore) Deposit(ctx context.Context, userId int64, amount decimal.Decimal, tref string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO balances (user_id, ttype, dr, cr, tref, status)
		VALUES ($1, 'deposit', $2, 0, $3, 'completed')
	`, userId, amount, tref)
	if err != nil {
		return fmt.Errorf("failed to record deposit: %w", err)
	}
	return nil
}
