package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nebyat/duelmart-services/internal/marketsvc/store"
)

var ErrInvalidAmount = errors.New("deposit amount must be positive")

type BalanceService struct {
	balanceStore *store.BalanceStore
}

func NewBalanceService(store *store.BalanceStore) *BalanceService {
	return &BalanceService{balanceStore: store}
}

func (s *BalanceService) GetUserBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.balanceStore.GetBalanceByUserID(ctx, userID)
}

// Deposit credits the user's ledger with a fresh transaction reference.
func (s *BalanceService) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := s.balanceStore.Deposit(ctx, userID, amount, uuid.New().String()); err != nil {
		return decimal.Zero, err
	}
	return s.balanceStore.GetBalanceByUserID(ctx, userID)
}
