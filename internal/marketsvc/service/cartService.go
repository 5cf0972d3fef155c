package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
	"github.com/nebyat/duelmart-services/internal/marketsvc/store"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownProduct  = errors.New("unknown product kind")
	ErrBadQuantity     = errors.New("quantity must be at least 1")
)

type CartService struct {
	cartStore     *store.CartStore
	checkoutStore *store.CheckoutStore
	cardStore     *store.CardStore
	packStore     *store.PackStore
}

func NewCartService(cartStore *store.CartStore, checkoutStore *store.CheckoutStore,
	cardStore *store.CardStore, packStore *store.PackStore) *CartService {
	return &CartService{
		cartStore:     cartStore,
		checkoutStore: checkoutStore,
		cardStore:     cardStore,
		packStore:     packStore,
	}
}

func (s *CartService) GetLines(ctx context.Context, userId int64) ([]models.CartLine, error) {
	return s.cartStore.GetLines(ctx, userId)
}

// AddItem verifies the product exists for its kind before inserting the
// line; the kind switch is exhaustive.
func (s *CartService) AddItem(ctx context.Context, userId, productId int64, kind models.ProductKind) error {
	if !kind.Valid() {
		return ErrUnknownProduct
	}

	switch kind {
	case models.KindCard:
		card, err := s.cardStore.GetByID(ctx, productId)
		if err != nil {
			return err
		}
		if card == nil {
			return ErrProductNotFound
		}
	case models.KindPack:
		pack, err := s.packStore.GetByID(ctx, productId)
		if err != nil {
			return err
		}
		if pack == nil {
			return ErrProductNotFound
		}
	}

	return s.cartStore.AddItem(ctx, userId, productId, kind)
}

func (s *CartService) SetQuantity(ctx context.Context, userId, itemId int64, quantity int) error {
	if quantity < 1 {
		return ErrBadQuantity
	}
	return s.cartStore.SetQuantity(ctx, userId, itemId, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userId, itemId int64) error {
	return s.cartStore.RemoveItem(ctx, userId, itemId)
}

func (s *CartService) Clear(ctx context.Context, userId int64) error {
	return s.cartStore.Clear(ctx, userId)
}

func (s *CartService) Checkout(ctx context.Context, userId int64) (decimal.Decimal, error) {
	return s.checkoutStore.Checkout(ctx, userId)
}
