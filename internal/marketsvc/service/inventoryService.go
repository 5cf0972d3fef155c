package service

import (
	"context"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
	"github.com/nebyat/duelmart-services/internal/marketsvc/store"
)

type InventoryService struct {
	inventoryStore *store.InventoryStore
}

func NewInventoryService(inventoryStore *store.InventoryStore) *InventoryService {
	return &InventoryService{inventoryStore: inventoryStore}
}

type InventoryPage struct {
	Results    []models.OwnedCard `json:"results"`
	TotalPages int                `json:"totalPages"`
}

func (s *InventoryService) ListPage(ctx context.Context, userId int64, page, itemsPerPage int, itemName, cardAttribute string) (*InventoryPage, error) {
	if page < 1 {
		page = 1
	}
	if itemsPerPage < 1 {
		itemsPerPage = 10
	}
	offset := (page - 1) * itemsPerPage

	owned, total, err := s.inventoryStore.ListPage(ctx, userId, itemsPerPage, offset, itemName, cardAttribute)
	if err != nil {
		return nil, err
	}
	return &InventoryPage{
		Results:    owned,
		TotalPages: TotalPages(total, itemsPerPage),
	}, nil
}

// OwnedCards fetches the given card ids from the user's inventory, used by
// the duel service to validate a hand selection.
func (s *InventoryService) OwnedCards(ctx context.Context, userId int64, cardIds []int64) ([]models.Card, error) {
	return s.inventoryStore.GetOwnedCards(ctx, userId, cardIds)
}
