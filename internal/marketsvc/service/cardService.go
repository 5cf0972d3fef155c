package service

import (
	"context"
	"errors"
	"sync"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
	"github.com/nebyat/duelmart-services/internal/marketsvc/store"
)

var ErrInvalidCategory = errors.New("card category must be monster, spell or trap")

// CardService owns the catalog. The in-memory snapshot used for opponent
// draws lives behind accessors here, never in package-level state.
type CardService struct {
	cardStore *store.CardStore

	mu      sync.RWMutex
	catalog []models.Card
}

func NewCardService(cardStore *store.CardStore) *CardService {
	return &CardService{cardStore: cardStore}
}

// CardPage is one catalog page plus the page count the storefront paginator
// needs.
type CardPage struct {
	Results    []models.Card `json:"results"`
	TotalPages int           `json:"totalPages"`
}

func (s *CardService) ListPage(ctx context.Context, page, itemsPerPage int) (*CardPage, error) {
	if page < 1 {
		page = 1
	}
	if itemsPerPage < 1 {
		itemsPerPage = 10
	}
	offset := (page - 1) * itemsPerPage

	cards, total, err := s.cardStore.ListPage(ctx, itemsPerPage, offset)
	if err != nil {
		return nil, err
	}
	return &CardPage{
		Results:    cards,
		TotalPages: TotalPages(total, itemsPerPage),
	}, nil
}

func (s *CardService) CreateCard(ctx context.Context, card models.Card) (int64, error) {
	switch card.Category {
	case "monster", "spell", "trap":
	default:
		return 0, ErrInvalidCategory
	}
	return s.cardStore.CreateCard(ctx, card)
}

func (s *CardService) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	return s.cardStore.GetByID(ctx, id)
}

// RefreshCatalog reloads the full-catalog snapshot from the store.
func (s *CardService) RefreshCatalog(ctx context.Context) error {
	cards, err := s.cardStore.ListAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.catalog = cards
	s.mu.Unlock()
	return nil
}

// CatalogSnapshot returns a copy of the last loaded catalog.
func (s *CardService) CatalogSnapshot() []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Card(nil), s.catalog...)
}

// TotalPages is the page count for total items at perPage per page; an
// empty catalog still reports one page for the paginator widget.
func TotalPages(total, perPage int) int {
	if perPage < 1 || total < 1 {
		return 1
	}
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}
