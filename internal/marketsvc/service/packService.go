package service

import (
	"context"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
	"github.com/nebyat/duelmart-services/internal/marketsvc/store"
)

type PackService struct {
	packStore *store.PackStore
}

func NewPackService(packStore *store.PackStore) *PackService {
	return &PackService{packStore: packStore}
}

func (s *PackService) List(ctx context.Context) ([]models.Pack, error) {
	return s.packStore.List(ctx)
}

func (s *PackService) GetByID(ctx context.Context, id int64) (*models.Pack, error) {
	return s.packStore.GetByID(ctx, id)
}
