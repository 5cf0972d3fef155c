package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
)

func TestAddItemRejectsUnknownKind(t *testing.T) {
	// The kind guard runs before any store access, so nil stores are fine.
	s := NewCartService(nil, nil, nil, nil)

	err := s.AddItem(context.Background(), 1, 42, models.ProductKind("bundle"))
	if !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("AddItem with unknown kind = %v, want ErrUnknownProduct", err)
	}

	err = s.AddItem(context.Background(), 1, 42, models.ProductKind(""))
	if !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("AddItem with empty kind = %v, want ErrUnknownProduct", err)
	}
}
