package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pack is a sealed product that opens into CardsPerPack random cards at
// checkout.
type Pack struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	CardsPerPack int             `json:"cards_per_pack"`
	ImageURL     string          `json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
