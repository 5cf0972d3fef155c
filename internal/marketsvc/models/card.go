package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card is one catalog entry. Attack and defense apply to monsters only.
type Card struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"` // 'monster', 'spell', 'trap'
	Attack    int             `json:"attack"`
	Defense   int             `json:"defense"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"image_url"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
