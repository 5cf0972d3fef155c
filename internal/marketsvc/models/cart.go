package models

import (
	"github.com/shopspring/decimal"
)

// CartLine is the denormalized view served to clients: the cart line joined
// with the product's display fields.
type CartLine struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Kind      ProductKind     `json:"kind"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}
