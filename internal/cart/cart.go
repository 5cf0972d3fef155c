package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductKind is the explicit tag on a line item. Every consumption site
// switches on it exhaustively; there is no shape-sniffing.
type ProductKind string

const (
	KindCard ProductKind = "card"
	KindPack ProductKind = "pack"
)

// LineItem is one cart entry: a product reference, its kind, and the
// denormalized display fields the storefront shows.
type LineItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Kind      ProductKind     `json:"kind"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is the line's price contribution.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Backend is the remote cart service the reconciler synchronizes against.
// The HTTP implementation lives in internal/client.
type Backend interface {
	FetchCart(ctx context.Context) ([]LineItem, error)
	AddItem(ctx context.Context, productID int64, kind ProductKind) error
	RemoveItem(ctx context.Context, lineID int64) error
	SetQuantity(ctx context.Context, lineID int64, quantity int) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) error
	FetchBalance(ctx context.Context) (decimal.Decimal, error)
}

// User-facing messages for the known checkout failure classes.
const (
	MsgCartEmpty           = "your cart is empty"
	MsgInsufficientBalance = "insufficient balance, add funds to continue"
	MsgInsufficientStock   = "not enough stock for one of your items"
	MsgCheckoutFailed      = "checkout failed, please try again"
	MsgCartUnavailable     = "could not load your cart"
	MsgInvalidLineItem     = "cart contains an invalid item"
)
