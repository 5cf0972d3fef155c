package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrLineNotFound = errors.New("cart line not found")

// Reconciler keeps a local projection of the remote cart. The backend is the
// source of truth: every mutating operation calls the backend first and then
// refreshes the projection wholesale, so local state is provisional until the
// trailing refresh lands. A per-instance mutex serializes operations, which
// makes refresh-after-mutation strictly ordered.
type Reconciler struct {
	mu      sync.Mutex
	backend Backend

	items    []LineItem
	balance  decimal.Decimal
	errMsg   string
	cartOpen bool
}

func NewReconciler(backend Backend) *Reconciler {
	return &Reconciler{backend: backend}
}

// Items returns a copy of the current projection.
func (r *Reconciler) Items() []LineItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LineItem(nil), r.items...)
}

func (r *Reconciler) Balance() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balance
}

// ErrorMessage returns the message set by the last failed operation, or ""
// after a success.
func (r *Reconciler) ErrorMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

func (r *Reconciler) CartOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cartOpen
}

func (r *Reconciler) SetCartOpen(open bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cartOpen = open
}

// Total sums the line subtotals of the current projection.
func (r *Reconciler) Total() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, li := range r.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Refresh replaces the projection with the backend cart. On fetch failure the
// projection becomes empty and an error message is set; stale items are never
// retained.
func (r *Reconciler) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshLocked(ctx)
}

func (r *Reconciler) refreshLocked(ctx context.Context) error {
	items, err := r.backend.FetchCart(ctx)
	if err != nil {
		log.Errorf("Error [Reconciler.Refresh] %s", err)
		r.items = nil
		r.errMsg = MsgCartUnavailable
		return err
	}
	r.items = items
	r.errMsg = ""
	return nil
}

// Add puts one product in the remote cart and refreshes. There is no
// speculative local insert; a failure leaves the projection untouched.
func (r *Reconciler) Add(ctx context.Context, productID int64, kind ProductKind) error {
	switch kind {
	case KindCard, KindPack:
	default:
		return errors.New("unknown product kind: " + string(kind))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.AddItem(ctx, productID, kind); err != nil {
		log.Errorf("Error [Reconciler.Add] %s", err)
		r.errMsg = err.Error()
		return err
	}
	return r.refreshLocked(ctx)
}

// Remove deletes one line remotely and refreshes.
func (r *Reconciler) Remove(ctx context.Context, lineID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.RemoveItem(ctx, lineID); err != nil {
		log.Errorf("Error [Reconciler.Remove] %s", err)
		r.errMsg = err.Error()
		return err
	}
	return r.refreshLocked(ctx)
}

// UpdateQuantity applies delta to a line's quantity, clamped to a minimum of
// 1, persists it via the backend, and refreshes. Quantity changes survive a
// later refresh because they are written through, not held locally.
func (r *Reconciler) UpdateQuantity(ctx context.Context, lineID int64, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current *LineItem
	for i := range r.items {
		if r.items[i].ID == lineID {
			current = &r.items[i]
			break
		}
	}
	if current == nil {
		return ErrLineNotFound
	}

	quantity := current.Quantity + delta
	if quantity < 1 {
		quantity = 1
	}
	if quantity == current.Quantity {
		return nil
	}

	if err := r.backend.SetQuantity(ctx, lineID, quantity); err != nil {
		log.Errorf("Error [Reconciler.UpdateQuantity] %s", err)
		r.errMsg = err.Error()
		return err
	}
	return r.refreshLocked(ctx)
}

// Clear empties the remote cart and refreshes. Clearing an already-empty
// cart is safe.
func (r *Reconciler) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.backend.ClearCart(ctx); err != nil {
		log.Errorf("Error [Reconciler.Clear] %s", err)
		r.errMsg = err.Error()
		return err
	}
	return r.refreshLocked(ctx)
}

// Checkout validates the projection, submits the purchase, and on success
// clears the cart, closes the cart view, refreshes the balance, and runs a
// trailing cart refresh to pick up any server-side partial application.
// The empty-cart case never reaches the network.
func (r *Reconciler) Checkout(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		r.errMsg = MsgCartEmpty
		return errors.New(MsgCartEmpty)
	}
	for _, li := range r.items {
		if !li.UnitPrice.IsPositive() || li.Quantity < 1 {
			r.errMsg = MsgInvalidLineItem
			return errors.New(MsgInvalidLineItem)
		}
	}

	if err := r.backend.Checkout(ctx); err != nil {
		log.Errorf("Error [Reconciler.Checkout] %s", err)
		r.errMsg = checkoutMessage(err)
		return err
	}

	r.items = nil
	r.cartOpen = false
	r.errMsg = ""

	balance, err := r.backend.FetchBalance(ctx)
	if err != nil {
		log.Errorf("Error [Reconciler.Checkout] balance refresh %s", err)
	} else {
		r.balance = balance
	}

	return r.refreshLocked(ctx)
}

// checkoutMessage maps known server error substrings onto the user-facing
// messages; anything unrecognized falls through to the generic one.
func checkoutMessage(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "cart is empty"):
		return MsgCartEmpty
	case strings.Contains(msg, "insufficient balance"):
		return MsgInsufficientBalance
	case strings.Contains(msg, "insufficient stock"):
		return MsgInsufficientStock
	default:
		return MsgCheckoutFailed
	}
}
