package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// fakeBackend scripts the remote cart service. Unset funcs mean the call is
// unexpected and fails the test via the zero values returned.
type fakeBackend struct {
	fetchCart    func() ([]LineItem, error)
	addItem      func(productID int64, kind ProductKind) error
	removeItem   func(lineID int64) error
	setQuantity  func(lineID int64, quantity int) error
	clearCart    func() error
	checkout     func() error
	fetchBalance func() (decimal.Decimal, error)

	calls []string
}

func (f *fakeBackend) FetchCart(ctx context.Context) ([]LineItem, error) {
	f.calls = append(f.calls, "fetch")
	if f.fetchCart == nil {
		return nil, nil
	}
	return f.fetchCart()
}

func (f *fakeBackend) AddItem(ctx context.Context, productID int64, kind ProductKind) error {
	f.calls = append(f.calls, "add")
	if f.addItem == nil {
		return nil
	}
	return f.addItem(productID, kind)
}

func (f *fakeBackend) RemoveItem(ctx context.Context, lineID int64) error {
	f.calls = append(f.calls, "remove")
	if f.removeItem == nil {
		return nil
	}
	return f.removeItem(lineID)
}

func (f *fakeBackend) SetQuantity(ctx context.Context, lineID int64, quantity int) error {
	f.calls = append(f.calls, "setqty")
	if f.setQuantity == nil {
		return nil
	}
	return f.setQuantity(lineID, quantity)
}

func (f *fakeBackend) ClearCart(ctx context.Context) error {
	f.calls = append(f.calls, "clear")
	if f.clearCart == nil {
		return nil
	}
	return f.clearCart()
}

func (f *fakeBackend) Checkout(ctx context.Context) error {
	f.calls = append(f.calls, "checkout")
	if f.checkout == nil {
		return nil
	}
	return f.checkout()
}

func (f *fakeBackend) FetchBalance(ctx context.Context) (decimal.Decimal, error) {
	f.calls = append(f.calls, "balance")
	if f.fetchBalance == nil {
		return decimal.Zero, nil
	}
	return f.fetchBalance()
}

func line(id int64, price string, qty int) LineItem {
	return LineItem{
		ID:        id,
		ProductID: id * 10,
		Kind:      KindCard,
		Name:      "Card",
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func TestRefreshReplacesProjection(t *testing.T) {
	remote := []LineItem{line(1, "4.50", 2), line(2, "1.25", 1)}
	fb := &fakeBackend{fetchCart: func() ([]LineItem, error) { return remote, nil }}
	r := NewReconciler(fb)

	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	items := r.Items()
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 2 {
		t.Fatalf("unexpected projection %+v", items)
	}
	if got := r.Total(); !got.Equal(decimal.RequireFromString("10.25")) {
		t.Fatalf("total %s, want 10.25", got)
	}
}

func TestRefreshFailureYieldsEmptyCartAndError(t *testing.T) {
	fb := &fakeBackend{fetchCart: func() ([]LineItem, error) { return []LineItem{line(1, "1.00", 1)}, nil }}
	r := NewReconciler(fb)
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	fb.fetchCart = func() ([]LineItem, error) { return nil, errors.New("connection refused") }
	if err := r.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if items := r.Items(); len(items) != 0 {
		t.Fatalf("stale items retained after failed refresh: %+v", items)
	}
	if r.ErrorMessage() == "" {
		t.Fatal("no error message after failed refresh")
	}
}

func TestAddRefreshesOnSuccess(t *testing.T) {
	fb := &fakeBackend{}
	r := NewReconciler(fb)
	if err := r.Add(context.Background(), 42, KindCard); err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := []string{"add", "fetch"}
	if len(fb.calls) != 2 || fb.calls[0] != want[0] || fb.calls[1] != want[1] {
		t.Fatalf("call order %v, want %v", fb.calls, want)
	}
}

func TestAddFailureLeavesProjectionUntouched(t *testing.T) {
	fb := &fakeBackend{fetchCart: func() ([]LineItem, error) { return []LineItem{line(1, "2.00", 1)}, nil }}
	r := NewReconciler(fb)
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	fb.addItem = func(int64, ProductKind) error { return errors.New("boom") }
	if err := r.Add(context.Background(), 7, KindPack); err == nil {
		t.Fatal("expected add error")
	}
	if items := r.Items(); len(items) != 1 {
		t.Fatalf("projection mutated on failed add: %+v", items)
	}
	if r.ErrorMessage() == "" {
		t.Fatal("no error surfaced on failed add")
	}
}

func TestAddRejectsUnknownKind(t *testing.T) {
	fb := &fakeBackend{}
	r := NewReconciler(fb)
	if err := r.Add(context.Background(), 7, ProductKind("bundle")); err == nil {
		t.Fatal("expected error for unknown product kind")
	}
	if len(fb.calls) != 0 {
		t.Fatalf("backend called for unknown kind: %v", fb.calls)
	}
}

func TestUpdateQuantityClampsAndPersists(t *testing.T) {
	remote := []LineItem{line(1, "3.00", 1)}
	var gotQty int
	fb := &fakeBackend{
		fetchCart:   func() ([]LineItem, error) { return remote, nil },
		setQuantity: func(lineID int64, q int) error { gotQty = q; return nil },
	}
	r := NewReconciler(fb)
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	// Decrement below 1 clamps to 1; quantity is already 1 so no call is made.
	if err := r.UpdateQuantity(context.Background(), 1, -5); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if gotQty != 0 {
		t.Fatalf("backend called for a no-op clamp, quantity %d", gotQty)
	}

	if err := r.UpdateQuantity(context.Background(), 1, +3); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if gotQty != 4 {
		t.Fatalf("persisted quantity %d, want 4", gotQty)
	}
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	r := NewReconciler(&fakeBackend{})
	if err := r.UpdateQuantity(context.Background(), 99, 1); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestClearTwiceIsSafe(t *testing.T) {
	fb := &fakeBackend{}
	r := NewReconciler(fb)
	for i := 0; i < 2; i++ {
		if err := r.Clear(context.Background()); err != nil {
			t.Fatalf("Clear call %d: %v", i+1, err)
		}
	}
	if len(r.Items()) != 0 {
		t.Fatal("cart not empty after clear")
	}
}

func TestCheckoutEmptyCartSkipsNetwork(t *testing.T) {
	fb := &fakeBackend{}
	r := NewReconciler(fb)
	if err := r.Checkout(context.Background()); err == nil {
		t.Fatal("expected checkout error on empty cart")
	}
	if r.ErrorMessage() != MsgCartEmpty {
		t.Fatalf("message %q, want %q", r.ErrorMessage(), MsgCartEmpty)
	}
	if len(fb.calls) != 0 {
		t.Fatalf("remote calls issued for empty cart: %v", fb.calls)
	}
}

func TestCheckoutRejectsInvalidLine(t *testing.T) {
	remote := []LineItem{line(1, "0.00", 1)}
	fb := &fakeBackend{fetchCart: func() ([]LineItem, error) { return remote, nil }}
	r := NewReconciler(fb)
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	fb.calls = nil

	if err := r.Checkout(context.Background()); err == nil {
		t.Fatal("expected checkout error for zero-price line")
	}
	if r.ErrorMessage() != MsgInvalidLineItem {
		t.Fatalf("message %q, want %q", r.ErrorMessage(), MsgInvalidLineItem)
	}
	if len(fb.calls) != 0 {
		t.Fatalf("remote calls issued for invalid cart: %v", fb.calls)
	}
}

func TestCheckoutSuccessClearsCartAndClosesView(t *testing.T) {
	remote := []LineItem{line(1, "5.00", 2)}
	fb := &fakeBackend{
		fetchCart:    func() ([]LineItem, error) { return remote, nil },
		fetchBalance: func() (decimal.Decimal, error) { return decimal.RequireFromString("90.00"), nil },
	}
	r := NewReconciler(fb)
	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	r.SetCartOpen(true)

	// After checkout the server cart is empty.
	fb.checkout = func() error {
		remote = nil
		return nil
	}

	if err := r.Checkout(context.Background()); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(r.Items()) != 0 {
		t.Fatalf("items left after checkout: %+v", r.Items())
	}
	if r.CartOpen() {
		t.Fatal("cart view still open after checkout")
	}
	if !r.Balance().Equal(decimal.RequireFromString("90.00")) {
		t.Fatalf("balance %s not refreshed", r.Balance())
	}
	if r.ErrorMessage() != "" {
		t.Fatalf("unexpected error message %q", r.ErrorMessage())
	}
}

func TestCheckoutFailureMessages(t *testing.T) {
	cases := []struct {
		serverErr string
		want      string
	}{
		{"purchase rejected: cart is empty", MsgCartEmpty},
		{"purchase rejected: insufficient balance", MsgInsufficientBalance},
		{"purchase rejected: insufficient stock for card 9", MsgInsufficientStock},
		{"500 internal server error", MsgCheckoutFailed},
	}

	for _, tc := range cases {
		remote := []LineItem{line(1, "5.00", 1)}
		fb := &fakeBackend{
			fetchCart: func() ([]LineItem, error) { return remote, nil },
			checkout:  func() error { return errors.New(tc.serverErr) },
		}
		r := NewReconciler(fb)
		if err := r.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh: %v", err)
		}

		if err := r.Checkout(context.Background()); err == nil {
			t.Fatalf("%q: expected checkout error", tc.serverErr)
		}
		if r.ErrorMessage() != tc.want {
			t.Errorf("%q: message %q, want %q", tc.serverErr, r.ErrorMessage(), tc.want)
		}
		if items := r.Items(); len(items) != 1 {
			t.Errorf("%q: projection mutated on failed checkout: %+v", tc.serverErr, items)
		}
	}
}
