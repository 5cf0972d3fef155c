package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nebyat/duelmart-services/internal/cart"
)

func TestAuthenticatedCallWithoutToken(t *testing.T) {
	c := New("http://localhost:0")
	if _, err := c.FetchCart(context.Background()); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestNetworkFailureNormalized(t *testing.T) {
	c := New("http://127.0.0.1:1")
	c.SetToken("tok")
	_, err := c.FetchCart(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != 0 {
		t.Fatalf("network failure carries status %d, want 0", apiErr.Status)
	}
}

func TestServerErrorCarriesMessageAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "",
			"code":    400,
			"error":   "insufficient balance",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok")
	err := c.Checkout(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", apiErr.Status)
	}
	if apiErr.Message != "insufficient balance" {
		t.Fatalf("message %q", apiErr.Message)
	}
}

func TestFetchCartDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization header %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "ok",
			"code":    200,
			"data": []map[string]interface{}{
				{"id": 1, "product_id": 9, "kind": "card", "name": "Blade Golem", "unit_price": "4.50", "quantity": 2},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok")
	items, err := c.FetchCart(context.Background())
	if err != nil {
		t.Fatalf("FetchCart: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	li := items[0]
	if li.Kind != cart.KindCard || li.Quantity != 2 || !li.UnitPrice.Equal(decimal.RequireFromString("4.50")) {
		t.Fatalf("unexpected line item %+v", li)
	}
}

func TestLoginInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/user/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"message": "ok", "code": 200,
				"data": map[string]string{"token": "issued-token"},
			})
		case "/v1/cart":
			if r.Header.Get("Authorization") != "Bearer issued-token" {
				t.Errorf("cart call missing issued token")
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"message": "ok", "code": 200, "data": []interface{}{}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := c.FetchCart(context.Background()); err != nil {
		t.Fatalf("FetchCart after login: %v", err)
	}
}
