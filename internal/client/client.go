package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/nebyat/duelmart-services/internal/cart"
)

// ErrNoToken is the pre-flight rejection for authenticated calls issued
// before login.
var ErrNoToken = errors.New("authenticated request without token")

// APIError is the normalized failure shape for every remote call: network
// failures carry status 0, server-reported failures carry the HTTP status
// and the message from the response envelope.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// envelope mirrors the marketsvc handler response shape.
type envelope struct {
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client calls the marketplace REST service. It implements cart.Backend so
// the reconciler can run against the live backend.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetToken installs the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do issues one request and decodes the response envelope into out. Every
// failure path returns an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}, auth bool) error {
	token := c.bearer()
	if auth && token == "" {
		return ErrNoToken
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return &APIError{Message: fmt.Sprintf("encode request: %s", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request: %s", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("network error: %s", err)}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Message: "malformed server response", Status: resp.StatusCode}
	}

	if resp.StatusCode >= 400 || env.Error != "" {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Message: msg, Status: resp.StatusCode}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &APIError{Message: fmt.Sprintf("decode response: %s", err), Status: resp.StatusCode}
		}
	}
	return nil
}

type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authData struct {
	Token string `json:"token"`
}

// Signup registers a user and installs the returned bearer token.
func (c *Client) Signup(ctx context.Context, creds Credentials) error {
	var data authData
	if err := c.do(ctx, http.MethodPost, "/v1/user/signup", creds, &data, false); err != nil {
		return err
	}
	c.SetToken(data.Token)
	return nil
}

// Login authenticates and installs the returned bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	var data authData
	if err := c.do(ctx, http.MethodPost, "/v1/user/login", creds, &data, false); err != nil {
		return err
	}
	c.SetToken(data.Token)
	return nil
}

type Profile struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/v1/user", nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// Deposit adds funds to the user balance.
func (c *Client) Deposit(ctx context.Context, amount decimal.Decimal) error {
	body := map[string]decimal.Decimal{"amount": amount}
	return c.do(ctx, http.MethodPatch, "/v1/user/funds", body, nil, true)
}

type CardPage struct {
	Results    []CatalogCard `json:"results"`
	TotalPages int           `json:"totalPages"`
}

type CatalogCard struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Attack    int             `json:"attack"`
	Defense   int             `json:"defense"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"image_url"`
	CreatedBy int64           `json:"created_by,omitempty"`
}

// ListCards fetches one page of the card catalog.
func (c *Client) ListCards(ctx context.Context, page, itemsPerPage int) (*CardPage, error) {
	path := fmt.Sprintf("/v1/cards?page=%d&itemsPerPage=%d", page, itemsPerPage)
	var cp CardPage
	if err := c.do(ctx, http.MethodGet, path, nil, &cp, true); err != nil {
		return nil, err
	}
	return &cp, nil
}

// CreateCard adds a catalog card (admin only).
func (c *Client) CreateCard(ctx context.Context, card CatalogCard) error {
	return c.do(ctx, http.MethodPost, "/v1/cards/", card, nil, true)
}

type InventoryFilter struct {
	Page          int
	ItemsPerPage  int
	ItemName      string
	CardAttribute string
}

type InventoryPage struct {
	Results    []CatalogCard `json:"results"`
	TotalPages int           `json:"totalPages"`
}

// ListInventory fetches the caller's owned cards with optional name and
// attribute filters.
func (c *Client) ListInventory(ctx context.Context, f InventoryFilter) (*InventoryPage, error) {
	q := fmt.Sprintf("page=%d&itemsPerPage=%d", f.Page, f.ItemsPerPage)
	if f.ItemName != "" {
		q += "&itemName=" + f.ItemName
	}
	if f.CardAttribute != "" {
		q += "&cardAttribute=" + f.CardAttribute
	}
	var ip InventoryPage
	if err := c.do(ctx, http.MethodGet, "/v1/inventory?"+q, nil, &ip, true); err != nil {
		return nil, err
	}
	return &ip, nil
}

// --- cart.Backend implementation ---------------------------------------

func (c *Client) FetchCart(ctx context.Context) ([]cart.LineItem, error) {
	var items []cart.LineItem
	if err := c.do(ctx, http.MethodGet, "/v1/cart", nil, &items, true); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddItem(ctx context.Context, productID int64, kind cart.ProductKind) error {
	body := map[string]interface{}{}
	switch kind {
	case cart.KindCard:
		body["cardId"] = productID
	case cart.KindPack:
		body["packId"] = productID
	default:
		return &APIError{Message: "unknown product kind: " + string(kind)}
	}
	return c.do(ctx, http.MethodPost, "/v1/cart", body, nil, true)
}

func (c *Client) RemoveItem(ctx context.Context, lineID int64) error {
	return c.do(ctx, http.MethodDelete, "/v1/cart/card/"+strconv.FormatInt(lineID, 10), nil, nil, true)
}

func (c *Client) SetQuantity(ctx context.Context, lineID int64, quantity int) error {
	body := map[string]interface{}{"itemId": lineID, "quantity": quantity}
	return c.do(ctx, http.MethodPut, "/v1/cart", body, nil, true)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/v1/cart", nil, nil, true)
}

func (c *Client) Checkout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/cart/checkout", nil, nil, true)
}

func (c *Client) FetchBalance(ctx context.Context) (decimal.Decimal, error) {
	p, err := c.FetchProfile(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Balance, nil
}
