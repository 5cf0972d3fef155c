package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
	"github.com/nebyat/duelmart-services/internal/marketsvc/service"
	"github.com/nebyat/duelmart-services/internal/marketsvc/store"
)

func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	userId, _, err := requestUser(r)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, err)
		return
	}

	lines, err := h.cartService.GetLines(r.Context(), userId)
	if err != nil {
		log.Errorf("Error [CartService.GetLines] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to load cart"))
		return
	}
	if lines == nil {
		lines = []models.CartLine{}
	}

	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: lines})
}

type addCartRequest struct {
	CardID *int64 `json:"cardId"`
	PackID *int64 `json:"packId"`
}

func (h *Handler) AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	userId, _, err := requestUser(r)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, err)
		return
	}

	var req addCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	var productId int64
	var kind models.ProductKind
	switch {
	case req.CardID != nil:
		productId, kind = *req.CardID, models.KindCard
	case req.PackID != nil:
		productId, kind = *req.PackID, models.KindPack
	default:
		h.errorResponse(w, http.StatusBadRequest, errors.New("cardId or packId is required"))
		return
	}

	if err := h.cartService.AddItem(r.Context(), userId, productId, kind); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			h.errorResponse(w, http.StatusNotFound, err)
			return
		}
		log.Errorf("Error [CartService.AddItem] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to add to cart"))
		return
	}

	h.CreateResponse(w, Response{Message: "item added", Code: http.StatusOK})
}

type updateCartRequest struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

func (h *Handler) UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	userId, _, err := requestUser(r)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, err)
		return
	}

	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := h.cartService.SetQuantity(r.Context(), userId, req.ItemID, req.Quantity); err != nil {
		if errors.Is(err, service.ErrBadQuantity) {
			h.errorResponse(w, http.StatusBadRequest, err)
			return
		}
		log.Errorf("Error [CartService.SetQuantity] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to update quantity"))
		return
	}

	h.CreateResponse(w, Response{Message: "quantity updated", Code: http.StatusOK})
}

func (h *Handler) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	userId, _, err := requestUser(r)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, err)
		return
	}

	itemId, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	if err := h.cartService.RemoveItem(r.Context(), userId, itemId); err != nil {
		log.Errorf("Error [CartService.RemoveItem] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to remove item"))
		return
	}

	h.CreateResponse(w, Response{Message: "item removed", Code: http.StatusOK})
}

func (h *Handler) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	userId, _, err := requestUser(r)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, err)
		return
	}

	if err := h.cartService.Clear(r.Context(), userId); err != nil {
		log.Errorf("Error [CartService.Clear] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to clear cart"))
		return
	}

	h.CreateResponse(w, Response{Message: "cart cleared", Code: http.StatusOK})
}

func (h *Handler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	userId, _, err := requestUser(r)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, err)
		return
	}

	total, err := h.cartService.Checkout(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCartEmpty):
			h.errorResponse(w, http.StatusBadRequest, err)
		case errors.Is(err, store.ErrInsufficientBalance),
			errors.Is(err, store.ErrInsufficientStock):
			h.errorResponse(w, http.StatusConflict, err)
		default:
			log.Errorf("Error [CartService.Checkout] %s", err)
			h.errorResponse(w, http.StatusInternalServerError, errors.New("checkout failed"))
		}
		return
	}

	h.CreateResponse(w, Response{
		Message: "checkout completed",
		Code:    http.StatusOK,
		Data:    map[string]decimal.Decimal{"total": total},
	})
}
