package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/nebyat/duelmart-services/internal/marketsvc/models"
	"github.com/nebyat/duelmart-services/internal/marketsvc/service"
)

func queryInt(r *http.Request, key, fallback string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		raw = fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func (h *Handler) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", "1")
	itemsPerPage := queryInt(r, "itemsPerPage", "10")

	cardPage, err := h.cardService.ListPage(r.Context(), page, itemsPerPage)
	if err != nil {
		log.Errorf("Error [CardService.ListPage] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to list cards"))
		return
	}

	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: cardPage})
}

func (h *Handler) CreateCardHandler(w http.ResponseWriter, r *http.Request) {
	_, role, err := requestUser(r)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, err)
		return
	}
	if role != "admin" {
		h.errorResponse(w, http.StatusForbidden, errors.New("admin role required"))
		return
	}

	var card models.Card
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		h.errorResponse(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if card.Name == "" {
		h.errorResponse(w, http.StatusBadRequest, errors.New("card name is required"))
		return
	}

	id, err := h.cardService.CreateCard(r.Context(), card)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			h.errorResponse(w, http.StatusBadRequest, err)
			return
		}
		log.Errorf("Error [CardService.CreateCard] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to create card"))
		return
	}

	h.CreateResponse(w, Response{
		Message: "card created",
		Code:    http.StatusCreated,
		Data:    map[string]int64{"id": id},
	})
}

func (h *Handler) ListPacksHandler(w http.ResponseWriter, r *http.Request) {
	packs, err := h.packService.List(r.Context())
	if err != nil {
		log.Errorf("Error [PackService.List] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to list packs"))
		return
	}

	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: packs})
}
