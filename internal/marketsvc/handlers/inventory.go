package handlers

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListInventoryHandler(w http.ResponseWriter, r *http.Request) {
	userId, _, err := requestUser(r)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, err)
		return
	}

	page := queryInt(r, "page", "1")
	itemsPerPage := queryInt(r, "itemsPerPage", "10")
	itemName := r.URL.Query().Get("itemName")
	cardAttribute := r.URL.Query().Get("cardAttribute")

	inv, err := h.inventoryService.ListPage(r.Context(), userId, page, itemsPerPage, itemName, cardAttribute)
	if err != nil {
		log.Errorf("Error [InventoryService.ListPage] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to list inventory"))
		return
	}

	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: inv})
}
