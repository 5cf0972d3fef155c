package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/nebyat/duelmart-services/internal/marketsvc/service"
)

type profileData struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	userId, _, err := requestUser(r)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), userId)
	if err != nil || user == nil {
		log.Errorf("Error [UserService.GetByID] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to load profile"))
		return
	}

	balance, err := h.balanceService.GetUserBalance(r.Context(), userId)
	if err != nil {
		log.Errorf("Error [BalanceService.GetUserBalance] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("failed to load balance"))
		return
	}

	h.CreateResponse(w, Response{
		Message: "ok",
		Code:    http.StatusOK,
		Data:    profileData{Name: user.Name, Balance: balance},
	})
}

type fundsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) DepositFundsHandler(w http.ResponseWriter, r *http.Request) {
	userId, _, err := requestUser(r)
	if err != nil {
		h.errorResponse(w, http.StatusUnauthorized, err)
		return
	}

	var req fundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	balance, err := h.balanceService.Deposit(r.Context(), userId, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			h.errorResponse(w, http.StatusBadRequest, err)
			return
		}
		log.Errorf("Error [BalanceService.Deposit] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("deposit failed"))
		return
	}

	h.CreateResponse(w, Response{
		Message: "deposit completed",
		Code:    http.StatusOK,
		Data:    map[string]decimal.Decimal{"balance": balance},
	})
}
