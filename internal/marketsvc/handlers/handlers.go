package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/nebyat/duelmart-services/internal/marketsvc/service"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth

	userService      *service.UserService
	balanceService   *service.BalanceService
	cardService      *service.CardService
	packService      *service.PackService
	cartService      *service.CartService
	inventoryService *service.InventoryService
}

func NewHandler(userService *service.UserService, balanceService *service.BalanceService,
	cardService *service.CardService, packService *service.PackService,
	cartService *service.CartService, inventoryService *service.InventoryService) *Handler {
	return &Handler{
		userService:      userService,
		balanceService:   balanceService,
		cardService:      cardService,
		packService:      packService,
		cartService:      cartService,
		inventoryService: inventoryService,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) errorResponse(w http.ResponseWriter, code int, err error) {
	h.CreateResponse(w, Response{Code: code, Error: err.Error()})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "market service is running at port " + os.Getenv("MARKET_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode health response: %v", err)
	}
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}

// mintToken issues the bearer token returned by signup and login.
func (h *Handler) mintToken(userId int64, role string) (string, error) {
	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()
	_, tokenString, err := h.tokenAuth.Encode(map[string]interface{}{
		"user_id": userId,
		"role":    role,
		"exp":     expirationTime,
	})
	return tokenString, err
}

// requestUser pulls the authenticated user's id and role out of the
// verified JWT claims.
func requestUser(r *http.Request) (int64, string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, "", err
	}

	var userId int64
	switch v := claims["user_id"].(type) {
	case float64:
		userId = int64(v)
	case int64:
		userId = v
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, "", err
		}
		userId = id
	}

	role, _ := claims["role"].(string)
	return userId, role, nil
}
