package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/nebyat/duelmart-services/internal/marketsvc/service"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		h.errorResponse(w, http.StatusBadRequest, errors.New("name, email and password are required"))
		return
	}

	user, err := h.userService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			h.errorResponse(w, http.StatusConflict, err)
			return
		}
		log.Errorf("Error [UserService.Signup] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("signup failed"))
		return
	}

	token, err := h.mintToken(user.UserId, user.Role)
	if err != nil {
		log.Errorf("Error minting token for user %d: %s", user.UserId, err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("signup failed"))
		return
	}

	h.CreateResponse(w, Response{
		Message: "user created",
		Code:    http.StatusCreated,
		Data:    authResponse{Token: token, Name: user.Name},
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.errorResponse(w, http.StatusUnauthorized, err)
			return
		}
		log.Errorf("Error [UserService.Authenticate] %s", err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("login failed"))
		return
	}

	token, err := h.mintToken(user.UserId, user.Role)
	if err != nil {
		log.Errorf("Error minting token for user %d: %s", user.UserId, err)
		h.errorResponse(w, http.StatusInternalServerError, errors.New("login failed"))
		return
	}

	h.CreateResponse(w, Response{
		Message: "login ok",
		Code:    http.StatusOK,
		Data:    authResponse{Token: token, Name: user.Name},
	})
}
