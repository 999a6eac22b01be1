package handlers

import (
	"net/http"

	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/users"
	"github.com/go-playground/validator/v10"
)

// TokensHandler issues and refreshes JWT token pairs.
type TokensHandler struct {
	Service *users.Service
	JWT     *auth.JWTManager
	Env     string

	validate *validator.Validate
}

func NewTokensHandler(service *users.Service, jwt *auth.JWTManager, env string) *TokensHandler {
	return &TokensHandler{
		Service:  service,
		JWT:      jwt,
		Env:      env,
		validate: validator.New(),
	}
}

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (h *TokensHandler) Obtain(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !decodeJSON(w, r, h.validate, h.Env, &req) {
		return
	}

	user, err := h.Service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}

	access, err := h.JWT.GenerateAccess(user.ID.String(), user.Username)
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}
	refresh, err := h.JWT.GenerateRefresh(user.ID.String(), user.Username)
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{Access: access, Refresh: refresh})
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type accessResponse struct {
	Access string `json:"access"`
}

func (h *TokensHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, h.validate, h.Env, &req) {
		return
	}

	claims, err := h.JWT.ValidateRefresh(req.Refresh)
	if err != nil {
		problem.Unauthorized(w, r, err, h.Env)
		return
	}

	access, err := h.JWT.GenerateAccess(claims.Subject, claims.Username)
	if err != nil {
		problem.ServerError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, accessResponse{Access: access})
}
