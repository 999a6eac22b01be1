package handlers

import (
	"net/http"

	"github.com/gatherly/server/internal/domain/users"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UsersHandler struct {
	Service *users.Service
	Env     string

	validate *validator.Validate
}

func NewUsersHandler(service *users.Service, env string) *UsersHandler {
	return &UsersHandler{
		Service:  service,
		Env:      env,
		validate: validator.New(),
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, h.validate, h.Env, &req) {
		return
	}

	user, err := h.Service.Register(r.Context(), users.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondDomainError(w, r, err, h.Env)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
