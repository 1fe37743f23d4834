package handlers

import (
	"net/http"

	"github.com/St1cky1/taskboard/internal/api/middleware"
	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/St1cky1/taskboard/internal/usecase"
)

type UserHandler struct {
	userService *usecase.UserService
}

func NewUserHandler(userService *usecase.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// список всех пользователей, только для админа
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	users, err := h.userService.ListUsers(r.Context(), actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if users == nil {
		users = []entity.User{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

// профиль текущего пользователя
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	user, err := h.userService.GetCurrentUser(r.Context(), actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": user})
}
