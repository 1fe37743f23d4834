package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/St1cky1/taskboard/internal/entity"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError переводит ошибки ядра в HTTP статусы
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidTaskData),
		errors.Is(err, entity.ErrInvalidCommentData),
		errors.Is(err, entity.ErrInvalidUserData):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, entity.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, entity.ErrTaskNotFound), errors.Is(err, entity.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("❌ Внутренняя ошибка: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
