package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/maynagashev/ignitecall/internal/forms"
	"github.com/maynagashev/ignitecall/internal/server/services"
	"github.com/maynagashev/ignitecall/models"
)

const msgInternalError = "Внутренняя ошибка сервера"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Статус уже отправлен, остается только залогировать
		log.Printf("[Handlers] Ошибка кодирования ответа: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Message: message})
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ вида {"message": "..."}.
func writeServiceError(w http.ResponseWriter, err error) {
	if fieldErrs, ok := forms.AsFieldErrors(err); ok {
		writeError(w, http.StatusBadRequest, fieldErrs.Error())
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrInviteNotFound),
		errors.Is(err, services.ErrInviteNotAvailable):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrInvalidInterval),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidMonth),
		errors.Is(err, services.ErrDateInPast),
		errors.Is(err, services.ErrSlotUnavailable):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[Handlers] Внутренняя ошибка: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}
