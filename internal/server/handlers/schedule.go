package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maynagashev/ignitecall/internal/server/services"
	"github.com/maynagashev/ignitecall/models"
)

const dateLayout = "2006-01-02"

// ScheduleHandler обрабатывает запросы доступности и бронирования.
type ScheduleHandler struct {
	service services.ScheduleService
}

// NewScheduleHandler создает новый экземпляр ScheduleHandler.
func NewScheduleHandler(s services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: s}
}

// Availability обрабатывает GET /users/{username}/availability?date=YYYY-MM-DD.
func (h *ScheduleHandler) Availability(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Параметр date должен быть в формате ГГГГ-ММ-ДД")
		return
	}

	availability, err := h.service.Availability(r.Context(), chi.URLParam(r, "username"), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

// BlockedDates обрабатывает GET /users/{username}/blocked-dates?year=YYYY&month=MM.
func (h *ScheduleHandler) BlockedDates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	year, errYear := strconv.Atoi(query.Get("year"))
	month, errMonth := strconv.Atoi(query.Get("month"))
	if errYear != nil || errMonth != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Параметры year и month обязательны")
		return
	}

	blocked, err := h.service.BlockedDates(r.Context(), chi.URLParam(r, "username"), year, time.Month(month))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blocked)
}

// Schedule обрабатывает POST /users/{username}/schedule.
func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSchedulingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ScheduleHandler] Ошибка декодирования запроса бронирования: %v", err)
		writeError(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	scheduling, err := h.service.Schedule(r.Context(), chi.URLParam(r, "username"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scheduling)
}

// Invite обрабатывает GET /schedulings/{id}/invite.ics.
func (h *ScheduleHandler) Invite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rc, err := h.service.Invite(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="invite-`+id+`.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err = io.Copy(w, rc); err != nil {
		log.Printf("[ScheduleHandler] Ошибка отправки приглашения %s: %v", id, err)
	}
}
