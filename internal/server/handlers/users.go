package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/maynagashev/ignitecall/internal/server/middleware"
	"github.com/maynagashev/ignitecall/internal/server/services"
	"github.com/maynagashev/ignitecall/models"
)

// SessionIssuer выпускает токены сессии для новых пользователей.
type SessionIssuer interface {
	Issue(userID int64) (string, error)
	TTL() time.Duration
}

// UserHandler обрабатывает HTTP-запросы, связанные с пользователями.
type UserHandler struct {
	service  services.UserService
	sessions SessionIssuer
}

// NewUserHandler создает новый экземпляр UserHandler.
func NewUserHandler(s services.UserService, sessions SessionIssuer) *UserHandler {
	return &UserHandler{service: s, sessions: sessions}
}

// Create обрабатывает POST /users.
// При успехе отвечает 201 с пользователем и устанавливает cookie сессии.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[UserHandler] Ошибка декодирования запроса регистрации: %v", err)
		writeError(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Name, req.Username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		log.Printf("[UserHandler] Ошибка выпуска сессии для %d: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusCreated, user)
}

// GetProfile обрабатывает GET /users/{username}.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.PublicProfile{
		Username: user.Username,
		Name:     user.Name,
		Bio:      user.Bio,
	})
}

// SetTimeIntervals обрабатывает PUT /users/time-intervals (требует сессию).
func (h *UserHandler) SetTimeIntervals(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		log.Println("[UserHandler] Не удалось получить userID из контекста")
		writeError(w, http.StatusUnauthorized, "Требуется аутентификация")
		return
	}

	var req models.TimeIntervalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Неверный формат запроса")
		return
	}

	if err := h.service.SetTimeIntervals(r.Context(), userID, req.Intervals); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
