package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/ignitecall/internal/server/handlers"
	"github.com/maynagashev/ignitecall/internal/server/services"
	"github.com/maynagashev/ignitecall/models"
)

func newScheduleRouter(svc *MockScheduleService) http.Handler {
	h := handlers.NewScheduleHandler(svc)
	r := chi.NewRouter()
	r.Get("/users/{username}/availability", h.Availability)
	r.Get("/users/{username}/blocked-dates", h.BlockedDates)
	r.Post("/users/{username}/schedule", h.Schedule)
	r.Get("/schedulings/{id}/invite.ics", h.Invite)
	return r
}

func TestScheduleHandler_Availability(t *testing.T) {
	svc := new(MockScheduleService)
	day := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
	svc.On("Availability", mock.Anything, "mary", day).
		Return(&models.Availability{PossibleTimes: []int{9, 10}, AvailableTimes: []int{10}}, nil).Once()
	router := newScheduleRouter(svc)

	t.Run("Успех", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/mary/availability?date=2026-10-15", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"possible_times":[9,10],"available_times":[10]}`, rr.Body.String())
	})

	t.Run("Неверная дата", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/mary/availability?date=15.10.2026", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
	svc.AssertExpectations(t)
}

func TestScheduleHandler_BlockedDates(t *testing.T) {
	svc := new(MockScheduleService)
	svc.On("BlockedDates", mock.Anything, "mary", 2026, time.October).
		Return(&models.BlockedDates{BlockedWeekDays: []int{0, 6}, BlockedDates: []int{14}}, nil).Once()
	svc.On("BlockedDates", mock.Anything, "ghost", 2026, time.October).
		Return(nil, services.ErrUserNotFound).Once()
	router := newScheduleRouter(svc)

	tests := []struct {
		name           string
		url            string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Успех",
			url:            "/users/mary/blocked-dates?year=2026&month=10",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"blocked_week_days":[0,6],"blocked_dates":[14]}`,
		},
		{name: "Нет месяца", url: "/users/mary/blocked-dates?year=2026", expectedStatus: http.StatusBadRequest},
		{name: "Месяц вне диапазона", url: "/users/mary/blocked-dates?year=2026&month=13",
			expectedStatus: http.StatusBadRequest},
		{name: "Пользователь не найден", url: "/users/ghost/blocked-dates?year=2026&month=10",
			expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
	svc.AssertExpectations(t)
}

func TestScheduleHandler_Schedule(t *testing.T) {
	date := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
	req := models.CreateSchedulingRequest{Name: "John Doe", Email: "john@example.com", Date: date}
	body := `{"name":"John Doe","email":"john@example.com","observations":"","date":"2026-10-15T09:00:00Z"}`

	tests := []struct {
		name            string
		body            string
		result          *models.Scheduling
		serviceErr      error
		callsService    bool
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "Успех",
			body:           body,
			result:         &models.Scheduling{ID: "id-1", Date: date, Name: "John Doe", Email: "john@example.com"},
			callsService:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:            "Время занято",
			body:            body,
			serviceErr:      services.ErrSlotUnavailable,
			callsService:    true,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: services.ErrSlotUnavailable.Error(),
		},
		{
			name:            "Время в прошлом",
			body:            body,
			serviceErr:      services.ErrDateInPast,
			callsService:    true,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: services.ErrDateInPast.Error(),
		},
		{
			name:           "Неверный JSON",
			body:           `{"date":"вчера"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockScheduleService)
			if tt.callsService {
				if tt.result != nil {
					svc.On("Schedule", mock.Anything, "mary", req).Return(tt.result, nil).Once()
				} else {
					svc.On("Schedule", mock.Anything, "mary", req).Return(nil, tt.serviceErr).Once()
				}
			}

			rr := httptest.NewRecorder()
			newScheduleRouter(svc).ServeHTTP(rr,
				httptest.NewRequest(http.MethodPost, "/users/mary/schedule", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, decodeMessage(t, rr))
			}
			if tt.result != nil {
				var got models.Scheduling
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				assert.Equal(t, "id-1", got.ID)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestScheduleHandler_Invite(t *testing.T) {
	svc := new(MockScheduleService)
	svc.On("Invite", mock.Anything, "abc").
		Return(io.NopCloser(strings.NewReader("BEGIN:VCALENDAR\r\n")), nil).Once()
	svc.On("Invite", mock.Anything, "missing").Return(nil, services.ErrInviteNotFound).Once()
	router := newScheduleRouter(svc)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/schedulings/abc/invite.ics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "BEGIN:VCALENDAR\r\n", rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/schedulings/missing/invite.ics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertExpectations(t)
}
