package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maynagashev/ignitecall/internal/client/api"
	"github.com/maynagashev/ignitecall/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestHTTPClient_CreateUser(t *testing.T) {
	tests := []struct {
		name            string
		serverHandler   http.HandlerFunc
		expectedErr     bool
		expectedMessage string
		expectedToken   string
	}{
		{
			name: "Успех",
			serverHandler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/users", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req models.CreateUserRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "Mary Jane", req.Name)
				assert.Equal(t, "mary", req.Username)

				http.SetCookie(w, &http.Cookie{Name: api.SessionCookieName, Value: "session-token"})
				writeJSON(w, http.StatusCreated, models.User{ID: 1, Username: "mary", Name: "Mary Jane"})
			},
			expectedToken: "session-token",
		},
		{
			name: "Имя занято (400 с сообщением)",
			serverHandler: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Message: "имя пользователя уже занято"})
			},
			expectedErr:     true,
			expectedMessage: "имя пользователя уже занято",
		},
		{
			name: "Ошибка сервера без тела",
			serverHandler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.serverHandler)
			defer server.Close()

			client := api.NewHTTPClient(server.URL)
			user, err := client.CreateUser(context.Background(), "Mary Jane", "mary")

			if !tt.expectedErr {
				require.NoError(t, err)
				assert.Equal(t, "mary", user.Username)
				assert.Equal(t, tt.expectedToken, client.AuthToken())
				return
			}

			require.Error(t, err)
			var respErr *api.ResponseError
			require.True(t, errors.As(err, &respErr))
			msg, ok := api.ServerMessage(err)
			assert.Equal(t, tt.expectedMessage != "", ok)
			assert.Equal(t, tt.expectedMessage, msg)
			assert.Empty(t, client.AuthToken())
		})
	}
}

func TestHTTPClient_SetTimeIntervals(t *testing.T) {
	intervals := []models.TimeInterval{{WeekDay: 1, StartTimeInMinutes: 480, EndTimeInMinutes: 1080}}

	t.Run("Без токена", func(t *testing.T) {
		client := api.NewHTTPClient("http://127.0.0.1:0")
		assert.ErrorIs(t, client.SetTimeIntervals(context.Background(), intervals), api.ErrAuthorization)
	})

	t.Run("Успех", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/users/time-intervals", r.URL.Path)
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

			var req models.TimeIntervalsRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, intervals, req.Intervals)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := api.NewHTTPClient(server.URL)
		client.SetAuthToken("tok")
		require.NoError(t, client.SetTimeIntervals(context.Background(), intervals))
	})

	t.Run("Истекшая сессия (401)", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Message: "Невалидный токен"})
		}))
		defer server.Close()

		client := api.NewHTTPClient(server.URL)
		client.SetAuthToken("old")
		err := client.SetTimeIntervals(context.Background(), intervals)
		assert.ErrorIs(t, err, api.ErrAuthorization)
		msg, ok := api.ServerMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "Невалидный токен", msg)
	})
}

func TestHTTPClient_GetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/mary" {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Message: "пользователь не найден"})
			return
		}
		writeJSON(w, http.StatusOK, models.PublicProfile{Username: "mary", Name: "Mary Jane"})
	}))
	defer server.Close()
	client := api.NewHTTPClient(server.URL)

	profile, err := client.GetProfile(context.Background(), "mary")
	require.NoError(t, err)
	assert.Equal(t, "Mary Jane", profile.Name)

	_, err = client.GetProfile(context.Background(), "ghost")
	var respErr *api.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusNotFound, respErr.Status)
}

func TestHTTPClient_GetAvailability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/mary/availability", r.URL.Path)
		assert.Equal(t, "2026-10-15", r.URL.Query().Get("date"))
		writeJSON(w, http.StatusOK, models.Availability{PossibleTimes: []int{9, 10}, AvailableTimes: []int{10}})
	}))
	defer server.Close()

	got, err := api.NewHTTPClient(server.URL).
		GetAvailability(context.Background(), "mary", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10}, got.PossibleTimes)
	assert.Equal(t, []int{10}, got.AvailableTimes)
}

func TestHTTPClient_GetBlockedDates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/mary/blocked-dates", r.URL.Path)
		assert.Equal(t, "2026", r.URL.Query().Get("year"))
		assert.Equal(t, "10", r.URL.Query().Get("month"))
		writeJSON(w, http.StatusOK, models.BlockedDates{BlockedWeekDays: []int{0, 6}, BlockedDates: []int{14}})
	}))
	defer server.Close()

	got, err := api.NewHTTPClient(server.URL).GetBlockedDates(context.Background(), "mary", 2026, time.October)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 6}, got.BlockedWeekDays)
	assert.Equal(t, []int{14}, got.BlockedDates)
}

func TestHTTPClient_Schedule(t *testing.T) {
	date := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/mary/schedule", r.URL.Path)

		var req models.CreateSchedulingRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Name == "taken" {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Message: "выбранное время недоступно"})
			return
		}
		writeJSON(w, http.StatusCreated, models.Scheduling{ID: "abc", Date: req.Date, Name: req.Name, Email: req.Email})
	}))
	defer server.Close()
	client := api.NewHTTPClient(server.URL)

	got, err := client.Schedule(context.Background(), "mary",
		models.CreateSchedulingRequest{Name: "John Doe", Email: "john@example.com", Date: date})
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	assert.True(t, got.Date.Equal(date))

	_, err = client.Schedule(context.Background(), "mary", models.CreateSchedulingRequest{Name: "taken", Date: date})
	msg, ok := api.ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "выбранное время недоступно", msg)
}

func TestResponseError_Error(t *testing.T) {
	assert.Equal(t, "сообщение", (&api.ResponseError{Status: 400, Message: "сообщение"}).Error())
	assert.Equal(t, "сервер ответил статусом 502", (&api.ResponseError{Status: 502}).Error())
}
