package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/maynagashev/ignitecall/models"
)

// SessionCookieName - имя cookie, в которой сервер возвращает токен сессии.
const SessionCookieName = "ignitecall-session"

const (
	defaultTimeout = 15 * time.Second
	dateLayout     = "2006-01-02"
)

// ErrAuthorization сигнализирует об ошибке авторизации (401).
var ErrAuthorization = errors.New("ошибка авторизации")

// ResponseError - ответ сервера с кодом ошибки.
// Message содержит поле message из тела ответа, если сервер его прислал.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("сервер ответил статусом %d", e.Status)
}

// ServerMessage возвращает сообщение сервера из ошибки, если оно есть.
func ServerMessage(err error) (string, bool) {
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Message != "" {
		return respErr.Message, true
	}
	return "", false
}

// Client определяет интерфейс для взаимодействия с API сервера Ignite Call.
type Client interface {
	// CreateUser регистрирует пользователя и запоминает токен сессии из ответа.
	CreateUser(ctx context.Context, name, username string) (*models.User, error)
	// GetProfile получает публичный профиль пользователя.
	GetProfile(ctx context.Context, username string) (*models.PublicProfile, error)
	// SetTimeIntervals заменяет интервалы доступности текущего пользователя.
	SetTimeIntervals(ctx context.Context, intervals []models.TimeInterval) error
	// GetAvailability получает доступные часы пользователя на день.
	GetAvailability(ctx context.Context, username string, date time.Time) (*models.Availability, error)
	// GetBlockedDates получает недоступные дни месяца.
	GetBlockedDates(ctx context.Context, username string, year int, month time.Month) (*models.BlockedDates, error)
	// Schedule создает бронирование.
	Schedule(ctx context.Context, username string, req models.CreateSchedulingRequest) (*models.Scheduling, error)
	// SetAuthToken устанавливает токен сессии для аутентифицированных запросов.
	SetAuthToken(token string)
	// AuthToken возвращает текущий токен сессии.
	AuthToken() string
}

// httpClient реализует интерфейс Client для взаимодействия с сервером по HTTP.
type httpClient struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
}

// NewHTTPClient создает новый экземпляр API клиента.
func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *httpClient) SetAuthToken(token string) {
	c.authToken = token
}

func (c *httpClient) AuthToken() string {
	return c.authToken
}

// CreateUser отправляет POST /users.
func (c *httpClient) CreateUser(ctx context.Context, name, username string) (*models.User, error) {
	body := models.CreateUserRequest{Name: name, Username: username}
	var user models.User

	resp, err := c.do(ctx, http.MethodPost, []string{"users"}, nil, body, http.StatusCreated, &user)
	if err != nil {
		return nil, err
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			c.authToken = cookie.Value
		}
	}
	return &user, nil
}

func (c *httpClient) GetProfile(ctx context.Context, username string) (*models.PublicProfile, error) {
	var profile models.PublicProfile
	if _, err := c.do(ctx, http.MethodGet, []string{"users", username}, nil, nil, http.StatusOK, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *httpClient) SetTimeIntervals(ctx context.Context, intervals []models.TimeInterval) error {
	if c.authToken == "" {
		return ErrAuthorization
	}
	body := models.TimeIntervalsRequest{Intervals: intervals}
	_, err := c.do(ctx, http.MethodPut, []string{"users", "time-intervals"}, nil, body, http.StatusNoContent, nil)
	return err
}

func (c *httpClient) GetAvailability(
	ctx context.Context,
	username string,
	date time.Time,
) (*models.Availability, error) {
	query := url.Values{"date": {date.Format(dateLayout)}}
	var availability models.Availability
	_, err := c.do(ctx, http.MethodGet, []string{"users", username, "availability"}, query, nil,
		http.StatusOK, &availability)
	if err != nil {
		return nil, err
	}
	return &availability, nil
}

func (c *httpClient) GetBlockedDates(
	ctx context.Context,
	username string,
	year int,
	month time.Month,
) (*models.BlockedDates, error) {
	query := url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(int(month))},
	}
	var blocked models.BlockedDates
	_, err := c.do(ctx, http.MethodGet, []string{"users", username, "blocked-dates"}, query, nil,
		http.StatusOK, &blocked)
	if err != nil {
		return nil, err
	}
	return &blocked, nil
}

func (c *httpClient) Schedule(
	ctx context.Context,
	username string,
	req models.CreateSchedulingRequest,
) (*models.Scheduling, error) {
	var scheduling models.Scheduling
	_, err := c.do(ctx, http.MethodPost, []string{"users", username, "schedule"}, nil, req,
		http.StatusCreated, &scheduling)
	if err != nil {
		return nil, err
	}
	return &scheduling, nil
}

// do выполняет запрос и декодирует ответ в out (если out != nil).
// Любой статус, кроме expected, превращается в *ResponseError.
func (c *httpClient) do(
	ctx context.Context,
	method string,
	path []string,
	query url.Values,
	body any,
	expected int,
	out any,
) (*http.Response, error) {
	endpoint, err := url.JoinPath(c.baseURL, path...)
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования URL: %w", err)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return nil, fmt.Errorf("ошибка кодирования запроса: %w", marshalErr)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != expected {
		return resp, decodeError(resp)
	}
	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, fmt.Errorf("ошибка декодирования ответа: %w", err)
		}
	}
	return resp, nil
}

// decodeError читает тело ответа с ошибкой вида {"message": "..."}.
func decodeError(resp *http.Response) error {
	respErr := &ResponseError{Status: resp.StatusCode}

	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		respErr.Message = body.Message
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrAuthorization, respErr)
	}
	return respErr
}
