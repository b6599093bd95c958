package models

import "time"

// User представляет пользователя системы.
// Тэги `db` используются для маппинга с полями БД с помощью sqlx.
// Тэги `json` используются для (де)сериализации JSON.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Name      string    `db:"name" json:"name"`
	Bio       *string   `db:"bio" json:"bio,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CreateUserRequest представляет тело запроса POST /users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PublicProfile представляет публичный профиль пользователя на странице бронирования.
type PublicProfile struct {
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Bio      *string `json:"bio,omitempty"`
}

// ErrorResponse представляет тело ответа с ошибкой.
// Клиент показывает Message пользователю без изменений.
type ErrorResponse struct {
	Message string `json:"message"`
}
