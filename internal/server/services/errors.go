package services

import (
	"errors"
	"strings"
)

// Кастомные ошибки сервиса. Текст ошибок показывается пользователю.
var (
	ErrUsernameTaken      = errors.New("имя пользователя уже занято")
	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrInvalidInterval    = errors.New("некорректный интервал доступности")
	ErrInvalidDate        = errors.New("время бронирования должно начинаться ровно в начале часа")
	ErrInvalidMonth       = errors.New("некорректный месяц")
	ErrDateInPast         = errors.New("нельзя забронировать время в прошлом")
	ErrSlotUnavailable    = errors.New("выбранное время недоступно")
	ErrInviteNotFound     = errors.New("приглашение не найдено")
	ErrInviteNotAvailable = errors.New("хранилище приглашений не настроено")
)

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
