package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
)

// Тип для ключа контекста.
type contextKey string

// UserIDKey - ключ для хранения ID пользователя в контексте.
const UserIDKey contextKey = "userID"

// SessionCookieName - имя cookie с токеном сессии.
const SessionCookieName = "ignitecall-session"

// TokenParser проверяет токен сессии и возвращает ID пользователя.
type TokenParser interface {
	Parse(token string) (int64, error)
}

// Authenticator проверяет токен сессии. Токен берется из заголовка
// "Authorization: Bearer <token>", а при его отсутствии из cookie сессии.
func Authenticator(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := sessionToken(r)
			if !ok {
				log.Println("[AuthMiddleware] Токен сессии отсутствует")
				writeError(w, http.StatusUnauthorized, "Требуется аутентификация")
				return
			}

			userID, err := parser.Parse(token)
			if err != nil {
				log.Printf("[AuthMiddleware] Невалидный токен: %v", err)
				writeError(w, http.StatusUnauthorized, "Невалидный токен")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionToken извлекает токен из заголовка или cookie.
func sessionToken(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", false
		}
		return parts[1], true
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// GetUserIDFromContext извлекает UserID из контекста запроса.
// Возвращает ID пользователя и true, если ID найден, иначе 0 и false.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
