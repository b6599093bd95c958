package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Параметры сессии по умолчанию.
const (
	DefaultSessionTTL = 7 * 24 * time.Hour
	sessionIssuer     = "ignitecall-server"
)

// ErrInvalidSession - токен сессии невалиден или истек.
var ErrInvalidSession = errors.New("невалидная сессия")

// Структура для пользовательских данных в JWT (claims).
type sessionClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// SessionManager выпускает и проверяет токены сессии (HS256 JWT).
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager создает менеджер сессий. ttl <= 0 заменяется на DefaultSessionTTL.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL возвращает время жизни токена.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue создает и подписывает токен для пользователя.
func (m *SessionManager) Issue(userID int64) (string, error) {
	now := m.now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи JWT: %w", err)
	}
	return signed, nil
}

// Parse проверяет токен и возвращает ID пользователя.
func (m *SessionManager) Parse(tokenString string) (int64, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if !token.Valid {
		return 0, ErrInvalidSession
	}
	return claims.UserID, nil
}
