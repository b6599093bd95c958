// Package session хранит токен сессии клиента между запусками.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	fileMode        = 0o600
	dirMode         = 0o700
	lockRetryDelay  = 50 * time.Millisecond
	defaultFileName = "session.json"
	appDirName      = "ignitecall"
)

// ErrNoSession - сохраненной сессии нет.
var ErrNoSession = errors.New("сохраненная сессия не найдена")

// Session - сохраненные данные сессии.
type Session struct {
	Username string    `json:"username"`
	Token    string    `json:"token"`
	SavedAt  time.Time `json:"saved_at"`
}

// Store хранит сессию в файле. Запись защищена эксклюзивной блокировкой
// файла <path>.lock, чтобы два клиента не писали одновременно.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore создает хранилище сессии в файле path.
func NewStore(path string) *Store {
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

// DefaultPath возвращает путь к файлу сессии в каталоге конфигурации пользователя.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("не удалось определить каталог конфигурации: %w", err)
	}
	return filepath.Join(dir, appDirName, defaultFileName), nil
}

// Path возвращает путь к файлу сессии.
func (s *Store) Path() string {
	return s.path
}

// Save сохраняет сессию. Ждет освобождения блокировки до отмены ctx.
func (s *Store) Save(ctx context.Context, sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return fmt.Errorf("ошибка создания каталога сессии: %w", err)
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("ошибка блокировки файла сессии: %w", err)
	}
	if !locked {
		return fmt.Errorf("файл сессии %s заблокирован другим процессом", s.path)
	}
	defer func() {
		if unlockErr := s.lock.Unlock(); unlockErr != nil {
			slog.Error("Ошибка при снятии блокировки файла сессии", "path", s.path, "error", unlockErr)
		}
	}()

	if sess.SavedAt.IsZero() {
		sess.SavedAt = time.Now()
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("ошибка кодирования сессии: %w", err)
	}

	// Пишем во временный файл и переименовываем, чтобы читатель не увидел половину файла.
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, data, fileMode); err != nil {
		return fmt.Errorf("ошибка записи файла сессии: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("ошибка сохранения файла сессии: %w", err)
	}

	slog.Info("Сессия сохранена", "path", s.path, "username", sess.Username)
	return nil
}

// Load читает сохраненную сессию. Если файла нет, возвращает ErrNoSession.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("ошибка чтения файла сессии: %w", err)
	}

	var sess Session
	if err = json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла сессии: %w", err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}
