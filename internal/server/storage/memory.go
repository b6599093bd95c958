package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStorage хранит объекты в памяти процесса.
// Используется, когда MinIO не настроен, и в тестах.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStorage создает пустое хранилище в памяти.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

// UploadFile сохраняет объект. size < 0 означает "читать до конца".
func (m *MemoryStorage) UploadFile(
	_ context.Context,
	objectKey string,
	reader io.Reader,
	size int64,
	_ string,
) error {
	if size >= 0 {
		reader = io.LimitReader(reader, size)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("ошибка чтения объекта '%s': %w", objectKey, err)
	}

	m.mu.Lock()
	m.objects[objectKey] = data
	m.mu.Unlock()
	return nil
}

// DownloadFile возвращает копию объекта или ErrObjectNotFound.
func (m *MemoryStorage) DownloadFile(_ context.Context, objectKey string) (io.ReadCloser, error) {
	m.mu.RLock()
	data, ok := m.objects[objectKey]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
