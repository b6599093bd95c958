package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// FileStorage определяет интерфейс объектного хранилища приглашений.
type FileStorage interface {
	UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, objectKey string) (io.ReadCloser, error)
}

// MinioClient реализует FileStorage для MinIO.
type MinioClient struct {
	client     *minio.Client
	bucketName string
}

// MinioConfig содержит параметры для подключения к MinIO.
type MinioConfig struct {
	Endpoint        string // Адрес MinIO (например, "localhost:9000")
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
}

// Enabled сообщает, задан ли эндпоинт хранилища.
func (c MinioConfig) Enabled() bool {
	return c.Endpoint != "" && c.BucketName != ""
}

// NewMinioClient создает клиент MinIO и при необходимости создает бакет.
func NewMinioClient(ctx context.Context, cfg MinioConfig) (*MinioClient, error) {
	log.Printf("[Minio] Подключение к %s, бакет '%s'", cfg.Endpoint, cfg.BucketName)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существования бакета '%s': %w", cfg.BucketName, err)
	}
	if !exists {
		log.Printf("[Minio] Бакет '%s' не найден, создаем", cfg.BucketName)
		if err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("ошибка создания бакета '%s': %w", cfg.BucketName, err)
		}
	}

	return &MinioClient{client: client, bucketName: cfg.BucketName}, nil
}

// UploadFile загружает объект в бакет.
func (c *MinioClient) UploadFile(
	ctx context.Context,
	objectKey string,
	reader io.Reader,
	size int64,
	contentType string,
) error {
	info, err := c.client.PutObject(ctx, c.bucketName, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("[Minio] Ошибка загрузки '%s': %v", objectKey, err)
		return fmt.Errorf("ошибка загрузки файла в MinIO: %w", err)
	}

	log.Printf("[Minio] Объект '%s' загружен, размер: %d", objectKey, info.Size)
	return nil
}

// DownloadFile возвращает содержимое объекта. Вызывающий должен закрыть reader.
// Для отсутствующего объекта возвращает ErrObjectNotFound.
func (c *MinioClient) DownloadFile(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	object, err := c.client.GetObject(ctx, c.bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioError(objectKey, err)
	}

	// GetObject ленивый, ошибка отсутствия ключа приходит только на Stat или Read.
	if _, err = object.Stat(); err != nil {
		_ = object.Close()
		return nil, mapMinioError(objectKey, err)
	}
	return object, nil
}

func mapMinioError(objectKey string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		log.Printf("[Minio] Объект '%s' не найден", objectKey)
		return ErrObjectNotFound
	}
	log.Printf("[Minio] Ошибка получения '%s': %v", objectKey, err)
	return fmt.Errorf("ошибка получения файла из MinIO: %w", err)
}

// ErrObjectNotFound - объекта нет в хранилище.
var ErrObjectNotFound = errors.New("объект не найден в хранилище")
