// Package config загружает конфигурацию сервера: значения по умолчанию,
// затем YAML-файл, затем переменные окружения (в том числе из .env).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Значения по умолчанию.
const (
	DefaultServerPort = "8080"
	DefaultTimeZone   = "UTC"
	DefaultRateRPS    = 1.0
	DefaultRateBurst  = 5
	DefaultSessionTTL = 7 * 24 * time.Hour
)

// Переменные окружения и соответствующие им ключи конфигурации.
var envKeys = map[string]string{
	"SERVER_PORT":      "server.port",
	"TLS_CERT_FILE":    "server.cert_file",
	"TLS_KEY_FILE":     "server.key_file",
	"TIME_ZONE":        "server.time_zone",
	"TRUST_PROXY":      "server.trust_proxy",
	"DATABASE_DSN":     "database.dsn",
	"JWT_SECRET":       "jwt.secret",
	"SESSION_TTL":      "jwt.ttl",
	"RATE_LIMIT_RPS":   "rate_limit.rps",
	"RATE_LIMIT_BURST": "rate_limit.burst",
	"MINIO_ENDPOINT":   "minio.endpoint",
	"MINIO_USER":       "minio.access_key",
	"MINIO_PASSWORD":   "minio.secret_key", //nolint:gosec // Имя переменной окружения, а не пароль
	"MINIO_BUCKET":     "minio.bucket",
	"MINIO_USE_SSL":    "minio.use_ssl",
	"MINIO_REGION":     "minio.region",
}

// Config - конфигурация сервера.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Minio     MinioConfig     `koanf:"minio"`
}

type ServerConfig struct {
	Port     string `koanf:"port"`
	CertFile string `koanf:"cert_file"`
	KeyFile  string `koanf:"key_file"`
	TimeZone string `koanf:"time_zone"` // часовой пояс расчета доступности

	// TrustProxy включает чтение адреса клиента из X-Real-IP/X-Forwarded-For.
	// Включать только за доверенным прокси, иначе заголовки подделываются.
	TrustProxy bool `koanf:"trust_proxy"`
}

type DatabaseConfig struct {
	DSN string `koanf:"dsn"`
}

type JWTConfig struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
}

type RateLimitConfig struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
}

// MinioConfig - параметры хранилища приглашений. Пустой endpoint отключает MinIO.
type MinioConfig struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Bucket    string `koanf:"bucket"`
	UseSSL    bool   `koanf:"use_ssl"`
	Region    string `koanf:"region"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Port: DefaultServerPort, TimeZone: DefaultTimeZone},
		JWT:       JWTConfig{TTL: DefaultSessionTTL},
		RateLimit: RateLimitConfig{RPS: DefaultRateRPS, Burst: DefaultRateBurst},
		Minio:     MinioConfig{Bucket: "ignitecall-invites"},
	}
}

// Load читает конфигурацию. configPath и dotenvPath необязательны:
// пустой путь пропускается, отсутствующий .env не считается ошибкой.
func Load(configPath, dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[Config] Не удалось загрузить %s: %v", dotenvPath, err)
		}
	}

	k := koanf.New(".")
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("ошибка загрузки файла конфигурации %s: %w", configPath, err)
		}
	}

	// Переменные окружения перекрывают файл. Неизвестные переменные пропускаются.
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("ошибка чтения переменных окружения: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("не указана строка подключения к БД (--database-dsn или DATABASE_DSN)")
	}
	if c.JWT.Secret == "" {
		return errors.New("не указан секрет для подписи сессий (JWT_SECRET)")
	}
	if (c.Server.CertFile == "") != (c.Server.KeyFile == "") {
		return errors.New("файлы сертификата и ключа TLS указываются вместе (TLS_CERT_FILE, TLS_KEY_FILE)")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// TLSEnabled сообщает, нужно ли запускать HTTPS.
func (c *Config) TLSEnabled() bool {
	return c.Server.CertFile != "" && c.Server.KeyFile != ""
}

// Location возвращает часовой пояс расчета доступности.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Server.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("неизвестный часовой пояс %q: %w", c.Server.TimeZone, err)
	}
	return loc, nil
}
