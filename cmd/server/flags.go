package main

import (
	"flag"
	"fmt"

	"github.com/maynagashev/ignitecall/internal/server/config"
)

const defaultDotenvPath = ".env"

// parseFlags разбирает флаги командной строки поверх конфигурации из файла и окружения.
// Флаги имеют наивысший приоритет.
func parseFlags() (*config.Config, error) {
	var (
		configPath  string
		port        string
		certFile    string
		keyFile     string
		databaseDSN string
		timeZone    string
	)

	flag.StringVar(&configPath, "config", "", "Путь к YAML-файлу конфигурации")
	flag.StringVar(&port, "port", "",
		fmt.Sprintf("Порт HTTP-сервера (env: SERVER_PORT, default: %s)", config.DefaultServerPort))
	flag.StringVar(&certFile, "cert-file", "", "Путь к файлу TLS-сертификата (env: TLS_CERT_FILE)")
	flag.StringVar(&keyFile, "key-file", "", "Путь к файлу TLS-ключа (env: TLS_KEY_FILE)")
	flag.StringVar(&databaseDSN, "database-dsn", "", "Строка подключения к базе данных (env: DATABASE_DSN)")
	flag.StringVar(&timeZone, "time-zone", "",
		fmt.Sprintf("Часовой пояс расчета доступности (env: TIME_ZONE, default: %s)", config.DefaultTimeZone))

	flag.Parse()

	cfg, err := config.Load(configPath, defaultDotenvPath)
	if err != nil {
		return nil, err
	}

	overrides := []struct {
		value  string
		target *string
	}{
		{port, &cfg.Server.Port},
		{certFile, &cfg.Server.CertFile},
		{keyFile, &cfg.Server.KeyFile},
		{databaseDSN, &cfg.Database.DSN},
		{timeZone, &cfg.Server.TimeZone},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = o.value
		}
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
