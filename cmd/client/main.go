package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/maynagashev/ignitecall/internal/client/session"
	"github.com/maynagashev/ignitecall/internal/client/tui"
)

const (
	logDir             = "logs"
	logFileName        = "client.log"
	logFilePermissions = 0666
	// Имя переменной окружения для URL сервера.
	serverURLEnvVar = "IGNITECALL_SERVER_URL"
	// URL сервера по умолчанию.
	defaultServerURL = "http://localhost:8080"
	defaultTimeZone  = "UTC"
)

// Переменные для версии и даты сборки, устанавливаются через ldflags.
var (
	version = "dev" // Значение по умолчанию, если не установлено при сборке
	//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
	buildDate = "unknown" // Значение по умолчанию
	//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
	commitHash = "N/A" // Значение по умолчанию
)

// setupLogging настраивает логирование в файл logs/client.log.
// Stdout занят TUI, поэтому логи пишутся только в файл.
func setupLogging() {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		panic("Не удалось создать директорию для логов: " + err.Error())
	}
	logPath := filepath.Join(logDir, logFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		panic("Не удалось открыть лог-файл: " + err.Error())
	}
	// Файл остается открытым до завершения процесса

	logHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))
	slog.Info("Логгер инициализирован", "path", logPath)
}

func main() {
	versionFlag := flag.Bool("version", false, "Показать версию и дату сборки")
	serverURLFlag := flag.String("server-url", "", "URL сервера Ignite Call (переопределяет "+serverURLEnvVar+")")
	usernameFlag := flag.String("username", "", "Открыть страницу бронирования пользователя")
	startFlag := flag.String("start", "/", "Начальный маршрут, например /register?username=john")
	timeZoneFlag := flag.String("time-zone", defaultTimeZone, "Часовой пояс бронирований (должен совпадать с сервером)")
	noSessionFlag := flag.Bool("no-session", false, "Не сохранять сессию между запусками")

	flag.Parse()

	if *versionFlag {
		// slog настроен на файл, версию выводим в консоль через log
		log.SetOutput(os.Stdout)
		log.SetFlags(0)
		log.Println("Ignite Call Client")
		log.Printf("Version: %s", version)
		log.Printf("Build Date: %s", buildDate)
		log.Printf("Commit Hash: %s", commitHash)
		os.Exit(0)
	}

	setupLogging()

	// Приоритет: флаг, затем переменная окружения, затем значение по умолчанию
	serverURL := defaultServerURL
	source := "по умолчанию"
	if envURL := os.Getenv(serverURLEnvVar); envURL != "" {
		serverURL = envURL
		source = "переменная окружения (" + serverURLEnvVar + ")"
	}
	if *serverURLFlag != "" {
		serverURL = *serverURLFlag
		source = "флаг -server-url"
	}

	loc, err := time.LoadLocation(*timeZoneFlag)
	if err != nil {
		slog.Error("Некорректный часовой пояс", "time_zone", *timeZoneFlag, "error", err)
		os.Exit(1)
	}

	sessionPath := ""
	if !*noSessionFlag {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			// Без файла сессии клиент работает, но токен не переживет перезапуск
			slog.Error("Сессия не будет сохранена", "error", err)
			sessionPath = ""
		}
	}

	slog.Info("Запуск Ignite Call",
		"server_url", serverURL,
		"source", source,
		"username", *usernameFlag,
		"start", *startFlag,
		"time_zone", loc.String(),
		"session_path", sessionPath,
	)

	err = tui.Start(tui.Options{
		ServerURL:   serverURL,
		StartPath:   *startFlag,
		Username:    *usernameFlag,
		Location:    loc,
		SessionPath: sessionPath,
	})
	if err != nil {
		slog.Error("Ошибка TUI", "error", err)
		os.Exit(1)
	}
}
