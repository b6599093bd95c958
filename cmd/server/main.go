package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/maynagashev/ignitecall/internal/server/config"
	"github.com/maynagashev/ignitecall/internal/server/handlers"
	appmiddleware "github.com/maynagashev/ignitecall/internal/server/middleware"
	"github.com/maynagashev/ignitecall/internal/server/repository"
	"github.com/maynagashev/ignitecall/internal/server/services"
	"github.com/maynagashev/ignitecall/internal/server/storage"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 30 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// Переменная для подмены подключения к БД в тестах.
var newPostgresDB = repository.NewPostgresDB

// Структура для хранения инициализированных зависимостей.
type dependencies struct {
	db              *sqlx.DB
	fileStorage     storage.FileStorage
	sessions        *services.SessionManager
	rateLimiter     *appmiddleware.RateLimiter
	userHandler     *handlers.UserHandler
	scheduleHandler *handlers.ScheduleHandler
	trustProxy      bool
}

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	if err := run(); err != nil {
		log.Printf("Ошибка выполнения сервера: %v", err)
		os.Exit(1)
	}
}

// run содержит основную логику запуска сервера и возвращает ошибку.
func run() error {
	log.Println("Запуск сервера Ignite Call...")

	cfg, err := parseFlags()
	if err != nil {
		return fmt.Errorf("ошибка конфигурации: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setupDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("ошибка инициализации зависимостей: %w", err)
	}
	defer func() {
		if closeErr := deps.db.Close(); closeErr != nil {
			log.Printf("Ошибка закрытия соединения с БД: %v", closeErr)
		}
	}()

	go deps.rateLimiter.Run(ctx)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      setupRouter(deps),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.TLSEnabled() {
			log.Printf("Запуск HTTPS-сервера на порту %s (сертификат: %s)", cfg.Server.Port, cfg.Server.CertFile)
			errCh <- server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
			return
		}
		log.Printf("Запуск HTTP-сервера на порту %s", cfg.Server.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Println("Получен сигнал остановки, завершаем работу...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	return nil
}

// setupDependencies инициализирует и возвращает все необходимые зависимости сервера.
func setupDependencies(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	deps := &dependencies{trustProxy: cfg.Server.TrustProxy}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// 1. Подключение к БД и схема
	deps.db, err = newPostgresDB(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации БД: %w", err)
	}
	if err = repository.EnsureSchema(ctx, deps.db); err != nil {
		closeDB(deps.db)
		return nil, err
	}

	// 2. Хранилище приглашений
	minioCfg := storage.MinioConfig{
		Endpoint:        cfg.Minio.Endpoint,
		AccessKeyID:     cfg.Minio.AccessKey,
		SecretAccessKey: cfg.Minio.SecretKey,
		UseSSL:          cfg.Minio.UseSSL,
		BucketName:      cfg.Minio.Bucket,
		Region:          cfg.Minio.Region,
	}
	if minioCfg.Enabled() {
		deps.fileStorage, err = storage.NewMinioClient(ctx, minioCfg)
		if err != nil {
			closeDB(deps.db)
			return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", err)
		}
	} else {
		log.Println("MinIO не настроен, приглашения хранятся в памяти процесса")
		deps.fileStorage = storage.NewMemoryStorage()
	}

	// 3. Репозитории
	userRepo := repository.NewPostgresUserRepository(deps.db)
	intervalRepo := repository.NewPostgresTimeIntervalRepository(deps.db)
	schedulingRepo := repository.NewPostgresSchedulingRepository(deps.db)

	// 4. Сервисы
	deps.sessions = services.NewSessionManager(cfg.JWT.Secret, cfg.JWT.TTL)
	userService := services.NewUserService(userRepo, intervalRepo)
	scheduleService := services.NewScheduleService(userRepo, intervalRepo, schedulingRepo, deps.fileStorage, loc)

	// 5. Обработчики
	deps.rateLimiter = appmiddleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	deps.userHandler = handlers.NewUserHandler(userService, deps.sessions)
	deps.scheduleHandler = handlers.NewScheduleHandler(scheduleService)

	return deps, nil
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(deps *dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// Лимит запросов считается по адресу клиента, поэтому заголовкам
	// прокси верим только при явной настройке
	if deps.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	r.Route("/users", func(r chi.Router) {
		r.With(deps.rateLimiter.Middleware).Post("/", deps.userHandler.Create)

		// Приватные маршруты (требуют сессию)
		r.With(appmiddleware.Authenticator(deps.sessions)).Put("/time-intervals", deps.userHandler.SetTimeIntervals)

		r.Route("/{username}", func(r chi.Router) {
			r.Get("/", deps.userHandler.GetProfile)
			r.Get("/availability", deps.scheduleHandler.Availability)
			r.Get("/blocked-dates", deps.scheduleHandler.BlockedDates)
			r.Post("/schedule", deps.scheduleHandler.Schedule)
		})
	})

	r.Get("/schedulings/{id}/invite.ics", deps.scheduleHandler.Invite)
	return r
}

func closeDB(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("Ошибка закрытия соединения с БД: %v", err)
	}
}
