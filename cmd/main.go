package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/access"
	"github.com/shenikar/armguard_console/internal/alerts"
	"github.com/shenikar/armguard_console/internal/backend"
	"github.com/shenikar/armguard_console/internal/config"
	v1 "github.com/shenikar/armguard_console/internal/handler/http/v1"
	"github.com/shenikar/armguard_console/internal/notify"
	"github.com/shenikar/armguard_console/internal/repository"
	"github.com/shenikar/armguard_console/internal/service"
	"github.com/shenikar/armguard_console/internal/session"
	"github.com/shenikar/armguard_console/internal/storage"
	"github.com/shenikar/armguard_console/internal/webhook"
	"github.com/shenikar/armguard_console/pkg/logger"
	"github.com/shenikar/armguard_console/pkg/postgres"
	redisclient "github.com/shenikar/armguard_console/pkg/redis"

	_ "github.com/shenikar/armguard_console/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Armguard Console API
// @version 1.0
// @description Local API of the weapon detection operator console.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis нужен для сессии и для очереди вебхуков
	var redisClient *goredis.Client
	if cfg.SessionStore == "redis" || cfg.WebhookURL != "" {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	// Уведомления: живые подписчики и очередь вебхуков
	var sinks []notify.Sink
	if cfg.WebhookURL != "" {
		sinks = append(sinks, webhook.NewRedisWebhookPublisher(redisClient, "console"))
		webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
		webhookWorker.Start(ctx)
	}
	hub := notify.NewHub(log, sinks...)

	// Сессия и клиент backend зависят друг от друга
	var sessionStorage session.Storage = session.NewMemoryStorage()
	if cfg.SessionStore == "redis" {
		sessionStorage = session.NewRedisStorage(redisClient)
	}
	sessionStore := session.NewStore(nil, sessionStorage, cfg.SessionKeyPrefix, log)
	api := backend.NewClient(cfg, sessionStore, log)
	sessionStore.SetAuthenticator(api)

	if err := sessionStore.Restore(ctx); err != nil {
		log.WithError(err).Warn("Stored session was not restored")
	}

	// Кеш алертов и его опрос
	alertStore := alerts.NewStore(api, cfg.AlertsPageSize, hub, log)
	poller := alerts.NewPoller(alertStore, cfg.AlertsPollInterval, cfg.AlertsPollMaxBackoff, log)

	// push-канал открывается и закрывается вместе с опросом
	if cfg.AlertsWSEnabled {
		feed := backend.NewAlertFeed(cfg.WSBase, log)
		poller.WithFeed(feed)
		log.WithField("url", feed.URL()).Info("Alert push feed enabled")
	}

	unbind := poller.Bind(ctx, sessionStore)
	defer unbind()

	// Навигация следует за ролью текущей сессии
	navigator := access.NewNavigator(func(d access.Denial) {
		hub.Notify(notify.LevelWarning, "Access denied", "Your role ("+string(d.Role)+") cannot open "+d.Requested)
	})
	unsubscribe := sessionStore.Subscribe(func(st session.State) {
		if !st.Authenticated {
			navigator.Reset()
			return
		}
		navigator.Enforce(st.Session.Role())
	})
	defer unsubscribe()

	// Журнал аудита в PostgreSQL, если задан DATABASE_URL
	var auditRepo service.AuditRepository
	if cfg.AuditEnabled() {
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")
		auditRepo = repository.NewAuditRepository(dbpool)
	} else {
		log.Warn("DATABASE_URL is not set, audit trail disabled")
	}

	// Архив доказательств в MinIO, если заданы ключи
	var archive service.EvidenceArchive
	if cfg.ArchiveEnabled() {
		store, err := storage.NewMinioStore(ctx, cfg, log)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO archive: %v", err)
		}
		archive = store
	}

	// Инициализация сервисов
	auditService := service.NewAuditService(auditRepo, log)
	deps := v1.Deps{
		Session:   sessionStore,
		Alerts:    alertStore,
		Navigator: navigator,
		Hub:       hub,

		Auth:         service.NewAuthService(sessionStore, auditService, hub, log),
		AlertActions: service.NewAlertService(alertStore, auditService, hub, log),
		Dashboard:    service.NewDashboardService(api, log),
		Cameras:      service.NewCameraService(api, auditService, hub, log),
		Incidents:    service.NewIncidentService(api, auditService, hub, log),
		Evidence:     service.NewEvidenceService(api, archive, auditService, hub, log),
		Users:        service.NewUserService(api, auditService, hub, log),
		Settings:     service.NewSettingsService(api, auditService, hub, log),
		Audit:        auditService,
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(deps, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api1 := router.Group("/api/v1")
	handler.RegisterRoutes(api1)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)

	// Контексты запросов (в том числе SSE) отменяются вместе с ctx
	srv := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on %s", serverAddr)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
