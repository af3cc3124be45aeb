package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/bot"
	confirmBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/confirm_booking"
	healthHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/health"
	listPendingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_pending"
	rejectBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/reject_booking"
	searchRoomsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/search_rooms"
	submitBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/submit_booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/queue/redisqueue"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/backend"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/telegram"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/notification"
	pendingService "github.com/m04kA/SMC-RoomBookingService/internal/service/pending"
	confirmBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/confirm_booking"
	rejectBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/reject_booking"
	searchRoomsUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/search_rooms"
	submitBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/worker"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
)

// AdminNotifier канал уведомлений администратора (Telegram или лог)
type AdminNotifier interface {
	Notify(ctx context.Context, text string) error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RoomBookingService...")
	log.Info("Configuration loaded from %s (storage=%s)", *configPath, cfg.Storage.Driver)

	// Фоновые задачи останавливаются отменой этого контекста
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к хранилищу
	storage, err := backend.Open(ctx, cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open %s storage: %v", cfg.Storage.Driver, err)
	}

	if cfg.Storage.Driver == config.DriverMemory && cfg.Storage.SeedFile != "" {
		n, err := backend.SeedRooms(ctx, storage.Rooms, cfg.Storage.SeedFile)
		if err != nil {
			log.Fatal("Failed to seed rooms from %s: %v", cfg.Storage.SeedFile, err)
		}
		log.Info("Seeded %d rooms from %s", n, cfg.Storage.SeedFile)
	}

	// Канал уведомлений администратора
	var (
		tgClient *telegram.Client
		notifier AdminNotifier
	)
	if cfg.Telegram.Token != "" {
		tgClient = telegram.NewClient(cfg.Telegram.BaseURL, cfg.Telegram.Token, config.Seconds(cfg.Telegram.Timeout))
		notifier = telegram.NewNotifier(tgClient, cfg.Telegram.AdminChatIDs, log)
		log.Info("Telegram notifier initialized (admin chats=%d)", len(cfg.Telegram.AdminChatIDs))
	} else {
		notifier = notification.NewLogNotifier(log)
		log.Warn("BOT_TOKEN is not set: admin notifications go to the log only")
	}

	// Очередь повторной отправки уведомлений (опционально)
	var (
		redisClient *redis.Client
		retryQueue  *redisqueue.Queue
		submitQueue submitBookingUC.RetryQueue
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		retryQueue = redisqueue.New(redisClient, cfg.Redis.Key)
		submitQueue = retryQueue
		log.Info("Notification retry queue enabled (redis=%s)", cfg.Redis.Addr)
	}

	operationTimeout := config.Seconds(cfg.Booking.OperationTimeout)

	// Инициализируем сервисы
	pendingSvc := pendingService.NewService(
		storage.Pending,
		storage.TxManager,
		notifier,
		metricsCollector,
		config.Seconds(cfg.Pending.TTL),
		log,
	)

	// Инициализируем use cases
	searchRoomsUseCase := searchRoomsUC.NewUseCase(storage.Rooms, cfg.Booking.AllowPastDates, operationTimeout, log)
	submitBookingUseCase := submitBookingUC.NewUseCase(
		storage.Rooms,
		storage.Pending,
		notifier,
		submitQueue,
		metricsCollector,
		cfg.Booking.AllowPastDates,
		operationTimeout,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		storage.Rooms,
		storage.Pending,
		storage.TxManager,
		metricsCollector,
		operationTimeout,
		log,
	)
	rejectBookingUseCase := rejectBookingUC.NewUseCase(
		storage.Pending,
		storage.TxManager,
		metricsCollector,
		operationTimeout,
		log,
	)

	// Инициализируем handlers
	searchRooms := searchRoomsHandler.NewHandler(searchRoomsUseCase, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	rejectBooking := rejectBookingHandler.NewHandler(rejectBookingUseCase, log)
	listPending := listPendingHandler.NewHandler(pendingSvc, log)
	health := healthHandler.NewHandler(storage, storage.Driver, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (гости)
	// ============================================================

	// Поиск свободных номеров
	api.HandleFunc("/rooms/search", searchRooms.Handle).Methods(http.MethodPost)

	// Заявка на бронирование
	api.HandleFunc("/bookings", submitBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token, log))
	if cfg.Admin.Token == "" {
		log.Warn("ADMIN_TOKEN is not set: admin HTTP API is closed")
	}

	admin.HandleFunc("/pending", listPending.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/pending/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/pending/reject", rejectBooking.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.Admin.CORSOrigins)(r),
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Seconds(cfg.Server.IdleTimeout),
	}

	// Фоновые воркеры и бот
	var wg sync.WaitGroup
	runBackground := func(name string, fn func(ctx context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(ctx)
			log.Info("%s finished", name)
		}()
	}

	if cfg.Pending.TTL > 0 {
		expirer := worker.NewExpirer(pendingSvc, config.Seconds(cfg.Pending.ExpireInterval), log)
		runBackground("Expirer", expirer.Run)
	}

	if retryQueue != nil {
		retrier := worker.NewNotificationRetrier(
			retryQueue,
			notifier,
			metricsCollector,
			config.Seconds(cfg.Redis.RetryInterval),
			cfg.Redis.MaxAttempts,
			log,
		)
		runBackground("NotificationRetrier", retrier.Run)
	}

	if cfg.Telegram.BotEnabled && tgClient != nil {
		adminBot := bot.NewBot(
			tgClient,
			confirmBookingUseCase,
			rejectBookingUseCase,
			pendingSvc,
			cfg.Telegram.AdminChatIDs,
			config.Seconds(cfg.Telegram.PollTimeout),
			cfg.Telegram.DefaultLanguage,
			log,
		)
		runBackground("Bot", func(ctx context.Context) {
			_ = adminBot.Run(ctx)
		})
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		config.Seconds(cfg.Server.ShutdownTimeout),
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем бота и воркеров
	cancel()
	wg.Wait()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	if err := storage.Close(shutdownCtx); err != nil {
		log.Error("Failed to close storage: %v", err)
	}

	log.Info("Server stopped gracefully")
}
