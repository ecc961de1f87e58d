package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	config "github.com/insightflow/tasks-service/internal/config"
	infraEvents "github.com/insightflow/tasks-service/internal/infra/events"
	"github.com/insightflow/tasks-service/internal/infra/server"
	taskApp "github.com/insightflow/tasks-service/internal/task/application"
	taskDomain "github.com/insightflow/tasks-service/internal/task/domain"
	taskEvents "github.com/insightflow/tasks-service/internal/task/infra/inbound/events"
	taskHttp "github.com/insightflow/tasks-service/internal/task/infra/inbound/http"
	taskCache "github.com/insightflow/tasks-service/internal/task/infra/outbound/cache"
	"github.com/insightflow/tasks-service/internal/task/infra/outbound/memory"
	"github.com/insightflow/tasks-service/pkg/logger"
	sharedBus "github.com/insightflow/tasks-service/shared/platform/bus"
	sharedCache "github.com/insightflow/tasks-service/shared/platform/cache"
)

const (
	serviceName    = "InsightFlow Tasks Service"
	serviceVersion = "1.0.0"
)

// ---------------- Main ----------------
func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.LogLevel, !cfg.IsProduction()) // inicializa zap
	log := logger.Logger()
	defer log.Sync() // flush buffers al salir

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------- Store ----------------
	var store *memory.TaskStore
	if cfg.SeedData {
		fixtures := memory.NewFixtures(time.Now().UTC())
		store = memory.NewTaskStore(fixtures.Tasks...)
		log.Info("Store seeded with sample data",
			zap.Int("tasks", len(fixtures.Tasks)),
			zap.Int("documents", len(fixtures.Documents)),
			zap.Int("users", len(fixtures.Users)),
		)
		for _, d := range fixtures.Documents {
			log.Debug("Sample document", zap.String("id", d.ID.String()), zap.String("title", d.Title))
		}
	} else {
		store = memory.NewTaskStore()
	}

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
		} else {
			cacheInstance = taskCache.NewRedisCache(rdb, cfg.CacheTTL)
			log.Info("Redis connected, cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}
	if cacheInstance == nil {
		memCache := taskCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
		defer memCache.Stop()
		cacheInstance = memCache
	}

	// ---------------- Events ---------------
	registry := taskDomain.NewEventRegistry()
	taskConsumer := taskEvents.NewTaskConsumer(registry, log)

	var publisher sharedBus.EventPublisher
	if cfg.UseKafka {
		log.Info("Using Kafka as event bus", zap.Strings("brokers", cfg.KafkaBrokers))

		writer := &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBrokers...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.Hash{},
		}
		defer writer.Close()
		publisher = infraEvents.NewKafkaPublisher(writer, log)

		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    cfg.KafkaTopic,
			GroupID:  "tasks-service",
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		})
		defer reader.Close()
		infraEvents.NewConsumerAdapter(reader, cfg.KafkaTopic, taskConsumer, log).Start(ctx)
	} else {
		log.Info("Using in-memory event bus")

		bus := infraEvents.NewInMemoryEventBus(cfg.KafkaTopic)
		defer bus.Close()
		publisher = bus
		taskEvents.BackgroundConsumerChan(ctx, bus.Subscribe(100), taskConsumer)
	}

	// --------------- Servicio --------------
	taskService := taskApp.NewTaskService(store, cacheInstance, publisher, log).
		WithCacheTTL(int(cfg.CacheTTL / time.Second))

	// ---------------- HTTP ----------------
	taskHandler := taskHttp.NewTaskHandler(taskService, log)
	router := server.NewEngine(server.Options{
		ServiceName:  serviceName,
		Version:      serviceVersion,
		CORSOrigin:   cfg.CORSOrigin,
		ExposeErrors: !cfg.IsProduction(),
	}, log, taskHttp.Endpoints(), func(r *gin.Engine) {
		taskHttp.RegisterTaskRoutes(r, taskHandler)
	})

	log.Info("Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
		zap.String("env", cfg.Environment),
	)
	if err := server.Run(ctx, ":"+cfg.HTTPPort, router, log); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
