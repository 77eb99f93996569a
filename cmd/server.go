package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gestaocontabil/backend/internal/api"
	"github.com/gestaocontabil/backend/internal/core/service"
	"github.com/gestaocontabil/backend/internal/infrastructure/config"
	mongodb "github.com/gestaocontabil/backend/internal/infrastructure/db/mongo"
	redisdb "github.com/gestaocontabil/backend/internal/infrastructure/db/redis"
	"github.com/gestaocontabil/backend/internal/infrastructure/queue"
	"github.com/gestaocontabil/backend/internal/infrastructure/storage"
	"github.com/gestaocontabil/backend/internal/worker"
	"github.com/gestaocontabil/backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the API server and background workers",
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
	if err != nil {
		return err
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		return err
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- MinIO ---
	files, err := storage.NewMinioStore(cfg.Minio)
	if err != nil {
		return err
	}
	if err := files.EnsureBucket(ctx); err != nil {
		return err
	}

	// --- RabbitMQ ---
	broker, err := queue.NewRabbitMQ(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer broker.Close()

	// --- Background workers ---
	notificationRepo := mongodb.NewNotificationRepository(db)
	obligationRepo := mongodb.NewObligationRepository(db)
	notificationService := service.NewNotificationService(notificationRepo, broker, log)

	reminder := worker.NewReminder(obligationRepo, notificationService, cfg.Reminder.Interval, cfg.Reminder.Window, log)
	go reminder.Start(ctx)

	consumer := worker.NewConsumer(broker, notificationRepo, log)
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("notification consumer stopped")
		}
	}()

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, files, broker, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// ensureIndexes creates every collection's indexes at startup so a fresh
// database is usable without a separate migration step.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	repos := []interface {
		EnsureIndexes(context.Context) error
	}{
		mongodb.NewAccountRepository(db),
		mongodb.NewClientRepository(db),
		mongodb.NewObligationRepository(db),
		mongodb.NewDocumentRepository(db),
		mongodb.NewNotificationRepository(db),
	}
	for _, repo := range repos {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
