package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/messaging"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/notification"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := telemetry.NewLogger(os.Stdout, "notifier")

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "notifier", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("notifier", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(context.Background()) }()

	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers == "" {
		logger.Error("KAFKA_BROKERS environment variable is required")
		os.Exit(1)
	}

	inbox, closeInbox, err := openInbox(ctx, getEnv("INBOX_BACKEND", "memory"), logger)
	if err != nil {
		logger.Error("failed to open inbox", "error", err)
		os.Exit(1)
	}
	defer closeInbox()

	var users notification.UserLookup
	if addr := os.Getenv("USER_SERVICE_ADDR"); addr != "" {
		conn, err := rpc.Dial(addr, rpc.DefaultCallTimeout)
		if err != nil {
			logger.Error("failed to create user client", "error", err)
			os.Exit(1)
		}
		defer func() { _ = conn.Close() }()
		users = rpc.NewUserClient(conn)
	}

	var dispatcher notification.Dispatcher = notification.NewLogDispatcher(logger)
	if emailServiceURL := os.Getenv("EMAIL_SERVICE_URL"); emailServiceURL != "" {
		httpClient := &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
		dispatcher = notification.NewEmailDispatcher(emailServiceURL, httpClient)
	}

	reactor := notification.NewReactor(inbox, users, dispatcher, logger)

	brokers := strings.Split(kafkaBrokers, ",")
	topic := getEnv("KAFKA_TOPIC", domain.OrdersTopic)
	consumer := messaging.NewConsumer(brokers, topic, getEnv("KAFKA_GROUP_ID", "notification-group"), logger)
	defer func() { _ = consumer.Close() }()

	metricsServer := telemetry.NewMetricsServer(getEnv("METRICS_PORT", "9464"), metricsHandler)
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("starting notification subscriber", "brokers", brokers, "topic", topic)

	if err := consumer.Consume(ctx, reactor.Handle); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			logger.Info("consumer stopped")
			return
		}
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}
}

func openInbox(ctx context.Context, backend string, logger *slog.Logger) (notification.Inbox, func(), error) {
	switch backend {
	case "postgres":
		postgresURL := os.Getenv("POSTGRES_URL")
		if postgresURL == "" {
			return nil, nil, errors.New("POSTGRES_URL is required for the postgres inbox")
		}
		if err := notification.MigrateInbox(postgresURL); err != nil {
			return nil, nil, err
		}
		db, err := telemetry.OpenPostgres(ctx, postgresURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using postgres inbox")
		return notification.NewPostgresInbox(db), func() { _ = db.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: getEnv("REDIS_ADDR", "localhost:6379")})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		logger.Info("using redis inbox")
		return notification.NewRedisInbox(client, notification.DefaultRedisInboxTTL), func() { _ = client.Close() }, nil

	case "memory":
		logger.Info("using in-memory inbox")
		return notification.NewMemoryInbox(), func() {}, nil

	default:
		return nil, nil, errors.New("unknown INBOX_BACKEND " + backend)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
