package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/messaging"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/orders"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := telemetry.NewLogger(os.Stdout, "orders")

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "orders", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("orders", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	publishTimeout, err := time.ParseDuration(getEnv("PUBLISH_TIMEOUT", orders.DefaultPublishTimeout.String()))
	if err != nil {
		logger.Error("invalid PUBLISH_TIMEOUT", "error", err)
		os.Exit(1)
	}

	var publisher orders.EventPublisher
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		publisher = messaging.NewPublisher(brokers, getEnv("KAFKA_TOPIC", domain.OrdersTopic))
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events will not be published")
	}

	orchestrator, err := orders.NewOrchestrator(orders.NewOrderRepository(), publisher, logger,
		orders.WithPublishTimeout(publishTimeout),
	)
	if err != nil {
		logger.Error("failed to create orchestrator", "error", err)
		os.Exit(1)
	}

	port := getEnv("PORT", "50052")
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.Error("failed to listen", "error", err, "port", port)
		os.Exit(1)
	}

	server := rpc.NewServer(logger)
	rpc.RegisterOrderServiceServer(server, orders.NewServer(orchestrator, logger))
	healthpb.RegisterHealthServer(server, health.NewServer())

	metricsServer := telemetry.NewMetricsServer(getEnv("METRICS_PORT", "9102"), metricsHandler)
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	go func() {
		logger.Info("starting orders service", "port", port)
		if err := server.Serve(lis); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	server.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
