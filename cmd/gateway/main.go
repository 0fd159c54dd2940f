package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/gateway"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/rpc"
	"github.com/AyaMbarek/Soa-Ecommerce/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := telemetry.NewLogger(os.Stdout, "gateway")

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "gateway", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("gateway", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	callTimeout, err := time.ParseDuration(getEnv("RPC_TIMEOUT", rpc.DefaultCallTimeout.String()))
	if err != nil {
		logger.Error("invalid RPC_TIMEOUT", "error", err)
		os.Exit(1)
	}

	dial := func(envKey, fallback string) *grpc.ClientConn {
		addr := getEnv(envKey, fallback)
		conn, err := rpc.Dial(addr, callTimeout)
		if err != nil {
			logger.Error("failed to create client", "error", err, "addr", addr)
			os.Exit(1)
		}
		return conn
	}

	productConn := dial("PRODUCT_SERVICE_ADDR", "localhost:50051")
	defer func() { _ = productConn.Close() }()
	orderConn := dial("ORDER_SERVICE_ADDR", "localhost:50052")
	defer func() { _ = orderConn.Close() }()
	userConn := dial("USER_SERVICE_ADDR", "localhost:50053")
	defer func() { _ = userConn.Close() }()
	paymentConn := dial("PAYMENT_SERVICE_ADDR", "localhost:50054")
	defer func() { _ = paymentConn.Close() }()

	ops := gateway.NewOperations(gateway.Backends{
		Products: rpc.NewProductClient(productConn),
		Orders:   rpc.NewOrderClient(orderConn),
		Users:    rpc.NewUserClient(userConn),
		Payments: rpc.NewPaymentClient(paymentConn),
	})

	schema, err := gateway.NewSchema(ops)
	if err != nil {
		logger.Error("failed to build graphql schema", "error", err)
		os.Exit(1)
	}

	router := gateway.NewRouter(
		gateway.NewRESTHandler(ops, logger),
		gateway.NewGraphQLHandler(schema, logger),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metricsHandler)
	mux.Handle("/", router)

	port := getEnv("PORT", "3000")

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      otelhttp.NewHandler(mux, "gateway"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting gateway service", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
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
