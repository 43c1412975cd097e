package main

import (
	"context"
	"errors"
	"fmt"
	"mcatalog/catalog/configs"
	"mcatalog/catalog/internal/auth"
	catalogctrl "mcatalog/catalog/internal/controller/catalog"
	listctrl "mcatalog/catalog/internal/controller/list"
	tmdbgateway "mcatalog/catalog/internal/gateway/tmdb/http"
	cataloghandler "mcatalog/catalog/internal/handler/http"
	"mcatalog/catalog/internal/ingester/kafka"
	"mcatalog/catalog/internal/repository/mysql"
	"mcatalog/pkg/discovery"
	"mcatalog/pkg/discovery/consul"
	"mcatalog/pkg/limiter"
	"mcatalog/pkg/logging"
	"mcatalog/pkg/metrics"
	"mcatalog/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const serviceName = "catalog"

func main() {
	logConfig := zap.NewProductionConfig()
	log, err := logConfig.Build()
	if err != nil {
		panic(err)
	}
	log = log.With(zap.String(logging.FieldService, serviceName))

	f, err := os.Open("defaults.yaml")
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("failed to close file", zap.Error(err))
		}
	}()
	var cfg configs.ServiceConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic(err)
	}

	log.Info("Starting the service", zap.Int(logging.FieldPort, cfg.API.Port))

	ctx, cancel := context.WithCancel(context.Background())

	tp, err := tracing.NewOTLPProvider(ctx, cfg.Telemetry.OTLPURL, serviceName)
	if err != nil {
		log.Fatal("Failed to initialize tracing provider", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("Failed to shutdown tracing provider", zap.Error(err))
		}
	}()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	registry, err := consul.NewRegistry(cfg.ServiceDiscovery.Consul.Address, log)
	if err != nil {
		panic(err)
	}
	instanceID := discovery.GenerateInstanceID(serviceName)
	if err := registry.Register(ctx, instanceID, serviceName, fmt.Sprintf("catalog:%d", cfg.API.Port)); err != nil {
		panic(err)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(1 * time.Second):
				if err := registry.ReportHealthyState(instanceID, serviceName); err != nil {
					log.Warn("Failed to report healthy state", zap.Error(err))
				}
			}
		}
	}()
	defer func() {
		if err := registry.Deregister(ctx, instanceID, serviceName); err != nil {
			log.Warn("Failed to deregister service", zap.Error(err))
		}
	}()

	repo, err := mysql.New(cfg.DatabaseConfig.Mysql, log)
	if err != nil {
		log.Fatal("Failed to initialize repository", zap.Error(err))
	}

	l := limiter.New(log, cfg.Provider.RateLimit, cfg.Provider.RateBurst)
	gateway := tmdbgateway.New(cfg.Provider.BaseURL, cfg.Provider.APIKey, time.Duration(cfg.Provider.TimeoutSeconds)*time.Second, l, log)

	catalogSvc := catalogctrl.New(repo, gateway, log)

	var wg sync.WaitGroup
	var listSvc *listctrl.Controller
	if addr := cfg.MessengerConfig.Kafka.Address; addr != "" {
		ingester, err := kafka.NewIngester(fmt.Sprintf("%s:%d", addr, cfg.MessengerConfig.Kafka.Port), serviceName, "ratings", log)
		if err != nil {
			log.Fatal("Failed to initialize ingester", zap.Error(err))
		}
		listSvc = listctrl.New(repo, ingester, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := listSvc.StartIngestion(ctx); err != nil {
				log.Error("Failed to start ingestion", zap.Error(err))
			}
		}()
	} else {
		listSvc = listctrl.New(repo, nil, log)
	}

	scope, closer := metrics.NewMetricsReporter(log, serviceName, cfg.Prometheus.MetricsPort)
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn("Failed to close Prometheus reporter scope", zap.Error(err))
		}
	}()

	verifier := auth.NewVerifier(func() []byte { return []byte(cfg.Auth.Secret) }, log)
	h := cataloghandler.New(catalogSvc, listSvc, scope, log)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.API.Port),
		Handler: h.Router(verifier.Middleware),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	wg.Add(1)
	go func() {
		defer wg.Done()
		s := <-sigChan
		cancel()
		log.Info("Got signal, attempting graceful shutdown", zap.Stringer(logging.FieldSignal, s))
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to shutdown the HTTP server gracefully", zap.Error(err))
		}
		log.Info("Gracefully stopped the HTTP server")
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
	wg.Wait()
}
