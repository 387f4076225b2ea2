// API server entry point: loads configuration, wires infrastructure and
// application services, and serves the HTTP interface until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexatlas/precedent-intelligence/internal/application/analysis"
	"github.com/lexatlas/precedent-intelligence/internal/application/ingest"
	"github.com/lexatlas/precedent-intelligence/internal/config"
	"github.com/lexatlas/precedent-intelligence/internal/domain/citation"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/concepts"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/database/neo4j"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/database/postgres"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/database/redis"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/messaging/kafka"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/lexatlas/precedent-intelligence/internal/interfaces/http"
	"github.com/lexatlas/precedent-intelligence/internal/interfaces/http/handlers"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting precedent-intelligence api server",
		logging.String("version", config.Version),
		logging.Int("port", cfg.Server.Port))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api server failed", logging.Err(err))
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "lexatlas",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return fmt.Errorf("initializing metrics collector: %w", err)
	}
	metrics := prometheus.NewAppMetrics(collector)

	if err := postgres.Migrate(cfg.Postgres, logger); err != nil {
		return fmt.Errorf("running database migrations: %w", err)
	}
	conn, err := postgres.NewConnection(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer conn.Close()
	repo := repositories.NewPrecedentRepository(conn.Pool())

	checkers := []handlers.HealthChecker{
		handlers.NamedChecker("postgres", conn.HealthCheck),
	}

	var citations citation.Provider
	if cfg.Neo4j.Enabled {
		driver, err := neo4j.NewDriver(ctx, cfg.Neo4j, logger)
		if err != nil {
			return fmt.Errorf("connecting to neo4j: %w", err)
		}
		defer func() { _ = driver.Close(context.Background()) }()
		citations = neo4j.NewCitationProvider(driver, logger)
		checkers = append(checkers, handlers.NamedChecker("neo4j", driver.VerifyConnectivity))
	} else {
		logger.Info("neo4j disabled, ingestion runs without citation enrichment")
	}

	var cache analysis.ResultCache
	var invalidator ingest.CacheInvalidator
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = client.Close() }()
		var cacheOpts []redis.AnalysisCacheOption
		if cfg.Analysis.CacheTTL > 0 {
			cacheOpts = append(cacheOpts, redis.WithTTL(cfg.Analysis.CacheTTL))
		}
		if cfg.Redis.KeyPrefix != "" {
			cacheOpts = append(cacheOpts, redis.WithPrefix(cfg.Redis.KeyPrefix))
		}
		analysisCache := redis.NewAnalysisCache(client, logger, cacheOpts...)
		cache = analysisCache
		invalidator = analysisCache
		checkers = append(checkers, handlers.NamedChecker("redis", client.HealthCheck))
	} else {
		logger.Info("redis disabled, analysis results are not cached")
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer, err = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.ProducerRetries,
			BatchTimeout: cfg.Kafka.BatchTimeout,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		}, logger)
		if err != nil {
			return fmt.Errorf("initializing kafka producer: %w", err)
		}
		defer func() { _ = producer.Close() }()
	} else {
		logger.Info("kafka disabled, domain events are not published")
	}

	var ingestEvents ingest.EventPublisher
	var analysisEvents analysis.EventPublisher
	if producer != nil {
		ingestEvents = producer
		analysisEvents = producer
	}

	ingestSvc, err := ingest.NewService(ingest.Deps{
		Repo:      repo,
		Citations: citations,
		Concepts:  concepts.NewLexiconExtractor(),
		Events:    ingestEvents,
		Cache:     invalidator,
		Metrics:   metrics,
		Logger:    logger,
		Workers:   cfg.Ingest.Workers,
	})
	if err != nil {
		return fmt.Errorf("wiring ingest service: %w", err)
	}

	analysisSvc, err := analysis.NewService(analysis.Deps{
		Repo:    repo,
		Cache:   cache,
		Events:  analysisEvents,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("wiring analysis service: %w", err)
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		AnalysisHandler:  handlers.NewAnalysisHandler(analysisSvc),
		CorpusHandler:    handlers.NewCorpusHandler(ingestSvc),
		PrecedentHandler: handlers.NewPrecedentHandler(repo),
		HealthHandler:    handlers.NewHealthHandler(config.Version, checkers...),
		Logger:           logger,
		Metrics:          metrics,
		Collector:        collector,
		Mode:             cfg.Server.Mode,
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	if err := server.Stop(context.Background()); err != nil {
		return fmt.Errorf("stopping http server: %w", err)
	}
	logger.Info("api server stopped")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
