package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/vault-indexer/internal/adapter"
	"github.com/feral-file/vault-indexer/internal/api/rest"
	"github.com/feral-file/vault-indexer/internal/api/server"
	"github.com/feral-file/vault-indexer/internal/block"
	"github.com/feral-file/vault-indexer/internal/config"
	"github.com/feral-file/vault-indexer/internal/indexer"
	"github.com/feral-file/vault-indexer/internal/logger"
	"github.com/feral-file/vault-indexer/internal/materializer"
	"github.com/feral-file/vault-indexer/internal/messaging"
	"github.com/feral-file/vault-indexer/internal/providers/ethereum"
	"github.com/feral-file/vault-indexer/internal/providers/jetstream"
	"github.com/feral-file/vault-indexer/internal/store"
	"github.com/feral-file/vault-indexer/internal/subscription"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadIndexerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		Service:         "vault-indexer",
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "vault-indexer",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Vault Indexer")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	err = store.ConfigureConnectionPool(db,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
		cfg.Database.ConnMaxIdleTime)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()
	ethDialer := adapter.NewEthClientDialer()

	// Logs are followed over the websocket; reads use rpc_url when it is set
	wsClient, err := ethDialer.Dial(ctx, cfg.Ethereum.WebSocketURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum WebSocket", zap.Error(err))
	}
	defer wsClient.Close()

	readClient := wsClient
	if cfg.Ethereum.RPCURL != "" {
		readClient, err = ethDialer.Dial(ctx, cfg.Ethereum.RPCURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
		}
		defer readClient.Close()
	}

	blockProvider := block.NewBlockProvider(
		ethereum.NewEthereumBlockFetcher(readClient),
		block.Config{
			TTL:             cfg.Ethereum.BlockHeadTTL,
			StaleWindow:     cfg.Ethereum.BlockHeadStaleWindow,
			PrefetchWorkers: cfg.Worker.WorkerPoolSize,
		},
		clockAdapter,
	)

	clientCfg := ethereum.ClientConfig{
		ChainID:             cfg.Ethereum.ChainID,
		ReadMaxRetries:      cfg.Ethereum.ReadMaxRetries,
		ReadInitialInterval: cfg.Ethereum.ReadInitialInterval,
		LogPageSize:         cfg.Ethereum.LogPageSize,
	}
	ethereumClient := ethereum.NewClient(clientCfg, wsClient, blockProvider)
	contractReader := ethereum.NewClient(clientCfg, readClient, blockProvider)

	// Initialize NATS publisher; without a URL registrations are not announced
	var natsPublisher messaging.Publisher
	var natsClosed <-chan struct{}
	if cfg.NATS.URL != "" {
		natsPublisher, err = jetstream.NewPublisher(
			jetstream.Config{
				URL:            cfg.NATS.URL,
				StreamName:     cfg.NATS.StreamName,
				SubjectPrefix:  cfg.NATS.SubjectPrefix,
				MaxReconnects:  cfg.NATS.MaxReconnects,
				ReconnectWait:  cfg.NATS.ReconnectWait,
				ConnectionName: cfg.NATS.ConnectionName,
			}, natsJS, jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer natsPublisher.Close()
		natsClosed = natsPublisher.CloseChan()
		logger.InfoCtx(ctx, "Connected to NATS JetStream")
	} else {
		logger.WarnCtx(ctx, "nats.url is not set, subscriptions will not be announced")
	}

	registrar := subscription.NewRegistrar(subscription.Config{Chain: cfg.Ethereum.ChainID}, dataStore, natsPublisher, clockAdapter)
	engine := materializer.NewEngine(dataStore, contractReader, registrar, jsonAdapter)

	// Initialize Ethereum subscriber
	ethSubscriber, err := ethereum.NewSubscriber(ethereum.Config{
		ChainID:          cfg.Ethereum.ChainID,
		FactoryAddresses: cfg.Ethereum.FactoryAddresses,
		LiveLogBuffer:    cfg.Worker.WorkerQueueSize,
	}, ethereumClient)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create Ethereum subscriber", zap.Error(err))
	}

	vaultIndexer := indexer.NewIndexer(ethSubscriber, engine, dataStore, indexer.Config{
		ChainID:    cfg.Ethereum.ChainID,
		StartBlock: cfg.Ethereum.StartBlock,
	})
	defer vaultIndexer.Close()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 2)

	var opsServer *server.Server
	if cfg.Server.Enabled {
		opsServer = server.New(server.Config{
			Debug:              cfg.Debug,
			Host:               cfg.Server.Host,
			Port:               cfg.Server.Port,
			ReadTimeout:        time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout:       time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:        time.Duration(cfg.Server.IdleTimeout) * time.Second,
			CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		}, rest.NewHandler(cfg.Ethereum.ChainID, dataStore, registrar))

		go func() {
			if err := opsServer.Start(); err != nil {
				errCh <- fmt.Errorf("ops server on %s: %w", cfg.Server.Addr(), err)
			}
		}()
	}

	// Start the indexer
	go func() {
		if err := vaultIndexer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	exitCode := 0
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case <-natsClosed:
		logger.InfoCtx(ctx, "NATS connection closed unexpectedly")
		exitCode = 1
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "indexer"))
		exitCode = 1
	}
	cancel()

	if opsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, zap.String("component", "ops server"))
		}
		shutdownCancel()
	}

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Vault Indexer stopped")

	if exitCode != 0 {
		logger.Flush(2 * time.Second)
		os.Exit(exitCode) //nolint:gocritic
	}
}
