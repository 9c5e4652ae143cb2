package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/withgossing/bank-app/api"
	"github.com/withgossing/bank-app/internal/catalog"
	"github.com/withgossing/bank-app/internal/config"
	"github.com/withgossing/bank-app/internal/logging"
	"github.com/withgossing/bank-app/internal/operator"
	"github.com/withgossing/bank-app/internal/service"
	"github.com/withgossing/bank-app/internal/storage"
	"github.com/withgossing/bank-app/internal/storage/memory"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger, err := logging.SetupLogging(envConfig.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("logging.SetupLogging")
		return
	}

	if err = run(envConfig, logger); err != nil {
		logger.WithError(err).Fatal("bank-app exited")
	}
}

// run returns instead of exiting so its deferred cleanups always run.
func run(envConfig *config.Config, logger *logrus.Logger) error {
	logger.Info("bank-app starting")

	products, err := loadCatalog(envConfig)
	if err != nil {
		return fmt.Errorf("loadCatalog: %w", err)
	}

	store, err := openStorage(envConfig)
	if err != nil {
		return fmt.Errorf("openStorage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("storage.Close")
		}
	}()

	delegator := operator.NewOperatorDelegator(store, envConfig.WriteWorkers, envConfig.WriteQueueSize, logger)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(store, delegator, products, service.Options{
		MaxWriteAttempts: envConfig.MaxWriteAttempts,
		CurrencyScale:    envConfig.CurrencyScale,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:    logger,
		Port:      envConfig.Port,
		Storage:   store,
		Service:   svc,
		JWTSecret: envConfig.JWTSecret,
	}
	httpRest.Serve(ctx)
	return nil
}

func openStorage(envConfig *config.Config) (storage.Storage, error) {
	if envConfig.StorageBackend == config.StorageBackendMemory {
		logrus.Warn("using in-memory storage, data is lost on exit")
		return memory.New(), nil
	}

	pg, err := storage.NewPostgresStorage(envConfig)
	if err != nil {
		return nil, err
	}
	if err = storage.Migrate(pg.DB()); err != nil {
		_ = pg.Close()
		return nil, err
	}
	return pg, nil
}

func loadCatalog(envConfig *config.Config) (catalog.Catalog, error) {
	if envConfig.ProductCatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(envConfig.ProductCatalogPath)
}
