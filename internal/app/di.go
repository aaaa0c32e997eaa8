// Package app assembles the application's components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/hname/internal/config"
	"github.com/allisson/hname/internal/database"
	"github.com/allisson/hname/internal/hname"
	"github.com/allisson/hname/internal/http"
	"github.com/allisson/hname/internal/metrics"
	registryHTTP "github.com/allisson/hname/internal/registry/http"
	registryRepository "github.com/allisson/hname/internal/registry/repository"
	registryUseCase "github.com/allisson/hname/internal/registry/usecase"
)

// Container builds components lazily on first access and caches both the
// component and any error from building it.
type Container struct {
	config *config.Config

	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	entryRepo       registryUseCase.EntryRepository
	hasher          *hname.Memo
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	registryUseCase registryUseCase.RegistryUseCase
	registryHandler *registryHTTP.RegistryHandler
	httpServer      *http.Server
	metricsServer   *http.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	entryRepoInit       sync.Once
	hasherInit          sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	registryUseCaseInit sync.Once
	registryHandlerInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a container for cfg.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the configuration the container was built with.
func (c *Container) Config() *config.Config {
	return c.config
}

func (c *Container) setErr(key string, err error) {
	if err != nil {
		c.mu.Lock()
		c.initErrors[key] = err
		c.mu.Unlock()
	}
}

func (c *Container) getErr(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[key]
}

// Logger returns the JSON logger, leveled by LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database handle.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		var err error
		c.db, err = c.initDB()
		c.setErr("db", err)
	})
	if err := c.getErr("db"); err != nil {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.setErr("txManager", fmt.Errorf("failed to get database for tx manager: %w", err))
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err := c.getErr("txManager"); err != nil {
		return nil, err
	}
	return c.txManager, nil
}

// EntryRepository returns the registry repository for the configured driver.
func (c *Container) EntryRepository() (registryUseCase.EntryRepository, error) {
	c.entryRepoInit.Do(func() {
		var err error
		c.entryRepo, err = c.initEntryRepository()
		c.setErr("entryRepo", err)
	})
	if err := c.getErr("entryRepo"); err != nil {
		return nil, err
	}
	return c.entryRepo, nil
}

// Hasher returns the shared hname memo.
func (c *Container) Hasher() *hname.Memo {
	c.hasherInit.Do(func() {
		c.hasher = hname.NewMemo(c.config.HNameCacheSize)
	})
	return c.hasher
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		var err error
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.setErr("metricsProvider", fmt.Errorf("failed to create metrics provider: %w", err))
		}
	})
	if err := c.getErr("metricsProvider"); err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder, a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		var err error
		c.businessMetrics, err = c.initBusinessMetrics()
		c.setErr("businessMetrics", err)
	})
	if err := c.getErr("businessMetrics"); err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// RegistryUseCase returns the registry use case, instrumented when metrics are enabled.
func (c *Container) RegistryUseCase() (registryUseCase.RegistryUseCase, error) {
	c.registryUseCaseInit.Do(func() {
		var err error
		c.registryUseCase, err = c.initRegistryUseCase()
		c.setErr("registryUseCase", err)
	})
	if err := c.getErr("registryUseCase"); err != nil {
		return nil, err
	}
	return c.registryUseCase, nil
}

// RegistryHandler returns the HTTP handler for the registry routes.
func (c *Container) RegistryHandler() (*registryHTTP.RegistryHandler, error) {
	c.registryHandlerInit.Do(func() {
		useCase, err := c.RegistryUseCase()
		if err != nil {
			c.setErr("registryHandler", fmt.Errorf("failed to get registry use case for handler: %w", err))
			return
		}
		c.registryHandler = registryHTTP.NewRegistryHandler(useCase, c.Logger())
	})
	if err := c.getErr("registryHandler"); err != nil {
		return nil, err
	}
	return c.registryHandler, nil
}

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		var err error
		c.httpServer, err = c.initHTTPServer()
		c.setErr("httpServer", err)
	})
	if err := c.getErr("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.setErr("metricsServer", fmt.Errorf("failed to get metrics provider for metrics server: %w", err))
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider)
	})
	if err := c.getErr("metricsServer"); err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown stops whatever was started, servers first, then the metrics
// provider and the database.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (c *Container) initLogger() *slog.Logger {
	var level slog.Level
	switch c.config.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initEntryRepository() (registryUseCase.EntryRepository, error) {
	switch c.config.DBDriver {
	case "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for entry repository: %w", err)
	}

	if c.config.DBDriver == "mysql" {
		return registryRepository.NewMySQLEntryRepository(db), nil
	}
	return registryRepository.NewPostgreSQLEntryRepository(db), nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return bm, nil
}

func (c *Container) initRegistryUseCase() (registryUseCase.RegistryUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for registry use case: %w", err)
	}

	entryRepo, err := c.EntryRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry repository for registry use case: %w", err)
	}

	useCase := registryUseCase.NewRegistryUseCase(txManager, entryRepo, c.Hasher())
	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for registry use case: %w", err)
	}
	return registryUseCase.NewRegistryUseCaseWithMetrics(useCase, bm), nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	handler, err := c.RegistryHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get registry handler for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.config, handler, provider)
	return server, nil
}
