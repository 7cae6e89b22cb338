// Package server wires the favfood server together: PostgreSQL, the optional
// Redis cache and blob store, the services and the gRPC endpoint. It also
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/favfood/internal/logging"
	"github.com/dmitrijs2005/favfood/internal/server/blobstore"
	"github.com/dmitrijs2005/favfood/internal/server/cache"
	"github.com/dmitrijs2005/favfood/internal/server/config"
	"github.com/dmitrijs2005/favfood/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/favfood/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/favfood/internal/server/grpc"
)

const tokenPurgeInterval = time.Hour

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	redis           *redis.Client
	userService     *services.UserService
	documentService *services.DocumentService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(parseLevel(c.LogLevel))

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	var docCache cache.DocumentCache = cache.Nop{}
	if c.RedisAddr != "" {
		app.redis = cache.NewRedisClient(c.RedisAddr, c.RedisPassword, c.RedisDB)
		if err := app.redis.Ping(ctx).Err(); err != nil {
			app.close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		docCache = cache.NewRedisCache(app.redis, c.CacheTTL)
		logger.Info(ctx, "Document cache enabled", "redis", c.RedisAddr)
	}

	blobs, err := blobstore.New(ctx, c)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}
	logger.Info(ctx, "Blob store", "backend", c.BlobBackend, "fields", c.BlobFields)

	app.userService = services.NewUserService(db, rm, c)
	app.documentService = services.NewDocumentService(db, rm, docCache, blobs, c, logger)

	return app, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.documentService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeTokens drops expired refresh tokens until ctx is done.
func (app *App) purgeTokens(ctx context.Context) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.userService.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Warn(ctx, "refresh token purge failed", "error", err)
				continue
			}
			app.logger.Debug(ctx, "refresh tokens purged", "count", n)
		}
	}
}

func (app *App) close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.purgeTokens(ctx)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(context.Background(), "App stopped")
}
