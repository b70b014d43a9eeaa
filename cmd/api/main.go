package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codewithudo/quidax-market-summary/internal/cache"
	"github.com/codewithudo/quidax-market-summary/internal/config"
	"github.com/codewithudo/quidax-market-summary/internal/middleware"
	routes "github.com/codewithudo/quidax-market-summary/internal/server"
	"github.com/codewithudo/quidax-market-summary/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.Server.LogLvl)

	if cfg.Server.LogLvl == config.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	decoder, err := services.NewTickerDecoder(cfg.Quidax.Schema)
	if err != nil {
		logger.Error("configuración inválida", "error", err)
		os.Exit(1)
	}
	client := services.NewQuidaxClient(cfg.Quidax.BaseURL, cfg.Quidax.Timeout, decoder, logger)

	summaryCache, closeCache := newSummaryCache(ctx, cfg.Cache, logger)
	defer closeCache()

	summaryService := services.NewSummaryService(client, summaryCache, logger)

	// El actualizador sólo tiene sentido si hay caché donde dejar los resultados
	if summaryCache != nil && cfg.Cache.RefreshInterval > 0 {
		refresher := services.NewRefresher(summaryService, cfg.Cache.RefreshInterval, cfg.Quidax.Timeout, logger)
		refresher.Start()
		defer refresher.Stop()
	}

	router := routes.NewRouter(cfg.Server.AllowOrigins, logger, middleware.NewSummaryHandler(summaryService))

	run(ctx, net.JoinHostPort("", cfg.Server.Port), router, logger)
}

// newSummaryCache devuelve nil cuando la caché está deshabilitada (TTL 0).
// Si hay REDIS_ADDR usa Redis, si no responde cae a memoria.
func newSummaryCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (services.SummaryCache, func()) {
	noop := func() {}

	if cfg.TTL <= 0 {
		return nil, noop
	}

	if cfg.RedisAddr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		client, err := cache.NewRedisClient(pingCtx, cfg.RedisAddr, cfg.RedisDB)
		if err == nil {
			logger.Info("caché de resúmenes en redis", "addr", cfg.RedisAddr, "ttl", cfg.TTL)
			redisCache := cache.NewRedisCache(client, cfg.TTL, logger)
			return redisCache, func() { redisCache.Close() }
		}
		logger.Warn("redis no disponible, usando caché en memoria", "error", err)
	}

	logger.Info("caché de resúmenes en memoria", "ttl", cfg.TTL)
	return cache.NewMemoryCache(cfg.TTL), noop
}

func run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("servidor escuchando", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("error al iniciar el servidor", "error", err)
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("apagando el servidor...")

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("error apagando el servidor", "error", err)
	}
}
