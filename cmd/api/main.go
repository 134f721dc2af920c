package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fundbridge/internal/http/handlers"
	"fundbridge/internal/http/httpapi"
	"fundbridge/internal/infra"
	"fundbridge/internal/infra/geoip"
	"fundbridge/internal/middleware"
	"fundbridge/internal/service"
	"fundbridge/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx := context.Background()

	var kv store.KV
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn().Msg("using in-memory store; data will not survive restarts")
		kv = store.NewMemoryKV()
	default:
		pool, err := infra.NewDBPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		pg := store.NewPostgresKV(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to ensure store schema")
		}
		kv = pg
	}

	var countryLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip resolver unavailable")
	} else if resolver != nil {
		countryLookup = resolver.CountryCode
	}

	svc := service.New(store.New(kv, logger), logger)
	app := handlers.NewApp(svc, logger)
	router := httpapi.NewRouter(app, cfg, countryLookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
