package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/auth"
	"catalog-admin/internal/cache"
	"catalog-admin/internal/catalog"
	"catalog-admin/internal/config"
	"catalog-admin/internal/database"
	"catalog-admin/internal/handlers"
	"catalog-admin/internal/imageprobe"
	"catalog-admin/internal/listing"
	"catalog-admin/internal/logging"
	"catalog-admin/internal/routes"
	"catalog-admin/internal/server"
	"catalog-admin/internal/store"
	"catalog-admin/internal/store/memstore"
	"catalog-admin/internal/store/mongostore"
)

func main() {
	// Bootstrap logger until the configured level is known.
	if err := logging.Init("info", os.Getenv("APP_ENV")); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
		logging.L.Fatal("config invalid", zap.Error(err))
	}
	if err := logging.Init(cfg.LogLevel, cfg.Env); err != nil {
		logging.L.Fatal("logger setup failed", zap.Error(err))
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := openStore(ctx, cfg)
	if err != nil {
		logging.L.Fatal("store unavailable", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			logging.L.Warn("store close failed", zap.Error(err))
		}
	}()

	trails := cache.New(cfg.CursorTTL, time.Minute)
	defer trails.Close()

	env := &handlers.Env{
		Store:    client,
		Lister:   listing.New(client, trails, cfg.PageSize, cfg.SearchWindow),
		Wizard:   catalog.NewWizard(client),
		Images:   imageprobe.New(cfg.ImageProbeTimeout),
		Signer:   auth.NewSigner(cfg.JWTSecret, cfg.SessionTTL),
		Verifier: auth.NewVerifier(cfg.IdentitySecret),
		Gate:     auth.NewGate(client),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := routes.New(env, cfg.AllowedOrigins)
	if err != nil {
		logging.L.Fatal("router setup failed", zap.Error(err))
	}

	srv := server.New(engine, ":"+cfg.Port)
	errs := make(chan error, 1)
	go func() {
		logging.L.Info("listening", zap.String("port", cfg.Port), zap.String("driver", cfg.StoreDriver))
		errs <- srv.Run()
	}()

	select {
	case err := <-errs:
		if err != nil {
			logging.L.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		logging.L.Info("shutting down")
		if err := srv.Stop(10 * time.Second); err != nil {
			logging.L.Warn("shutdown incomplete", zap.Error(err))
		}
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Client, error) {
	if cfg.StoreDriver == config.DriverMemory {
		logging.L.Warn("using in-memory store; data is lost on exit")
		return memstore.New(), nil
	}

	mc, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	db := mc.Database(cfg.DBName)
	logging.L.Info("mongo connected", zap.String("db", db.Name()))

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logging.L.Warn("index warning", zap.Error(err))
	}
	return mongostore.New(db), nil
}
