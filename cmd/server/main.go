package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"vitrine/internal/commons"
	"vitrine/internal/config"
	"vitrine/internal/image"
	"vitrine/internal/infrastructure/logger"
	"vitrine/internal/infrastructure/mysql"
	"vitrine/internal/notify"
	"vitrine/internal/order"
	"vitrine/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := commons.LoadConfigFile(path, cfg); err != nil {
			log.Fatalf("loading config file: %v", err)
		}
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Auth.OrderSecret == "" {
		zapLogger.Warn("ORDER_SECRET is not set: order submission and admin routes are open to anyone")
	}
	if cfg.WhatsApp.AccessToken == "" || cfg.WhatsApp.PhoneNumberID == "" {
		zapLogger.Warn("messaging provider credentials are incomplete, notifications will fail")
	}

	var db *sql.DB
	if cfg.Storage.Driver == "mysql" {
		db, err = mysql.NewConnection(cfg.Database)
		if err != nil {
			zapLogger.Fatal("connecting to database", zap.Error(err))
		}
		defer db.Close()
		zapLogger.Info("database connected")
	} else {
		zapLogger.Info("using file order store", zap.String("dataFile", cfg.Storage.DataFile))
	}

	forwarder := notify.NewWhatsAppForwarder(cfg.WhatsApp, zapLogger)

	orderCtrl := order.NewModule(cfg.Storage, db, forwarder, zapLogger)
	imageCtrl := image.NewModule(cfg.Images, zapLogger)

	router := server.NewRouter(cfg, orderCtrl, imageCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
