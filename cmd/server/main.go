package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bugra455/stajuygulamasi-sub001/config"
	"github.com/bugra455/stajuygulamasi-sub001/internal/api/handler"
	"github.com/bugra455/stajuygulamasi-sub001/internal/api/router"
	"github.com/bugra455/stajuygulamasi-sub001/internal/repository"
	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/database"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/jwt"
	applogger "github.com/bugra455/stajuygulamasi-sub001/pkg/logger"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/mailer"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/redis"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/ws"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "yapılandırma yüklenemedi: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log altyapısı başlatılamadı: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("uygulama başlatılıyor",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("veritabanı bağlantısı kurulamadı", zap.Error(err))
	}
	logger.Info("veritabanı bağlantısı hazır")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("sql.DB alınamadı", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("veritabanı göçleri uygulanamadı", zap.Error(err))
	}

	// Redis yoksa uygulama kara liste, oran sınırı ve şirket OTP'si
	// olmadan çalışmaya devam eder
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis bağlantısı kurulamadı, oturum kara listesi ve şirket OTP devre dışı", zap.Error(err))
		rdb = nil
	}

	jwtMgr := jwt.NewManager(&cfg.Auth)
	posta := mailer.NewSMTPMailer(&cfg.Mail)
	hub := ws.NewHub(logger)

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, posta, hub, logger)
	h := handler.NewHandler(cfg, svc, hub)

	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP sunucusu dinlemede", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP sunucusu durdu", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("kapanış sinyali alındı, sunucu durduruluyor")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("sunucu düzgün kapatılamadı", zap.Error(err))
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("redis bağlantısı kapatılamadı", zap.Error(err))
		}
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}

	logger.Info("uygulama kapandı")
}
