package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"glnc_delivery/internal/config"
	"glnc_delivery/internal/controllers"
	"glnc_delivery/internal/logger"
	"glnc_delivery/internal/middleware"
	"glnc_delivery/internal/notify"
	"glnc_delivery/internal/routes"
	"glnc_delivery/internal/security"
	"glnc_delivery/internal/services"
	"glnc_delivery/internal/session"
	"glnc_delivery/internal/storage"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	accessLog := logger.Setup(cfg.Log.File, cfg.Log.Level)
	gin.SetMode(cfg.Server.GinMode)

	db, err := config.InitDB(cfg, logger.GormLogger())
	if err != nil {
		logrus.WithError(err).Fatal("database initialisation failed")
	}

	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("redis initialisation failed")
	}
	defer rdb.Close()

	var mailer services.Mailer = notify.LogMailer{}
	if cfg.SMTP.Host != "" {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		logrus.Warn("SMTP_HOST is not set; delivery notifications will only be logged")
	}

	var events services.EventPublisher = notify.NopPublisher{}
	if cfg.AMQP.URL != "" {
		publisher, err := notify.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logrus.WithError(err).Warn("AMQP unavailable; delivery events disabled")
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	clock := services.NewClock(cfg.Location())
	svc := services.New(services.Deps{
		DB:                    db,
		Hasher:                security.NewPasswordHasher(cfg.Security.BcryptCost, cfg.Security.LegacySalt),
		Clock:                 clock,
		Mailer:                mailer,
		Events:                events,
		Images:                storage.NewImageStore(cfg.Server.UploadDir, clock.Current),
		SubjectPrefix:         cfg.SMTP.SubjectPrefix,
		EnforceTruckConflicts: cfg.Planning.EnforceTruckConflicts,
	})

	hub := controllers.NewLocationHub()
	defer hub.Close()

	r := routes.SetupRouter(routes.Deps{
		Services:       svc,
		Clock:          clock,
		Sessions:       session.NewStore(rdb, cfg.Redis.SessionTTL),
		Tokens:         middleware.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL),
		Hub:            hub,
		AccessLog:      accessLog,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		UploadDir:      cfg.Server.UploadDir,
		SecureCookie:   cfg.Server.GinMode == gin.ReleaseMode,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server running at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
