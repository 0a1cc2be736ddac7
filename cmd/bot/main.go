package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/config"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/gitlab"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/httpapi"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/logging"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/notify"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/probe"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/scheduler"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/status"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	targets, err := config.LoadTargets(cfg.MonitorConfigPath, cfg.CheckTimeout)
	if err != nil {
		logger.Fatal("monitor_config_error", zap.Error(err))
	}
	if len(targets) == 0 {
		logger.Fatal("monitor_config_empty", zap.String("path", cfg.MonitorConfigPath))
	}

	telegram := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
	notifier := notify.Multi{telegram}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := telegram.TestConnection(ctx); err != nil {
		logger.Warn("telegram_connection_test_failed", zap.Error(err))
	} else {
		logger.Info("telegram_connected")
	}

	tracker := status.NewTracker()
	sched := scheduler.New(logger, targets, probe.NewHTTPProber(), tracker, notifier, cfg.CheckInterval)

	schedDone := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(schedDone)
	}()

	ingestor := gitlab.NewIngestor(cfg.GitLabSecret, cfg.MonitoredBranches)
	api := httpapi.NewServer(logger, ingestor, notifier, sched)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.Router(cfg.WebhookRPM, cfg.WebhookBurst),
	}

	go func() {
		startup := fmt.Sprintf(
			"🤖 **CI/CD Notification Bot Started**\n\n"+
				"✅ GitLab webhook: `/webhook/gitlab`\n"+
				"✅ Test endpoint: `/webhook/test`\n"+
				"✅ Health checks: Every %s\n"+
				"✅ Monitoring %d target(s)",
			cfg.CheckInterval, len(targets),
		)
		if err := notifier.Send(ctx, startup, notify.CategoryTest); err != nil {
			logger.Warn("startup_notification_failed", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown_signal_received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("api_serve_error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("api_shutdown_error", zap.Error(err))
	}

	// Let the in-flight cycle drain; probes complete or time out naturally.
	select {
	case <-schedDone:
	case <-time.After(shutdownGrace):
		logger.Warn("scheduler_drain_timeout")
	}
	logger.Info("shutdown_complete")
}
