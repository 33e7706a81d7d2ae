package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"userdesk/internal/server/config"
	"userdesk/internal/server/notifier"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if len(cfg.KafkaBrokers) == 0 {
		logger.Error("USERDESK_KAFKA_BROKERS is required")
		os.Exit(1)
	}

	var mailer notifier.Mailer = notifier.LogMailer{Logger: logger}
	if cfg.SMTPAddr != "" {
		mailer = notifier.NewSMTPMailer(cfg.SMTPAddr, cfg.MailFrom, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		logger.Warn("no SMTP server configured; mails are logged")
	}

	group, err := notifier.DialGroup(cfg.KafkaBrokers, cfg.KafkaGroup)
	if err != nil {
		logger.Error("failed to init notifier", "error", err)
		os.Exit(1)
	}
	defer group.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("notifier started", "topic", cfg.KafkaTopic, "group", cfg.KafkaGroup)
	if err := notifier.Run(ctx, group, cfg.KafkaTopic, notifier.NewConsumer(mailer, logger)); err != nil {
		logger.Error("notifier stopped with error", "error", err)
		stop()
		_ = group.Close()
		os.Exit(1)
	}
}
