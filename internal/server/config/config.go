package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr        string
	DatabaseDSN     string
	MaxRequestBytes int64
	KafkaBrokers    []string
	KafkaTopic      string
	LogLevel        slog.Level

	// Notifier settings. An empty SMTPAddr logs mails instead of sending them.
	KafkaGroup string
	SMTPAddr   string
	SMTPUser   string
	SMTPPass   string
	MailFrom   string
}

func Load() Config {
	cfg := Config{
		HTTPAddr:        getEnv("USERDESK_HTTP_ADDR", ":8080"),
		DatabaseDSN:     getEnv("USERDESK_DB_DSN", "file:userdesk.db?cache=shared&mode=rwc"),
		MaxRequestBytes: getEnvInt64("USERDESK_MAX_REQUEST_BYTES", 1<<20),
		KafkaBrokers:    splitList(getEnv("USERDESK_KAFKA_BROKERS", "")),
		KafkaTopic:      getEnv("USERDESK_KAFKA_TOPIC", "user-events"),
		LogLevel:        parseLevel(getEnv("USERDESK_LOG_LEVEL", "info")),
		KafkaGroup:      getEnv("USERDESK_KAFKA_GROUP", "userdesk-notifier"),
		SMTPAddr:        getEnv("USERDESK_SMTP_ADDR", ""),
		SMTPUser:        getEnv("USERDESK_SMTP_USER", ""),
		SMTPPass:        getEnv("USERDESK_SMTP_PASSWORD", ""),
		MailFrom:        getEnv("USERDESK_MAIL_FROM", "noreply@userdesk.local"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", v)
		return def
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(v string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
