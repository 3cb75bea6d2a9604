package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/openbingo/board-server/utils/logger"
)

const (
	defaultPort     = "8787"
	defaultBoardPin = "1975"
	defaultAuthTTL  = 30 * time.Minute
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port           string
	BoardPin       string
	AuthTTL        time.Duration
	AllowedOrigins []string
}

// Load reads .env (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, reading environment variables")
	}

	cfg := &Config{
		Port:           defaultPort,
		BoardPin:       defaultBoardPin,
		AuthTTL:        defaultAuthTTL,
		AllowedOrigins: []string{"*"},
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if pin := os.Getenv("BOARD_PIN"); pin != "" {
		cfg.BoardPin = pin
	}
	if ttl := os.Getenv("AUTH_TTL_MINUTES"); ttl != "" {
		if minutes, err := strconv.Atoi(ttl); err == nil && minutes > 0 {
			cfg.AuthTTL = time.Duration(minutes) * time.Minute
		} else {
			logger.Warnf("ignoring invalid AUTH_TTL_MINUTES=%q", ttl)
		}
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	return cfg
}
