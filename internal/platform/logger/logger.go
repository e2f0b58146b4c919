package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger. Level and format come from the environment
// so the logger can be constructed before the full config is loaded.
func New() *zap.Logger {
	level := getEnv("LOG_LEVEL", "info")
	format := getEnv("LOG_FORMAT", "json")

	var zapConfig zap.Config
	if level == "debug" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if err := zapConfig.Level.UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid LOG_LEVEL %q, defaulting to 'info'. Error: %v\n", level, err)
		zapConfig.Level.SetLevel(zapcore.InfoLevel)
	}

	if strings.ToLower(format) == "console" || strings.ToLower(format) == "text" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	log, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing zap logger: %v. Falling back to production defaults.\n", err)
		log, _ = zap.NewProduction()
	}
	return log
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
