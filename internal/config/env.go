package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// loadDotEnv only loads .env when it is present; deployed instances read the
// process environment directly.
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat .env: %w", err)
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func stringValue(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}

func intValue(v *viper.Viper, key string, defaultValue int) int {
	if parsed := v.GetInt(key); parsed > 0 {
		return parsed
	}
	return defaultValue
}

func durationValue(v *viper.Viper, key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(intValue(v, key, defaultValue)) * unit
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
