package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port              string
	Env               string
	LogLevel          string
	StoreDriver       string
	MongoURI          string
	DBName            string
	JWTSecret         string
	IdentitySecret    string
	SessionTTL        time.Duration
	PageSize          int64
	SearchWindow      int64
	CursorTTL         time.Duration
	AllowedOrigins    []string
	ImageProbeTimeout time.Duration
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("DB_NAME", "catalog_admin")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	cfg := &Config{
		Port:              stringValue(v, "PORT"),
		Env:               strings.ToLower(stringValue(v, "APP_ENV")),
		LogLevel:          stringValue(v, "LOG_LEVEL"),
		StoreDriver:       strings.ToLower(stringValue(v, "STORE_DRIVER")),
		MongoURI:          stringValue(v, "MONGO_URI"),
		DBName:            stringValue(v, "DB_NAME"),
		JWTSecret:         stringValue(v, "JWT_SECRET"),
		IdentitySecret:    stringValue(v, "IDENTITY_SECRET"),
		SessionTTL:        durationValue(v, "SESSION_TTL", 12, time.Hour),
		PageSize:          int64(intValue(v, "PAGE_SIZE", 10)),
		SearchWindow:      int64(intValue(v, "SEARCH_WINDOW", 100)),
		CursorTTL:         durationValue(v, "CURSOR_TTL", 30, time.Minute),
		AllowedOrigins:    splitList(stringValue(v, "ALLOWED_ORIGINS")),
		ImageProbeTimeout: durationValue(v, "IMAGE_PROBE_TIMEOUT", 5, time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	case DriverMemory:
	default:
		return errors.New("STORE_DRIVER must be mongo or memory")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IdentitySecret == "" {
		return errors.New("IDENTITY_SECRET is required")
	}
	return nil
}
