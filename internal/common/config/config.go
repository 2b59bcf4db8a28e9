package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/uma-arai/hotel-dashboard/internal/common/database"
)

const (
	defaultAppPort   = "8080"
	defaultDisplayTZ = "America/Sao_Paulo"
)

type Config struct {
	DB  database.Config
	SFN struct {
		TaskToken string
	}
	App struct {
		Port string
		Env  string
	}
	DisplayLocation *time.Location
	EnableTracing   bool
}

// IsLocal はローカル環境で実行されているかを返します
func (c *Config) IsLocal() bool {
	return c.App.Env == "LOCAL"
}

// LoadConfig は設定を読み込みます
// カレントディレクトリに .env がある場合は先に読み込みます。既に設定されている環境変数は上書きしません
func LoadConfig(taskToken string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	host := getEnvOrDefault("DB_HOST", "localhost")
	cfg := &Config{
		DB: database.Config{
			Host:     host,
			Port:     getEnvAsIntOrDefault("DB_PORT", 5432),
			UserName: getEnvOrDefault("DB_USERNAME", "hotel"),
			Password: getEnvOrDefault("DB_PASSWORD", "password"),
			DBName:   getEnvOrDefault("DB_NAME", "hotel"),
			SSLMode:  getEnvOrDefault("DB_SSL_MODE", defaultSSLMode(host)),
		},
		EnableTracing: false,
	}
	cfg.SFN.TaskToken = taskToken
	cfg.App.Port = getEnvOrDefault("APP_PORT", defaultAppPort)
	cfg.App.Env = os.Getenv("ENV")

	loc, err := time.LoadLocation(getEnvOrDefault("DISPLAY_TZ", defaultDisplayTZ))
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TZ: %w", err)
	}
	cfg.DisplayLocation = loc

	// 環境変数[SBCNTR_ENABLE_TRACING]を見てトレースを有効にする。対応しているTracingはAWS_XRAYのみ。
	// 環境変数[AWS_XRAY_SDK_DISABLED]がtrueの場合は必ずトレースを無効にする。
	enableKey := os.Getenv("SBCNTR_ENABLE_TRACING")
	if !sdkDisabled() && (strings.ToLower(enableKey) == "true" || enableKey == "1") {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "FALSE")
		cfg.EnableTracing = true
	} else {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "TRUE")
		cfg.EnableTracing = false
	}

	return cfg, nil
}

// localhostのDBの場合はSSLを無効化
func defaultSSLMode(host string) string {
	if host == "localhost" || host == "127.0.0.1" {
		return "disable"
	}
	return "require"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Printf("Environment variable %s is not set, using default value", key)
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("Environment variable %s is not a number, using default value", key)
	}
	return defaultValue
}

// Check if SDK is disabled
func sdkDisabled() bool {
	disableKey := os.Getenv("AWS_XRAY_SDK_DISABLED")
	return strings.ToLower(disableKey) == "true"
}
