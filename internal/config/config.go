package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tourvista/service-tours/pkg/database"
)

// ServiceConfig holds all configuration for the tours service.
type ServiceConfig struct {
	Port          string
	AppEnv        string
	DBConfig      database.PostgresConfig
	JWTSecret     string
	JWTAccessTTL  time.Duration
	KafkaBrokers  []string
	CartBackend   string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from TOURS_-prefixed environment variables with
// development defaults.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("TOURS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "tours")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("CART_BACKEND", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	return &ServiceConfig{
		Port:   normalizePort(v.GetString("SERVICE_PORT")),
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTAccessTTL:  v.GetDuration("JWT_ACCESS_TTL"),
		KafkaBrokers:  strings.Split(v.GetString("KAFKA_BROKERS"), ","),
		CartBackend:   v.GetString("CART_BACKEND"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
	}, nil
}

func normalizePort(port string) string {
	if port != "" && !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}
