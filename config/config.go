package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Posabit   PosabitConfig
	Storage   StorageConfig
	Ingestion IngestionConfig
}

type ServerConfig struct {
	AppEnv      string `validate:"required,oneof=dev development staging prod production test"`
	GRPCPort    string `validate:"required"`
	MetricsPort string
}

// IsDevelopment switches logging to a console encoder at debug level.
func (s ServerConfig) IsDevelopment() bool {
	return s.AppEnv == "dev" || s.AppEnv == "development"
}

type LoggerConfig struct {
	Level             string `validate:"oneof=debug info warn error fatal"`
	Encoding          string `validate:"oneof=console json"`
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int `validate:"gte=1"`
	MaxIdleConns    int `validate:"gte=0"`
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

// RedisConfig with an empty Addr disables the per-job run lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int `validate:"gte=0"`
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string `validate:"required_if=Enabled true,dive,required"`
	Topic   string   `validate:"required_if=Enabled true"`
	GroupID string   `validate:"required_if=Enabled true"`
}

type PosabitConfig struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

type StorageConfig struct {
	Driver string `validate:"oneof=postgres memory"`
}

type IngestionConfig struct {
	LockTTL time.Duration `validate:"gt=0"`
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:      getEnv("APP_ENV", "dev"),
			GRPCPort:    getEnv("GRPC_PORT", ":8084"),
			MetricsPort: getEnv("METRICS_PORT", ":9094"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5433"),
			User:            getEnv("POSTGRES_USER", "omnipos"),
			Password:        getEnv("POSTGRES_PASSWORD", "omnipos"),
			DBName:          getEnv("POSTGRES_DB", "omnipos_intake"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", true),
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC_INTAKE_JOBS", "intake.jobs"),
			GroupID: getEnv("KAFKA_GROUP_INTAKE", "intake"),
		},
		Posabit: PosabitConfig{
			BaseURL: getEnv("POSABIT_BASE_URL", "https://app.posabit.com/api/v2/venue"),
			Timeout: getEnvDuration("POSABIT_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "postgres"),
		},
		Ingestion: IngestionConfig{
			LockTTL: getEnvDuration("INGESTION_LOCK_TTL", 15*time.Minute),
		},
	}
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return fallback
}
