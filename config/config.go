package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort         string
	MetricsPort         string
	LogLevel            string
	BackendConfig       BackendConfig
	SessionConfig       SessionConfig
	GalleryBaseURL      string
	AutoRefreshInterval time.Duration
	KafkaConfig         KafkaConfig
	TracingConfig       TracingConfig
}

type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type SessionConfig struct {
	Token     string
	UserName  string
	UserEmail string
}

type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BackendConfig: BackendConfig{
			BaseURL:        os.Getenv("API_BASE_URL"),
			RequestTimeout: seconds("REQUEST_TIMEOUT_SECONDS", 10),
		},
		SessionConfig: SessionConfig{
			Token:     os.Getenv("ADMIN_TOKEN"),
			UserName:  os.Getenv("ADMIN_USER_NAME"),
			UserEmail: os.Getenv("ADMIN_USER_EMAIL"),
		},
		GalleryBaseURL:      os.Getenv("GALLERY_BASE_URL"),
		AutoRefreshInterval: seconds("AUTO_REFRESH_INTERVAL_SECONDS", 0),
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "admin-console-events"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// seconds reads an integer number of seconds; malformed or negative values fall back.
func seconds(key string, fallback int) time.Duration {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}
