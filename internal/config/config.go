package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the ledger server.
type Config struct {
	Port        string
	Env         string
	LogLevel    string
	LockTimeout time.Duration

	Notifier      string
	NotifyBuffer  int
	NotifyWorkers int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string

	KafkaBrokers []string
	KafkaTopic   string

	CORSOrigins string
	// TransferRateLimit caps transfer requests per client IP per minute. Zero disables it.
	TransferRateLimit int
}

// Notifier kinds.
const (
	NotifierLog   = "log"
	NotifierRedis = "redis"
	NotifierKafka = "kafka"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Port:        GetEnv("PORT", "3000"),
		Env:         GetEnv("ENV", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", ""),
		LockTimeout: GetDurationEnv("LOCK_TIMEOUT", 0),

		Notifier:      strings.ToLower(GetEnv("NOTIFIER", NotifierLog)),
		NotifyBuffer:  GetIntEnv("NOTIFY_BUFFER", 256),
		NotifyWorkers: GetIntEnv("NOTIFY_WORKERS", 4),

		RedisAddr:     GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetIntEnv("REDIS_DB", 0),
		RedisChannel:  GetEnv("REDIS_CHANNEL", "ledger.notifications"),

		KafkaBrokers: splitList(GetEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   GetEnv("KAFKA_TOPIC", "ledger.notifications"),

		CORSOrigins:       GetEnv("CORS_ORIGINS", "*"),
		TransferRateLimit: GetIntEnv("TRANSFER_RATE_LIMIT", 0),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable (e.g. "250ms") or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
