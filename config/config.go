package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Config carries the terminal-level settings read from the environment.
type Config struct {
	BackendURL           string
	ListenAddr           string
	TerminalID           string
	PrinterName          string
	SpoolDir             string
	CartDebounce         time.Duration
	TokenRefreshInterval time.Duration
	CatalogTTL           time.Duration
}

func Load() Config {
	return Config{
		BackendURL:           envOr("BACKEND_URL", "http://localhost:8000"),
		ListenAddr:           ":" + envOr("POS_PORT", "8090"),
		TerminalID:           envOr("TERMINAL_ID", "pos-1"),
		PrinterName:          os.Getenv("PRINTER_NAME"),
		SpoolDir:             envOr("SPOOL_DIR", "./spool"),
		CartDebounce:         envDuration("CART_DEBOUNCE_MS", 800*time.Millisecond),
		TokenRefreshInterval: envDuration("TOKEN_REFRESH_MS", 4*time.Minute),
		CatalogTTL:           envDuration("CATALOG_TTL_MS", 5*time.Minute),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
