package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AppPort string
	AppEnv  string

	// Optional AMQP event stream for off-process consumers (analytics,
	// receipt printers). Empty disables the AMQP publisher; the in-process
	// websocket hub still broadcasts.
	AMQPURL       string
	EventExchange string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		AppPort: getEnv("APP_PORT", "8080"),
		AppEnv:  os.Getenv("APP_ENV"),

		AMQPURL:       os.Getenv("AMQP_URL"),
		EventExchange: getEnv("EVENT_EXCHANGE", "orders.events"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
