package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr    string
	Width   int
	Height  int
	Clients int
	// MaxClients caps the client count a request may ask for.
	MaxClients int
	Capacity   int
	MaxDemand  int
	Random     bool
	LogLevel   string
	// SweepTimeout bounds one request's sweep + routing.
	SweepTimeout time.Duration
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (Config, bool) {
	loadedEnv := godotenv.Load() == nil

	return Config{
		Addr:         getEnv("APP_ADDR", ":8080"),
		Width:        getEnvInt("APP_WIDTH", 1000),
		Height:       getEnvInt("APP_HEIGHT", 1000),
		Clients:      getEnvInt("APP_CLIENTS", 25),
		MaxClients:   getEnvInt("APP_MAX_CLIENTS", 5000),
		Capacity:     getEnvInt("APP_CAPACITY", 30),
		MaxDemand:    getEnvInt("APP_MAX_DEMAND", 9),
		Random:       getEnvBool("APP_RANDOM", true),
		LogLevel:     getEnv("APP_LOG_LEVEL", "info"),
		SweepTimeout: getEnvDuration("APP_SWEEP_TIMEOUT", 10*time.Second),
	}, loadedEnv
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
