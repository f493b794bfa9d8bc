package main

import (
	"fmt"
	"os"
	"strconv"

	"tp-countsort-2c2025/shared/middleware"
)

const (
	// Default value interval of the generated dataset
	DefaultRangeMin = 0
	DefaultRangeMax = 100000

	// Broker startup wait
	DefaultConnectionRetries = 30
)

// WorkerConfig holds configuration for one sort worker
type WorkerConfig struct {
	Rank             int
	NumWorkers       int
	RangeMin         int32
	RangeMax         int32
	InputFile        string
	ConnectionConfig *middleware.ConnectionConfig
}

// loadConfig loads configuration from environment variables
func loadConfig() (*WorkerConfig, error) {
	rankStr := os.Getenv("WORKER_RANK")
	if rankStr == "" {
		return nil, fmt.Errorf("WORKER_RANK environment variable is required")
	}
	rank, err := strconv.Atoi(rankStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_RANK: %v", err)
	}

	numWorkersStr := os.Getenv("NUM_WORKERS")
	if numWorkersStr == "" {
		return nil, fmt.Errorf("NUM_WORKERS environment variable is required")
	}
	numWorkers, err := strconv.Atoi(numWorkersStr)
	if err != nil {
		return nil, fmt.Errorf("invalid NUM_WORKERS: %v", err)
	}
	if numWorkers < 1 {
		return nil, fmt.Errorf("NUM_WORKERS must be at least 1 (got %d)", numWorkers)
	}

	if rank < 0 || rank >= numWorkers {
		return nil, fmt.Errorf("WORKER_RANK must be between 0 and %d (got %d)", numWorkers-1, rank)
	}

	rangeMin, err := getEnvInt32("RANGE_MIN", DefaultRangeMin)
	if err != nil {
		return nil, err
	}
	rangeMax, err := getEnvInt32("RANGE_MAX", DefaultRangeMax)
	if err != nil {
		return nil, err
	}
	if rangeMax <= rangeMin {
		return nil, fmt.Errorf("can't have RANGE_MAX <= RANGE_MIN (got [%d, %d])", rangeMin, rangeMax)
	}

	host := getEnv("RABBITMQ_HOST", "rabbitmq")
	portStr := getEnv("RABBITMQ_PORT", "5672")
	user := getEnv("RABBITMQ_USER", "guest")
	pass := getEnv("RABBITMQ_PASS", "guest")

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RABBITMQ_PORT: %v", err)
	}

	return &WorkerConfig{
		Rank:       rank,
		NumWorkers: numWorkers,
		RangeMin:   rangeMin,
		RangeMax:   rangeMax,
		InputFile:  os.Getenv("INPUT_FILE"),
		ConnectionConfig: &middleware.ConnectionConfig{
			Username: user,
			Password: pass,
			Host:     host,
			Port:     port,
			VHost:    "/",
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt32(key string, defaultValue int32) (int32, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return int32(parsed), nil
}
