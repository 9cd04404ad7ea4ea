package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration shared by the Lambda entrypoints
// and the local dev server.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	AWSRegion           string
	AWSEndpointOverride string

	// BookingsTable enables the DynamoDB-backed booking store when set.
	// Empty means the simulated in-process backend is used.
	BookingsTable string

	// BookingEventsQueueURL enables publishing booking events to SQS when set.
	BookingEventsQueueURL string

	// Booking-window rules enforced by the dialog validator.
	MaxAdvanceDays   int
	MaxBookingNights int

	// FetchTimeout bounds the outbound request in the layer-demo fetch path.
	FetchTimeout    time.Duration
	DefaultFetchURL string

	LayerVersion   string
	MetricsEnabled bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		BookingsTable:         getEnv("BOOKINGS_TABLE", ""),
		BookingEventsQueueURL: getEnv("BOOKING_EVENTS_QUEUE_URL", ""),

		MaxAdvanceDays:   getEnvAsInt("MAX_ADVANCE_DAYS", 365),
		MaxBookingNights: getEnvAsInt("MAX_BOOKING_NIGHTS", 30),

		FetchTimeout:    getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
		DefaultFetchURL: getEnv("DEFAULT_FETCH_URL", "https://httpbin.org/json"),

		LayerVersion:   getEnv("LAYER_VERSION", "unknown"),
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
