package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by CREDENCE_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("CREDENCE_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// CoverageSaturation returns the calibration constant k used in the
// confidence curve. Zero means "use the engine default".
func CoverageSaturation() float64 {
	k, err := strconv.ParseFloat(os.Getenv("COVERAGE_SATURATION"), 64)
	if err != nil || k <= 0 {
		return 0
	}
	return k
}

// DisputedDisagreement returns the disagreement threshold above which
// consensus is classified as disputed. Zero means "use the engine default".
func DisputedDisagreement() float64 {
	v, err := strconv.ParseFloat(os.Getenv("DISPUTED_DISAGREEMENT"), 64)
	if err != nil || v <= 0 || v > 1 {
		return 0
	}
	return v
}

// WeakConfidenceCeiling returns the confidence ceiling for the weak consensus
// band. Zero means "use the engine default".
func WeakConfidenceCeiling() float64 {
	v, err := strconv.ParseFloat(os.Getenv("WEAK_CONFIDENCE_CEILING"), 64)
	if err != nil || v <= 0 || v > 1 {
		return 0
	}
	return v
}

// ModerateConfidenceCeiling returns the confidence ceiling for the moderate
// consensus band. Zero means "use the engine default".
func ModerateConfidenceCeiling() float64 {
	v, err := strconv.ParseFloat(os.Getenv("MODERATE_CONFIDENCE_CEILING"), 64)
	if err != nil || v <= 0 || v > 1 {
		return 0
	}
	return v
}
