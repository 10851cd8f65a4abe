package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable bounds on polling operations.
// These values can be customized via environment variables.
type Timeouts struct {
	StateTransition  time.Duration // Bound on start/stop/suspend/pause convergence
	Deploy           time.Duration // Bound on a deployed instance reaching RUNNING
	InstanceGone     time.Duration // Bound on delete confirmation after an instance delete
	ImageActive      time.Duration // Bound on a snapshot image reaching ACTIVE
	ImageGone        time.Duration // Bound on delete confirmation after an image delete
	FIPSafetyWindow  time.Duration // Grace period to detect floating IP theft after attach
	FIPDetach        time.Duration // Bound on a detached floating IP leaving the instance
	FIPDelete        time.Duration // Bound on a deleted floating IP leaving the listing
	VolumeAvailable  time.Duration // Bound on a created volume reaching "available"
	VolumeGone       time.Duration // Bound on delete confirmation after a volume delete
	RetryMaxAttempts int           // Attempts for transient compute API timeouts
	RetryDelay       time.Duration // Initial delay between transient retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, the default is used.
//
// Environment Variables:
//   - STACKVM_TIMEOUT_STATE_TRANSITION (default: 5m)
//   - STACKVM_TIMEOUT_DEPLOY (default: 15m)
//   - STACKVM_TIMEOUT_INSTANCE_GONE (default: 3m)
//   - STACKVM_TIMEOUT_IMAGE_ACTIVE (default: 15m)
//   - STACKVM_TIMEOUT_IMAGE_GONE (default: 2m)
//   - STACKVM_FIP_SAFETY_WINDOW (default: 5s)
//   - STACKVM_TIMEOUT_FIP_DETACH (default: 1m)
//   - STACKVM_TIMEOUT_FIP_DELETE (default: 1m)
//   - STACKVM_TIMEOUT_VOLUME_AVAILABLE (default: 1m)
//   - STACKVM_TIMEOUT_VOLUME_GONE (default: 3m)
//   - STACKVM_RETRY_MAX_ATTEMPTS (default: 3)
//   - STACKVM_RETRY_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		StateTransition:  parseDuration("STACKVM_TIMEOUT_STATE_TRANSITION", 5*time.Minute),
		Deploy:           parseDuration("STACKVM_TIMEOUT_DEPLOY", 15*time.Minute),
		InstanceGone:     parseDuration("STACKVM_TIMEOUT_INSTANCE_GONE", 3*time.Minute),
		ImageActive:      parseDuration("STACKVM_TIMEOUT_IMAGE_ACTIVE", 15*time.Minute),
		ImageGone:        parseDuration("STACKVM_TIMEOUT_IMAGE_GONE", 2*time.Minute),
		FIPSafetyWindow:  parseDuration("STACKVM_FIP_SAFETY_WINDOW", 5*time.Second),
		FIPDetach:        parseDuration("STACKVM_TIMEOUT_FIP_DETACH", time.Minute),
		FIPDelete:        parseDuration("STACKVM_TIMEOUT_FIP_DELETE", time.Minute),
		VolumeAvailable:  parseDuration("STACKVM_TIMEOUT_VOLUME_AVAILABLE", time.Minute),
		VolumeGone:       parseDuration("STACKVM_TIMEOUT_VOLUME_GONE", 3*time.Minute),
		RetryMaxAttempts: parseInt("STACKVM_RETRY_MAX_ATTEMPTS", 3),
		RetryDelay:       parseDuration("STACKVM_RETRY_DELAY", time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
