package config

import (
	"os"
	"strconv"
	"time"
)

// JudgeConfig configures the external judge client and the poller's bounded
// wait policy.
type JudgeConfig struct {
	BaseURL         string
	APIKey          string
	RequestTimeout  time.Duration
	PollInterval    time.Duration
	PollMaxInterval time.Duration
	MaxPollAttempts int
}

func NewJudgeConfig() *JudgeConfig {
	requestTimeoutSec := envInt("JUDGE_REQUEST_TIMEOUT_SEC", 15)
	pollIntervalMs := envInt("JUDGE_POLL_INTERVAL_MS", 500)
	pollMaxIntervalMs := envInt("JUDGE_POLL_MAX_INTERVAL_MS", 4000)
	maxPollAttempts := envInt("JUDGE_MAX_POLL_ATTEMPTS", 20)

	return &JudgeConfig{
		BaseURL:         getEnv("JUDGE_BASE_URL", "http://localhost:2358"),
		APIKey:          os.Getenv("JUDGE_API_KEY"),
		RequestTimeout:  time.Duration(requestTimeoutSec) * time.Second,
		PollInterval:    time.Duration(pollIntervalMs) * time.Millisecond,
		PollMaxInterval: time.Duration(pollMaxIntervalMs) * time.Millisecond,
		MaxPollAttempts: maxPollAttempts,
	}
}

func envInt(key string, fallback int) int {
	varInt, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return varInt
}
