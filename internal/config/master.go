package config

import "os"

type AppConfig struct {
	DebugMode      bool
	PostgresConfig *PostgresConfig
	RedisConfig    *RedisConfig
	JwtConfig      *JwtConfig
	JudgeConfig    *JudgeConfig
	GradingConfig  *GradingConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		PostgresConfig: NewPostgresConfig(),
		RedisConfig:    NewRedisConfig(),
		JwtConfig:      NewJwtConfig(),
		JudgeConfig:    NewJudgeConfig(),
		GradingConfig:  NewGradingConfig(),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
