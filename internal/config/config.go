package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	DBSource      string
	Port          string
	Env           string
	PlatformOwner string
	FeeRateBps    uint64
}

func Load() (*Config, error) {
	dbSource := os.Getenv("DB_SOURCE")
	if dbSource == "" {
		return nil, fmt.Errorf("DB_SOURCE environment variable is required")
	}

	owner := os.Getenv("PLATFORM_OWNER")
	if owner == "" {
		return nil, fmt.Errorf("PLATFORM_OWNER environment variable is required")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	feeRate := uint64(250) // 2.5% default
	if raw := os.Getenv("PLATFORM_FEE_BPS"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid PLATFORM_FEE_BPS: %w", err)
		}
		if parsed > 1000 {
			return nil, fmt.Errorf("PLATFORM_FEE_BPS must be at most 1000, got %d", parsed)
		}
		feeRate = parsed
	}

	return &Config{
		DBSource:      dbSource,
		Port:          port,
		Env:           env,
		PlatformOwner: owner,
		FeeRateBps:    feeRate,
	}, nil
}
