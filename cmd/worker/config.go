package main

import (
	"log"
	"strconv"

	"github.com/aHaldin/pickmyartist/internal/shared/utils"
)

// Config holds worker-specific configuration.
type Config struct {
	RedisAddr            string
	EnquiryRetentionDays int
}

// loadConfig loads configuration from environment variables.
func loadConfig() *Config {
	retentionDays := 365
	if v := utils.GetEnvVariable("ENQUIRY_RETENTION_DAYS", ""); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			retentionDays = days
		}
	}

	cfg := &Config{
		RedisAddr:            utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		EnquiryRetentionDays: retentionDays,
	}

	log.Printf("[Config] Redis: %s, Enquiry retention: %d days",
		cfg.RedisAddr, cfg.EnquiryRetentionDays)

	return cfg
}
