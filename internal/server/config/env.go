package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from the process environment. A .env file
// in the working directory is loaded first if present; real environment
// variables win over .env values (godotenv does not override existing keys).
//
// Recognized variables:
//
//	ADDRESS        bind address (e.g. ":3000")
//	PORT           shorthand for ADDRESS=":<port>", ignored when ADDRESS is set
//	DATABASE_URL   PostgreSQL DSN
//	JWT_SECRET     token signing secret
//	TOKEN_TTL      access token validity as a Go duration ("1h")
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	} else if v := os.Getenv("PORT"); v != "" {
		config.EndpointAddr = ":" + v
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseDSN = v
	}

	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
}
