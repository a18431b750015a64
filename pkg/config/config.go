package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	FirebaseCredentialsPath string
	JWTSecret               string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	env := getEnv("ENV", "development")

	// The signing secret only has a fallback in development. Anywhere else
	// a missing secret must stop the process, not silently sign sessions
	// with a known value.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		if env != "development" {
			return nil, fmt.Errorf("JWT_SECRET environment variable not set")
		}
		jwtSecret = "supersecretjwtkey"
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     env,
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		JWTSecret:               jwtSecret,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
