package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Thresholds holds the escalation cut-offs for each moderation level.
// Account counts blocked sibling profiles, not a stored counter.
type Thresholds struct {
	Post    int64
	Profile int64
	Account int64
}

type Config struct {
	Port        string
	AppEnv      string
	MongoURI    string
	MongoDB     string
	FrontendURL string

	// Shared secret for service tokens on internal routes
	// (ingest trigger, report audit listing).
	ServiceTokenSecret string

	// Optional Firebase service account for disabling suspended
	// accounts in the auth backend. Empty means Mongo status only.
	FirebaseServiceAccountPath string

	Thresholds Thresholds
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "gvone"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		ServiceTokenSecret:         getEnv("SERVICE_TOKEN_SECRET", "secret"),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT", ""),

		Thresholds: Thresholds{
			Post:    getEnvInt64("POST_BLOCK_THRESHOLD", 25),
			Profile: getEnvInt64("PROFILE_BLOCK_THRESHOLD", 10),
			Account: getEnvInt64("ACCOUNT_BLOCK_THRESHOLD", 5),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
