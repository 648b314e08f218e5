package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort            string
	Environment           string
	FirebaseProject       string
	FirebaseApiKey        string
	ServiceAccountJSON    string
	ServiceAccountPath    string
	StorageBucket         string
	PriorityApiUrl        string
	WatchFallbackSeconds  int64
	InlineImageLimitBytes int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		FirebaseProject:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:        getEnv("FIREBASE_API_KEY", ""),
		ServiceAccountJSON:    getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath:    getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", "./serviceAccountKey.json"),
		StorageBucket:         getEnv("STORAGE_BUCKET", ""),
		PriorityApiUrl:        getEnv("PRIORITY_API_URL", "http://localhost:8000/predict_priority"),
		WatchFallbackSeconds:  getEnvAsInt64("WATCH_FALLBACK_SECONDS", 5),
		InlineImageLimitBytes: getEnvAsInt64("INLINE_IMAGE_LIMIT_BYTES", 256*1024),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
