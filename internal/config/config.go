package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	KafkaAddress  string
	ESURL         string
	ESUser        string
	ESPassword    string
	JWTSecret     string
	SessionTTL    time.Duration
	LogLevel      string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		Port:         getDefault("PORT", "3000"),
		MongoURI:     getDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getDefault("MONGO_DB", "villagecraft"),
		RedisAddr:    getDefault("REDIS_ADDR", "localhost:6379"),
		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),
		ESURL:        os.Getenv("ES_URL"),
		ESUser:       os.Getenv("ES_USER"),
		ESPassword:   os.Getenv("ES_PASSWORD"),
		JWTSecret:    getDefault("JWT_SECRET", "your-secret-key"),
		SessionTTL:   sessionTTL(),
		LogLevel:     getDefault("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// Sessions live for a fixed absolute lifetime, 24h unless overridden.
func sessionTTL() time.Duration {
	hours := 24
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}
	return time.Duration(hours) * time.Hour
}
