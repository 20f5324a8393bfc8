package config

import (
	"os"

	"go.uber.org/zap"
)

const defaultMongoURI = "mongodb://localhost:27017"

type Config struct {
	MongoURI   string
	Database   string
	Collection string
	Port       string
}

// Load reads configuration from the environment. Falling back to the local
// MongoDB default is the one implicit behavior here, and it is logged.
func Load(logger *zap.Logger) *Config {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = defaultMongoURI
		logger.Warn("MONGODB_URI not set, using local default", zap.String("uri", uri))
	}

	return &Config{
		MongoURI:   uri,
		Database:   getEnv("MONGODB_DATABASE", "heritage_survey"),
		Collection: getEnv("MONGODB_COLLECTION", "heritages"),
		Port:       getEnv("PORT", "3000"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
