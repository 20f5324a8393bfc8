package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MONGODB_URI", "MONGODB_DATABASE", "MONGODB_COLLECTION", "PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	core, logs := observer.New(zap.WarnLevel)
	cfg := Load(zap.New(core))

	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "heritage_survey", cfg.Database)
	assert.Equal(t, "heritages", cfg.Collection)
	assert.Equal(t, "3000", cfg.Port)

	// Falling back to the local store default is warned about.
	assert.Equal(t, 1, logs.FilterMessage("MONGODB_URI not set, using local default").Len())
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db.example.com:27017")
	t.Setenv("MONGODB_DATABASE", "survey2026")
	t.Setenv("MONGODB_COLLECTION", "buildings")
	t.Setenv("PORT", "8090")

	core, logs := observer.New(zap.WarnLevel)
	cfg := Load(zap.New(core))

	assert.Equal(t, "mongodb://db.example.com:27017", cfg.MongoURI)
	assert.Equal(t, "survey2026", cfg.Database)
	assert.Equal(t, "buildings", cfg.Collection)
	assert.Equal(t, "8090", cfg.Port)
	assert.Zero(t, logs.Len())
}
