package main

import (
	"net/http"

	"heritage-survey/api"
	"heritage-survey/config"
	"heritage-survey/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}

	cfg := config.Load(logger)

	mongodb := &storage.MongoHeritageDB{Log: logger}
	if err := mongodb.Connect(cfg.MongoURI, cfg.Database, cfg.Collection); err != nil {
		// Keep serving: requests fail with a storage error until the store
		// comes back, and the driver reconnects on its own.
		logger.Error("MongoDB connection failed at startup", zap.Error(err))
	}
	defer mongodb.Close()

	handlers := &api.HeritageHandlers{
		Db:  mongodb,
		Log: logger,
	}

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, handlers.Routes()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
