package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rchitlangi/cv-site/api/internal/config"
	"github.com/rchitlangi/cv-site/api/internal/observability"
	"github.com/rchitlangi/cv-site/api/internal/server"
)

func main() {
	cfg := config.MustLoad()
	logger := observability.InitLogger("cv-site-api", observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	var client *mongo.Client
	if cfg.Mongo.URI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
		clientOptions := options.Client().ApplyURI(cfg.Mongo.URI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
		c, err := mongo.Connect(ctx, clientOptions)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("MongoDB connection failed")
		}
		client = c
	}

	app, err := server.New(cfg, logger, client)
	if err != nil {
		logger.Fatal().Err(err).Msg("server setup failed")
	}
	if err := app.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
}
