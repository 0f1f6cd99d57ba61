// Command seed fills the contact event audit log with synthetic records so the
// admin API can be exercised locally.
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodoc "github.com/rchitlangi/cv-site/api/internal/infrastructure/mongo"
)

type seedOptions struct {
	envFile         string
	eventCount      int
	days            int
	dropCollections bool
	randomSeed      int64
}

type seedConfig struct {
	MongoURI   string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB" env-default:"cv-site"`
	Collection string `env:"CONTACT_EVENT_COLLECTION" env-default:"contact_events"`
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	opts := parseFlags()

	var cfg seedConfig
	var err error
	if opts.envFile != "" {
		err = cleanenv.ReadConfig(opts.envFile, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read seed configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("MongoDB connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.Database)
	if opts.dropCollections {
		if err := db.Collection(cfg.Collection).Drop(ctx); err != nil {
			log.Warn().Err(err).Str("collection", cfg.Collection).Msg("drop failed")
		}
	}

	repo := mongodoc.NewContactEventRepository(db, cfg.Collection)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	span := time.Duration(opts.days) * 24 * time.Hour
	events := generateEvents(rng, opts.eventCount, time.Now(), span)
	for _, event := range events {
		if err := repo.Insert(ctx, event); err != nil {
			log.Fatal().Err(err).Msg("contact event insert failed")
		}
	}

	log.Info().
		Int("events", len(events)).
		Str("database", cfg.Database).
		Str("collection", cfg.Collection).
		Int64("seed", opts.randomSeed).
		Msg("seed completed")
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envFile, "env", "", "optional .env/yaml/toml file with MONGO_* settings")
	flag.IntVar(&opts.eventCount, "events", 200, "number of contact events to generate")
	flag.IntVar(&opts.days, "days", 30, "spread events over this many past days")
	flag.BoolVar(&opts.dropCollections, "drop", false, "drop the collection before seeding")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed for reproducible data")
	flag.Parse()

	if opts.eventCount <= 0 {
		log.Fatal().Msg("events must be at least 1")
	}
	if opts.days <= 0 {
		opts.days = 1
	}
	return opts
}
