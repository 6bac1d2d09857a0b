package main

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/reelrank/internal/business"
	"github.com/Agurato/reelrank/internal/infrastructure"
	"github.com/Agurato/reelrank/internal/service/server"
)

type config struct {
	DBPath       string `env:"DB_PATH" envDefault:"movies.db"`
	TMDBAPIKey   string `env:"TMDB_API_KEY,required"`
	CookieSecret string `env:"COOKIE_SECRET,required"`
	Port         string `env:"PORT" envDefault:"8080"`
}

func main() {
	godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Could not parse configuration")
	}

	db, err := infrastructure.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("Could not open the movie database")
	}
	defer db.Close()

	metadata, err := infrastructure.NewMetadataWrapper(cfg.TMDBAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize the TMDB client")
	}

	mm := business.NewMovieManager(db, metadata)
	movieHandler := server.NewMovieHandler(mm)

	srv := server.NewServer(cfg.CookieSecret, movieHandler)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
