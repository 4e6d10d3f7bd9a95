package main

import (
	"context"
	"net/http"
	"os"

	"studylist/internal/logging"
	"studylist/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fallback := logging.New(logging.Config{})
		fallback.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})

	db, err := openDatabase(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	dataStore := store.New(db)

	if cfg.SeedDemoData {
		if err := seedDemoData(context.Background(), dataStore); err != nil {
			logger.Fatal().Err(err).Msg("seed demo data")
		}
	}

	handler := newHTTPHandler(cfg, dataStore, logger)

	logger.Info().Str("addr", cfg.Addr).Msg("API listening")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
