// File: cmd/covstub/main.go
package main

import (
	"net/http"
	"os"

	"github.com/coviduk/cov19api/util"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stdout })).With().Timestamp().Caller().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, reading settings from the environment")
	}

	records := cannedRecords()
	if path := os.Getenv("COV_STUB_DATA"); path != "" {
		path, err := util.ResolvePath(path)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to resolve stub data path")
		}
		loaded, err := loadRecords(path)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load stub data")
		}
		records = loaded
		log.Info().Int("records", len(records)).Str("path", path).Msg("Loaded stub data")
	}

	addr := os.Getenv("COV_STUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	s := &stubServer{records: records, log: log}
	log.Info().Str("addr", addr).Msg("Stub dashboard API listening")
	if err := http.ListenAndServe(addr, s.routes()); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
