// File: cmd/covarchive/main.go
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/coviduk/cov19api/client"
	"github.com/coviduk/cov19api/models/covid"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS covid_snapshots (
	id uuid PRIMARY KEY,
	captured_at timestamptz NOT NULL,
	area_type text NOT NULL,
	area_name text NOT NULL,
	records integer NOT NULL,
	payload jsonb NOT NULL
)`

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stdout })).With().Timestamp().Caller().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, reading settings from the environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	areaType := os.Getenv("COV_AREA_TYPE")
	if areaType == "" {
		areaType = "nation"
	}
	areaName := os.Getenv("COV_AREA_NAME")
	if areaName == "" {
		areaName = "england"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure the snapshots table")
	}

	c := client.NewCov19ApiClient(client.Config{Endpoint: os.Getenv("COV_ENDPOINT")}, log)
	for name, value := range map[string]string{"areaType": areaType, "areaName": areaName} {
		if err := c.SetFilter(name, value); err != nil {
			log.Fatal().Err(err).Msg("Failed to set filter")
		}
	}
	for _, field := range []string{"areaName", "date", "newCasesByPublishDate", "newDeaths28DaysByPublishDate"} {
		if err := c.SetStructure(field, ""); err != nil {
			log.Fatal().Err(err).Msg("Failed to set structure field")
		}
	}

	body, err := c.SendRequest(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Request failed")
	}

	resp, err := covid.DecodeResponse(body)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode response envelope")
	}

	payload, err := json.Marshal(body)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal payload")
	}

	snapshot := covid.Snapshot{
		ID:         uuid.New().String(),
		CapturedAt: time.Now().UTC(),
		AreaType:   areaType,
		AreaName:   areaName,
		Records:    len(resp.Data),
		Payload:    string(payload),
	}

	if _, err := db.NamedExecContext(ctx, `
		INSERT INTO covid_snapshots (id, captured_at, area_type, area_name, records, payload)
		VALUES (:id, :captured_at, :area_type, :area_name, :records, :payload)`, snapshot); err != nil {
		log.Fatal().Err(err).Msg("Failed to insert snapshot")
	}

	log.Info().Str("id", snapshot.ID).Int("records", snapshot.Records).Msg("Archived snapshot")
}
