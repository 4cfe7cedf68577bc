// File: cmd/covreport/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/coviduk/cov19api/models/covid"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type reportService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func newReportService(connStr string, log zerolog.Logger) (*reportService, error) {
	db, err := gorm.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	return &reportService{db: db, log: log}, nil
}

func (s *reportService) close() error {
	return s.db.Close()
}

// latestSnapshots reads the most recently archived fetches, newest first.
func (s *reportService) latestSnapshots(limit int) ([]covid.Snapshot, error) {
	rows, err := s.db.Raw(`
		SELECT id, captured_at, area_type, area_name, records, payload::text
		FROM covid_snapshots
		ORDER BY captured_at DESC
		LIMIT ?`, limit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []covid.Snapshot
	for rows.Next() {
		var snap covid.Snapshot
		if err := rows.Scan(&snap.ID, &snap.CapturedAt, &snap.AreaType, &snap.AreaName, &snap.Records, &snap.Payload); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stdout })).With().Timestamp().Caller().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, reading settings from the environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	limit := 10
	if raw := os.Getenv("COV_REPORT_LIMIT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			log.Fatal().Str("limit", raw).Msg("COV_REPORT_LIMIT is not a positive number")
		}
		limit = parsed
	}

	service, err := newReportService(dsn, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer service.close()

	snapshots, err := service.latestSnapshots(limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read snapshots")
	}
	if len(snapshots) == 0 {
		log.Info().Msg("No snapshots archived yet")
		return
	}

	fmt.Printf("%-36s  %-25s  %-10s  %-18s  %s\n", "ID", "CAPTURED", "AREA TYPE", "AREA NAME", "RECORDS")
	for _, snap := range snapshots {
		fmt.Printf("%-36s  %-25s  %-10s  %-18s  %d\n",
			snap.ID, snap.CapturedAt.Format(time.RFC3339), snap.AreaType, snap.AreaName, snap.Records)
	}

	var resp covid.Response
	if err := json.Unmarshal([]byte(snapshots[0].Payload), &resp); err != nil {
		log.Warn().Err(err).Msg("Newest snapshot payload is not a valid envelope")
		return
	}
	total := 0.0
	for _, rec := range resp.Data {
		if v, ok := rec["newCasesByPublishDate"].(float64); ok {
			total += v
		}
	}
	log.Info().Float64("newCases", total).Msg("Newest snapshot daily case total")
}
