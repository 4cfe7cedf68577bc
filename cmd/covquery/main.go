// File: cmd/covquery/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/coviduk/cov19api/client"
	"github.com/coviduk/cov19api/models/covid"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) { w.Out = os.Stdout })).With().Timestamp().Caller().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, reading settings from the environment")
	}

	c := client.NewCov19ApiClient(client.Config{
		Endpoint: os.Getenv("COV_ENDPOINT"),
	}, log)

	filters := map[string]string{
		"areaType": os.Getenv("COV_AREA_TYPE"),
		"areaName": os.Getenv("COV_AREA_NAME"),
		"areaCode": os.Getenv("COV_AREA_CODE"),
		"date":     os.Getenv("COV_DATE"),
	}
	anySet := false
	for name, value := range filters {
		if value == "" {
			continue
		}
		anySet = true
		if err := c.SetFilter(name, value); err != nil {
			log.Fatal().Err(err).Msg("Failed to set filter")
		}
	}
	if !anySet {
		for name, value := range map[string]string{"areaType": "nation", "areaName": "england"} {
			if err := c.SetFilter(name, value); err != nil {
				log.Fatal().Err(err).Msg("Failed to set filter")
			}
		}
	}

	fields := os.Getenv("COV_FIELDS")
	if fields == "" {
		fields = "areaName,date,newCasesByPublishDate,cumCasesByPublishDate"
	}
	for _, entry := range strings.Split(fields, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		field, alias := parts[0], ""
		if len(parts) == 2 {
			alias = parts[1]
		}
		if err := c.SetStructure(field, alias); err != nil {
			log.Fatal().Err(err).Msg("Failed to set structure field")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	log.Info().Str("url", c.RequestURL()).Msg("Requesting dashboard data")

	body, err := c.SendRequest(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Request failed")
	}

	resp, err := covid.DecodeResponse(body)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode response envelope")
	}
	log.Info().Int("records", len(resp.Data)).Msg("Received records")

	out, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal response")
	}
	fmt.Println(string(out))
}
