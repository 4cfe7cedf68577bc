// File: cmd/covstub/stub.go
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/coviduk/cov19api/models/covid"
	"github.com/coviduk/cov19api/types"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type record = map[string]any

type stubServer struct {
	records []record
	log     zerolog.Logger
}

func (s *stubServer) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/data", s.getData).Methods("GET")
	return r
}

func (s *stubServer) getData(w http.ResponseWriter, r *http.Request) {
	params := parseQuery(r.URL.RawQuery)

	if format, ok := params["format"]; ok && !strings.EqualFold(format, "json") {
		s.badRequest(w, fmt.Sprintf("unsupported format %q", format))
		return
	}

	page := 1
	if raw, ok := params["page"]; ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.badRequest(w, fmt.Sprintf("invalid page %q", raw))
			return
		}
		page = parsed
	}

	filters, err := parseFilters(params["filters"])
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	structure, err := parseStructure(params["structure"])
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	data := make([]record, 0)
	if page == 1 {
		for _, rec := range s.records {
			if matches(rec, filters) {
				data = append(data, project(rec, structure))
			}
		}
	}

	s.log.Info().Str("query", r.URL.RawQuery).Int("records", len(data)).Msg("Serving canned data")

	resp := covid.Response{
		Length:       len(data),
		MaxPageLimit: 2500,
		Data:         data,
		Pagination: &covid.Pagination{
			Current: "/v1/data?page=1",
			First:   "/v1/data?page=1",
			Last:    "/v1/data?page=1",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *stubServer) badRequest(w http.ResponseWriter, msg string) {
	s.log.Warn().Str("reason", msg).Msg("Rejecting request")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// parseQuery splits a raw query on & only. The filters clause carries
// ;-separated pairs inside a single value, which net/url rejects as a
// query separator.
func parseQuery(raw string) map[string]string {
	params := make(map[string]string)
	for _, segment := range strings.Split(raw, "&") {
		if segment == "" {
			continue
		}
		parts := strings.SplitN(segment, "=", 2)
		if len(parts) != 2 {
			continue
		}
		if value, err := url.QueryUnescape(parts[1]); err == nil {
			parts[1] = value
		}
		params[parts[0]] = parts[1]
	}
	return params
}

func parseFilters(clause string) (map[string]string, error) {
	filters := make(map[string]string)
	if clause == "" {
		return filters, nil
	}
	for _, pair := range strings.Split(clause, ";") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("malformed filters pair %q", pair)
		}
		name, value := parts[0], parts[1]
		if !types.IsValidFilter(name) {
			return nil, fmt.Errorf("invalid filter name %q", name)
		}
		if name == "areaType" && !types.IsValidAreaType(value) {
			return nil, fmt.Errorf("invalid area type %q", value)
		}
		if name == "date" {
			if err := types.ValidateDate(value); err != nil {
				return nil, err
			}
		}
		filters[name] = value
	}
	return filters, nil
}

func parseStructure(clause string) (map[string]string, error) {
	if clause == "" {
		return nil, nil
	}
	var structure map[string]string
	if err := json.Unmarshal([]byte(clause), &structure); err != nil {
		return nil, fmt.Errorf("malformed structure %q", clause)
	}
	for field := range structure {
		if !types.IsValidStructureField(field) {
			return nil, fmt.Errorf("invalid structure field %q", field)
		}
	}
	return structure, nil
}

// matches applies the filters to one record. Area names compare
// case-insensitively, everything else exactly.
func matches(rec record, filters map[string]string) bool {
	for name, want := range filters {
		got, _ := rec[name].(string)
		if name == "areaName" {
			if !strings.EqualFold(got, want) {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return true
}

// project shapes one record after the requested structure, renaming fields
// to their aliases. Requested fields the record lacks come back as null.
func project(rec record, structure map[string]string) record {
	if len(structure) == 0 {
		return rec
	}
	out := make(record, len(structure))
	for field, alias := range structure {
		out[alias] = rec[field]
	}
	return out
}

func loadRecords(path string) ([]record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stub data file: %w", err)
	}
	defer file.Close()

	var records []record
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode stub data file: %w", err)
	}
	return records, nil
}

func day(areaType, areaName, areaCode, date string, newCases, cumCases, newDeaths, cumDeaths, hospitalCases int) record {
	return record{
		"areaType":                     areaType,
		"areaName":                     areaName,
		"areaCode":                     areaCode,
		"date":                         date,
		"hash":                         areaCode + "-" + date,
		"newCasesByPublishDate":        newCases,
		"cumCasesByPublishDate":        cumCases,
		"newDeaths28DaysByPublishDate": newDeaths,
		"cumDeaths28DaysByPublishDate": cumDeaths,
		"hospitalCases":                hospitalCases,
	}
}

func cannedRecords() []record {
	return []record{
		day("overview", "United Kingdom", "K02000001", "2020-09-11", 3344, 412126, 10, 41608, 864),
		day("overview", "United Kingdom", "K02000001", "2020-09-12", 3613, 415739, 11, 41619, 884),
		day("nation", "England", "E92000001", "2020-09-11", 2919, 361677, 9, 36961, 536),
		day("nation", "England", "E92000001", "2020-09-12", 3123, 364800, 9, 36970, 554),
		day("nation", "Scotland", "S92000003", "2020-09-11", 221, 22435, 1, 2496, 262),
		day("nation", "Scotland", "S92000003", "2020-09-12", 244, 22679, 0, 2496, 258),
		day("nation", "Wales", "W92000004", "2020-09-11", 98, 19573, 0, 1597, 43),
		day("nation", "Wales", "W92000004", "2020-09-12", 159, 19732, 1, 1598, 45),
		day("nation", "Northern Ireland", "N92000002", "2020-09-11", 106, 8441, 0, 568, 23),
		day("nation", "Northern Ireland", "N92000002", "2020-09-12", 87, 8528, 1, 569, 24),
	}
}
