// File: models/covid/response.go
package covid

import (
	"encoding/json"
	"fmt"
)

// Pagination carries the page links the API returns alongside the data.
// Next and Previous are null on the first and last page.
type Pagination struct {
	Current  string  `json:"current"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	First    string  `json:"first"`
	Last     string  `json:"last"`
}

// Response is the envelope returned by the data endpoint. Data holds one
// record per area/date combination, shaped by the requested structure.
type Response struct {
	Length       int              `json:"length"`
	MaxPageLimit int              `json:"maxPageLimit"`
	Data         []map[string]any `json:"data"`
	Pagination   *Pagination      `json:"pagination,omitempty"`
}

// DecodeResponse converts a raw decoded body into a typed Response.
func DecodeResponse(raw map[string]any) (*Response, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response body: %w", err)
	}
	var resp Response
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response body: %w", err)
	}
	return &resp, nil
}
