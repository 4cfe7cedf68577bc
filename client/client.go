// File: client/client.go
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coviduk/cov19api/internal/utils"
	"github.com/coviduk/cov19api/types"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Endpoint is the base URL of the Coronavirus (COVID-19) Dashboard API.
//
// Coronavirus (COVID-19) in the UK: https://coronavirus.data.gov.uk/
const Endpoint = "https://api.coronavirus.data.gov.uk/v1/data"

// Config controls how the client reaches the dashboard API. The zero value
// selects the public endpoint behind a retrying HTTP client.
type Config struct {
	// Endpoint overrides the base URL, e.g. for a local stub.
	Endpoint string
	// HTTPClient replaces the built-in retrying client entirely. Timeout
	// and RetryMax are ignored when it is set.
	HTTPClient *http.Client
	// Timeout bounds each attempt. Defaults to 30 seconds.
	Timeout time.Duration
	// RetryMax caps the retries of the built-in client. Defaults to 3.
	RetryMax int
}

// Cov19ApiClient accumulates filters and structure fields and issues the
// resulting query against the dashboard API. It is not safe for concurrent
// mutation; use one client per goroutine.
type Cov19ApiClient struct {
	BaseURI    string
	HTTPClient *http.Client

	filters   map[string]string
	structure map[string]string
	log       zerolog.Logger
}

func NewCov19ApiClient(config Config, log zerolog.Logger) *Cov19ApiClient {
	if config.Endpoint == "" {
		config.Endpoint = Endpoint
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryMax == 0 {
		config.RetryMax = 3
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		retryClient := retryablehttp.NewClient()
		retryClient.RetryMax = config.RetryMax
		retryClient.Logger = nil
		retryClient.HTTPClient = &http.Client{
			Timeout: config.Timeout,
		}
		httpClient = retryClient.StandardClient()
	}

	return &Cov19ApiClient{
		BaseURI:    config.Endpoint,
		HTTPClient: httpClient,
		filters:    make(map[string]string),
		structure:  make(map[string]string),
		log:        log,
	}
}

// SetFilter validates and records a single filters pair. Setting the same
// name again overwrites the earlier value.
func (c *Cov19ApiClient) SetFilter(name, value string) error {
	if !types.IsValidFilter(name) {
		msg := fmt.Sprintf("invalid filter name %q, needs to be one of: %s",
			name, strings.Join(types.Filters(), ", "))
		c.log.Warn().Str("filter", name).Msg(msg)
		return &types.ApiError{Kind: types.InvalidFilter, Msg: msg}
	}
	if name == "areaType" && !types.IsValidAreaType(value) {
		msg := fmt.Sprintf("invalid area type %q, needs to be one of: %s",
			value, strings.Join(types.AreaTypes(), ", "))
		c.log.Warn().Str("areaType", value).Msg(msg)
		return &types.ApiError{Kind: types.InvalidFilterValue, Msg: msg}
	}
	if name == "date" && !types.IsValidDate(value) {
		msg := fmt.Sprintf("invalid date %q, needs to be in the format YYYY-MM-DD", value)
		c.log.Warn().Str("date", value).Msg(msg)
		return &types.ApiError{Kind: types.InvalidFilterValue, Msg: msg}
	}
	c.filters[name] = value
	return nil
}

// SetStructure validates and records a single structure field. An empty
// alias keeps the field name as the response key. Setting the same field
// again overwrites the earlier alias.
func (c *Cov19ApiClient) SetStructure(field, alias string) error {
	if !types.IsValidStructureField(field) {
		msg := fmt.Sprintf("invalid structure field %q, needs to be one of: %s",
			field, strings.Join(types.StructureFields(), ", "))
		c.log.Warn().Str("field", field).Msg(msg)
		return &types.ApiError{Kind: types.InvalidStructure, Msg: msg}
	}
	if alias == "" {
		alias = field
	}
	c.structure[field] = alias
	return nil
}

// Clear empties the accumulated filters and structure. The HTTP client is
// untouched, so the instance can be reused for a fresh query.
func (c *Cov19ApiClient) Clear() {
	c.filters = make(map[string]string)
	c.structure = make(map[string]string)
}

// RequestURL serializes the accumulated filters and structure into the
// query URL the dashboard expects.
func (c *Cov19ApiClient) RequestURL() string {
	return utils.BuildRequestURL(c.BaseURI, c.filters, c.structure)
}

// SendRequest issues the accumulated query and returns the decoded response
// body. The body is passed through as-is; no schema is enforced against the
// requested structure fields.
func (c *Cov19ApiClient) SendRequest(ctx context.Context) (map[string]any, error) {
	uri := c.RequestURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, &types.ApiError{
			Kind: types.TransportError,
			Msg:  fmt.Sprintf("failed to create request for %s", uri),
			Err:  err,
		}
	}
	req.Header.Set("Accept", "application/json; charset=utf-8")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("url", uri).Msg("Failed to send request")
		return nil, &types.ApiError{
			Kind: types.TransportError,
			Msg:  fmt.Sprintf("failed to send request to %s", uri),
			Err:  err,
		}
	}
	defer resp.Body.Close()

	c.log.Debug().Str("url", uri).Str("status", resp.Status).Msg("Received response")

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.ApiError{
			Kind: types.TransportError,
			Msg:  fmt.Sprintf("failed to read response body from %s", uri),
			Err:  err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &types.ApiError{
			Kind: types.TransportError,
			Msg: fmt.Sprintf("server returned error status %d: %s\nBody: %s",
				resp.StatusCode, resp.Status, string(bodyBytes)),
		}
	}

	var body map[string]any
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return nil, &types.ApiError{
			Kind: types.DecodeError,
			Msg:  fmt.Sprintf("failed to parse response JSON\nBody: %s", string(bodyBytes)),
			Err:  err,
		}
	}
	return body, nil
}
