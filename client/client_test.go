package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coviduk/cov19api/types"

	"github.com/rs/zerolog"
)

// newTestClient builds a client with a plain HTTP client so transport
// failures surface immediately instead of being retried away.
func newTestClient(endpoint string) *Cov19ApiClient {
	return NewCov19ApiClient(Config{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{},
	}, zerolog.Nop())
}

func asApiError(t *testing.T, err error) *types.ApiError {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	var apiErr *types.ApiError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an *types.ApiError", err)
	}
	return apiErr
}

func TestNewCov19ApiClientDefaults(t *testing.T) {
	c := NewCov19ApiClient(Config{}, zerolog.Nop())
	if c.BaseURI != Endpoint {
		t.Errorf("BaseURI = %q, want %q", c.BaseURI, Endpoint)
	}
	if c.HTTPClient == nil {
		t.Error("HTTPClient is nil")
	}
}

func TestSetFilterUnknownName(t *testing.T) {
	c := newTestClient(Endpoint)
	for _, name := range []string{"region", "filters", "Date", ""} {
		apiErr := asApiError(t, c.SetFilter(name, "x"))
		if apiErr.Kind != types.InvalidFilter {
			t.Errorf("SetFilter(%q) Kind = %s, want %s", name, apiErr.Kind, types.InvalidFilter)
		}
		if !strings.Contains(apiErr.Msg, "areaType, areaName, areaCode, date") {
			t.Errorf("message %q does not list the valid filter names", apiErr.Msg)
		}
	}
}

func TestSetFilterAreaType(t *testing.T) {
	c := newTestClient(Endpoint)

	for _, value := range types.AreaTypes() {
		if err := c.SetFilter("areaType", value); err != nil {
			t.Errorf("SetFilter(areaType, %q) = %v, want nil", value, err)
		}
	}

	for _, value := range []string{"country", "NATION", "nations", ""} {
		apiErr := asApiError(t, c.SetFilter("areaType", value))
		if apiErr.Kind != types.InvalidFilterValue {
			t.Errorf("SetFilter(areaType, %q) Kind = %s, want %s", value, apiErr.Kind, types.InvalidFilterValue)
		}
		if !strings.Contains(apiErr.Msg, "overview, nation, region, nhsRegion, utla, ltla") {
			t.Errorf("message %q does not list the valid area types", apiErr.Msg)
		}
	}
}

func TestSetFilterAreaNameUnrestricted(t *testing.T) {
	c := newTestClient(Endpoint)
	if err := c.SetFilter("areaName", "england"); err != nil {
		t.Errorf("SetFilter(areaName, england) = %v, want nil", err)
	}
	if err := c.SetFilter("areaCode", "E92000001"); err != nil {
		t.Errorf("SetFilter(areaCode, E92000001) = %v, want nil", err)
	}
}

func TestSetFilterDate(t *testing.T) {
	c := newTestClient(Endpoint)

	for _, value := range []string{"2020-09-12", "2020-1-3", "2020-12-31"} {
		if err := c.SetFilter("date", value); err != nil {
			t.Errorf("SetFilter(date, %q) = %v, want nil", value, err)
		}
	}

	for _, value := range []string{"12-09-2020", "2020-13-01", "2020-00-10", "yesterday", ""} {
		apiErr := asApiError(t, c.SetFilter("date", value))
		if apiErr.Kind != types.InvalidFilterValue {
			t.Errorf("SetFilter(date, %q) Kind = %s, want %s", value, apiErr.Kind, types.InvalidFilterValue)
		}
		if !strings.Contains(apiErr.Msg, "YYYY-MM-DD") {
			t.Errorf("message %q does not name the expected format", apiErr.Msg)
		}
	}
}

func TestSetFilterOverwrites(t *testing.T) {
	c := newTestClient(Endpoint)
	if err := c.SetFilter("areaType", "nation"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetFilter("areaType", "nation"); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(c.RequestURL(), "areaType="); got != 1 {
		t.Errorf("URL %q holds %d areaType pairs, want 1", c.RequestURL(), got)
	}

	if err := c.SetFilter("areaType", "region"); err != nil {
		t.Fatal(err)
	}
	uri := c.RequestURL()
	if !strings.Contains(uri, "areaType=region") || strings.Count(uri, "areaType=") != 1 {
		t.Errorf("URL %q, want a single areaType=region pair", uri)
	}
}

func TestSetStructure(t *testing.T) {
	c := newTestClient(Endpoint)

	for _, field := range types.StructureFields() {
		if err := c.SetStructure(field, ""); err != nil {
			t.Errorf("SetStructure(%q) = %v, want nil", field, err)
		}
	}
	c.Clear()

	apiErr := asApiError(t, c.SetStructure("totallyUnknownField", ""))
	if apiErr.Kind != types.InvalidStructure {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, types.InvalidStructure)
	}
	if !strings.Contains(apiErr.Msg, "maleCases") || !strings.Contains(apiErr.Msg, "newAdmissions") {
		t.Errorf("message %q does not list the valid structure fields", apiErr.Msg)
	}

	if err := c.SetStructure("maleCases", ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(c.RequestURL(), `"maleCases":"maleCases"`) {
		t.Errorf("URL %q lacks the defaulted alias", c.RequestURL())
	}

	if err := c.SetStructure("maleCases", "male"); err != nil {
		t.Fatal(err)
	}
	uri := c.RequestURL()
	if !strings.Contains(uri, `"maleCases":"male"`) || strings.Count(uri, `"maleCases"`) != 1 {
		t.Errorf("URL %q, want a single maleCases field aliased to male", uri)
	}
}

func TestClear(t *testing.T) {
	c := newTestClient(Endpoint)
	if err := c.SetFilter("areaType", "nation"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetStructure("maleCases", ""); err != nil {
		t.Fatal(err)
	}

	c.Clear()

	want := Endpoint + "&format=json&page=1"
	if got := c.RequestURL(); got != want {
		t.Errorf("URL after Clear = %q, want %q", got, want)
	}
}

func TestRequestURLRoundTrip(t *testing.T) {
	c := newTestClient(Endpoint)
	if err := c.SetFilter("areaType", "nation"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetFilter("areaName", "england"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetStructure("maleCases", ""); err != nil {
		t.Fatal(err)
	}

	uri := c.RequestURL()
	if !strings.HasPrefix(uri, Endpoint+"?filters=") {
		t.Errorf("URL %q does not start with the filters clause", uri)
	}
	if !strings.Contains(uri, "areaType=nation") || !strings.Contains(uri, "areaName=england") {
		t.Errorf("URL %q lacks a filters pair", uri)
	}
	if strings.Count(uri, ";") != 1 {
		t.Errorf("URL %q, want the two filters pairs joined by a single ;", uri)
	}
	if !strings.Contains(uri, `&structure={"maleCases":"maleCases"}`) {
		t.Errorf("URL %q lacks the structure clause", uri)
	}
	if !strings.HasSuffix(uri, "&format=json&page=1") {
		t.Errorf("URL %q does not end with the fixed suffix", uri)
	}
}

func TestSendRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "filters=areaType=nation") {
			t.Errorf("request query %q lacks the filters clause", r.URL.RawQuery)
		}
		if !strings.Contains(r.URL.RawQuery, `structure={"maleCases":"maleCases"}`) {
			t.Errorf("request query %q lacks the structure clause", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"length":1,"maxPageLimit":2500,"data":[{"maleCases":123}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if err := c.SetFilter("areaType", "nation"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetStructure("maleCases", ""); err != nil {
		t.Fatal(err)
	}

	body, err := c.SendRequest(context.Background())
	if err != nil {
		t.Fatalf("SendRequest returned error: %v", err)
	}
	if body["length"] != float64(1) {
		t.Errorf("length = %v, want 1", body["length"])
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("data = %v, want one record", body["data"])
	}
}

func TestSendRequestServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "upstream failure", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.SendRequest(context.Background())
	apiErr := asApiError(t, err)
	if apiErr.Kind != types.TransportError {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, types.TransportError)
	}
	if !strings.Contains(apiErr.Msg, "500") {
		t.Errorf("message %q does not name the status code", apiErr.Msg)
	}
	if attempts != 1 {
		t.Errorf("server saw %d attempts, want 1", attempts)
	}
}

func TestSendRequestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := newTestClient(server.URL)
	_, err := c.SendRequest(context.Background())
	apiErr := asApiError(t, err)
	if apiErr.Kind != types.TransportError {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, types.TransportError)
	}
	if apiErr.Unwrap() == nil {
		t.Error("transport error does not wrap the underlying cause")
	}
}

func TestSendRequestDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.SendRequest(context.Background())
	apiErr := asApiError(t, err)
	if apiErr.Kind != types.DecodeError {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, types.DecodeError)
	}
	if apiErr.Unwrap() == nil {
		t.Error("decode error does not wrap the underlying cause")
	}
}

func TestSendRequestEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.SendRequest(context.Background())
	apiErr := asApiError(t, err)
	if apiErr.Kind != types.DecodeError {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, types.DecodeError)
	}
}
