package covid

import "testing"

func TestDecodeResponse(t *testing.T) {
	next := "/v1/data?page=2"
	raw := map[string]any{
		"length":       float64(2),
		"maxPageLimit": float64(1000),
		"data": []any{
			map[string]any{"areaName": "England", "maleCases": float64(100)},
			map[string]any{"areaName": "England", "maleCases": float64(95)},
		},
		"pagination": map[string]any{
			"current": "/v1/data?page=1",
			"next":    next,
			"first":   "/v1/data?page=1",
			"last":    "/v1/data?page=2",
		},
	}

	resp, err := DecodeResponse(raw)
	if err != nil {
		t.Fatalf("DecodeResponse returned error: %v", err)
	}
	if resp.Length != 2 {
		t.Errorf("Length = %d, want 2", resp.Length)
	}
	if resp.MaxPageLimit != 1000 {
		t.Errorf("MaxPageLimit = %d, want 1000", resp.MaxPageLimit)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(resp.Data))
	}
	if got := resp.Data[0]["areaName"]; got != "England" {
		t.Errorf("Data[0].areaName = %v, want England", got)
	}
	if resp.Pagination == nil {
		t.Fatal("Pagination is nil")
	}
	if resp.Pagination.Next == nil || *resp.Pagination.Next != next {
		t.Errorf("Pagination.Next = %v, want %q", resp.Pagination.Next, next)
	}
	if resp.Pagination.Previous != nil {
		t.Errorf("Pagination.Previous = %v, want nil", resp.Pagination.Previous)
	}
}

func TestDecodeResponseEmpty(t *testing.T) {
	resp, err := DecodeResponse(map[string]any{"length": float64(0), "data": []any{}})
	if err != nil {
		t.Fatalf("DecodeResponse returned error: %v", err)
	}
	if resp.Length != 0 || len(resp.Data) != 0 {
		t.Errorf("empty envelope decoded to %+v", resp)
	}
	if resp.Pagination != nil {
		t.Errorf("Pagination = %+v, want nil", resp.Pagination)
	}
}
