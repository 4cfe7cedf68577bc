// File: models/covid/snapshot.go
package covid

import "time"

// Snapshot is one archived fetch of the data endpoint, stored with the
// filters that produced it and the raw envelope payload. Payload is the
// JSON text of the envelope; a string survives the trip into a jsonb
// column, raw bytes do not.
type Snapshot struct {
	ID         string    `db:"id" json:"id"`
	CapturedAt time.Time `db:"captured_at" json:"capturedAt"`
	AreaType   string    `db:"area_type" json:"areaType"`
	AreaName   string    `db:"area_name" json:"areaName"`
	Records    int       `db:"records" json:"records"`
	Payload    string    `db:"payload" json:"payload"`
}
