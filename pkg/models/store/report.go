package store

import "time"

type ReportRecord struct {
	ID          string
	Profile     string
	ReportType  string
	StartDate   time.Time
	EndDate     time.Time
	RetrievedAt time.Time
	// Payload is the report body as returned by the API, JSON encoded.
	Payload []byte
}
