package domain

import "time"

// ReportEntry is a previously retrieved report kept in the local store.
type ReportEntry struct {
	ID          string
	Profile     string
	ReportType  string
	StartDate   time.Time
	EndDate     time.Time
	RetrievedAt time.Time
	Report      *Report
}
