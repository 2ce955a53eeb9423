package models

import (
	"time"
)

// LogRecord is a single parsed event extracted from one input line.
type LogRecord struct {
	Timestamp time.Time
	Event     string
	IP        string
	Method    string
	Path      string
	Status    int
	UserAgent string
}

// Bucket is a fixed-width time interval identified by its start timestamp,
// holding the number of requests that fell into it.
type Bucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// TimeSeries is a sequence of buckets ordered ascending by start time,
// with no gaps and no duplicate keys.
type TimeSeries []Bucket

// Total returns the sum of all bucket counts.
func (ts TimeSeries) Total() int {
	total := 0
	for _, b := range ts {
		total += b.Count
	}
	return total
}

// Peak returns the bucket with the highest count. Ties resolve to the
// earliest bucket. The second return is false for an empty series.
func (ts TimeSeries) Peak() (Bucket, bool) {
	if len(ts) == 0 {
		return Bucket{}, false
	}
	peak := ts[0]
	for _, b := range ts[1:] {
		if b.Count > peak.Count {
			peak = b
		}
	}
	return peak, true
}

// ParseStats tallies per-line outcomes of a single run.
type ParseStats struct {
	LinesScanned int `json:"lines_scanned"`
	Parsed       int `json:"parsed"`
	Malformed    int `json:"malformed"`
}
