package parser

import (
	"fmt"
	"time"
)

// accessTimeLayout matches the day-first timestamps written by the streaming
// frontends, e.g. "01/07/2025:06:00:02".
const accessTimeLayout = "02/01/2006:15:04:05"

// timestampLayouts are the layouts the plain format tries, in order, for the
// leading fields of a line.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05,000",
	"2006/01/02 15:04:05.000000",
	"2006/01/02 15:04:05",
	"02/Jan/2006:15:04:05 -0700", // nginx access logs
	"02/Jan/2006 15:04:05.000",
	"Jan _2 15:04:05", // syslog
	"Mon Jan _2 15:04:05 2006",
	time.RFC1123,
	"20060102150405",
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
