package orders

import (
	"strings"
	"time"
)

// Layouts the server has been observed to send. Bare dates come from the
// expected-delivery endpoint; the rest carry full timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatDate renders a server timestamp for display. A bare YYYY-MM-DD date
// becomes DD/MM/YYYY; a full timestamp becomes "2 January 2006 15:04"; an
// unparseable value is returned unchanged rather than erroring, so a format
// drift on the server degrades to raw text instead of a broken screen.
func FormatDate(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	if d, err := time.Parse("2006-01-02", value); err == nil {
		return d.Format("02/01/2006")
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.Format("2 January 2006 15:04")
		}
	}

	return value
}
