// Package csvutil serializes flat export records the exact way the
// legacy exporter did. encoding/csv is deliberately not used: the legacy
// format quotes every data cell (doubling inner quotes) while leaving
// the header row unquoted, and emits no trailing newline.
package csvutil

import (
	"strings"

	"github.com/eac-lab/film-archive/internal/models"
)

// Serialize renders records as CSV text. When headers is nil the header
// row is derived from the key set of the first record only; later
// records may carry columns the header does not reflect. That policy is
// intentional and pinned by tests.
func Serialize(records []models.ExportRecord, headers []string) string {
	if headers == nil {
		if len(records) > 0 {
			headers = records[0].Keys()
		} else {
			headers = []string{}
		}
	}

	rows := make([]string, 0, len(records)+1)
	rows = append(rows, strings.Join(headers, ","))

	cells := make([]string, len(headers))
	for _, record := range records {
		for i, key := range headers {
			cells[i] = quote(record.Get(key))
		}
		rows = append(rows, strings.Join(cells, ","))
	}

	return strings.Join(rows, "\n")
}

// quote wraps a value in double quotes, doubling any literal quote,
// whether or not quoting is strictly necessary.
func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
