// Package repo holds the CSV-backed repositories, one per table. Every
// repository follows the same read-modify-write discipline: read the whole
// table, change it in memory, write the whole table back. There is no
// row-level API and no isolation across calls.
package repo

import "time"

const timeFormat = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
