package shared

import "time"

// DateKeyLayout is the canonical layout for warehouse date keys.
// Date keys are stored as ISO strings so that upsert conflict targets compare
// identically across database drivers.
const DateKeyLayout = "2006-01-02"

// DateKeyOf returns the date key for the given instant in UTC.
func DateKeyOf(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// ParseDateKey parses a date key back into a UTC midnight time.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// DateKeysBetween returns every date key from start to end inclusive.
// Returns nil when start is after end.
func DateKeysBetween(start, end time.Time) []string {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC().Truncate(24 * time.Hour)
	if start.After(end) {
		return nil
	}
	var keys []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(DateKeyLayout))
	}
	return keys
}
