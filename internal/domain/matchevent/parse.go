package matchevent

import (
	"math"
	"strconv"
	"strings"
)

// Bounds of a storable minute. The minimum is reserved as the unknown-minute
// sentinel of the natural key index.
const (
	minMinute = math.MinInt32 + 1
	maxMinute = math.MaxInt32
)

// ParseMinute sanitizes a minute field. Empty, non-numeric or out-of-range
// values give nil instead of an error; integral floats such as "12.0" are
// accepted.
func ParseMinute(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if value, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return minuteInRange(float64(value))
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	return minuteInRange(f)
}

func minuteInRange(f float64) *int {
	if f < minMinute || f > maxMinute {
		return nil
	}
	value := int(f)
	return &value
}

// ParseHomeFlag reads the source's localized home marker ("Sí", "Yes").
func ParseHomeFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sí", "si", "yes", "true":
		return true
	}
	return false
}
