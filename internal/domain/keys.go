package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// TimePlaceholder marks a stop with no usable "HH:MM" time. It is rendered
// as-is and compared as timeSentinel when sorting lines.
const TimePlaceholder = "—"

// timeSentinel sorts placeholder/missing times after every real "HH:MM".
// Comparison only, never stored.
const timeSentinel = "99:99"

// MakeLineKey builds the composite key identifying one rendered line:
// "direction:dayKey:stopID". The format is stable because persisted done
// marks are keyed by it.
func MakeLineKey(dir Direction, day DayKey, stopID string) string {
	return string(dir) + ":" + string(day) + ":" + stopID
}

// ParseLineKey splits a composite line key back into its parts.
// Returns ErrValidation when the key does not have the expected shape.
// The stop ID may itself contain colons, so only the first two separators
// are structural.
func ParseLineKey(key string) (Direction, DayKey, string, error) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("%w: malformed line key %q", ErrValidation, key)
	}
	dir, day, stopID := Direction(parts[0]), DayKey(parts[1]), parts[2]
	if !dir.Valid() || !day.Valid() || stopID == "" {
		return "", "", "", fmt.Errorf("%w: malformed line key %q", ErrValidation, key)
	}
	return dir, day, stopID, nil
}

// legacyPlaceRe matches the legacy "HH:MM [place]" encoding used by the
// days structure, e.g. "8:30 [Oak St]".
var legacyPlaceRe = regexp.MustCompile(`^(\d{1,2}:\d{2})\s*\[(.+?)\]\s*$`)

// ParseLegacyPlace decodes a legacy place string. A string matching
// "HH:MM [place]" yields the embedded time and inner place; anything else
// yields the placeholder time and the whole trimmed string as the place.
// A blank input yields two empty strings.
func ParseLegacyPlace(raw string) (timeStr, place string) {
	s := trim(raw)
	if s == "" {
		return "", ""
	}
	if m := legacyPlaceRe.FindStringSubmatch(s); m != nil {
		return m[1], m[2]
	}
	return TimePlaceholder, s
}

// SplitNames splits a comma-separated name list, trimming each entry and
// dropping blanks.
func SplitNames(raw string) []string {
	s := trim(raw)
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := trim(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SortTime returns the value used when ordering lines by time: real times
// compare as themselves, placeholder or missing times compare last.
func SortTime(t string) string {
	if t == "" || t == TimePlaceholder {
		return timeSentinel
	}
	return t
}

func trim(s string) string { return strings.TrimSpace(s) }
