// Package schedule implements the resolution core of the shuttle board:
// building the default roster per day and direction, applying date-scoped
// reservation overrides on top of it, and joining the result against the
// day's scheduled stops to produce rendered lines.
//
// Everything in this package is a pure function of its inputs. Calling any
// function twice with identical inputs yields identical output, including
// name ordering.
package schedule

import (
	"strings"

	"github.com/dokim/shuttleboard/internal/domain"
)

// RosterEntry locates one person's default slot for a single direction.
// The resolver uses it to remove the person's default name when a
// reservation overrides or absents them.
type RosterEntry struct {
	Name  string
	Place string
}

// BuildRoster builds the place → ordered default rider names mapping for one
// day and direction, plus the inverse index personID → entry.
//
// Names keep input order; ties are broken by input order, never sorted.
// People with a blank trimmed name or no trimmed place assignment for the
// day/direction contribute nothing.
func BuildRoster(people []domain.Person, day domain.DayKey, dir domain.Direction) (map[string][]string, map[string]RosterEntry) {
	byPlace := map[string][]string{}
	index := map[string]RosterEntry{}

	for _, p := range people {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		place := strings.TrimSpace(p.Assign[day].Place(dir))
		if place == "" {
			continue
		}

		byPlace[place] = append(byPlace[place], name)
		if id := strings.TrimSpace(p.ID); id != "" {
			index[id] = RosterEntry{Name: name, Place: place}
		}
	}

	return byPlace, index
}
