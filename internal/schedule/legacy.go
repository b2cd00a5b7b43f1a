package schedule

import (
	"sort"
	"strings"

	"github.com/dokim/shuttleboard/internal/domain"
)

// LinesFromDayEntries builds both directions' lines from the legacy days
// encoding, where each entry is already a merged line with comma-separated
// names and a place string that may embed "HH:MM [place]".
//
// Entries with a blank id, an unknown kind, no decodable place, or no names
// are dropped. Reservations never apply to the legacy structure.
func LinesFromDayEntries(entries []domain.DayEntry, day domain.DayKey, done domain.DoneMap) domain.DaySet {
	set := domain.DaySet{Pickup: []domain.Line{}, Dropoff: []domain.Line{}}

	for _, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			continue
		}
		dir := domain.Direction(strings.TrimSpace(e.Kind))
		if !dir.Valid() {
			continue
		}
		timeStr, place := domain.ParseLegacyPlace(e.Place)
		if place == "" {
			continue
		}
		names := domain.SplitNames(e.Names)
		if len(names) == 0 {
			continue
		}

		key := domain.MakeLineKey(dir, day, id)
		_, isDone := done[key]
		line := domain.Line{
			LineKey:   key,
			Direction: dir,
			Time:      timeStr,
			Place:     place,
			Names:     names,
			Done:      isDone,
		}

		if dir == domain.Pickup {
			set.Pickup = append(set.Pickup, line)
		} else {
			set.Dropoff = append(set.Dropoff, line)
		}
	}

	sortByTime(set.Pickup)
	sortByTime(set.Dropoff)
	return set
}

func sortByTime(lines []domain.Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		return domain.SortTime(lines[i].Time) < domain.SortTime(lines[j].Time)
	})
}
