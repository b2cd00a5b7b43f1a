package schedule

import (
	"sort"
	"strings"

	"github.com/dokim/shuttleboard/internal/domain"
)

// BuildLines joins the day's ordered stops against the resolved
// place → names mapping for one direction.
//
// A stop produces no line when its id or place is blank or when no rider
// resolves to its place — a line never carries an empty names list. Output
// is sorted by time ascending (lexical), placeholder/missing times last,
// stable for equal times.
func BuildLines(stops []domain.Stop, namesByPlace map[string][]string, reservedPlaces map[string]bool, done domain.DoneMap, dir domain.Direction, day domain.DayKey) []domain.Line {
	var out []domain.Line

	for _, s := range stops {
		id := strings.TrimSpace(s.ID)
		place := strings.TrimSpace(s.Place)
		if id == "" || place == "" {
			continue
		}
		names := namesByPlace[place]
		if len(names) == 0 {
			continue
		}

		key := domain.MakeLineKey(dir, day, id)
		_, isDone := done[key]

		out = append(out, domain.Line{
			LineKey:        key,
			Direction:      dir,
			Time:           s.Time,
			Place:          place,
			Names:          append([]string(nil), names...),
			Done:           isDone,
			HasReservation: reservedPlaces[place],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return domain.SortTime(out[i].Time) < domain.SortTime(out[j].Time)
	})
	return out
}

// Lines computes the full day set for one day: roster, then reservations,
// then the stop join — strictly in that order. The legacy days structure is
// consulted only when the day's routes lists are both empty.
func Lines(doc domain.AppDocument, day domain.DayKey, operatingDate string, done domain.DoneMap) domain.DaySet {
	if !day.Valid() {
		return domain.DaySet{Pickup: []domain.Line{}, Dropoff: []domain.Line{}}
	}

	routes := doc.Routes[day]
	if len(routes.Pickup) == 0 && len(routes.Dropoff) == 0 {
		if entries := doc.Days[day]; len(entries) > 0 {
			return LinesFromDayEntries(entries, day, done)
		}
	}

	res := Resolve(doc.Reservations, operatingDate, day, doc.People)
	set := domain.DaySet{
		Pickup:  BuildLines(routes.Pickup, res.Pickup, res.PickupReserved, done, domain.Pickup, day),
		Dropoff: BuildLines(routes.Dropoff, res.Dropoff, res.DropoffReserved, done, domain.Dropoff, day),
	}
	if set.Pickup == nil {
		set.Pickup = []domain.Line{}
	}
	if set.Dropoff == nil {
		set.Dropoff = []domain.Line{}
	}
	return set
}
