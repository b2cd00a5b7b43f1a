package schedule

import (
	"strings"

	"github.com/dokim/shuttleboard/internal/domain"
)

// Resolution is the final place → names mapping per direction after all of
// the operating date's reservations have been applied, plus the set of
// places each direction's reservations touched (drives the hasReservation
// flag on lines).
type Resolution struct {
	Pickup  map[string][]string
	Dropoff map[string][]string

	PickupReserved  map[string]bool
	DropoffReserved map[string]bool
}

// Resolve applies the operating date's reservations on top of the default
// roster for day and returns the final mappings for both directions.
//
// Reservations apply in input order. An absence removes exactly one
// occurrence of the person's default name in both directions; any other
// reservation removes the person's default entry for each direction it
// touches (at most once — the index entry is consumed) and appends the
// display name "base(reasonLabel)" to the target place. A reservation whose
// display name cannot be resolved (blank temp name, dangling personId) is
// skipped entirely.
func Resolve(reservations []domain.Reservation, operatingDate string, day domain.DayKey, people []domain.Person) Resolution {
	res := Resolution{
		Pickup:          map[string][]string{},
		Dropoff:         map[string][]string{},
		PickupReserved:  map[string]bool{},
		DropoffReserved: map[string]bool{},
	}
	if !day.Valid() {
		return res
	}

	pickup, pickupIdx := BuildRoster(people, day, domain.Pickup)
	dropoff, dropoffIdx := BuildRoster(people, day, domain.Dropoff)
	res.Pickup = pickup
	res.Dropoff = dropoff

	nameByID := map[string]string{}
	for _, p := range people {
		if id := strings.TrimSpace(p.ID); id != "" {
			nameByID[id] = strings.TrimSpace(p.Name)
		}
	}

	for _, r := range reservations {
		if strings.TrimSpace(r.Date) != operatingDate {
			continue
		}
		personID := strings.TrimSpace(r.PersonID)

		if r.Reason == domain.ReasonAbsent {
			if personID == "" {
				continue
			}
			removeDefault(pickup, pickupIdx, personID)
			removeDefault(dropoff, dropoffIdx, personID)
			continue
		}

		base := strings.TrimSpace(r.TempName)
		if personID != "" {
			base = nameByID[personID]
		}
		if base == "" {
			continue
		}
		display := domain.DisplayName(base, r.Reason, r.CustomText)

		if place := strings.TrimSpace(r.PickupPlace); place != "" {
			if personID != "" {
				removeDefault(pickup, pickupIdx, personID)
			}
			pickup[place] = append(pickup[place], display)
			res.PickupReserved[place] = true
		}
		if place := strings.TrimSpace(r.DropoffPlace); place != "" {
			if personID != "" {
				removeDefault(dropoff, dropoffIdx, personID)
			}
			dropoff[place] = append(dropoff[place], display)
			res.DropoffReserved[place] = true
		}
	}

	return res
}

// removeDefault removes one occurrence of personID's default name from its
// default place and consumes the index entry, so a second reservation for
// the same person cannot remove a name twice. A person with no default for
// the direction is a no-op.
func removeDefault(byPlace map[string][]string, index map[string]RosterEntry, personID string) {
	entry, ok := index[personID]
	if !ok {
		return
	}
	delete(index, personID)

	names := byPlace[entry.Place]
	for i, n := range names {
		if n == entry.Name {
			names = append(names[:i], names[i+1:]...)
			break
		}
	}
	if len(names) == 0 {
		delete(byPlace, entry.Place)
	} else {
		byPlace[entry.Place] = names
	}
}

// Prune drops every reservation whose date is strictly before operatingDate.
// Lexical comparison is valid because dates are zero-padded "YYYY-MM-DD";
// reservations with a blank date are dropped as invalid. Input order of the
// kept reservations is preserved and the input slice is not modified.
func Prune(reservations []domain.Reservation, operatingDate string) (kept []domain.Reservation, removed int) {
	for _, r := range reservations {
		date := strings.TrimSpace(r.Date)
		if date == "" || date < operatingDate {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	return kept, removed
}
