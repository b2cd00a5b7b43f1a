// Package domain contains the core data types for the shuttle board.
// This package has zero external dependencies and is imported by every other
// internal package (schedule, docstore, service, handler).
package domain

// DayKey identifies a weekday schedule bucket. The empty DayKey means
// "no schedule" (Saturday/Sunday); callers must treat it as an empty day.
type DayKey string

// Weekday keys. The shuttle only runs Monday through Friday.
const (
	Mon DayKey = "mon"
	Tue DayKey = "tue"
	Wed DayKey = "wed"
	Thu DayKey = "thu"
	Fri DayKey = "fri"
)

// Weekdays lists all valid day keys in calendar order.
// Returned as a fresh slice so callers may not mutate the canonical order.
func Weekdays() []DayKey {
	return []DayKey{Mon, Tue, Wed, Thu, Fri}
}

// Valid reports whether k is one of mon..fri.
func (k DayKey) Valid() bool {
	switch k {
	case Mon, Tue, Wed, Thu, Fri:
		return true
	}
	return false
}

// Direction distinguishes the two route kinds of a day.
type Direction string

const (
	Pickup  Direction = "pickup"
	Dropoff Direction = "dropoff"
)

// Valid reports whether d is pickup or dropoff.
func (d Direction) Valid() bool {
	return d == Pickup || d == Dropoff
}

// DayAssignment is one person's default places for a single weekday.
// Either field may be empty when the person does not ride that direction.
type DayAssignment struct {
	PickupPlace  string `json:"pickupPlace,omitempty"`
	DropoffPlace string `json:"dropoffPlace,omitempty"`
}

// Place returns the assigned place for the given direction.
func (a DayAssignment) Place(dir Direction) string {
	if dir == Dropoff {
		return a.DropoffPlace
	}
	return a.PickupPlace
}

// Person is a roster entry: a rider with weekly default place assignments.
// ID is opaque, unique and stable. Name is freeform but must trim non-empty
// to be usable; blank-named people contribute nothing to any roster.
type Person struct {
	ID     string                   `json:"id"`
	Name   string                   `json:"name"`
	Assign map[DayKey]DayAssignment `json:"assign,omitempty"`
}

// Stop is one scheduled place+time entry on a route for one direction/day.
// Time is "HH:MM" and may be empty; Place must be non-empty for the stop to
// produce a line.
type Stop struct {
	ID    string `json:"id"`
	Time  string `json:"time,omitempty"`
	Place string `json:"place"`
}

// DayRoutes holds the ordered stop lists for one weekday.
type DayRoutes struct {
	Pickup  []Stop `json:"pickup,omitempty"`
	Dropoff []Stop `json:"dropoff,omitempty"`
}

// DayEntry is one record of the legacy "days" encoding: a pre-merged line
// with comma-separated names and a place string that may embed a leading
// "HH:MM [place]" pattern (see ParseLegacyPlace).
type DayEntry struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"` // "pickup" | "dropoff"
	Names string `json:"names"`
	Place string `json:"place"`
}

// Reservation is a date-scoped override of the default roster: an absence,
// a substitution for a known person, or a temporary ad-hoc rider.
//
// Invariants (enforced by the service layer):
//   - an absent reservation must reference an existing PersonID;
//   - any other reservation must set at least one of PickupPlace/DropoffPlace;
//   - Date is zero-padded "YYYY-MM-DD" and never before the operating date
//     at creation time.
//
// Reservations whose Date has passed are garbage-collected automatically.
type Reservation struct {
	ID           string     `json:"id"`
	Date         string     `json:"date"`
	PersonID     string     `json:"personId,omitempty"`
	TempName     string     `json:"tempName,omitempty"`
	Reason       ReasonCode `json:"reason,omitempty"`
	CustomText   string     `json:"customText,omitempty"`
	PickupPlace  string     `json:"pickupPlace,omitempty"`
	DropoffPlace string     `json:"dropoffPlace,omitempty"`
	CreatedAt    int64      `json:"createdAt,omitempty"` // unix millis
}

// DoneMap records completed lines. Presence of a line key means "done";
// the value is the unix-millis timestamp of the mark. It is stored in its
// own document so toggling is a cheap single-field patch.
type DoneMap map[string]int64

// Line is one rendered, fully resolved stop: the materialized join of
// stop, roster, reservations and done-map for one (direction, stop) pair
// on the operating date. Derived, never persisted.
type Line struct {
	LineKey        string    `json:"lineKey"`
	Direction      Direction `json:"direction"`
	Time           string    `json:"time"`
	Place          string    `json:"place"`
	Names          []string  `json:"names"`
	Done           bool      `json:"done"`
	HasReservation bool      `json:"hasReservation"`
}

// DaySet pairs the two directions' lines for one day.
type DaySet struct {
	Pickup  []Line `json:"pickup"`
	Dropoff []Line `json:"dropoff"`
}

// AppDocument is the mirrored schedule/roster resource: everything the board
// needs except the done map and admin settings, which live in their own
// documents.
type AppDocument struct {
	Days         map[DayKey][]DayEntry `json:"days,omitempty"`
	Routes       map[DayKey]DayRoutes  `json:"routes,omitempty"`
	People       []Person              `json:"people,omitempty"`
	Reservations []Reservation         `json:"reservations,omitempty"`
}
