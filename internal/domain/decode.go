package domain

import "encoding/json"

// Lenient decoding of remote documents. The remote store is shared with
// hand-edited data and older client versions, so any field of unexpected
// shape is treated as absent rather than failing the whole snapshot.
// Decoding never returns an error.

// DecodeAppDocument decodes the schedule/roster document. Malformed fields
// coerce to their zero values; a nil or unparseable payload yields an empty
// document.
func DecodeAppDocument(data []byte) AppDocument {
	root := asMap(rawValue(data))

	doc := AppDocument{
		Days:   map[DayKey][]DayEntry{},
		Routes: map[DayKey]DayRoutes{},
	}

	days := asMap(root["days"])
	routes := asMap(root["routes"])
	for _, day := range Weekdays() {
		if entries := asSlice(days[string(day)]); entries != nil {
			doc.Days[day] = decodeDayEntries(entries)
		}
		if dr := asMap(routes[string(day)]); dr != nil {
			doc.Routes[day] = DayRoutes{
				Pickup:  decodeStops(asSlice(dr["pickup"])),
				Dropoff: decodeStops(asSlice(dr["dropoff"])),
			}
		}
	}

	for _, v := range asSlice(root["people"]) {
		doc.People = append(doc.People, decodePerson(asMap(v)))
	}
	for _, v := range asSlice(root["reservations"]) {
		doc.Reservations = append(doc.Reservations, decodeReservation(asMap(v)))
	}
	return doc
}

// DecodeDoneMap decodes the done document's doneMap field. Non-numeric mark
// timestamps coerce to zero but still count as done.
func DecodeDoneMap(data []byte) DoneMap {
	root := asMap(rawValue(data))
	out := DoneMap{}
	for k, v := range asMap(root["doneMap"]) {
		out[k] = asInt64(v)
	}
	return out
}

// DecodeUI extracts the opaque ui settings blob from the admin document.
// Returns an empty object when the field is missing or malformed.
func DecodeUI(data []byte) map[string]any {
	root := asMap(rawValue(data))
	if ui := asMap(root["ui"]); ui != nil {
		return ui
	}
	return map[string]any{}
}

func decodeDayEntries(raw []any) []DayEntry {
	var out []DayEntry
	for _, v := range raw {
		m := asMap(v)
		out = append(out, DayEntry{
			ID:    asString(m["id"]),
			Kind:  asString(m["kind"]),
			Names: asString(m["names"]),
			Place: asString(m["place"]),
		})
	}
	return out
}

func decodeStops(raw []any) []Stop {
	var out []Stop
	for _, v := range raw {
		m := asMap(v)
		out = append(out, Stop{
			ID:    asString(m["id"]),
			Time:  asString(m["time"]),
			Place: asString(m["place"]),
		})
	}
	return out
}

func decodePerson(m map[string]any) Person {
	p := Person{
		ID:   asString(m["id"]),
		Name: asString(m["name"]),
	}
	assign := asMap(m["assign"])
	for _, day := range Weekdays() {
		da := asMap(assign[string(day)])
		if da == nil {
			continue
		}
		if p.Assign == nil {
			p.Assign = map[DayKey]DayAssignment{}
		}
		p.Assign[day] = DayAssignment{
			PickupPlace:  asString(da["pickupPlace"]),
			DropoffPlace: asString(da["dropoffPlace"]),
		}
	}
	return p
}

func decodeReservation(m map[string]any) Reservation {
	return Reservation{
		ID:           asString(m["id"]),
		Date:         asString(m["date"]),
		PersonID:     asString(m["personId"]),
		TempName:     asString(m["tempName"]),
		Reason:       ReasonCode(asString(m["reason"])),
		CustomText:   asString(m["customText"]),
		PickupPlace:  asString(m["pickupPlace"]),
		DropoffPlace: asString(m["dropoffPlace"]),
		CreatedAt:    asInt64(m["createdAt"]),
	}
}

// --- coercion helpers -------------------------------------------------------

func rawValue(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) int64 {
	f, _ := v.(float64)
	return int64(f)
}
