package domain

// ReasonCode classifies why a reservation exists. The zero value is a plain
// unclassified reservation.
type ReasonCode string

const (
	ReasonSupplement ReasonCode = "supplement" // make-up ride
	ReasonTimeChange ReasonCode = "timeChange" // same rider, different slot
	ReasonCustom     ReasonCode = "custom"     // free-text reason
	ReasonAbsent     ReasonCode = "absent"     // rider skips the day
)

// genericReasonLabel is used when a reservation carries no usable reason.
const genericReasonLabel = "reservation"

// Label returns the display label for the reason, appended in parentheses
// after the rider's name on a line. customText is consulted only for
// ReasonCustom and falls back to the generic label when blank.
func (c ReasonCode) Label(customText string) string {
	switch c {
	case ReasonSupplement:
		return "supplement"
	case ReasonTimeChange:
		return "time change"
	case ReasonAbsent:
		return "absent"
	case ReasonCustom:
		if t := trim(customText); t != "" {
			return t
		}
		return genericReasonLabel
	default:
		return genericReasonLabel
	}
}

// DisplayName formats a reservation rider for rendering: "Name(label)".
func DisplayName(base string, reason ReasonCode, customText string) string {
	return base + "(" + reason.Label(customText) + ")"
}
