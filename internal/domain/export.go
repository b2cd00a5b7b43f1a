package domain

// ExportRow is a single row in the flat day-lines export.
// One row per rendered line, denormalized for CSV: names are joined with
// ", " by the caller that writes the file.
type ExportRow struct {
	Date      string // "2006-01-02" operating date
	DayKey    DayKey
	Direction Direction
	Time      string
	Place     string
	Names     []string
	Done      bool
}
