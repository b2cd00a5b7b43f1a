package service

import (
	"github.com/dokim/shuttleboard/internal/domain"
)

// ExportDay assembles a flat export of one day's resolved lines: pickup
// lines first, then dropoff, each in rendered order. An empty day exports
// the operating day. Always returns a non-nil slice so callers can safely
// range over it.
func (b *Board) ExportDay(day domain.DayKey) ([]domain.ExportRow, error) {
	var (
		date string
		set  domain.DaySet
	)
	if day == "" {
		date, day, set = b.TodayLines()
	} else {
		var err error
		set, err = b.Lines(day)
		if err != nil {
			return nil, err
		}
		b.mu.Lock()
		date = b.operatingDateLocked()
		b.mu.Unlock()
	}

	rows := []domain.ExportRow{}
	for _, lines := range [][]domain.Line{set.Pickup, set.Dropoff} {
		for _, l := range lines {
			rows = append(rows, domain.ExportRow{
				Date:      date,
				DayKey:    day,
				Direction: l.Direction,
				Time:      l.Time,
				Place:     l.Place,
				Names:     append([]string(nil), l.Names...),
				Done:      l.Done,
			})
		}
	}
	return rows, nil
}
