package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dokim/shuttleboard/internal/domain"
)

func errValidationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

func (b *Board) setErr(resource string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errs[resource] = err.Error()
}

// ToggleDone flips the done mark for one line. The write is immediate, not
// debounced — it targets the small done document and favors latency.
//
// The intended state is committed to local memory and the durable cache
// before the remote write, so a store failure never loses the toggle; the
// next successful remote snapshot reconciles.
func (b *Board) ToggleDone(ctx context.Context, lineKey string) (bool, error) {
	if _, _, _, err := domain.ParseLineKey(lineKey); err != nil {
		return false, fmt.Errorf("service.Board.ToggleDone: %w", err)
	}

	b.mu.Lock()
	_, wasDone := b.effectiveDoneLocked()[lineKey]
	nowDone := !wasDone
	markedAt := b.now().UnixMilli()
	if nowDone {
		// Only touch the remote mirror when it is already serving reads.
		// While it is empty the cache is authoritative, and inserting here
		// would make this single mark eclipse every other cached mark.
		if len(b.done) > 0 {
			b.done[lineKey] = markedAt
		}
		b.cacheDone[lineKey] = markedAt
	} else {
		delete(b.done, lineKey)
		delete(b.cacheDone, lineKey)
	}
	b.mu.Unlock()

	if b.cache != nil {
		var err error
		if nowDone {
			err = b.cache.Put(ctx, lineKey, markedAt)
		} else {
			err = b.cache.Delete(ctx, lineKey)
		}
		if err != nil {
			b.log.Warn("board: done cache write failed", "line_key", lineKey, "error", err)
		}
	}

	path := []string{"doneMap", lineKey}
	var err error
	if nowDone {
		err = b.store.SetField(ctx, b.doneRef, path, markedAt)
	} else {
		err = b.store.DeleteField(ctx, b.doneRef, path)
	}
	if err != nil {
		// Local state already reflects the intended toggle; report and keep it.
		b.log.Error("board: done toggle write failed", "line_key", lineKey, "error", err)
		b.setErr(resourceDone, err)
		return nowDone, nil
	}

	b.mu.Lock()
	delete(b.errs, resourceDone)
	b.mu.Unlock()
	return nowDone, nil
}

// AddReservation validates and stores a new reservation. Returns
// domain.ErrValidation (and changes nothing) when the reservation is
// malformed or dated before the operating date.
func (b *Board) AddReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	r.Date = strings.TrimSpace(r.Date)
	r.PersonID = strings.TrimSpace(r.PersonID)
	r.TempName = strings.TrimSpace(r.TempName)
	r.PickupPlace = strings.TrimSpace(r.PickupPlace)
	r.DropoffPlace = strings.TrimSpace(r.DropoffPlace)

	if len(r.Date) != len("2006-01-02") || strings.Count(r.Date, "-") != 2 {
		return domain.Reservation{}, errValidationf("date must be YYYY-MM-DD")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if r.Date < b.operatingDateLocked() {
		return domain.Reservation{}, errValidationf("date %s is before the operating date", r.Date)
	}

	if r.Reason == domain.ReasonAbsent {
		if r.PersonID == "" {
			return domain.Reservation{}, errValidationf("absence requires a person")
		}
	} else {
		if r.PickupPlace == "" && r.DropoffPlace == "" {
			return domain.Reservation{}, errValidationf("reservation requires a pickup or dropoff place")
		}
		if r.PersonID == "" && r.TempName == "" {
			return domain.Reservation{}, errValidationf("reservation requires a person or a temporary name")
		}
	}
	if r.PersonID != "" && !b.personExistsLocked(r.PersonID) {
		return domain.Reservation{}, errValidationf("unknown person %q", r.PersonID)
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = b.now().UnixMilli()
	}

	b.doc.Reservations = append(b.doc.Reservations, r)
	b.markDirtyLocked(resourceSchedule)
	return r, nil
}

// AddPerson validates and stores a new roster entry. A blank trimmed name
// is rejected with domain.ErrValidation and no state change.
func (b *Board) AddPerson(ctx context.Context, p domain.Person) (domain.Person, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Person{}, errValidationf("name is required")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.personExistsLocked(p.ID) {
		return domain.Person{}, errValidationf("person %q already exists", p.ID)
	}
	b.doc.People = append(b.doc.People, p)
	b.markDirtyLocked(resourceSchedule)
	return p, nil
}

func (b *Board) personExistsLocked(id string) bool {
	for _, p := range b.doc.People {
		if strings.TrimSpace(p.ID) == id {
			return true
		}
	}
	return false
}

// SetUI replaces the opaque admin settings blob, debounced like any other
// schedule edit. A nil blob stores as empty.
func (b *Board) SetUI(ctx context.Context, ui map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ui = copyUI(ui)
	if v, ok := b.ui[uiDayOffsetKey].(float64); ok {
		b.dayOffset = int(v)
	}
	b.markDirtyLocked(resourceAdmin)
}

// SetDayOffset changes the "operate as if it were N days from now" override.
// The new operating date takes effect immediately (reservations re-pruned)
// and the setting persists inside the ui blob.
func (b *Board) SetDayOffset(ctx context.Context, days int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dayOffset = days
	b.ui[uiDayOffsetKey] = float64(days)
	b.markDirtyLocked(resourceAdmin)
	if date := b.operatingDateLocked(); date != b.lastDate {
		b.pruneLocked()
	}
}
