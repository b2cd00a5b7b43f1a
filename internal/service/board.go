// Package service implements the board: the stateful core that mirrors the
// remote documents, resolves the day's lines on demand, and writes local
// edits back. One Board instance is constructed by the entry point and
// passed to every consumer — there is no package-level singleton.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dokim/shuttleboard/internal/clock"
	"github.com/dokim/shuttleboard/internal/docstore"
	"github.com/dokim/shuttleboard/internal/domain"
	"github.com/dokim/shuttleboard/internal/schedule"
)

// Resource names used for dirty flags and per-resource error state.
const (
	resourceSchedule = "schedule"
	resourceDone     = "done"
	resourceAdmin    = "admin"
)

// uiDayOffsetKey is where the operator's day offset lives inside the opaque
// ui blob, so it round-trips through the admin document like any other
// display setting.
const uiDayOffsetKey = "dayOffsetDays"

// defaultFlushInterval is the autosave debounce window.
const defaultFlushInterval = 300 * time.Millisecond

// DoneCache is the local durable fallback for done marks. Satisfied by
// *donecache.Cache; nil disables the fallback.
type DoneCache interface {
	Load(ctx context.Context) (domain.DoneMap, error)
	Put(ctx context.Context, lineKey string, markedAt int64) error
	Delete(ctx context.Context, lineKey string) error
}

// Options configures a Board.
type Options struct {
	// AppRef, DoneRef and AdminRef address the three remote documents.
	AppRef   docstore.Ref
	DoneRef  docstore.Ref
	AdminRef docstore.Ref

	// FlushInterval is the autosave debounce window. Defaults to 300ms.
	FlushInterval time.Duration

	// DayOffset shifts the operating date by N days ("operate as if it were
	// N days from now"). Default 0, i.e. true today.
	DayOffset int

	// Now supplies the current instant; defaults to clock.Now.
	Now clock.NowFunc

	Logger *slog.Logger
}

// Status is a point-in-time view of the board's clock and health.
type Status struct {
	Now           time.Time         `json:"now"`
	OperatingDate string            `json:"operatingDate"`
	DayKey        domain.DayKey     `json:"dayKey"`
	DayOffset     int               `json:"dayOffset"`
	Errors        map[string]string `json:"errors,omitempty"`
}

// Board mirrors the remote documents and serves resolved lines.
//
// All state is guarded by mu. Remote snapshots are applied by a single
// consumer goroutine; local mutations mark dirty flags that a flush
// goroutine merges back to the store on a debounce interval. Done toggles
// bypass the debounce and write immediately.
type Board struct {
	store docstore.Store
	cache DoneCache
	log   *slog.Logger
	now   clock.NowFunc

	appRef, doneRef, adminRef docstore.Ref
	flushEvery                time.Duration

	mu         sync.Mutex
	doc        domain.AppDocument
	done       domain.DoneMap // remote canonical map
	cacheDone  domain.DoneMap // local durable fallback mirror
	ui         map[string]any
	dayOffset  int
	displayNow time.Time
	lastDate   string // last operating date pruning ran for
	dirty      map[string]bool
	suppress   bool // held while a remote snapshot is being applied
	errs       map[string]string

	started bool
	cancels []docstore.CancelFunc
	stop    chan struct{}
	wg      sync.WaitGroup
	ticker  *clock.Ticker
}

// NewBoard constructs a Board. It does not touch the store until Start.
func NewBoard(store docstore.Store, cache DoneCache, opts Options) *Board {
	if opts.Now == nil {
		opts.Now = clock.Now
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = defaultFlushInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Board{
		store:      store,
		cache:      cache,
		log:        opts.Logger,
		now:        opts.Now,
		appRef:     opts.AppRef,
		doneRef:    opts.DoneRef,
		adminRef:   opts.AdminRef,
		flushEvery: opts.FlushInterval,
		dayOffset:  opts.DayOffset,
		done:       domain.DoneMap{},
		cacheDone:  domain.DoneMap{},
		ui:         map[string]any{},
		dirty:      map[string]bool{},
		errs:       map[string]string{},
	}
}

// Start loads the local cache, subscribes to the three remote documents and
// launches the consumer, flush and clock goroutines. Starting twice has no
// additional effect.
func (b *Board) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return nil
	}
	b.started = true
	b.stop = make(chan struct{})
	b.displayNow = b.now()
	b.lastDate = b.operatingDateLocked()
	b.mu.Unlock()

	if b.cache != nil {
		cached, err := b.cache.Load(ctx)
		if err != nil {
			b.log.Warn("board: done cache load failed", "error", err)
		} else {
			b.mu.Lock()
			b.cacheDone = cached
			b.mu.Unlock()
		}
	}

	events := make(chan docstore.Snapshot, 16)
	var forwarders sync.WaitGroup

	for _, sub := range []struct {
		resource string
		ref      docstore.Ref
	}{
		{resourceSchedule, b.appRef},
		{resourceDone, b.doneRef},
		{resourceAdmin, b.adminRef},
	} {
		ch, cancel, err := b.store.Subscribe(ctx, sub.ref)
		if err != nil {
			b.log.Error("board: subscribe failed", "resource", sub.resource, "error", err)
			b.setErr(sub.resource, err)
			continue
		}
		b.mu.Lock()
		b.cancels = append(b.cancels, cancel)
		b.mu.Unlock()

		forwarders.Add(1)
		go func() {
			defer forwarders.Done()
			for snap := range ch {
				events <- snap
			}
		}()
	}

	go func() {
		forwarders.Wait()
		close(events)
	}()

	// Single consumer: snapshots apply strictly one at a time.
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for snap := range events {
			b.applySnapshot(snap)
		}
	}()

	// Debounced autosave.
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		t := time.NewTicker(b.flushEvery)
		defer t.Stop()
		for {
			select {
			case <-b.stop:
				return
			case <-t.C:
				b.flush(context.Background())
			}
		}
	}()

	b.ticker = clock.NewTicker(b.now, b.onTick)
	b.ticker.Start()

	b.log.Info("board started",
		"app_doc", b.appRef.Collection+"/"+b.appRef.Doc,
		"flush_interval", b.flushEvery)
	return nil
}

// Stop cancels the subscriptions, halts the background goroutines and runs
// one final flush so no debounced edit is lost. Safe to call repeatedly or
// without Start.
func (b *Board) Stop() {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return
	}
	b.started = false
	cancels := b.cancels
	b.cancels = nil
	close(b.stop)
	ticker := b.ticker
	b.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
	}
	for _, cancel := range cancels {
		cancel()
	}
	b.wg.Wait()
	b.flush(context.Background())
}

// --- snapshot application ---------------------------------------------------

// applySnapshot mirrors one remote snapshot into local state. The suppress
// flag is held for the duration so mirroring remote data is never mistaken
// for a local edit; pruning is the one exception and marks dirty explicitly.
func (b *Board) applySnapshot(snap docstore.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.suppress = true
	defer func() { b.suppress = false }()

	switch snap.Ref {
	case b.appRef:
		b.doc = domain.DecodeAppDocument(snap.Data)
		delete(b.errs, resourceSchedule)
		b.pruneLocked()
	case b.doneRef:
		b.done = domain.DecodeDoneMap(snap.Data)
		delete(b.errs, resourceDone)
	case b.adminRef:
		b.ui = domain.DecodeUI(snap.Data)
		if v, ok := b.ui[uiDayOffsetKey].(float64); ok {
			b.dayOffset = int(v)
		}
		delete(b.errs, resourceAdmin)
	}
}

// pruneLocked drops reservations dated before the operating date and, when
// anything was removed, marks the schedule dirty so the pruned collection
// persists exactly once per detected change. Bypasses the suppress flag.
func (b *Board) pruneLocked() {
	date := b.operatingDateLocked()
	b.lastDate = date
	kept, removed := schedule.Prune(b.doc.Reservations, date)
	if removed == 0 {
		return
	}
	b.doc.Reservations = kept
	b.dirty[resourceSchedule] = true
	b.log.Info("board: pruned stale reservations", "removed", removed, "operating_date", date)
}

// onTick refreshes the displayed now and re-prunes when the operating date
// rolls over (midnight, or a day-offset change taking effect).
func (b *Board) onTick(t time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.displayNow = t
	if date := b.operatingDateLocked(); date != b.lastDate {
		b.pruneLocked()
	}
}

// --- debounced persistence --------------------------------------------------

// markDirtyLocked schedules a resource for the next flush. No-op while a
// remote snapshot is being applied — receiving authoritative data must not
// echo back as a write.
func (b *Board) markDirtyLocked(resource string) {
	if b.suppress {
		return
	}
	b.dirty[resource] = true
}

// flush merge-writes every dirty resource. Flags are cleared before the
// write and re-set on failure, so the next cycle naturally retries the same
// payload; no backoff.
func (b *Board) flush(ctx context.Context) {
	type job struct {
		resource string
		ref      docstore.Ref
		fields   map[string]any
	}
	var jobs []job

	b.mu.Lock()
	if b.dirty[resourceSchedule] {
		b.dirty[resourceSchedule] = false
		jobs = append(jobs, job{resourceSchedule, b.appRef, map[string]any{
			"days":         b.doc.Days,
			"routes":       b.doc.Routes,
			"people":       append([]domain.Person{}, b.doc.People...),
			"reservations": append([]domain.Reservation{}, b.doc.Reservations...),
		}})
	}
	if b.dirty[resourceAdmin] {
		b.dirty[resourceAdmin] = false
		jobs = append(jobs, job{resourceAdmin, b.adminRef, map[string]any{
			"ui": copyUI(b.ui),
		}})
	}
	b.mu.Unlock()

	for _, j := range jobs {
		if err := b.store.Merge(ctx, j.ref, j.fields); err != nil {
			b.log.Error("board: flush failed", "resource", j.resource, "error", err)
			b.mu.Lock()
			b.dirty[j.resource] = true
			b.errs[j.resource] = err.Error()
			b.mu.Unlock()
			continue
		}
		b.mu.Lock()
		delete(b.errs, j.resource)
		b.mu.Unlock()
	}
}

// Flush forces an immediate write of all pending dirty state.
func (b *Board) Flush(ctx context.Context) {
	b.flush(ctx)
}

// --- queries ----------------------------------------------------------------

// operatingDateLocked returns the operating date: now shifted by the
// configured day offset, in the fixed zone.
func (b *Board) operatingDateLocked() string {
	return clock.YMD(clock.AddDays(b.now(), b.dayOffset))
}

// effectiveDoneLocked prefers the remote canonical map; the local durable
// cache only serves reads while the remote map is empty or unavailable.
func (b *Board) effectiveDoneLocked() domain.DoneMap {
	if len(b.done) > 0 {
		return b.done
	}
	return b.cacheDone
}

// TodayLines resolves the operating date's lines. A weekend operating date
// yields empty line sets.
func (b *Board) TodayLines() (string, domain.DayKey, domain.DaySet) {
	b.mu.Lock()
	defer b.mu.Unlock()

	op := clock.AddDays(b.now(), b.dayOffset)
	date := clock.YMD(op)
	day := clock.DayKey(op)
	return date, day, schedule.Lines(b.doc, day, date, b.effectiveDoneLocked())
}

// Lines resolves one specific weekday using the operating date for
// reservation matching. Returns ErrValidation for an unknown day key.
func (b *Board) Lines(day domain.DayKey) (domain.DaySet, error) {
	if !day.Valid() {
		return domain.DaySet{}, errValidationf("unknown day key %q", string(day))
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return schedule.Lines(b.doc, day, b.operatingDateLocked(), b.effectiveDoneLocked()), nil
}

// Status reports the board's clock and per-resource error state.
func (b *Board) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.displayNow
	if now.IsZero() {
		now = b.now()
	}
	op := clock.AddDays(now, b.dayOffset)
	errs := make(map[string]string, len(b.errs))
	for k, v := range b.errs {
		errs[k] = v
	}
	return Status{
		Now:           now,
		OperatingDate: clock.YMD(op),
		DayKey:        clock.DayKey(op),
		DayOffset:     b.dayOffset,
		Errors:        errs,
	}
}

// UI returns a copy of the opaque admin settings blob.
func (b *Board) UI() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return copyUI(b.ui)
}

func copyUI(ui map[string]any) map[string]any {
	out := make(map[string]any, len(ui))
	for k, v := range ui {
		out[k] = v
	}
	return out
}
