package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"meowdrop/backend/models"
)

var (
	// ErrIndexOutOfRange is returned by Toggle for an index outside the
	// project's task list.
	ErrIndexOutOfRange = errors.New("task index out of range")

	// ErrTrackerClosed is returned by Toggle after Close.
	ErrTrackerClosed = errors.New("progress tracker closed")
)

// Options configures a Tracker. Zero values fall back to defaults.
type Options struct {
	Clock        Clock
	Logger       *zap.Logger
	WriteTimeout time.Duration
}

// Tracker answers and mutates same-day task completion for projects.
//
// Toggle returns as soon as the new state is computed. Persistence happens on
// a single background writer. Writes of one project are saved in order, and
// only writes of the same day coalesce, so the last toggle of a day wins and
// a day's final state is never replaced by the next day's write.
//
// The latest write of each project, pending or already attempted, overlays
// the Source: today's reads see it, and every write carries its days forward
// so a project loaded before that write landed cannot roll them back.
type Tracker struct {
	src          Source
	clock        Clock
	logger       *zap.Logger
	writeTimeout time.Duration

	mu     sync.Mutex
	latest map[string]Write
	queue  map[string][]Write
	closed bool
	idle   sync.WaitGroup

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
}

// NewTracker starts a Tracker persisting to src. Close must be called to
// stop its writer.
func NewTracker(src Source, opts Options) *Tracker {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	t := &Tracker{
		src:          src,
		clock:        opts.Clock,
		logger:       opts.Logger,
		writeTimeout: opts.WriteTimeout,
		latest:       make(map[string]Write),
		queue:        make(map[string][]Write),
		wake:         make(chan struct{}, 1),
		quit:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	go t.run()
	return t
}

// Today returns the tracker's current DateKey.
func (t *Tracker) Today() DateKey {
	return ReferenceDate(t.clock())
}

// Completions returns today's completion flags for p, one per task.
func (t *Tracker) Completions(ctx context.Context, p *models.Project) []bool {
	return t.current(ctx, p, t.Today())
}

// Ratio returns today's completion ratio for p.
func (t *Tracker) Ratio(ctx context.Context, p *models.Project) Ratio {
	return ComputeRatio(t.Completions(ctx, p))
}

// Summary returns today's completion flags and ratio for p.
func (t *Tracker) Summary(ctx context.Context, p *models.Project) models.ProgressSummary {
	day := t.Today()
	done := t.current(ctx, p, day)

	r := ComputeRatio(done)
	return models.ProgressSummary{
		Day:         string(day),
		Completions: done,
		Done:        r.Done,
		Total:       r.Total,
		Percent:     r.Percent,
	}
}

// Toggle flips task index for today and returns a copy of p whose
// TaskProgress holds the new state under today's key. Other days are left as
// they were. The write to the Source is scheduled, not awaited.
func (t *Tracker) Toggle(ctx context.Context, p *models.Project, index int) (*models.Project, error) {
	if index < 0 || index >= len(p.Tasks) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(p.Tasks))
	}

	now := t.clock()
	day := ReferenceDate(now)

	t.mu.Lock()
	done, ok := t.overlayLocked(p, day)
	if !ok && !t.closed {
		t.mu.Unlock()
		stored := t.load(ctx, p, day)
		t.mu.Lock()
		// Another toggle may have landed while the Source was read.
		if done, ok = t.overlayLocked(p, day); !ok {
			done = Reconcile(stored, len(p.Tasks))
		}
	}
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrTrackerClosed
	}

	done[index] = !done[index]

	updated := p.Clone()
	if updated.TaskProgress == nil {
		updated.TaskProgress = make(models.TaskProgress, 1)
	}
	// p may predate the last write; that write is authoritative for its days.
	if last, ok := t.latest[p.ID]; ok {
		for k, v := range last.Progress {
			updated.TaskProgress[k] = append([]bool(nil), v...)
		}
	}
	updated.TaskProgress[string(day)] = done

	t.enqueueLocked(Write{
		ProjectID:   p.ID,
		Day:         day,
		Completions: append([]bool(nil), done...),
		Progress:    updated.TaskProgress.Clone(),
		At:          now,
	})
	return updated, nil
}

// Flush blocks until every write scheduled so far has been attempted.
func (t *Tracker) Flush() {
	t.idle.Wait()
}

// Close attempts every pending write and stops the writer.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		<-t.stopped
		return
	}
	t.closed = true
	t.mu.Unlock()

	close(t.quit)
	<-t.stopped
}

// overlayLocked returns today's flags from the latest write of p, if that
// write is of day.
func (t *Tracker) overlayLocked(p *models.Project, day DateKey) ([]bool, bool) {
	if last, ok := t.latest[p.ID]; ok && last.Day == day {
		return Reconcile(last.Completions, len(p.Tasks)), true
	}
	return nil, false
}

func (t *Tracker) current(ctx context.Context, p *models.Project, day DateKey) []bool {
	t.mu.Lock()
	done, ok := t.overlayLocked(p, day)
	t.mu.Unlock()
	if ok {
		return done
	}
	return Reconcile(t.load(ctx, p, day), len(p.Tasks))
}

// load reads day from the Source. Failures read as absent.
func (t *Tracker) load(ctx context.Context, p *models.Project, day DateKey) []bool {
	stored, ok, err := t.src.Load(ctx, p, day)
	if err != nil {
		t.logger.Warn("task progress read failed",
			zap.String("project_id", p.ID),
			zap.String("day", string(day)),
			zap.Error(err),
		)
		return nil
	}
	if !ok {
		return nil
	}
	return stored
}

func (t *Tracker) enqueueLocked(w Write) {
	t.latest[w.ProjectID] = w

	q, queued := t.queue[w.ProjectID]
	if !queued {
		t.idle.Add(1)
	}
	if n := len(q); n > 0 && q[n-1].Day == w.Day {
		q[n-1] = w
	} else {
		q = append(q, w)
	}
	t.queue[w.ProjectID] = q

	select {
	case t.wake <- struct{}{}:
	default:
	}
}

func (t *Tracker) run() {
	defer close(t.stopped)
	for {
		select {
		case <-t.wake:
			t.drain()
		case <-t.quit:
			t.drain()
			return
		}
	}
}

// drain saves every queued write until none is left.
func (t *Tracker) drain() {
	for {
		t.mu.Lock()
		var (
			id     string
			writes []Write
		)
		for id, writes = range t.queue {
			delete(t.queue, id)
			break
		}
		t.mu.Unlock()

		if writes == nil {
			return
		}
		for _, w := range writes {
			t.save(w)
		}

		t.mu.Lock()
		t.pruneLocked()
		t.mu.Unlock()
		t.idle.Done()
	}
}

// pruneLocked forgets overlay entries older than yesterday that have nothing
// left to save.
func (t *Tracker) pruneLocked() {
	now := t.clock()
	today, yesterday := ReferenceDate(now), ReferenceDate(now.AddDate(0, 0, -1))
	for id, w := range t.latest {
		if w.Day == today || w.Day == yesterday {
			continue
		}
		if _, queued := t.queue[id]; queued {
			continue
		}
		delete(t.latest, id)
	}
}

func (t *Tracker) save(w Write) {
	ctx, cancel := context.WithTimeout(context.Background(), t.writeTimeout)
	defer cancel()

	if err := t.src.Save(ctx, w); err != nil {
		t.logger.Warn("task progress write dropped",
			zap.String("project_id", w.ProjectID),
			zap.String("day", string(w.Day)),
			zap.Error(err),
		)
	}
}
