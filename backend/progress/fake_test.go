package progress

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"meowdrop/backend/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSource is an in-memory Source that records every save.
type fakeSource struct {
	mu     sync.Mutex
	stored map[string]map[DateKey][]bool
	saves  []Write

	// Error injection
	LoadErr error
	SaveErr error
	// block, when set, holds every Save until it is closed.
	block chan struct{}
	// gates hold the Loads of a project until closed; entered receives the
	// project id of every gated Load before it waits.
	gates   map[string]chan struct{}
	entered chan string
}

func newFakeSource() *fakeSource {
	return &fakeSource{stored: make(map[string]map[DateKey][]bool)}
}

func (f *fakeSource) Load(_ context.Context, p *models.Project, day DateKey) ([]bool, bool, error) {
	if gate := f.gates[p.ID]; gate != nil {
		f.entered <- p.ID
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return nil, false, f.LoadErr
	}
	done, ok := f.stored[p.ID][day]
	return append([]bool(nil), done...), ok, nil
}

func (f *fakeSource) Save(_ context.Context, w Write) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, w)
	if f.SaveErr != nil {
		return f.SaveErr
	}
	if f.stored[w.ProjectID] == nil {
		f.stored[w.ProjectID] = make(map[DateKey][]bool)
	}
	f.stored[w.ProjectID][w.Day] = append([]bool(nil), w.Completions...)
	return nil
}

func (f *fakeSource) put(projectID string, day DateKey, done ...bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stored[projectID] == nil {
		f.stored[projectID] = make(map[DateKey][]bool)
	}
	f.stored[projectID][day] = done
}

func (f *fakeSource) get(projectID string, day DateKey) ([]bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	done, ok := f.stored[projectID][day]
	return done, ok
}

func (f *fakeSource) savedDays(projectID string) []DateKey {
	f.mu.Lock()
	defer f.mu.Unlock()
	var days []DateKey
	for _, w := range f.saves {
		if w.ProjectID == projectID {
			days = append(days, w.Day)
		}
	}
	return days
}

func (f *fakeSource) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

// fakeClock is a settable Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newProject(id string, tasks ...string) *models.Project {
	return &models.Project{ID: id, Name: id, Tasks: tasks}
}
