package progress

import (
	"context"
	"time"

	"meowdrop/backend/models"
)

// Write is one persisted snapshot of a project's completion for a day.
type Write struct {
	ProjectID   string
	Day         DateKey
	Completions []bool
	// Progress is the project's full day map with Day already replaced.
	Progress models.TaskProgress
	At       time.Time
}

// Source is where completion state lives between requests.
type Source interface {
	// Load returns the stored completion flags of p for day, and whether an
	// entry exists. The flags are not reconciled against the task count.
	Load(ctx context.Context, p *models.Project, day DateKey) ([]bool, bool, error)

	// Save persists w.
	Save(ctx context.Context, w Write) error
}
