package progress

import (
	"context"

	"meowdrop/backend/models"
)

// ProgressWriter is the partial update the project store exposes for the
// task_progress column.
type ProgressWriter interface {
	UpdateTaskProgress(ctx context.Context, projectID string, progress models.TaskProgress) error
}

// RemoteSource keeps completion in the project's task_progress field.
type RemoteSource struct {
	writer     ProgressWriter
	pruneStale bool
}

// NewRemoteSource returns a RemoteSource writing through w. With pruneStale
// set, every write keeps only the written day.
func NewRemoteSource(w ProgressWriter, pruneStale bool) *RemoteSource {
	return &RemoteSource{writer: w, pruneStale: pruneStale}
}

func (s *RemoteSource) Load(_ context.Context, p *models.Project, day DateKey) ([]bool, bool, error) {
	done, ok := p.TaskProgress[string(day)]
	return done, ok, nil
}

func (s *RemoteSource) Save(ctx context.Context, w Write) error {
	tp := w.Progress
	if s.pruneStale {
		tp = models.TaskProgress{string(w.Day): w.Completions}
	}
	return s.writer.UpdateTaskProgress(ctx, w.ProjectID, tp)
}
