// Package store contains the persistence adapters: the project table behind
// GORM and the local completion cache on SQLite.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"meowdrop/backend/models"
)

// ErrProjectNotFound is returned when no live project matches the id (and
// owner, where one is given).
var ErrProjectNotFound = errors.New("project not found")

// editableColumns are the project columns a user edit may change.
// task_progress is written only by the progress tracker.
var editableColumns = []string{
	"Name", "Details", "Chain", "Status", "LoginType", "WalletType", "WalletAddress",
	"ContactEmail", "SocialType", "SocialUsername", "DetailTask", "Links", "FaucetLink",
	"Result", "Tasks", "UpdatedAt",
}

// ProjectStore reads and writes projects.
type ProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// ListByUser returns a user's projects, newest first.
func (s *ProjectStore) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Get returns the project with id owned by userID.
func (s *ProjectStore) Get(ctx context.Context, userID, id string) (*models.Project, error) {
	var p models.Project
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return &p, nil
}

// Create inserts p, assigning its id.
func (s *ProjectStore) Create(ctx context.Context, p *models.Project) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// Update writes the editable fields of p to the row with p.ID owned by
// p.UserID, then reloads p.
func (s *ProjectStore) Update(ctx context.Context, p *models.Project) error {
	res := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Select(editableColumns).
		Updates(p)
	if res.Error != nil {
		return fmt.Errorf("update project %s: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}

	fresh, err := s.Get(ctx, p.UserID, p.ID)
	if err != nil {
		return err
	}
	*p = *fresh
	return nil
}

// Delete soft-deletes the project with id owned by userID.
func (s *ProjectStore) Delete(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Project{})
	if res.Error != nil {
		return fmt.Errorf("delete project %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// UpdateTaskProgress replaces the task_progress column of one project.
func (s *ProjectStore) UpdateTaskProgress(ctx context.Context, projectID string, progress models.TaskProgress) error {
	if progress == nil {
		progress = models.TaskProgress{}
	}
	res := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("task_progress", progress)
	if res.Error != nil {
		return fmt.Errorf("update task progress %s: %w", projectID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
