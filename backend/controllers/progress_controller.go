package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"meowdrop/backend/models"
	"meowdrop/backend/progress"
	"meowdrop/backend/utils"
)

type ProgressController struct {
	*ProjectController
}

func NewProgressController(pc *ProjectController) *ProgressController {
	return &ProgressController{ProjectController: pc}
}

// GetProgress godoc
// @Summary Get today's progress
// @Description Returns today's completion flags (UTC+7 day) and ratio for a project
// @Tags progress
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /projects/{id}/progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	p, err := pc.loadProject(c)
	if p == nil {
		return err
	}
	return utils.Success(c, fiber.StatusOK, pc.Tracker.Summary(c.UserContext(), p))
}

// ToggleTask godoc
// @Summary Toggle a task for today
// @Description Flips today's completion of the task at the given position
// @Tags progress
// @Produce json
// @Param id path string true "Project ID"
// @Param index path int true "Task position, 0-based"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /projects/{id}/tasks/{index}/toggle [post]
func (pc *ProgressController) ToggleTask(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return utils.BadRequest(c, "Invalid task index")
	}

	p, err := pc.loadProject(c)
	if p == nil {
		return err
	}

	updated, err := pc.Tracker.Toggle(c.UserContext(), p, index)
	switch {
	case errors.Is(err, progress.ErrIndexOutOfRange):
		return utils.BadRequest(c, "Task index out of range")
	case errors.Is(err, progress.ErrTrackerClosed):
		return utils.Error(c, fiber.StatusServiceUnavailable, err)
	case err != nil:
		return utils.InternalServerError(c, "Could not toggle task")
	}

	return utils.Success(c, fiber.StatusOK, models.ProjectWithProgress{
		Project:  updated,
		Progress: pc.Tracker.Summary(c.UserContext(), updated),
	})
}
