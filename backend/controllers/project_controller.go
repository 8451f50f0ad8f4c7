package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"meowdrop/backend/config"
	"meowdrop/backend/middleware"
	"meowdrop/backend/models"
	"meowdrop/backend/progress"
	"meowdrop/backend/store"
	"meowdrop/backend/utils"
)

type ProjectController struct {
	Projects *store.ProjectStore
	Tracker  *progress.Tracker
	Cfg      *config.Config
	Logger   *zap.Logger
}

func NewProjectController(projects *store.ProjectStore, tracker *progress.Tracker, cfg *config.Config, logger *zap.Logger) *ProjectController {
	return &ProjectController{Projects: projects, Tracker: tracker, Cfg: cfg, Logger: logger}
}

// ListProjects godoc
// @Summary List projects
// @Description Returns the caller's projects, newest first, with today's progress
// @Tags projects
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /projects [get]
func (pc *ProjectController) ListProjects(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	projects, err := pc.Projects.ListByUser(c.UserContext(), userID)
	if err != nil {
		pc.Logger.Error("list projects", zap.String("user_id", userID), zap.Error(err))
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]models.ProjectWithProgress, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		result = append(result, models.ProjectWithProgress{
			Project:  p,
			Progress: pc.Tracker.Summary(c.UserContext(), p),
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// GetProject godoc
// @Summary Get project
// @Description Returns one project with today's progress
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /projects/{id} [get]
func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	p, err := pc.loadProject(c)
	if p == nil {
		return err
	}

	return utils.Success(c, fiber.StatusOK, models.ProjectWithProgress{
		Project:  p,
		Progress: pc.Tracker.Summary(c.UserContext(), p),
	})
}

// CreateProject godoc
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body ProjectInput true "Project data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /projects [post]
func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	input, err := parseProjectInput(c)
	if err != nil || input == nil {
		return err
	}

	p := &models.Project{UserID: middleware.CurrentUserID(c)}
	input.Apply(p)

	if err := pc.Projects.Create(c.UserContext(), p); err != nil {
		pc.Logger.Error("create project", zap.String("user_id", p.UserID), zap.Error(err))
		return utils.InternalServerError(c, "Could not create project")
	}

	return utils.Created(c, models.ProjectWithProgress{
		Project:  p,
		Progress: pc.Tracker.Summary(c.UserContext(), p),
	})
}

// UpdateProject godoc
// @Summary Update project
// @Description Replaces the editable fields of a project. Task progress is kept.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body ProjectInput true "Project data"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /projects/{id} [put]
func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	input, err := parseProjectInput(c)
	if err != nil || input == nil {
		return err
	}

	p := &models.Project{ID: c.Params("id"), UserID: middleware.CurrentUserID(c)}
	input.Apply(p)

	if err := pc.Projects.Update(c.UserContext(), p); err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			return utils.NotFound(c, "Project not found")
		}
		pc.Logger.Error("update project", zap.String("project_id", p.ID), zap.Error(err))
		return utils.InternalServerError(c, "Could not update project")
	}

	return utils.Success(c, fiber.StatusOK, models.ProjectWithProgress{
		Project:  p,
		Progress: pc.Tracker.Summary(c.UserContext(), p),
	})
}

// DeleteProject godoc
// @Summary Delete project
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /projects/{id} [delete]
func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := pc.Projects.Delete(c.UserContext(), middleware.CurrentUserID(c), id); err != nil {
		if errors.Is(err, store.ErrProjectNotFound) {
			return utils.NotFound(c, "Project not found")
		}
		pc.Logger.Error("delete project", zap.String("project_id", id), zap.Error(err))
		return utils.InternalServerError(c, "Could not delete project")
	}
	return utils.NoContent(c)
}

// loadProject fetches the :id project of the caller. A nil project means the
// error response has been written; the handler returns the error as is.
func (pc *ProjectController) loadProject(c *fiber.Ctx) (*models.Project, error) {
	id := c.Params("id")
	p, err := pc.Projects.Get(c.UserContext(), middleware.CurrentUserID(c), id)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, store.ErrProjectNotFound) {
		return nil, utils.NotFound(c, "Project not found")
	}
	pc.Logger.Error("get project", zap.String("project_id", id), zap.Error(err))
	return nil, utils.InternalServerError(c, "Could not query database")
}

// parseProjectInput decodes, normalizes and validates the request body. A
// nil input with a nil error means a response was already written.
func parseProjectInput(c *fiber.Ctx) (*ProjectInput, error) {
	var input ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return nil, utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Normalize()

	fields, err := utils.ValidateStruct(&input)
	if err != nil {
		return nil, utils.InternalServerError(c, "Could not validate input")
	}
	if len(fields) > 0 {
		return nil, utils.ValidationError(c, fields)
	}
	return &input, nil
}
