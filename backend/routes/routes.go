package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"meowdrop/backend/config"
	"meowdrop/backend/controllers"
	"meowdrop/backend/middleware"
	"meowdrop/backend/progress"
	"meowdrop/backend/store"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, tracker *progress.Tracker, logger *zap.Logger) {
	api := app.Group("/api", middleware.AuthMiddleware(cfg))

	// Project routes
	projectController := controllers.NewProjectController(store.NewProjectStore(db), tracker, cfg, logger)
	projects := api.Group("/projects")
	projects.Get("/", projectController.ListProjects)
	projects.Post("/", projectController.CreateProject)
	projects.Get("/:id", projectController.GetProject)
	projects.Put("/:id", projectController.UpdateProject)
	projects.Delete("/:id", projectController.DeleteProject)

	// Progress routes
	progressController := controllers.NewProgressController(projectController)
	projects.Get("/:id/progress", progressController.GetProgress)
	projects.Post("/:id/tasks/:index/toggle", progressController.ToggleTask)

	// Option lists
	optionsController := controllers.NewOptionsController(db, logger)
	api.Get("/wallet-types", optionsController.GetWalletTypes)
	api.Post("/wallet-types", optionsController.AddWalletType)
	api.Get("/social-types", optionsController.GetSocialTypes)
	api.Post("/social-types", optionsController.AddSocialType)
}
