package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"meowdrop/backend/middleware"
	"meowdrop/backend/models"
	"meowdrop/backend/utils"
)

// OptionsController serves the per-user wallet and social type lists offered
// by the project form.
type OptionsController struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewOptionsController(db *gorm.DB, logger *zap.Logger) *OptionsController {
	return &OptionsController{DB: db, Logger: logger}
}

type optionInput struct {
	Name string `json:"name" validate:"required,max=64"`
}

// GetWalletTypes godoc
// @Summary List wallet types
// @Tags options
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /wallet-types [get]
func (oc *OptionsController) GetWalletTypes(c *fiber.Ctx) error {
	return oc.list(c, &models.WalletType{})
}

// AddWalletType godoc
// @Summary Add a wallet type
// @Tags options
// @Accept json
// @Produce json
// @Param option body optionInput true "Wallet type"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /wallet-types [post]
func (oc *OptionsController) AddWalletType(c *fiber.Ctx) error {
	return oc.add(c, func(userID, name string) interface{} {
		return &models.WalletType{UserID: userID, Name: name}
	})
}

// GetSocialTypes godoc
// @Summary List social types
// @Tags options
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /social-types [get]
func (oc *OptionsController) GetSocialTypes(c *fiber.Ctx) error {
	return oc.list(c, &models.SocialType{})
}

// AddSocialType godoc
// @Summary Add a social type
// @Tags options
// @Accept json
// @Produce json
// @Param option body optionInput true "Social type"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /social-types [post]
func (oc *OptionsController) AddSocialType(c *fiber.Ctx) error {
	return oc.add(c, func(userID, name string) interface{} {
		return &models.SocialType{UserID: userID, Name: name}
	})
}

func (oc *OptionsController) list(c *fiber.Ctx, model interface{}) error {
	var names []string
	err := oc.DB.WithContext(c.UserContext()).
		Model(model).
		Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		oc.Logger.Error("list options", zap.Error(err))
		return utils.InternalServerError(c, "Could not query database")
	}
	if names == nil {
		names = []string{}
	}
	return utils.Success(c, fiber.StatusOK, names)
}

func (oc *OptionsController) add(c *fiber.Ctx, build func(userID, name string) interface{}) error {
	var input optionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Name = strings.TrimSpace(input.Name)

	fields, err := utils.ValidateStruct(&input)
	if err != nil {
		return utils.InternalServerError(c, "Could not validate input")
	}
	if len(fields) > 0 {
		return utils.ValidationError(c, fields)
	}

	row := build(middleware.CurrentUserID(c), input.Name)
	err = oc.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
	if err != nil {
		oc.Logger.Error("add option", zap.Error(err))
		return utils.InternalServerError(c, "Could not save option")
	}

	return utils.Created(c, fiber.Map{"name": input.Name})
}
