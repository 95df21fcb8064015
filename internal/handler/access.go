package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/deppfellow/agile/internal/errs"
	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/deppfellow/agile/internal/validation"
	"github.com/labstack/echo/v4"
)

type accessLevelSettingKey struct {
	AccessLevelID   int64 `param:"access_level_id"`
	AccessSettingID int64 `param:"access_setting_id"`
}

func (k *accessLevelSettingKey) Validate() error {
	var fieldErrs validation.CustomValidationErrors
	if k.AccessLevelID < 1 {
		fieldErrs = append(fieldErrs, validation.CustomValidationError{Field: "access_level_id", Message: "must be a positive integer"})
	}
	if k.AccessSettingID < 1 {
		fieldErrs = append(fieldErrs, validation.CustomValidationError{Field: "access_setting_id", Message: "must be a positive integer"})
	}
	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}

// AccessLevelSettingHandler serves the access_level_settings join table,
// addressed by (access level, access setting).
type AccessLevelSettingHandler struct {
	Handler
	repo *repository.AccessLevelSettingRepository
}

func NewAccessLevelSettingHandler(h Handler, repo *repository.AccessLevelSettingRepository) *AccessLevelSettingHandler {
	return &AccessLevelSettingHandler{Handler: h, repo: repo}
}

func accessLevelSettingNotFound(levelID, settingID int64) error {
	return errs.NewNotFoundError(
		fmt.Sprintf("access level setting (%d, %d) not found", levelID, settingID), true, nil)
}

func (h *AccessLevelSettingHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *model.CreateAccessLevelSetting) (*model.AccessLevelSetting, error) {
		return h.repo.Create(c.Request().Context(), in)
	}, http.StatusCreated)
}

func (h *AccessLevelSettingHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *noRequest) ([]model.AccessLevelSetting, error) {
		return h.repo.GetAll(c.Request().Context())
	}, http.StatusOK)
}

func (h *AccessLevelSettingHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *accessLevelSettingKey) (*model.AccessLevelSetting, error) {
		row, err := h.repo.GetByID(c.Request().Context(), in.AccessLevelID, in.AccessSettingID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, accessLevelSettingNotFound(in.AccessLevelID, in.AccessSettingID)
		}
		return row, nil
	}, http.StatusOK)
}

func (h *AccessLevelSettingHandler) GetWithRelations() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *accessLevelSettingKey) (*model.AccessLevelSettingWithRelations, error) {
		row, err := h.repo.GetWithRelations(c.Request().Context(), in.AccessLevelID, in.AccessSettingID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, accessLevelSettingNotFound(in.AccessLevelID, in.AccessSettingID)
		}
		return row, nil
	}, http.StatusOK)
}

func (h *AccessLevelSettingHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *model.UpdateAccessLevelSetting) (*model.AccessLevelSetting, error) {
		levelID, err := validation.ParseID(c, "access_level_id")
		if err != nil {
			return nil, err
		}
		settingID, err := validation.ParseID(c, "access_setting_id")
		if err != nil {
			return nil, err
		}

		ctx := c.Request().Context()
		if err := h.repo.Update(ctx, levelID, settingID, in); err != nil {
			return nil, err
		}

		row, err := h.repo.GetByID(ctx, levelID, settingID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, accessLevelSettingNotFound(levelID, settingID)
		}
		return row, nil
	}, http.StatusOK)
}

func (h *AccessLevelSettingHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, in *accessLevelSettingKey) error {
		return h.repo.Delete(c.Request().Context(), in.AccessLevelID, in.AccessSettingID)
	}, http.StatusNoContent)
}

// AccessSettingsForLevel exposes AccessSettingRepository.GetForAccessLevel.
// The repository always refuses it, so the endpoint answers 501 for any :id,
// including ones that are not numbers.
func AccessSettingsForLevel(h Handler, repo *repository.AccessSettingRepository) echo.HandlerFunc {
	return Handle(h, func(c echo.Context, _ *noRequest) ([]model.AccessSetting, error) {
		levelID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		return repo.GetForAccessLevel(c.Request().Context(), levelID)
	}, http.StatusOK)
}
