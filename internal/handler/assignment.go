package handler

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/agile/internal/errs"
	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/deppfellow/agile/internal/service"
	"github.com/deppfellow/agile/internal/validation"
	"github.com/labstack/echo/v4"
)

type projectAssignmentKey struct {
	ProjectID int64 `param:"project_id"`
	UserID    int64 `param:"user_id"`
}

func (k *projectAssignmentKey) Validate() error {
	return validatePair("project_id", k.ProjectID, "user_id", k.UserID)
}

type taskAssignmentKey struct {
	TaskID int64 `param:"task_id"`
	UserID int64 `param:"user_id"`
}

func (k *taskAssignmentKey) Validate() error {
	return validatePair("task_id", k.TaskID, "user_id", k.UserID)
}

func validatePair(firstName string, first int64, secondName string, second int64) error {
	var fieldErrs validation.CustomValidationErrors
	if first < 1 {
		fieldErrs = append(fieldErrs, validation.CustomValidationError{Field: firstName, Message: "must be a positive integer"})
	}
	if second < 1 {
		fieldErrs = append(fieldErrs, validation.CustomValidationError{Field: secondName, Message: "must be a positive integer"})
	}
	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}

func assignmentNotFound(kind string, targetID, userID int64) error {
	return errs.NewNotFoundError(fmt.Sprintf("user %d is not assigned to %s %d", userID, kind, targetID), true, nil)
}

// ProjectAssignmentHandler serves /projects/:project_id/assignees/:user_id.
// Assigning and unassigning go through AssignmentService so the user is
// notified.
type ProjectAssignmentHandler struct {
	Handler
	assignments *service.AssignmentService
	repo        *repository.ProjectAssignedRepository
}

func NewProjectAssignmentHandler(h Handler, s *service.AssignmentService, repo *repository.ProjectAssignedRepository) *ProjectAssignmentHandler {
	return &ProjectAssignmentHandler{Handler: h, assignments: s, repo: repo}
}

func (h *ProjectAssignmentHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *model.CreateProjectAssigned) (*model.ProjectAssigned, error) {
		return h.assignments.AssignToProject(c.Request().Context(), in)
	}, http.StatusCreated)
}

func (h *ProjectAssignmentHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *noRequest) ([]model.ProjectAssigned, error) {
		return h.repo.GetAll(c.Request().Context())
	}, http.StatusOK)
}

func (h *ProjectAssignmentHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *projectAssignmentKey) (*model.ProjectAssigned, error) {
		row, err := h.repo.GetByID(c.Request().Context(), in.UserID, in.ProjectID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, assignmentNotFound("project", in.ProjectID, in.UserID)
		}
		return row, nil
	}, http.StatusOK)
}

func (h *ProjectAssignmentHandler) GetWithRelations() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *projectAssignmentKey) (*model.ProjectAssignedWithRelations, error) {
		row, err := h.repo.GetWithRelations(c.Request().Context(), in.UserID, in.ProjectID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, assignmentNotFound("project", in.ProjectID, in.UserID)
		}
		return row, nil
	}, http.StatusOK)
}

func (h *ProjectAssignmentHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *model.UpdateProjectAssigned) (*model.ProjectAssigned, error) {
		projectID, err := validation.ParseID(c, "project_id")
		if err != nil {
			return nil, err
		}
		userID, err := validation.ParseID(c, "user_id")
		if err != nil {
			return nil, err
		}

		ctx := c.Request().Context()
		if err := h.repo.Update(ctx, userID, projectID, in); err != nil {
			return nil, err
		}

		row, err := h.repo.GetByID(ctx, userID, projectID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, assignmentNotFound("project", projectID, userID)
		}
		return row, nil
	}, http.StatusOK)
}

func (h *ProjectAssignmentHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, in *projectAssignmentKey) error {
		return h.assignments.UnassignFromProject(c.Request().Context(), in.UserID, in.ProjectID)
	}, http.StatusNoContent)
}

// TaskAssignmentHandler serves /tasks/:task_id/assignees/:user_id.
type TaskAssignmentHandler struct {
	Handler
	assignments *service.AssignmentService
	repo        *repository.TaskAssignedRepository
}

func NewTaskAssignmentHandler(h Handler, s *service.AssignmentService, repo *repository.TaskAssignedRepository) *TaskAssignmentHandler {
	return &TaskAssignmentHandler{Handler: h, assignments: s, repo: repo}
}

func (h *TaskAssignmentHandler) Create() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *model.CreateTaskAssigned) (*model.TaskAssigned, error) {
		return h.assignments.AssignToTask(c.Request().Context(), in)
	}, http.StatusCreated)
}

func (h *TaskAssignmentHandler) List() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *noRequest) ([]model.TaskAssigned, error) {
		return h.repo.GetAll(c.Request().Context())
	}, http.StatusOK)
}

func (h *TaskAssignmentHandler) Get() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *taskAssignmentKey) (*model.TaskAssigned, error) {
		row, err := h.repo.GetByID(c.Request().Context(), in.UserID, in.TaskID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, assignmentNotFound("task", in.TaskID, in.UserID)
		}
		return row, nil
	}, http.StatusOK)
}

func (h *TaskAssignmentHandler) GetWithRelations() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *taskAssignmentKey) (*model.TaskAssignedWithRelations, error) {
		row, err := h.repo.GetWithRelations(c.Request().Context(), in.UserID, in.TaskID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, assignmentNotFound("task", in.TaskID, in.UserID)
		}
		return row, nil
	}, http.StatusOK)
}

func (h *TaskAssignmentHandler) Update() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, in *model.UpdateTaskAssigned) (*model.TaskAssigned, error) {
		taskID, err := validation.ParseID(c, "task_id")
		if err != nil {
			return nil, err
		}
		userID, err := validation.ParseID(c, "user_id")
		if err != nil {
			return nil, err
		}

		ctx := c.Request().Context()
		if err := h.repo.Update(ctx, userID, taskID, in); err != nil {
			return nil, err
		}

		row, err := h.repo.GetByID(ctx, userID, taskID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, assignmentNotFound("task", taskID, userID)
		}
		return row, nil
	}, http.StatusOK)
}

func (h *TaskAssignmentHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, in *taskAssignmentKey) error {
		return h.assignments.UnassignFromTask(c.Request().Context(), in.UserID, in.TaskID)
	}, http.StatusNoContent)
}
