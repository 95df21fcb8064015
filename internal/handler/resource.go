package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/deppfellow/agile/internal/errs"
	"github.com/deppfellow/agile/internal/validation"
	"github.com/labstack/echo/v4"
)

// idRequest carries the :id path parameter of single-row endpoints.
type idRequest struct {
	ID int64 `param:"id"`
}

func (r *idRequest) Validate() error {
	if r.ID < 1 {
		return validation.CustomValidationErrors{{Field: "id", Message: "must be a positive integer"}}
	}
	return nil
}

// noRequest is the payload of endpoints that take no input.
type noRequest struct{}

func (r *noRequest) Validate() error {
	return nil
}

// crudRepository is the repository surface of a table keyed by a single id.
type crudRepository[T, PC, PU, R any] interface {
	Create(ctx context.Context, in PC) (*T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	GetWithRelations(ctx context.Context, id int64) (*R, error)
	Update(ctx context.Context, id int64, in PU) error
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]T, error)
}

// Routes is implemented by handlers that expose the six CRUD endpoints of a
// resource.
type Routes interface {
	Create() echo.HandlerFunc
	List() echo.HandlerFunc
	Get() echo.HandlerFunc
	GetWithRelations() echo.HandlerFunc
	Update() echo.HandlerFunc
	Delete() echo.HandlerFunc
}

// ResourceHandler serves a single-id table straight from its repository.
// T is the row, C and U the create and update payloads, R the row with its
// relations.
type ResourceHandler[T, C any, PC Validatable[C], U any, PU Validatable[U], R any] struct {
	Handler
	name string
	repo crudRepository[T, PC, PU, R]
}

func NewResourceHandler[T, C any, PC Validatable[C], U any, PU Validatable[U], R any](
	h Handler,
	name string,
	repo crudRepository[T, PC, PU, R],
) *ResourceHandler[T, C, PC, U, PU, R] {
	return &ResourceHandler[T, C, PC, U, PU, R]{Handler: h, name: name, repo: repo}
}

func (h *ResourceHandler[T, C, PC, U, PU, R]) notFound(id int64) error {
	return errs.NewNotFoundError(fmt.Sprintf("%s %d not found", h.name, id), true, nil)
}

func (h *ResourceHandler[T, C, PC, U, PU, R]) Create() echo.HandlerFunc {
	return Handle[C, PC, *T](h.Handler, func(c echo.Context, in PC) (*T, error) {
		return h.repo.Create(c.Request().Context(), in)
	}, http.StatusCreated)
}

func (h *ResourceHandler[T, C, PC, U, PU, R]) List() echo.HandlerFunc {
	return Handle[noRequest, *noRequest, []T](h.Handler, func(c echo.Context, _ *noRequest) ([]T, error) {
		rows, err := h.repo.GetAll(c.Request().Context())
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []T{}
		}
		return rows, nil
	}, http.StatusOK)
}

func (h *ResourceHandler[T, C, PC, U, PU, R]) Get() echo.HandlerFunc {
	return Handle[idRequest, *idRequest, *T](h.Handler, func(c echo.Context, in *idRequest) (*T, error) {
		row, err := h.repo.GetByID(c.Request().Context(), in.ID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, h.notFound(in.ID)
		}
		return row, nil
	}, http.StatusOK)
}

func (h *ResourceHandler[T, C, PC, U, PU, R]) GetWithRelations() echo.HandlerFunc {
	return Handle[idRequest, *idRequest, *R](h.Handler, func(c echo.Context, in *idRequest) (*R, error) {
		row, err := h.repo.GetWithRelations(c.Request().Context(), in.ID)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, h.notFound(in.ID)
		}
		return row, nil
	}, http.StatusOK)
}

// Update applies a partial update and answers with the row as stored.
func (h *ResourceHandler[T, C, PC, U, PU, R]) Update() echo.HandlerFunc {
	return Handle[U, PU, *T](h.Handler, func(c echo.Context, in PU) (*T, error) {
		id, err := validation.ParseID(c, "id")
		if err != nil {
			return nil, err
		}

		ctx := c.Request().Context()
		if err := h.repo.Update(ctx, id, in); err != nil {
			return nil, err
		}

		row, err := h.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, h.notFound(id)
		}
		return row, nil
	}, http.StatusOK)
}

// Delete answers 204 whether or not the row existed.
func (h *ResourceHandler[T, C, PC, U, PU, R]) Delete() echo.HandlerFunc {
	return HandleNoContent[idRequest, *idRequest](h.Handler, func(c echo.Context, in *idRequest) error {
		return h.repo.Delete(c.Request().Context(), in.ID)
	}, http.StatusNoContent)
}
