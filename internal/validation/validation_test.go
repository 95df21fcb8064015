package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/agile/internal/errs"
	"github.com/deppfellow/agile/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidateOK(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":"John","email":"john@example.com","role_id":1}`)

	var payload model.CreateUser
	require.NoError(t, BindAndValidate(c, &payload))
	assert.Equal(t, int64(1), payload.RoleID)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":"John","email":"nope"}`)

	var payload model.CreateUser
	err := BindAndValidate(c, &payload)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "email", Error: "must be a valid email address"},
		{Field: "role_id", Error: "is required"},
	}, httpErr.Errors)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	c := newContext(http.MethodPost, `{"name":`)

	var payload model.CreateUser
	err := BindAndValidate(c, &payload)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
}

func TestCustomValidationErrors(t *testing.T) {
	msg, fields := extractValidationError(CustomValidationErrors{{Field: "chat", Message: "must reference a project or a task"}})
	assert.Equal(t, "Validation failed", msg)
	assert.Equal(t, []errs.FieldError{{Field: "chat", Error: "must reference a project or a task"}}, fields)
}

func TestParseID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")

	c.SetParamValues("42")
	id, err := ParseID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		c.SetParamValues(bad)
		_, err := ParseID(c, "id")
		assert.Error(t, err, bad)
	}
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "role_id", toSnakeCase("RoleID"))
	assert.Equal(t, "start_date", toSnakeCase("StartDate"))
	assert.Equal(t, "email", toSnakeCase("Email"))
	assert.Equal(t, "access_level_id", toSnakeCase("AccessLevelID"))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("4f7e8a1c-2b3d-4e5f-8a9b-0c1d2e3f4a5b"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("4f7e8a1c-2b3d-4e5f-8a9b-0c1d2e3f4a5"))
	assert.False(t, IsValidUUID(""))
}
