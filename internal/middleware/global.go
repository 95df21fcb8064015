package middleware

import (
	"net/http"

	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/errs"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/deppfellow/agile/internal/server"
	"github.com/deppfellow/agile/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware every route gets and the global
// error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS allows the origins listed in server.cors_allowed_origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" line per request, at error level for 5xx
// and warn for 4xx.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler has not written the response yet when a
			// handler returns an error, so derive the status from the error.
			// See https://github.com/labstack/echo/issues/2310
			if v.Error != nil {
				statusCode = StatusFromError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns a panic in a handler into an error for GlobalErrorHandler,
// so one bad request cannot take the process down. It is installed last so
// it wraps the handler directly.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure sets echo's default protective headers (X-XSS-Protection,
// X-Content-Type-Options, X-Frame-Options).
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// toHTTPError turns any error a handler returns into an *errs.HTTPError.
//
//   - *errs.HTTPError passes through
//   - repository.ErrNotApplicable becomes 501
//   - database.ErrPoolTimeout becomes 503
//   - an echo 404 becomes "Route not found"; other echo errors keep their status
//   - database errors go through sqlerr.HandleError
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	if errors.Is(err, repository.ErrNotApplicable) {
		return errs.NewNotImplementedError("This lookup is not supported: access settings are linked to access levels only through access level settings")
	}

	if errors.Is(err, database.ErrPoolTimeout) {
		return errs.NewServiceUnavailableError("The database is busy, try again shortly")
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", false, nil)
		}

		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	converted := sqlerr.HandleError(err)
	if errors.As(converted, &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// StatusFromError is the HTTP status GlobalErrorHandler answers err with.
//
// Handlers use it to pick a log level before the error reaches the global
// handler: anything below 500 is a client problem.
func StatusFromError(err error) int {
	return toHTTPError(err).Status
}

// GlobalErrorHandler is the single place errors become responses. The
// original error is logged; the client gets the sanitized HTTPError.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	logger := *GetLogger(c)

	event := logger.Warn()
	if httpErr.Status >= 500 {
		event = logger.Error().Stack()
	}
	event.
		Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if !c.Response().Committed {
		_ = c.JSON(httpErr.Status, httpErr)
	}
}
