package handler

import (
	"net/http"

	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/service"
	"github.com/labstack/echo/v4"
)

// PostMessage serves POST /chats/:id/messages.
func PostMessage(h Handler, messaging *service.MessagingService) echo.HandlerFunc {
	return Handle(h, func(c echo.Context, in *model.PostMessage) (*model.Message, error) {
		return messaging.PostMessage(c.Request().Context(), in)
	}, http.StatusCreated)
}
