package router

import (
	"github.com/deppfellow/agile/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerResource maps the six CRUD endpoints of a single-id resource under
// path.
func registerResource(g *echo.Group, path string, r handler.Routes) {
	g.POST(path, r.Create())
	g.GET(path, r.List())
	g.GET(path+"/:id", r.Get())
	g.GET(path+"/:id/relations", r.GetWithRelations())
	g.PATCH(path+"/:id", r.Update())
	g.DELETE(path+"/:id", r.Delete())
}

// registerPair maps a join table: listPath lists every row, keyPath addresses
// one row by its two ids.
func registerPair(g *echo.Group, listPath, keyPath string, r handler.Routes) {
	g.GET(listPath, r.List())
	g.POST(keyPath, r.Create())
	g.GET(keyPath, r.Get())
	g.GET(keyPath+"/relations", r.GetWithRelations())
	g.PATCH(keyPath, r.Update())
	g.DELETE(keyPath, r.Delete())
}

func registerV1Routes(g *echo.Group, h *handler.Handlers) {
	registerResource(g, "/access-levels", h.AccessLevels)
	registerResource(g, "/access-settings", h.AccessSettings)
	registerResource(g, "/users", h.Users)
	registerResource(g, "/statuses", h.Statuses)
	registerResource(g, "/priorities", h.Priorities)
	registerResource(g, "/projects", h.Projects)
	registerResource(g, "/tasks", h.Tasks)
	registerResource(g, "/chats", h.Chats)
	registerResource(g, "/messages", h.Messages)
	registerResource(g, "/notifications", h.Notifications)
	registerResource(g, "/comments", h.Comments)
	registerResource(g, "/reports", h.Reports)

	registerPair(g, "/access-level-settings",
		"/access-levels/:access_level_id/settings/:access_setting_id", h.AccessLevelSettings)
	registerPair(g, "/project-assignments",
		"/projects/:project_id/assignees/:user_id", h.ProjectAssignments)
	registerPair(g, "/task-assignments",
		"/tasks/:task_id/assignees/:user_id", h.TaskAssignments)

	g.GET("/access-levels/:id/access-settings", h.AccessSettingsForLevel)
	g.POST("/chats/:id/messages", h.PostMessage)
}
