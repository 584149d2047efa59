package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/fatura/internal/config"
	"github.com/nfrund/fatura/internal/handlers"
	"github.com/nfrund/fatura/internal/middleware"
	"github.com/nfrund/fatura/internal/module"
	"github.com/nfrund/fatura/internal/rendering"
	"github.com/nfrund/fatura/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E       *echo.Echo
	Cfg     config.Provider
	modules []module.Module
}

// Dependencies holds what the server is assembled from.
type Dependencies struct {
	Config   config.Provider
	Renderer *rendering.UniversalRenderer
	Modules  []module.Module
}

// New creates a new Server instance with its middleware chain, error handler
// and static assets in place. Routes are added by RegisterRoutes.
func New(deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.Renderer = deps.Renderer

	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())

	setupErrorHandling(e)

	// Serve the embedded stylesheet and script.
	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:       e,
		Cfg:     deps.Config,
		modules: deps.Modules,
	}
}
