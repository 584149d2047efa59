package module

import (
	"context"

	"github.com/labstack/echo/v4"
)

// Module is a feature that owns a set of routes and, optionally, background
// work that must be stopped with the server.
type Module interface {
	// Name identifies the module in logs.
	Name() string

	// Boot registers the module's routes on router. It runs once, before the
	// server starts listening.
	Boot(ctx context.Context, router *echo.Group) error

	// Shutdown stops whatever Boot started. It runs after the listener is
	// closed, in reverse boot order.
	Shutdown(ctx context.Context) error
}

// BaseModule gives a module no-op Boot and Shutdown.
type BaseModule struct{}

func (m *BaseModule) Boot(ctx context.Context, router *echo.Group) error { return nil }
func (m *BaseModule) Shutdown(ctx context.Context) error                 { return nil }
