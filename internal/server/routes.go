package server

import (
	"context"
	"fmt"

	"github.com/nfrund/fatura/internal/handlers"
)

// RegisterRoutes sets up the framework routes and boots every module.
func (s *Server) RegisterRoutes(ctx context.Context) error {
	s.E.GET("/health", handlers.HealthGet)

	root := s.E.Group("")
	for _, m := range s.modules {
		if err := m.Boot(ctx, root); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
	}
	return nil
}
