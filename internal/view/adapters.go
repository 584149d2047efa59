// Package view bridges the two component models the pages mix: templ
// components and gomponents nodes.
package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// gomponentComponent lets a gomponents.Node be used where a templ.Component is
// expected.
type gomponentComponent struct {
	node gomponents.Node
}

func (a gomponentComponent) Render(ctx context.Context, w io.Writer) error {
	return a.node.Render(w)
}

// AdaptGomponentToTempl converts a gomponents.Node into a templ.Component.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return gomponentComponent{node: node}
}

// templNode lets a templ.Component be placed inside a gomponents tree. The
// component renders with ctx, since gomponents does not pass one.
type templNode struct {
	ctx       context.Context
	component templ.Component
}

func (a templNode) Render(w io.Writer) error {
	return a.component.Render(a.ctx, w)
}

// AdaptTemplToGomponent converts a templ.Component into a gomponents.Node
// rendered with a background context.
func AdaptTemplToGomponent(component templ.Component) gomponents.Node {
	return AdaptTemplToGomponentContext(context.Background(), component)
}

// AdaptTemplToGomponentContext is AdaptTemplToGomponent with an explicit
// render context.
func AdaptTemplToGomponentContext(ctx context.Context, component templ.Component) gomponents.Node {
	return templNode{ctx: ctx, component: component}
}
