package pencil

import "github.com/gogpu/gg"

// Container groups children under a shared transform. It has no geometry
// of its own, so it is never painted and never hit; its children are.
type Container struct {
	*Component
}

// NewContainer creates an empty container at pos.
func NewContainer(pos Position, opts ...Options) *Container {
	c := &Container{}
	c.Component = mustComponent(c, pos, ComponentDefaults(), MergeOptions(opts...))
	return c
}

// Type returns "Container".
func (c *Container) Type() string { return "Container" }

// Trace adds nothing.
func (c *Container) Trace(*gg.Path) {}

func containerFromDefinition(def Definition) (Shape, error) {
	c := &Container{}
	base, err := newComponent(c, def.Position, ComponentDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	c.Component = base
	return c, nil
}
