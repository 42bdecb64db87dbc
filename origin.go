package pencil

import "fmt"

// Named origins, as fractions of the shape's box. The offset applied to the
// geometry is the negated anchor, so "center" puts (0, 0) in the middle.
var namedOrigins = map[string]Position{
	"topLeft":      {0, 0},
	"topCenter":    {0.5, 0},
	"topRight":     {1, 0},
	"centerLeft":   {0, 0.5},
	"center":       {0.5, 0.5},
	"centerRight":  {1, 0.5},
	"bottomLeft":   {0, 1},
	"bottomCenter": {0.5, 1},
	"bottomRight":  {1, 1},
}

// origin is either a named anchor (fractions of the box) or an explicit
// offset in local units.
type origin struct {
	anchor   Position
	explicit bool
	offset   Position
}

func parseOrigin(v any) (origin, error) {
	if s, ok := v.(string); ok {
		a, known := namedOrigins[s]
		if !known {
			return origin{}, fmt.Errorf("unknown origin %q", s)
		}
		return origin{anchor: a}, nil
	}
	if p, ok := toPosition(v); ok {
		if !p.IsFinite() {
			return origin{}, fmt.Errorf("origin %v is not finite", p)
		}
		return origin{explicit: true, offset: p}, nil
	}
	return origin{}, fmt.Errorf("origin must be a name or an [x, y] pair, got %T", v)
}

// OriginOffset returns the translation applied to the traced geometry so
// that the origin option lands on the component's position. Shapes without
// a box are never shifted.
func (c *Component) OriginOffset() Position {
	boxed, ok := c.variant.(Boxed)
	if !ok {
		return Position{}
	}
	o, err := parseOrigin(c.options[OptOrigin])
	if err != nil {
		return Position{}
	}
	if o.explicit {
		return o.offset
	}
	w, h := boxed.Size()
	w, h = max(w, 0), max(h, 0)
	return Position{-o.anchor.X * w, -o.anchor.Y * h}
}
