package pencil

import (
	"encoding/json"
	"fmt"
	"math"
)

// Position is a 2D point or vector. It is a value type: operations return a
// new Position and never modify the receiver.
type Position struct {
	X, Y float64
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y float64) Position {
	return Position{X: x, Y: y}
}

// Add returns p + q.
func (p Position) Add(q Position) Position {
	return Position{p.X + q.X, p.Y + q.Y}
}

// AddScalar adds v to both coordinates.
func (p Position) AddScalar(v float64) Position {
	return Position{p.X + v, p.Y + v}
}

// Subtract returns p - q.
func (p Position) Subtract(q Position) Position {
	return Position{p.X - q.X, p.Y - q.Y}
}

// Multiply multiplies coordinates component-wise.
func (p Position) Multiply(q Position) Position {
	return Position{p.X * q.X, p.Y * q.Y}
}

// Scale multiplies both coordinates by v.
func (p Position) Scale(v float64) Position {
	return Position{p.X * v, p.Y * v}
}

// Divide divides coordinates component-wise. A zero divisor yields zero for
// that coordinate instead of an infinity.
func (p Position) Divide(q Position) Position {
	return Position{safeDiv(p.X, q.X), safeDiv(p.Y, q.Y)}
}

// Modulo applies Modulo component-wise.
func (p Position) Modulo(q Position) Position {
	return Position{Modulo(p.X, q.X), Modulo(p.Y, q.Y)}
}

// Rotate rotates p by turns around center.
func (p Position) Rotate(turns float64, center Position) Position {
	if turns == 0 {
		return p
	}
	sin, cos := math.Sincos(turnsToRadians(turns))
	dx, dy := p.X-center.X, p.Y-center.Y
	return Position{
		X: dx*cos - dy*sin + center.X,
		Y: dx*sin + dy*cos + center.Y,
	}
}

// Constrain clamps p inside the box spanned by min and max.
func (p Position) Constrain(min, max Position) Position {
	return Position{Clamp(p.X, min.X, max.X), Clamp(p.Y, min.Y, max.Y)}
}

// Lerp interpolates between p and q.
func (p Position) Lerp(q Position, ratio float64) Position {
	return Position{Lerp(p.X, q.X, ratio), Lerp(p.Y, q.Y, ratio)}
}

// Distance returns the euclidean distance between p and q.
func (p Position) Distance(q Position) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Length returns the distance from the origin.
func (p Position) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dot returns the dot product of p and q.
func (p Position) Dot(q Position) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3D cross product of p and q.
func (p Position) Cross(q Position) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Round rounds both coordinates to the nearest integer.
func (p Position) Round() Position {
	return Position{math.Round(p.X), math.Round(p.Y)}
}

// Clone returns a copy of p. Position is a value, so this is only useful to
// make intent explicit at call sites that store the result.
func (p Position) Clone() Position {
	return p
}

// Equals reports whether p and q are equal within epsilon.
func (p Position) Equals(q Position) bool {
	return Equals(p.X, q.X) && Equals(p.Y, q.Y)
}

// IsFinite reports whether both coordinates are finite.
func (p Position) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("[%g, %g]", p.X, p.Y)
}

// MarshalJSON encodes p as a two-element array.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON accepts [x, y] or {"x": .., "y": ..}.
func (p *Position) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, ok := toPosition(raw)
	if !ok {
		return fmt.Errorf("pencil: cannot decode position from %s", data)
	}
	*p = v
	return nil
}

// MarshalYAML encodes p as a two-element sequence.
func (p Position) MarshalYAML() (any, error) {
	return []float64{p.X, p.Y}, nil
}

// UnmarshalYAML accepts [x, y] or {x: .., y: ..}.
func (p *Position) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	v, ok := toPosition(raw)
	if !ok {
		return fmt.Errorf("pencil: cannot decode position from %v", raw)
	}
	*p = v
	return nil
}

// toPosition converts loosely typed decoded data into a Position.
func toPosition(v any) (Position, bool) {
	switch t := v.(type) {
	case Position:
		return t, true
	case *Position:
		if t == nil {
			return Position{}, false
		}
		return *t, true
	case [2]float64:
		return Position{t[0], t[1]}, true
	case []float64:
		if len(t) != 2 {
			return Position{}, false
		}
		return Position{t[0], t[1]}, true
	case []any:
		if len(t) != 2 {
			return Position{}, false
		}
		x, okX := toFloat(t[0])
		y, okY := toFloat(t[1])
		return Position{x, y}, okX && okY
	case map[string]any:
		x, okX := toFloat(t["x"])
		y, okY := toFloat(t["y"])
		return Position{x, y}, okX && okY
	case Options:
		return toPosition(map[string]any(t))
	}
	return Position{}, false
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
