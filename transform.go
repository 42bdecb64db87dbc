package pencil

import (
	"math"

	"github.com/gogpu/gg"
)

// Matrix is a 2D affine transform stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// IdentityMatrix is the identity transform.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// Translation returns a matrix translating by p.
func Translation(p Position) Matrix {
	return Matrix{1, 0, 0, 1, p.X, p.Y}
}

// Rotation returns a matrix rotating by turns around the origin.
func Rotation(turns float64) Matrix {
	sin, cos := math.Sincos(turnsToRadians(turns))
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Scaling returns a matrix scaling by s.X and s.Y.
func Scaling(s Position) Matrix {
	return Matrix{s.X, 0, 0, s.Y, 0, 0}
}

// Multiply returns m * child, applying child first.
func (m Matrix) Multiply(c Matrix) Matrix {
	return Matrix{
		m[0]*c[0] + m[2]*c[1],
		m[1]*c[0] + m[3]*c[1],
		m[0]*c[2] + m[2]*c[3],
		m[1]*c[2] + m[3]*c[3],
		m[0]*c[4] + m[2]*c[5] + m[4],
		m[1]*c[4] + m[3]*c[5] + m[5],
	}
}

// Invert returns the inverse of m, or the identity if m is singular.
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p Position) Position {
	return Position{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// ApplyVector transforms a direction, ignoring translation.
func (m Matrix) ApplyVector(v Position) Position {
	return Position{m[0]*v.X + m[2]*v.Y, m[1]*v.X + m[3]*v.Y}
}

// ScaleFactor returns the average axis scale of m, used to scale stroke
// widths and font sizes on surfaces that cannot transform them.
func (m Matrix) ScaleFactor() float64 {
	sx := math.Hypot(m[0], m[1])
	sy := math.Hypot(m[2], m[3])
	return (sx + sy) / 2
}

// IsIdentity reports whether m is the identity within epsilon.
func (m Matrix) IsIdentity() bool {
	for i := range m {
		if !Equals(m[i], IdentityMatrix[i]) {
			return false
		}
	}
	return true
}

// gg converts to the row-major layout used by github.com/gogpu/gg.
func (m Matrix) gg() gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}

// LocalTransform composes the component's own position, rotation (around
// the rotationCenter option) and scale:
//
//	T(position) * T(center) * R(rotation) * T(-center) * S(scale)
func (c *Component) LocalTransform() Matrix {
	m := Translation(c.position)
	if c.rotation != 0 {
		rc := c.options.Position(OptRotationCenter)
		m = m.Multiply(Translation(rc)).
			Multiply(Rotation(c.rotation)).
			Multiply(Translation(rc.Scale(-1)))
	}
	if c.scale != (Position{1, 1}) {
		m = m.Multiply(Scaling(c.scale))
	}
	return m
}

// AbsoluteTransform composes local transforms from the root down to c.
// It is recomputed on every call.
func (c *Component) AbsoluteTransform() Matrix {
	if c.parent == nil {
		return c.LocalTransform()
	}
	return c.parent.AbsoluteTransform().Multiply(c.LocalTransform())
}

// AbsolutePosition returns the scene coordinates of c's local origin.
func (c *Component) AbsolutePosition() Position {
	return c.AbsoluteTransform().Apply(Position{})
}

// ToLocal converts a scene point into c's local frame.
func (c *Component) ToLocal(abs Position) Position {
	return c.AbsoluteTransform().Invert().Apply(abs)
}

// ToAbsolute converts a point in c's local frame into scene coordinates.
func (c *Component) ToAbsolute(local Position) Position {
	return c.AbsoluteTransform().Apply(local)
}
