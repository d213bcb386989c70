package vecmath

import "math"

// Mat3 is a 3x3 matrix stored by column, matching the GLM convention that
// Mat3{C0,C1,C2}.MulVec3(v) = C0*v.X + C1*v.Y + C2*v.Z.
type Mat3 struct {
	C0, C1, C2 Vec3
}

// NewMat3FromColumns builds a matrix from its three column vectors.
func NewMat3FromColumns(c0, c1, c2 Vec3) Mat3 { return Mat3{c0, c1, c2} }

// MulVec3 applies the matrix to v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return m.C0.Scale(v.X).Add(m.C1.Scale(v.Y)).Add(m.C2.Scale(v.Z))
}

// Determinant returns det(M).
func (m Mat3) Determinant() float64 {
	return m.C0.X*(m.C1.Y*m.C2.Z-m.C2.Y*m.C1.Z) -
		m.C1.X*(m.C0.Y*m.C2.Z-m.C2.Y*m.C0.Z) +
		m.C2.X*(m.C0.Y*m.C1.Z-m.C1.Y*m.C0.Z)
}

// Inverse returns the matrix inverse. The caller guarantees M is
// non-singular; a degenerate matrix returns the zero matrix.
func (m Mat3) Inverse() Mat3 {
	det := m.Determinant()
	if math.Abs(det) < 1e-20 {
		return Mat3{}
	}
	invDet := 1 / det

	// Cofactor expansion, transposed (adjugate), scaled by 1/det.
	a, b, c := m.C0.X, m.C1.X, m.C2.X
	d, e, f := m.C0.Y, m.C1.Y, m.C2.Y
	g, h, i := m.C0.Z, m.C1.Z, m.C2.Z

	return Mat3{
		C0: Vec3{
			X: (e*i - f*h) * invDet,
			Y: (f*g - d*i) * invDet,
			Z: (d*h - e*g) * invDet,
		},
		C1: Vec3{
			X: (c*h - b*i) * invDet,
			Y: (a*i - c*g) * invDet,
			Z: (b*g - a*h) * invDet,
		},
		C2: Vec3{
			X: (b*f - c*e) * invDet,
			Y: (c*d - a*f) * invDet,
			Z: (a*e - b*d) * invDet,
		},
	}
}

// Add returns the element-wise sum of two matrices.
func (m Mat3) Add(o Mat3) Mat3 {
	return Mat3{m.C0.Add(o.C0), m.C1.Add(o.C1), m.C2.Add(o.C2)}
}

// Scale returns the matrix scaled by a scalar.
func (m Mat3) Scale(k float64) Mat3 {
	return Mat3{m.C0.Scale(k), m.C1.Scale(k), m.C2.Scale(k)}
}

// Identity3 is the 3x3 identity matrix.
var Identity3 = Mat3{C0: Vec3{X: 1}, C1: Vec3{Y: 1}, C2: Vec3{Z: 1}}
