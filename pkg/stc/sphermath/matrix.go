package sphermath

import "math"

// Mat3 is a 3x3 matrix in row-major order.
type Mat3 [3][3]float64

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Apply returns m·v.
func (m Mat3) Apply(v Vec3) Vec3 {
	var out Vec3
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

// Mul returns m·n, the rotation that applies n first and then m.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return out
}

// Transpose returns mᵀ, the inverse of a pure rotation.
func (m Mat3) Transpose() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// Det returns the determinant.
func (m Mat3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns m⁻¹ by cofactors. The FK4 to FK5 matrix is not exactly
// orthogonal, so its inverse is not its transpose.
func (m Mat3) Inverse() Mat3 {
	det := m.Det()
	var out Mat3
	out[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) / det
	out[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) / det
	out[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det
	out[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) / det
	out[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det
	out[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) / det
	out[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) / det
	out[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) / det
	out[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det
	return out
}

// IsIdentity reports whether every element is within tol of the identity.
func (m Mat3) IsIdentity(tol float64) bool {
	id := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m[i][j]-id[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// RotX rotates the coordinate axes by angle radians about x.
func RotX(angle float64) Mat3 {
	s, c := math.Sincos(angle)
	return Mat3{{1, 0, 0}, {0, c, s}, {0, -s, c}}
}

// RotY rotates the coordinate axes by angle radians about y.
func RotY(angle float64) Mat3 {
	s, c := math.Sincos(angle)
	return Mat3{{c, 0, -s}, {0, 1, 0}, {s, 0, c}}
}

// RotZ rotates the coordinate axes by angle radians about z.
func RotZ(angle float64) Mat3 {
	s, c := math.Sincos(angle)
	return Mat3{{c, s, 0}, {-s, c, 0}, {0, 0, 1}}
}

// FromAxes builds the matrix whose rows are the new x, y and z axes
// expressed in the old frame.
func FromAxes(x, y, z Vec3) Mat3 {
	return Mat3{x, y, z}
}
