package types

import (
	"golang.org/x/image/math/f32"
)

// Matrices are stored in row-major order.
type Mat4 f32.Mat4

const floatCmpEpsilon float32 = 1e-7

// Create an identity matrix.
func Ident4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Create a translation matrix.
func Translate4(offset Vec3) Mat4 {
	m := Ident4()
	m[3] = offset[0]
	m[7] = offset[1]
	m[11] = offset[2]
	return m
}

// Multiply two 4x4 matrices.
func (m Mat4) Mul4(m2 Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * m2[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// Transform a point by the matrix. The point is implicitly treated as
// a Vec4 with w=1 and the result is de-homogenized back to a Vec3.
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// Transform a direction by the matrix ignoring any translation.
func (m Mat4) TransformDirection(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2],
	}
}
