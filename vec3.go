package trimesh

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a 3D point or direction. It is an alias for mgl64.Vec3 so that
// callers can use the full github.com/go-gl/mathgl vector API (Add, Sub,
// Mul, Dot, Cross, Len, Normalize) directly.
type Vec3 = mgl64.Vec3

// Vec4 is a homogeneous 4-vector: (x, y, z, w). Half-edge tangents and
// PN-triangle control points are stored this way, with w carrying the
// rational Bezier weight.
type Vec4 = mgl64.Vec4

// SafeNormalize returns v normalized to unit length, or the zero vector if
// v has zero (or near-zero) length. Mirrors the source library's
// SafeNormalize, used throughout to avoid propagating NaN from a
// degenerate edge or normal.
func SafeNormalize(v Vec3) Vec3 {
	l := v.Len()
	if l < 1e-24 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// homogeneous lifts a 3-point to homogeneous form with weight 1.
func homogeneous(v Vec3) Vec4 {
	return Vec4{v[0], v[1], v[2], 1}
}

// homogeneousWeighted scales the vector part of a (point, weight) pair by
// its own weight, converting a geometric weighted point into the raw
// homogeneous form used inside a rational Bezier control net.
func homogeneousWeighted(v Vec4) Vec4 {
	return Vec4{v[0] * v[3], v[1] * v[3], v[2] * v[3], v[3]}
}

// hNormalize converts a homogeneous 4-vector back to a geometric 3-point by
// dividing through by w. A zero weight (the form a zero tangent takes) is
// returned as its vector part unchanged rather than divided.
func hNormalize(v Vec4) Vec3 {
	if v[3] == 0 {
		return Vec3{v[0], v[1], v[2]}
	}
	return Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}

// vec4XYZ extracts the vector part of a homogeneous 4-vector, discarding w.
func vec4XYZ(v Vec4) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// mixVec4 linearly interpolates two homogeneous 4-vectors.
func mixVec4(a, b Vec4, t float64) Vec4 {
	return Vec4{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}

// mixVec3 linearly interpolates two 3-vectors.
func mixVec3(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// orthogonalTo removes the component of in parallel to ref (which must be
// unit length), returning the part of in orthogonal to ref.
func orthogonalTo(in, ref Vec3) Vec3 {
	return in.Sub(ref.Mul(in.Dot(ref)))
}
