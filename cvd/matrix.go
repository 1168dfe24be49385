package cvd

// The dichromat simulation of Viénot, Brettel and Mollon (1999) reduces to a
// single 3x3 matrix per deficiency when applied directly to linear RGB: the
// projection from LMS onto the dichromat's plane is fused with the
// RGB<->LMS transforms of the method.

type Vec3 [3]float64
type Mat3 [3][3]float64

var (
	protanopia = Mat3{
		{0.11238, 0.88762, 0.00000},
		{0.11238, 0.88762, -0.00000},
		{0.00401, -0.00401, 1.00000},
	}
	deuteranopia = Mat3{
		{0.29275, 0.70725, 0.00000},
		{0.29275, 0.70725, -0.00000},
		{-0.02234, 0.02234, 1.00000},
	}
	identity = Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
)

// Matrix returns the linear RGB transform simulating d.
func (d Deficiency) Matrix() Mat3 {
	switch d {
	case Protan:
		return protanopia
	case Deutan:
		return deuteranopia
	}
	return identity
}

func mulMat3Vec(m *Mat3, v Vec3) (ans Vec3) {
	ans[0] = m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2]
	ans[1] = m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2]
	ans[2] = m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2]
	return
}

// clamp01 clamps value to [0,1]
func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

// inGamut checks whether r,g,b are all inside [0,1] (with a small epsilon)
func inGamut(v Vec3) bool {
	const eps = 1e-12
	return v[0] >= -eps && v[1] >= -eps && v[2] >= -eps && v[0] <= 1+eps && v[1] <= 1+eps && v[2] <= 1+eps
}
