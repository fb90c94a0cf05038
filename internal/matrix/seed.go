package matrix

import (
	"github.com/milahu/mpv-downmix-gui/internal/layout"
)

// Reference downmix gains per RFC 7845 section 5.1.1.5.
//
// The RFC's published matrices follow from a fixed gain per role,
// normalized per layout: front left/right contribute only to their
// own side at full gain, center and LFE contribute 1/sqrt(2) to both
// sides, a left/right surround pair contributes sqrt(3)/2 to its own
// side and 1/2 to the other, and back center contributes
// sqrt(3)/2 * 1/sqrt(2) to both sides.
const (
	gainFull       = 1.0
	gainCenter     = 0.7071067811865476 // 1/sqrt(2)
	gainLFE        = 0.7071067811865476
	gainPairNear   = 0.8660254037844386 // sqrt(3)/2
	gainPairFar    = 0.5
	gainBackCenter = 0.6123724356957945 // sqrt(6)/4
)

// rawWeights is the unnormalized contribution of a role to the
// stereo pair.
func rawWeights(r layout.Role) Weights {
	switch r {
	case layout.FL:
		return Weights{Left: gainFull}
	case layout.FR:
		return Weights{Right: gainFull}
	case layout.FC:
		return Weights{Left: gainCenter, Right: gainCenter}
	case layout.LFE:
		return Weights{Left: gainLFE, Right: gainLFE}
	case layout.SL, layout.BL:
		return Weights{Left: gainPairNear, Right: gainPairFar}
	case layout.SR, layout.BR:
		return Weights{Left: gainPairFar, Right: gainPairNear}
	case layout.BC:
		return Weights{Left: gainBackCenter, Right: gainBackCenter}
	}
	return Weights{}
}

// SeedReference builds the reference stereo downmix matrix for a
// layout following the RFC 7845 section 5.1.1.5 procedure: raw gains
// per role, then a per-layout scale so that each output row sums to 1
// for layouts up to 4 channels and to 2 for 5 channels and more.
// This reproduces the matrices published in the RFC for the layouts
// it covers (3.0 through 7.1) and extends the same rule to the rest
// of the grid-representable layouts.
//
// Deterministic: seeding the same layout twice yields bit-identical
// matrices.
func SeedReference(l layout.Layout) *Matrix {
	m := New(l)
	roles := l.Channels()
	if len(roles) == 0 {
		return m
	}

	// By left/right symmetry both rows have the same sum, so the
	// left row is enough.
	rowSum := 0.0
	for _, r := range roles {
		rowSum += rawWeights(r).Left
	}
	if rowSum == 0 {
		return m
	}

	target := 1.0
	if len(roles) >= 5 {
		target = 2.0
	}
	scale := target / rowSum

	for _, r := range roles {
		raw := rawWeights(r)
		m.SetWeights(r, Weights{
			Left:  raw.Left * scale,
			Right: raw.Right * scale,
		})
	}
	return m
}

// InvSqrt2 is 1/sqrt(2), the center and LFE gain before
// normalization.
const InvSqrt2 = gainCenter
