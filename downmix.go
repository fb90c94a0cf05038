package downmix

import (
	"fmt"

	"github.com/milahu/mpv-downmix-gui/internal/layout"
	"github.com/milahu/mpv-downmix-gui/internal/matrix"
	"github.com/milahu/mpv-downmix-gui/internal/pan"
)

// Role is a semantic speaker position.
type Role = layout.Role

// Channel roles.
const (
	FL  = layout.FL
	FR  = layout.FR
	FC  = layout.FC
	LFE = layout.LFE
	BL  = layout.BL
	BR  = layout.BR
	SL  = layout.SL
	SR  = layout.SR
	BC  = layout.BC
)

// Layout is a named multichannel speaker configuration.
type Layout = layout.Layout

// Weights is the contribution of one input channel to the stereo
// output pair.
type Weights = matrix.Weights

// Matrix maps every channel of a layout to its stereo weights.
type Matrix = matrix.Matrix

// FilterPrefix starts every rendered filter expression. Callers can
// rely on it when rewrapping the expression in transport quoting.
const FilterPrefix = pan.Prefix

// Resolve looks up a channel layout by its mpv/ffmpeg name, with
// alias resolution (for example "5.1(alsa)" resolves to "5.1", which
// carries the same channel set in a different wire order).
//
// Unknown names yield ErrUnknownLayout. Names of known layouts whose
// channel set does not fit the 3x3 speaker grid (wide, front-pair or
// top channel layouts such as "7.1(wide)") yield
// ErrUnrepresentableLayout; channels are never silently dropped.
func Resolve(name string) (Layout, error) {
	l, known, representable := layout.Lookup(name)
	if !known {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	if !representable {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnrepresentableLayout, name)
	}
	return l, nil
}

// SeedReference builds the reference stereo downmix matrix for a
// layout per RFC 7845 section 5.1.1.5.
func SeedReference(l Layout) *Matrix {
	return matrix.SeedReference(l)
}

// Render serializes a matrix as an ffmpeg pan filter expression.
// The result always starts with FilterPrefix.
func Render(m *Matrix) string {
	return pan.Render(m)
}
