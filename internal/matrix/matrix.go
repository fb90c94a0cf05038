// Package matrix holds stereo downmix coefficients for a channel
// layout and converts between the (left, right) weight pair of a
// channel and its (volume, balance) view.
package matrix

import (
	"github.com/milahu/mpv-downmix-gui/internal/layout"
)

// Weights is the contribution of one input channel to the stereo
// output pair.
type Weights struct {
	Left  float64
	Right float64
}

// Matrix maps every channel of a layout to its stereo weights.
// A Matrix is not safe for concurrent use.
type Matrix struct {
	layout  layout.Layout
	weights map[layout.Role]Weights
}

// New creates a zero matrix for the layout, one entry per channel.
func New(l layout.Layout) *Matrix {
	m := &Matrix{
		layout:  l,
		weights: make(map[layout.Role]Weights, l.Count()),
	}
	for _, r := range l.Channels() {
		m.weights[r] = Weights{}
	}
	return m
}

// Layout returns the layout the matrix was built for.
func (m *Matrix) Layout() layout.Layout {
	return m.layout
}

// Weights returns the stereo weights of a channel. ok is false when
// the role is not part of the layout.
func (m *Matrix) Weights(r layout.Role) (w Weights, ok bool) {
	w, ok = m.weights[r]
	return w, ok
}

// SetWeights replaces the stereo weights of a channel. Roles outside
// the layout are ignored.
func (m *Matrix) SetWeights(r layout.Role, w Weights) {
	if _, ok := m.weights[r]; ok {
		m.weights[r] = w
	}
}

// Volume returns the channel volume, the sum of both weights. ok is
// false when the role is not part of the layout.
func (m *Matrix) Volume(r layout.Role) (v float64, ok bool) {
	w, ok := m.weights[r]
	if !ok {
		return 0, false
	}
	return w.Left + w.Right, true
}

// Balance returns the channel balance (R-L)/(R+L). ok is false when
// the role is not part of the layout or when the weights sum to zero,
// where the balance is undefined.
func (m *Matrix) Balance(r layout.Role) (b float64, ok bool) {
	w, ok := m.weights[r]
	if !ok {
		return 0, false
	}
	sum := w.Left + w.Right
	if sum == 0 {
		return 0, false
	}
	return (w.Right - w.Left) / sum, true
}

// SetVolumeBalance recomputes the weights of one channel from its
// volume and balance view:
//
//	left  = (1 - balance) * volume / 2
//	right = (1 + balance) * volume / 2
//
// Other channels are untouched. Values are not clamped here; range
// limits belong to the controls that produce them.
func (m *Matrix) SetVolumeBalance(r layout.Role, volume, balance float64) {
	m.SetWeights(r, Weights{
		Left:  (1 - balance) * volume / 2,
		Right: (1 + balance) * volume / 2,
	})
}
