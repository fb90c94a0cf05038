// Package pan renders a downmix coefficient matrix as an ffmpeg pan
// filter expression, the grammar mpv's af option parses:
//
//	pan=stereo|FL=<in>*<w>+...|FR=<in>*<w>+...
//
// See https://ffmpeg.org/ffmpeg-filters.html#pan-1
package pan

import (
	"strconv"
	"strings"

	"github.com/milahu/mpv-downmix-gui/internal/matrix"
)

// Prefix starts every rendered expression. Callers rely on it when
// rewrapping the expression in transport quoting.
const Prefix = "pan=stereo|FL="

// Render serializes the matrix. Input channels appear in the
// layout's grid row-major order, once per output channel, with
// weights formatted to three decimal places. Negative weights carry
// the sign inside the numeric literal. Terms whose weight is exactly
// zero are omitted; an output with no remaining terms renders as an
// empty assignment, which the pan grammar reads as a muted output.
func Render(m *matrix.Matrix) string {
	roles := m.Layout().Channels()

	var b strings.Builder
	b.WriteString("pan=stereo")

	for out := 0; out < 2; out++ {
		if out == 0 {
			b.WriteString("|FL=")
		} else {
			b.WriteString("|FR=")
		}
		first := true
		for _, r := range roles {
			w, ok := m.Weights(r)
			if !ok {
				continue
			}
			v := w.Left
			if out == 1 {
				v = w.Right
			}
			if v == 0 {
				continue
			}
			if !first {
				b.WriteByte('+')
			}
			first = false
			b.WriteString(r.String())
			b.WriteByte('*')
			b.WriteString(strconv.FormatFloat(v, 'f', 3, 64))
		}
	}
	return b.String()
}
