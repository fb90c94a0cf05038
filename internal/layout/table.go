package layout

// Layout tables for every mpv/ffmpeg layout whose role set fits the
// 3x3 grid. Names follow mpv's reporting (bare names are the back
// variants, "(side)" names the side variants, as in ffmpeg's
// channel_layout_map).

// layouts maps canonical layout names to their grids.
var layouts = map[string]Grid{
	"empty":      {},
	"mono":       grid(FC),
	"stereo":     grid(FL, FR),
	"2.1":        grid(FL, FR, LFE),
	"3.0":        grid(FL, FR, FC),
	"3.0(back)":  grid(FL, FR, BC),
	"3.1":        grid(FL, FR, FC, LFE),
	"3.1(back)":  grid(FL, FR, BC, LFE),
	"4.0":        grid(FL, FR, FC, BC),
	"4.1":        grid(FL, FR, FC, LFE, BC),
	"4.1(alsa)":  grid(FL, FR, BL, BR, LFE),
	"quad":       grid(FL, FR, BL, BR),
	"quad(side)": grid(FL, FR, SL, SR),
	"5.0":        grid(FL, FR, FC, BL, BR),
	"5.0(side)":  grid(FL, FR, FC, SL, SR),
	"5.1":        grid(FL, FR, FC, LFE, BL, BR),
	"5.1(side)":  grid(FL, FR, FC, LFE, SL, SR),
	"6.0":        grid(FL, FR, FC, BC, SL, SR),
	"hexagonal":  grid(FL, FR, FC, BL, BR, BC),
	"6.1":        grid(FL, FR, FC, LFE, BC, SL, SR),
	"6.1(back)":  grid(FL, FR, FC, LFE, BL, BR, BC),
	"7.0":        grid(FL, FR, FC, SL, SR, BL, BR),
	"7.1":        grid(FL, FR, FC, LFE, SL, SR, BL, BR),
	"octagonal":  grid(FL, FR, FC, BL, BR, BC, SL, SR),
	"8.1":        grid(FL, FR, FC, LFE, SL, SR, BL, BC, BR),
}

// aliases maps alternate names to canonical entries. A name is an
// alias only when its role set is identical to the canonical layout;
// side variants keep their own grids because the pan expression must
// name the channels the stream actually carries.
var aliases = map[string]string{
	"1.0":          "mono",
	"2.0":          "stereo",
	"quadraphonic": "quad",
	"5.0(alsa)":    "5.0",
	"5.1(alsa)":    "5.1",
	"7.1(alsa)":    "7.1",
}

// unrepresentable names layouts mpv can report whose channel sets
// need roles outside the grid (front-center pairs, top or wide
// channels, dedicated downmix channels).
var unrepresentable = map[string]bool{
	"6.0(front)":     true,
	"6.1(front)":     true,
	"7.0(front)":     true,
	"7.1(wide)":      true,
	"7.1(wide-side)": true,
	"cube":           true,
	"hexadecagonal":  true,
	"downmix":        true,
}

// Lookup resolves a layout name. The second result reports whether
// the name is known at all; the third whether its channel set fits
// the grid. A known but unrepresentable name yields (zero, true,
// false).
func Lookup(name string) (l Layout, known, representable bool) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	if g, ok := layouts[name]; ok {
		return Layout{Name: name, Grid: g}, true, true
	}
	if unrepresentable[name] {
		return Layout{}, true, false
	}
	return Layout{}, false, false
}
