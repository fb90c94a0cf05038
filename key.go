package downmix

// View selects one of the two parameterizations of a channel's
// stereo weights.
type View uint8

// Views.
const (
	ViewVolume  View = 0
	ViewBalance View = 1
)

// String returns "volume" or "balance".
func (v View) String() string {
	switch v {
	case ViewVolume:
		return "volume"
	case ViewBalance:
		return "balance"
	}
	return "unknown"
}

// Key identifies one control: a view and a channel role.
type Key struct {
	View View
	Role Role
}

// String returns the "volume.FL" form, useful in logs.
func (k Key) String() string {
	return k.View.String() + "." + k.Role.String()
}

// Control value ranges. Clamping to these is a concern of the
// control surface, not of the coefficient model.
const (
	VolumeMin  = 0.0
	VolumeMax  = 4.0
	BalanceMin = -1.0
	BalanceMax = 1.0
)

// Bounds returns the value range of the key's view.
func (k Key) Bounds() (min, max float64) {
	if k.View == ViewBalance {
		return BalanceMin, BalanceMax
	}
	return VolumeMin, VolumeMax
}
