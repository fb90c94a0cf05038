// Package layout maps mpv/ffmpeg channel layout names to a 3x3 grid of
// speaker roles (front/middle/back rows, left/center/right columns).
package layout

// Role is a semantic speaker position.
type Role uint8

// Channel roles, named after the ffmpeg channel tokens.
const (
	RoleNone Role = iota
	FL           // front left
	FR           // front right
	FC           // front center
	LFE          // low frequency effects
	BL           // back left
	BR           // back right
	SL           // side left
	SR           // side right
	BC           // back center
)

// roleTokens are the ffmpeg channel names, used verbatim in the pan
// filter expression.
var roleTokens = [...]string{
	RoleNone: "",
	FL:       "FL",
	FR:       "FR",
	FC:       "FC",
	LFE:      "LFE",
	BL:       "BL",
	BR:       "BR",
	SL:       "SL",
	SR:       "SR",
	BC:       "BC",
}

// String returns the ffmpeg channel token for the role.
func (r Role) String() string {
	if int(r) < len(roleTokens) {
		return roleTokens[r]
	}
	return ""
}

// Paired reports whether the role is one half of a bilateral
// left/right pair. Center and LFE roles are not paired.
func (r Role) Paired() bool {
	switch r {
	case FL, FR, BL, BR, SL, SR:
		return true
	}
	return false
}

// Sibling returns the opposite side of a bilateral pair, or RoleNone
// for unpaired roles.
func (r Role) Sibling() Role {
	switch r {
	case FL:
		return FR
	case FR:
		return FL
	case BL:
		return BR
	case BR:
		return BL
	case SL:
		return SR
	case SR:
		return SL
	}
	return RoleNone
}

// Grid holds channel roles by depth (front, middle, back) and column
// (left, center, right). Unused slots hold RoleNone.
//
// Every role has a fixed slot, so a grid is fully determined by the
// role set of a layout:
//
//	FL  FC  FR
//	SL  LFE SR
//	BL  BC  BR
type Grid [3][3]Role

// Layout is a named multichannel speaker configuration.
type Layout struct {
	Name string
	Grid Grid
}

// Channels returns the roles present in the layout in grid row-major
// order. This order is also the term order of the serialized filter.
func (l Layout) Channels() []Role {
	var roles []Role
	for _, row := range l.Grid {
		for _, r := range row {
			if r != RoleNone {
				roles = append(roles, r)
			}
		}
	}
	return roles
}

// Count returns the number of channels in the layout, LFE included.
func (l Layout) Count() int {
	n := 0
	for _, row := range l.Grid {
		for _, r := range row {
			if r != RoleNone {
				n++
			}
		}
	}
	return n
}

// Has reports whether the layout contains the role.
func (l Layout) Has(want Role) bool {
	for _, row := range l.Grid {
		for _, r := range row {
			if r == want {
				return true
			}
		}
	}
	return false
}

// slot returns the fixed grid position of a role.
func slot(r Role) (row, col int) {
	switch r {
	case FL:
		return 0, 0
	case FC:
		return 0, 1
	case FR:
		return 0, 2
	case SL:
		return 1, 0
	case LFE:
		return 1, 1
	case SR:
		return 1, 2
	case BL:
		return 2, 0
	case BC:
		return 2, 1
	case BR:
		return 2, 2
	}
	return -1, -1
}

// grid builds a Grid from a role set.
func grid(roles ...Role) Grid {
	var g Grid
	for _, r := range roles {
		row, col := slot(r)
		g[row][col] = r
	}
	return g
}
