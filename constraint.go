package downmix

// mirrorEdit computes the sibling write implied by a live edit when
// lock sides is enabled. For a bilateral role the sibling receives
// the same value in the volume view and the negated value in the
// balance view. Center, back-center and LFE roles have no sibling
// and never mirror.
//
// The caller writes the result to the sibling's live value only,
// never through its commit path, so a mirror can not re-trigger
// itself: each source edit touches the sibling exactly once.
func mirrorEdit(k Key, value float64) (sibling Key, mirrored float64, ok bool) {
	if !k.Role.Paired() {
		return Key{}, 0, false
	}
	mirrored = value
	if k.View == ViewBalance {
		mirrored = -value
	}
	return Key{View: k.View, Role: k.Role.Sibling()}, mirrored, true
}
