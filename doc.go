// Package downmix computes and maintains stereo downmix coefficient
// matrices for multichannel audio layouts, and serializes them as
// ffmpeg pan filter expressions for mpv's af option.
//
// # Basic Usage
//
// Resolve a layout and seed the reference downmix:
//
//	l, err := downmix.Resolve("5.1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := downmix.SeedReference(l)
//	fmt.Println(downmix.Render(m))
//	// pan=stereo|FL=FL*0.529+FC*0.374+...
//
// For interactive use, a Session ties a coefficient matrix to a
// control Surface (one bounded control per channel in each of the
// volume and balance views) and a Pusher (the media player side that
// receives rendered filter expressions):
//
//	s := downmix.NewSession(surface, pusher, downmix.Options{LockSides: true})
//	if err := s.SetLayout("5.1"); err != nil {
//	    log.Fatal(err)
//	}
//
// Live edits flow through the Surface callbacks; with lock sides
// enabled an edit to one half of a left/right pair mirrors to its
// sibling (negated in the balance view). Committed edits fold all
// control values back into the matrix, re-render and push.
//
// # Views
//
// Each channel's (left, right) weight pair has two equivalent views:
//
//	volume  = left + right
//	balance = (right - left) / (right + left)
//
// The balance view is undefined when the weights sum to zero; the
// package reports that state instead of dividing by zero.
//
// # Reference Downmix
//
// SeedReference implements the stereo downmix matrix generation of
// RFC 7845 section 5.1.1.5 and reproduces the coefficients published
// there, extended to every layout representable in the 3x3 speaker
// grid.
//
// # Thread Safety
//
// Session and Matrix are NOT safe for concurrent use; all edits are
// expected to arrive on one event-processing goroutine. Panel, the
// in-memory Surface implementation, serializes its own state so its
// debounce timer can fire from a timer goroutine.
package downmix
