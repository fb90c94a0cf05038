package downmix

// Control is one bounded scalar control on the surface.
type Control interface {
	// Get returns the current value. Outside of an in-progress
	// drag this equals the last committed value.
	Get() float64

	// Set replaces the value programmatically (reset to reference,
	// mirrored sibling writes). It updates the displayed value but
	// fires no live or commit callbacks.
	Set(value float64)
}

// Surface is the interactive control surface collaborator: one
// bounded control per (view, role) pair of the active layout.
//
// Implementations own widget state, value clamping and the debounce
// of rapid input; the engine only reads and writes through this
// contract. The live callback fires on every intermediate change of
// a control; the commit callback fires at most once per logical user
// edit (pointer release or debounce expiry) and only when the value
// differs from the previous commit.
type Surface interface {
	// Rebuild discards all controls and creates one per (view,
	// role) pair of the layout, initialized via the init function.
	Rebuild(l Layout, init func(Key) float64)

	// Control returns the control for a key, if present.
	Control(k Key) (Control, bool)

	// OnLive registers the live-change callback.
	OnLive(fn func(Key, float64))

	// OnCommit registers the committed-change callback.
	OnCommit(fn func(Key, float64))
}

// Pusher is the media-control collaborator side that receives
// rendered filter expressions. Pushes are fire and forget: the
// engine never awaits an acknowledgement before accepting further
// edits, and a slow player must not block the edit path.
type Pusher interface {
	PushFilter(filter string) error
}

// PusherFunc adapts a function to the Pusher interface.
type PusherFunc func(filter string) error

// PushFilter calls f.
func (f PusherFunc) PushFilter(filter string) error {
	return f(filter)
}
