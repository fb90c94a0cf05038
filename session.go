package downmix

import (
	"fmt"
	"strings"

	"github.com/milahu/mpv-downmix-gui/internal/matrix"
)

// Options configure a Session.
type Options struct {
	// LockSides links bilateral channel pairs: a live edit of one
	// half mirrors to the other (negated in the balance view).
	LockSides bool
}

// Session owns the active layout, its coefficient matrix and the
// bindings to a control Surface. It is the single place where edits,
// mirroring, reseeding and rendering meet; all of it runs
// synchronously on the caller's goroutine.
//
// A Session is NOT safe for concurrent use.
type Session struct {
	surface   Surface
	pusher    Pusher
	lockSides bool

	lay    Layout
	mat    *Matrix
	seeded bool

	lastFilter string
}

// NewSession wires a Session to its two collaborators. The Session
// registers itself for the surface's live and commit callbacks.
func NewSession(surface Surface, pusher Pusher, opts Options) *Session {
	s := &Session{
		surface:   surface,
		pusher:    pusher,
		lockSides: opts.LockSides,
	}
	surface.OnLive(s.handleLive)
	surface.OnCommit(s.handleCommit)
	return s
}

// LockSides reports whether bilateral mirroring is enabled.
func (s *Session) LockSides() bool {
	return s.lockSides
}

// SetLockSides enables or disables bilateral mirroring.
func (s *Session) SetLockSides(on bool) {
	s.lockSides = on
}

// Layout returns the active layout. ok is false before the first
// successful SetLayout.
func (s *Session) Layout() (Layout, bool) {
	return s.lay, s.seeded
}

// LastFilter returns the most recently pushed filter expression, or
// "" when nothing was pushed yet.
func (s *Session) LastFilter() string {
	return s.lastFilter
}

// SetLayout resolves the layout name, seeds the reference matrix,
// rebuilds the surface controls for the new channel set and pushes
// one rendered filter. On error the previous state stays intact.
func (s *Session) SetLayout(name string) error {
	l, err := Resolve(name)
	if err != nil {
		return err
	}
	s.lay = l
	s.mat = matrix.SeedReference(l)
	s.seeded = true
	s.surface.Rebuild(l, s.displayValue)
	return s.push()
}

// HandleTrackLayout reacts to an active-track change reported by the
// player. mpv reports placeholder layouts as "unknown..." while a
// track has no negotiated layout; those are diagnosed without
// touching existing state, so a running downmix keeps working.
func (s *Session) HandleTrackLayout(name string) error {
	if name == "" || strings.HasPrefix(name, "unknown") {
		return fmt.Errorf("%w: track reports channel layout %q; force one with --audio-channels=<layout>",
			ErrUnknownLayout, name)
	}
	if s.seeded && name == s.lay.Name {
		return nil
	}
	return s.SetLayout(name)
}

// ResetReference reseeds the matrix of the current layout, refreshes
// every control to the reseeded values and pushes one rendered
// filter.
func (s *Session) ResetReference() error {
	if !s.seeded {
		return ErrNoLayout
	}
	s.mat = matrix.SeedReference(s.lay)
	for _, view := range []View{ViewVolume, ViewBalance} {
		for _, role := range s.lay.Channels() {
			k := Key{View: view, Role: role}
			if c, ok := s.surface.Control(k); ok {
				c.Set(s.displayValue(k))
			}
		}
	}
	return s.push()
}

// Volume returns the volume view of a channel.
func (s *Session) Volume(r Role) (float64, error) {
	if !s.seeded {
		return 0, ErrNoLayout
	}
	v, ok := s.mat.Volume(r)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownChannel, r)
	}
	return v, nil
}

// Balance returns the balance view of a channel. A channel whose
// weights sum to zero has no defined balance and yields
// ErrBalanceUndefined.
func (s *Session) Balance(r Role) (float64, error) {
	if !s.seeded {
		return 0, ErrNoLayout
	}
	if !s.lay.Has(r) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownChannel, r)
	}
	b, ok := s.mat.Balance(r)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrBalanceUndefined, r)
	}
	return b, nil
}

// Weights returns the stereo weight pair of a channel.
func (s *Session) Weights(r Role) (Weights, error) {
	if !s.seeded {
		return Weights{}, ErrNoLayout
	}
	w, ok := s.mat.Weights(r)
	if !ok {
		return Weights{}, fmt.Errorf("%w: %s", ErrUnknownChannel, r)
	}
	return w, nil
}

// ApplyVolumeBalance recomputes one channel's weights from a
// (volume, balance) pair, leaving all other channels unchanged.
func (s *Session) ApplyVolumeBalance(r Role, volume, balance float64) error {
	if !s.seeded {
		return ErrNoLayout
	}
	if !s.lay.Has(r) {
		return fmt.Errorf("%w: %s", ErrUnknownChannel, r)
	}
	s.mat.SetVolumeBalance(r, volume, balance)
	return nil
}

// Render serializes the current matrix.
func (s *Session) Render() (string, error) {
	if !s.seeded {
		return "", ErrNoLayout
	}
	return Render(s.mat), nil
}

// Commit folds the current value of every control back into the
// matrix, renders and pushes once. It is also the path behind the
// surface's commit callback.
func (s *Session) Commit() error {
	if !s.seeded {
		return ErrNoLayout
	}
	for _, role := range s.lay.Channels() {
		vol, okV := s.controlValue(Key{View: ViewVolume, Role: role})
		bal, okB := s.controlValue(Key{View: ViewBalance, Role: role})
		if !okV || !okB {
			continue
		}
		s.mat.SetVolumeBalance(role, vol, bal)
	}
	return s.push()
}

// handleLive is the surface's live-change callback: it performs
// bilateral mirroring and nothing else. Live changes never render or
// push, so a drag in progress can not flood the player.
func (s *Session) handleLive(k Key, value float64) {
	if !s.lockSides {
		return
	}
	sibling, mirrored, ok := mirrorEdit(k, value)
	if !ok {
		return
	}
	if c, ok := s.surface.Control(sibling); ok {
		c.Set(mirrored)
	}
}

// handleCommit is the surface's committed-change callback. The push
// is fire and forget; its error is not reported back through the
// widget event that caused it.
func (s *Session) handleCommit(Key, float64) {
	_ = s.Commit()
}

// displayValue is the control value for a key under the current
// matrix. An undefined balance displays as 0; the coefficient model
// keeps reporting the undefined state.
func (s *Session) displayValue(k Key) float64 {
	switch k.View {
	case ViewBalance:
		b, _ := s.mat.Balance(k.Role)
		return b
	default:
		v, _ := s.mat.Volume(k.Role)
		return v
	}
}

func (s *Session) controlValue(k Key) (float64, bool) {
	c, ok := s.surface.Control(k)
	if !ok {
		return 0, false
	}
	return c.Get(), true
}

// push renders the matrix and hands it to the pusher. The rendered
// string always starts with FilterPrefix; transport quoting is the
// pusher's concern.
func (s *Session) push() error {
	filter := Render(s.mat)
	s.lastFilter = filter
	if s.pusher == nil {
		return nil
	}
	return s.pusher.PushFilter(filter)
}
