package downmix

import (
	"sync"
	"time"
)

// DefaultDebounce is the keyboard debounce interval of a Panel:
// during sustained key-repeat input only the last value within the
// interval is committed.
const DefaultDebounce = time.Second

// Panel is an in-memory Surface implementation. It backs the
// launcher and the tests, and is the model a GUI front end should
// mimic: bounded values, live versus committed change phases, and a
// cancellable debounce timer for fine-grained input.
//
// Panel serializes access to its own state; callbacks are invoked
// without internal locks held, so they may call back into the Panel.
type Panel struct {
	mu       sync.Mutex
	controls map[Key]*PanelControl
	order    []Key
	live     func(Key, float64)
	commit   func(Key, float64)
	debounce time.Duration
}

// NewPanel creates an empty Panel with the default debounce.
func NewPanel() *Panel {
	return &Panel{
		controls: make(map[Key]*PanelControl),
		debounce: DefaultDebounce,
	}
}

// SetDebounce changes the keyboard debounce interval.
func (p *Panel) SetDebounce(d time.Duration) {
	p.mu.Lock()
	p.debounce = d
	p.mu.Unlock()
}

// Rebuild implements Surface. Stale controls of a previous layout
// are discarded, pending debounce timers included.
func (p *Panel) Rebuild(l Layout, init func(Key) float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.controls {
		c.stopTimer()
	}
	p.controls = make(map[Key]*PanelControl)
	p.order = p.order[:0]
	for _, view := range []View{ViewVolume, ViewBalance} {
		for _, role := range l.Channels() {
			k := Key{View: view, Role: role}
			min, max := k.Bounds()
			v := clamp(init(k), min, max)
			p.controls[k] = &PanelControl{
				panel:     p,
				key:       k,
				min:       min,
				max:       max,
				value:     v,
				committed: v,
			}
			p.order = append(p.order, k)
		}
	}
}

// Control implements Surface.
func (p *Panel) Control(k Key) (Control, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.controls[k]
	if !ok {
		return nil, false
	}
	return c, true
}

// Keys returns the control keys in creation order (volume view
// first, grid row-major within a view).
func (p *Panel) Keys() []Key {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]Key, len(p.order))
	copy(keys, p.order)
	return keys
}

// OnLive implements Surface.
func (p *Panel) OnLive(fn func(Key, float64)) {
	p.mu.Lock()
	p.live = fn
	p.mu.Unlock()
}

// OnCommit implements Surface.
func (p *Panel) OnCommit(fn func(Key, float64)) {
	p.mu.Lock()
	p.commit = fn
	p.mu.Unlock()
}

// PanelControl is one bounded scalar control of a Panel.
type PanelControl struct {
	panel     *Panel
	key       Key
	min, max  float64
	value     float64
	committed float64
	timer     *time.Timer
}

// Get returns the current value.
func (c *PanelControl) Get() float64 {
	c.panel.mu.Lock()
	defer c.panel.mu.Unlock()
	return c.value
}

// Set replaces the value programmatically without firing callbacks.
// The value also becomes the committed value, so a following commit
// of an untouched control stays silent.
func (c *PanelControl) Set(v float64) {
	c.panel.mu.Lock()
	c.value = clamp(v, c.min, c.max)
	c.committed = c.value
	c.panel.mu.Unlock()
}

// SetLive replaces the value as an intermediate user edit (a drag in
// progress) and fires the live callback. No commit fires until
// Commit or a debounced Input expiry.
func (c *PanelControl) SetLive(v float64) {
	c.panel.mu.Lock()
	c.value = clamp(v, c.min, c.max)
	v = c.value
	fn := c.panel.live
	c.panel.mu.Unlock()
	if fn != nil {
		fn(c.key, v)
	}
}

// Commit finalizes the current value (pointer release). The commit
// callback fires only when the value changed since the last commit.
func (c *PanelControl) Commit() {
	c.panel.mu.Lock()
	c.stopTimer()
	if c.value == c.committed {
		c.panel.mu.Unlock()
		return
	}
	c.committed = c.value
	v := c.value
	fn := c.panel.commit
	c.panel.mu.Unlock()
	if fn != nil {
		fn(c.key, v)
	}
}

// Input applies a fine-grained edit (key repeat): the live callback
// fires immediately, the commit is debounced. Each call restarts the
// timer, so only the last value before expiry commits.
func (c *PanelControl) Input(v float64) {
	c.SetLive(v)
	c.panel.mu.Lock()
	c.stopTimer()
	d := c.panel.debounce
	c.timer = time.AfterFunc(d, c.Commit)
	c.panel.mu.Unlock()
}

// stopTimer cancels a pending debounce. Caller holds the panel lock.
func (c *PanelControl) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
