package downmix

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// recordingPusher captures every pushed filter expression.
type recordingPusher struct {
	filters []string
}

func (p *recordingPusher) PushFilter(filter string) error {
	p.filters = append(p.filters, filter)
	return nil
}

func newTestSession(t *testing.T, layoutName string, lockSides bool) (*Session, *Panel, *recordingPusher) {
	t.Helper()
	panel := NewPanel()
	pusher := &recordingPusher{}
	s := NewSession(panel, pusher, Options{LockSides: lockSides})
	if layoutName != "" {
		if err := s.SetLayout(layoutName); err != nil {
			t.Fatal(err)
		}
	}
	return s, panel, pusher
}

func control(t *testing.T, p *Panel, k Key) *PanelControl {
	t.Helper()
	c, ok := p.Control(k)
	if !ok {
		t.Fatalf("missing control %v", k)
	}
	return c.(*PanelControl)
}

func TestSessionBeforeLayout(t *testing.T) {
	s, _, _ := newTestSession(t, "", true)
	if _, ok := s.Layout(); ok {
		t.Error("Layout ok before SetLayout")
	}
	if _, err := s.Volume(FL); !errors.Is(err, ErrNoLayout) {
		t.Errorf("Volume = %v, want ErrNoLayout", err)
	}
	if _, err := s.Render(); !errors.Is(err, ErrNoLayout) {
		t.Errorf("Render = %v, want ErrNoLayout", err)
	}
	if err := s.ResetReference(); !errors.Is(err, ErrNoLayout) {
		t.Errorf("ResetReference = %v, want ErrNoLayout", err)
	}
	if err := s.Commit(); !errors.Is(err, ErrNoLayout) {
		t.Errorf("Commit = %v, want ErrNoLayout", err)
	}
}

func TestSessionSetLayoutSeedsAndPushes(t *testing.T) {
	s, panel, pusher := newTestSession(t, "5.1", true)

	l, ok := s.Layout()
	if !ok || l.Name != "5.1" {
		t.Fatalf("Layout = %v, %v", l, ok)
	}
	if len(pusher.filters) != 1 {
		t.Fatalf("pushed %d filters, want 1", len(pusher.filters))
	}
	if !strings.HasPrefix(pusher.filters[0], FilterPrefix) {
		t.Errorf("filter %q lacks prefix %q", pusher.filters[0], FilterPrefix)
	}

	// Controls carry the seeded volume/balance views.
	v, err := s.Volume(BL)
	if err != nil {
		t.Fatal(err)
	}
	if got := control(t, panel, Key{ViewVolume, BL}).Get(); math.Abs(got-v) > 1e-9 {
		t.Errorf("volume.BL control = %v, want %v", got, v)
	}
	b, err := s.Balance(BL)
	if err != nil {
		t.Fatal(err)
	}
	// Reference back pair: left sqrt(3)/2, right 1/2 before
	// normalization, so balance = (1/2-sqrt(3)/2)/(1/2+sqrt(3)/2).
	wantB := (0.5 - math.Sqrt(3)/2) / (0.5 + math.Sqrt(3)/2)
	if math.Abs(b-wantB) > 1e-9 {
		t.Errorf("Balance(BL) = %v, want %v", b, wantB)
	}
}

func TestSessionSetLayoutErrorKeepsState(t *testing.T) {
	s, _, pusher := newTestSession(t, "5.1", true)
	pushes := len(pusher.filters)

	if err := s.SetLayout("bogus"); !errors.Is(err, ErrUnknownLayout) {
		t.Fatalf("SetLayout(bogus) = %v, want ErrUnknownLayout", err)
	}
	if l, ok := s.Layout(); !ok || l.Name != "5.1" {
		t.Errorf("layout after failed SetLayout = %v, %v; want 5.1", l, ok)
	}
	if len(pusher.filters) != pushes {
		t.Error("failed SetLayout pushed a filter")
	}
}

func TestSessionEndToEnd51(t *testing.T) {
	// 5.1 -> seed reference -> apply (0.5, -0.2) to BL -> render:
	// left = (1+0.2)*0.5/2 = 0.3, right = (1-(-0.2))... i.e.
	// left = (1-(-0.2))*0.5/2 = 0.3, right = (1+(-0.2))*0.5/2 = 0.2.
	s, _, _ := newTestSession(t, "5.1", true)

	if err := s.ApplyVolumeBalance(BL, 0.5, -0.2); err != nil {
		t.Fatal(err)
	}
	w, err := s.Weights(BL)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(w.Left-0.3) > 1e-9 || math.Abs(w.Right-0.2) > 1e-9 {
		t.Fatalf("BL weights = %+v, want {0.3 0.2}", w)
	}

	rendered, err := s.Render()
	if err != nil {
		t.Fatal(err)
	}
	fl, fr, ok := strings.Cut(strings.TrimPrefix(rendered, "pan=stereo|FL="), "|FR=")
	if !ok {
		t.Fatalf("malformed render %q", rendered)
	}
	if !strings.Contains(fl, "BL*0.300") {
		t.Errorf("FL terms %q lack BL*0.300", fl)
	}
	if !strings.Contains(fr, "BL*0.200") {
		t.Errorf("FR terms %q lack BL*0.200", fr)
	}
}

func TestSessionMirrorBalance(t *testing.T) {
	s, panel, pusher := newTestSession(t, "5.1", true)
	pushes := len(pusher.filters)

	flBal := control(t, panel, Key{ViewBalance, FL})
	frBal := control(t, panel, Key{ViewBalance, FR})

	flBal.SetLive(0.3)
	if got := frBal.Get(); math.Abs(got-(-0.3)) > 1e-9 {
		t.Fatalf("balance.FR after live balance.FL=0.3: %v, want -0.3", got)
	}
	if len(pusher.filters) != pushes {
		t.Fatal("live change pushed a filter")
	}

	flBal.Commit()
	if len(pusher.filters) != pushes+1 {
		t.Fatalf("commit pushed %d filters, want 1", len(pusher.filters)-pushes)
	}

	// The mirrored live value of FR folds into the matrix on
	// commit even though FR itself never committed.
	b, err := s.Balance(FR)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(b-(-0.3)) > 1e-9 {
		t.Errorf("Balance(FR) = %v, want -0.3", b)
	}
}

func TestSessionMirrorVolume(t *testing.T) {
	_, panel, _ := newTestSession(t, "5.1", true)

	flVol := control(t, panel, Key{ViewVolume, FL})
	frVol := control(t, panel, Key{ViewVolume, FR})

	flVol.SetLive(0.7)
	if got := frVol.Get(); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("volume.FR after live volume.FL=0.7: %v, want 0.7", got)
	}
}

func TestSessionMirrorDisabled(t *testing.T) {
	s, panel, _ := newTestSession(t, "5.1", false)
	if s.LockSides() {
		t.Fatal("lock sides should start disabled")
	}

	frBal := control(t, panel, Key{ViewBalance, FR})
	before := frBal.Get()
	control(t, panel, Key{ViewBalance, FL}).SetLive(0.3)
	if got := frBal.Get(); got != before {
		t.Errorf("balance.FR changed with lock sides off: %v", got)
	}

	s.SetLockSides(true)
	control(t, panel, Key{ViewBalance, FL}).SetLive(0.4)
	if got := frBal.Get(); math.Abs(got-(-0.4)) > 1e-9 {
		t.Errorf("balance.FR = %v after enabling lock sides, want -0.4", got)
	}
}

func TestSessionCenterRolesNeverMirror(t *testing.T) {
	_, panel, _ := newTestSession(t, "5.1", true)

	before := make(map[Key]float64)
	for _, k := range panel.Keys() {
		before[k] = control(t, panel, k).Get()
	}

	fcBal := control(t, panel, Key{ViewBalance, FC})
	fcBal.SetLive(0.9)
	fcBal.Commit()

	for _, k := range panel.Keys() {
		if k == (Key{ViewBalance, FC}) {
			continue
		}
		if got := control(t, panel, k).Get(); got != before[k] {
			t.Errorf("%v changed by a balance.FC edit: %v -> %v", k, before[k], got)
		}
	}
}

func TestSessionResetReference(t *testing.T) {
	s, panel, pusher := newTestSession(t, "5.1", true)
	reference := pusher.filters[0]

	blVol := control(t, panel, Key{ViewVolume, BL})
	blVol.SetLive(0.5)
	blVol.Commit()
	if got := pusher.filters[len(pusher.filters)-1]; got == reference {
		t.Fatal("edit did not change the filter")
	}

	if err := s.ResetReference(); err != nil {
		t.Fatal(err)
	}
	if got := pusher.filters[len(pusher.filters)-1]; got != reference {
		t.Errorf("filter after reset = %q, want reference %q", got, reference)
	}
	v, _ := s.Volume(BL)
	if got := blVol.Get(); math.Abs(got-v) > 1e-9 {
		t.Errorf("volume.BL control after reset = %v, want %v", got, v)
	}
}

func TestSessionTrackSwitchRebuildsBindings(t *testing.T) {
	s, panel, _ := newTestSession(t, "5.1", true)

	if err := s.HandleTrackLayout("stereo"); err != nil {
		t.Fatal(err)
	}
	if l, _ := s.Layout(); l.Name != "stereo" {
		t.Fatalf("layout = %q, want stereo", l.Name)
	}
	if _, ok := panel.Control(Key{ViewVolume, BL}); ok {
		t.Error("stale BL control survived the track switch")
	}
	if _, err := s.Volume(BL); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("Volume(BL) = %v, want ErrUnknownChannel", err)
	}
}

func TestSessionUnknownTrackLayoutKeepsState(t *testing.T) {
	s, _, pusher := newTestSession(t, "5.1", true)
	pushes := len(pusher.filters)

	err := s.HandleTrackLayout("unknown6ch")
	if !errors.Is(err, ErrUnknownLayout) {
		t.Fatalf("HandleTrackLayout = %v, want ErrUnknownLayout", err)
	}
	if !strings.Contains(err.Error(), "unknown6ch") {
		t.Errorf("diagnostic %q does not name the layout string", err)
	}
	if !strings.Contains(err.Error(), "--audio-channels") {
		t.Errorf("diagnostic %q does not suggest an override", err)
	}
	if l, ok := s.Layout(); !ok || l.Name != "5.1" {
		t.Errorf("layout after placeholder track = %v, %v; want 5.1", l, ok)
	}
	if len(pusher.filters) != pushes {
		t.Error("placeholder layout caused a push")
	}
}

func TestSessionSameLayoutKeepsEdits(t *testing.T) {
	s, _, _ := newTestSession(t, "5.1", true)
	if err := s.ApplyVolumeBalance(BL, 0.5, -0.2); err != nil {
		t.Fatal(err)
	}
	if err := s.HandleTrackLayout("5.1"); err != nil {
		t.Fatal(err)
	}
	w, _ := s.Weights(BL)
	if math.Abs(w.Left-0.3) > 1e-9 {
		t.Errorf("re-announcing the active layout reseeded the matrix: %+v", w)
	}
}

func TestSessionBalanceUndefined(t *testing.T) {
	s, _, _ := newTestSession(t, "5.1", true)
	if err := s.ApplyVolumeBalance(FC, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Balance(FC); !errors.Is(err, ErrBalanceUndefined) {
		t.Errorf("Balance(FC) = %v, want ErrBalanceUndefined", err)
	}
	// Volume stays readable.
	if v, err := s.Volume(FC); err != nil || v != 0 {
		t.Errorf("Volume(FC) = %v, %v; want 0, nil", v, err)
	}
}

func TestSessionBalanceUndefinedDisplaysAsZero(t *testing.T) {
	// A control rebuilt over an undefined balance shows 0; the
	// model keeps reporting the undefined state.
	panel := NewPanel()
	s := NewSession(panel, &recordingPusher{}, Options{})
	if err := s.SetLayout("stereo"); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyVolumeBalance(FL, 0, 0); err != nil {
		t.Fatal(err)
	}
	l, _ := s.Layout()
	panel.Rebuild(l, s.displayValue)
	if got := control(t, panel, Key{ViewBalance, FL}).Get(); got != 0 {
		t.Errorf("undefined balance displays as %v, want 0", got)
	}
}
