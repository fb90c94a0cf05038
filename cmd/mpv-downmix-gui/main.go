// Command mpv-downmix-gui launches mpv with an IPC control socket
// and keeps its audio filter chain loaded with a stereo downmix
// matching the active audio track. All arguments are passed through
// to mpv:
//
//	mpv-downmix-gui movie.mp4 --audio-file=audio.m4a
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	downmix "github.com/milahu/mpv-downmix-gui"
	"github.com/milahu/mpv-downmix-gui/internal/mpvipc"
)

const (
	dialTimeout    = 10 * time.Second
	commandTimeout = 5 * time.Second
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage:\n  %s mpv_arg...\nexample:\n  %s movie.mp4 --audio-file=audio.m4a\n",
			os.Args[0], os.Args[0])
		os.Exit(1)
	}
	if err := run(os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(mpvArgs []string) error {
	log := slog.Default()

	// mpv shares our terminal; make sure we leave it usable even
	// when mpv dies without restoring it.
	restoreTerm := saveTerminal()
	defer restoreTerm()

	sockDir, err := os.MkdirTemp("", "mpv-downmix-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(sockDir)
	sockPath := filepath.Join(sockDir, "ipc.sock")

	args := append([]string{"--input-ipc-server=" + sockPath}, mpvArgs...)
	mpv := exec.Command("mpv", args...)
	mpv.Stdin = os.Stdin
	mpv.Stdout = os.Stdout
	mpv.Stderr = os.Stderr
	if err := mpv.Start(); err != nil {
		return fmt.Errorf("starting mpv: %w", err)
	}
	mpvDone := make(chan error, 1)
	go func() { mpvDone <- mpv.Wait() }()
	defer func() {
		_ = mpv.Process.Kill()
		<-mpvDone
	}()

	// The socket appears once mpv is up; failing to reach it is the
	// one fatal condition.
	client, err := mpvipc.Dial(sockPath, dialTimeout)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()

	session := downmix.NewSession(downmix.NewPanel(), filterPusher{client}, downmix.Options{
		LockSides: true,
	})

	// Observer callbacks run on the IPC reader goroutine; forward
	// layouts to the main loop without ever blocking the reader.
	layoutCh := make(chan string, 16)
	_, err = client.ObserveAudioTrack(ctx, func(t mpvipc.Track, ok bool) {
		if !ok {
			log.Info("audio track", "track", nil)
			return
		}
		log.Info("audio track",
			"id", t.ID,
			"layout", t.DemuxChannels,
			"codec", t.Codec,
			"kbit", t.DemuxBitrate/1000,
			"title", t.Title)
		select {
		case layoutCh <- t.DemuxChannels:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("observing audio track: %w", err)
	}

	// Initial layout from the negotiated audio parameters; the
	// observer takes over from there.
	cctx, cancel := context.WithTimeout(ctx, commandTimeout)
	params, err := client.AudioParams(cctx)
	cancel()
	if err == nil && params.Channels != "" {
		applyLayout(log, session, params.Channels)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case name := <-layoutCh:
			applyLayout(log, session, name)
		case <-client.Done():
			return nil
		case err := <-mpvDone:
			mpvDone <- err
			return nil
		case sig := <-sigCh:
			log.Info("signal", "sig", sig)
			return nil
		}
	}
}

func applyLayout(log *slog.Logger, session *downmix.Session, name string) {
	if err := session.HandleTrackLayout(name); err != nil {
		if errors.Is(err, downmix.ErrUnknownLayout) ||
			errors.Is(err, downmix.ErrUnrepresentableLayout) {
			log.Warn("layout not usable", "err", err)
			return
		}
		log.Error("applying layout", "layout", name, "err", err)
		return
	}
	log.Info("downmix", "layout", name, "af", session.LastFilter())
}

// filterPusher hands rendered pan expressions to mpv. The af value
// needs its filter argument quoted on this transport:
// pan=stereo|... becomes pan="stereo|...".
type filterPusher struct {
	client *mpvipc.Client
}

func (p filterPusher) PushFilter(filter string) error {
	rest, ok := strings.CutPrefix(filter, "pan=")
	if !ok {
		return fmt.Errorf("unexpected filter expression %q", filter)
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return p.client.AF(ctx, "set", `pan="`+rest+`"`)
}

// saveTerminal snapshots the terminal state and returns its restore
// function. A no-op when stdin is not a terminal.
func saveTerminal() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}
	state, err := term.GetState(fd)
	if err != nil {
		return func() {}
	}
	return func() { _ = term.Restore(fd, state) }
}
