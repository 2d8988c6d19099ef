// @lixen: #focus{sys[session,loop]}
package session

import (
	"context"
	"errors"
	"fmt"

	"pkt.systems/pslog"

	"github.com/lixenwraith/tilde/constants"
	"github.com/lixenwraith/tilde/render"
	"github.com/lixenwraith/tilde/terminal"
)

// ErrQuit ends the loop cleanly; Loop and Run translate it to a nil error
var ErrQuit = errors.New("session: quit")

// State is the session lifecycle state
type State uint8

const (
	StateRunning State = iota
	StateTerminated
)

func (s State) String() string {
	if s == StateTerminated {
		return "terminated"
	}
	return "running"
}

// ResizeSource reports pending viewport changes, drained without blocking
type ResizeSource interface {
	Pending() bool
}

// Options configures a session
type Options struct {
	Banner        string
	MaxFrameBytes int
	ForceFallback bool
	Resize        ResizeSource // nil keeps the startup viewport
}

// Session owns the cursor and drives render, decode, apply until quit
type Session struct {
	backend  terminal.Backend
	decoder  *terminal.Decoder
	renderer *render.FrameRenderer
	opts     Options

	viewport terminal.Viewport
	cursor   terminal.Position
	state    State
	frames   int
}

// New creates a session over an initialized backend with the cursor at the origin
func New(b terminal.Backend, v terminal.Viewport, opts Options) *Session {
	return &Session{
		backend:  b,
		decoder:  terminal.NewDecoder(b),
		renderer: render.NewFrameRenderer(b, opts.Banner, opts.MaxFrameBytes),
		opts:     opts,
		viewport: v,
	}
}

// Cursor returns the authoritative cursor position
func (s *Session) Cursor() terminal.Position { return s.cursor }

// Viewport returns the current bounds
func (s *Session) Viewport() terminal.Viewport { return s.viewport }

// State returns the lifecycle state
func (s *Session) State() State { return s.state }

// Frames returns the number of frames flushed so far
func (s *Session) Frames() int { return s.frames }

// Apply handles one decoded key. Returns ErrQuit once the session has terminated.
func (s *Session) Apply(ev terminal.Event) error {
	if s.state == StateTerminated {
		return ErrQuit
	}

	switch {
	case ev.IsCtrl(constants.QuitKey):
		s.state = StateTerminated
		if err := terminal.ResetScreen(s.backend); err != nil {
			return fmt.Errorf("clear screen: %w", err)
		}
		return ErrQuit
	case ev.IsArrow():
		s.move(ev.Key)
	}
	// Other keys are reserved for editing commands
	return nil
}

// move steps the cursor one cell, clamped to the viewport
func (s *Session) move(k terminal.Key) {
	p := s.cursor
	switch k {
	case terminal.KeyUp:
		p.Y--
	case terminal.KeyDown:
		p.Y++
	case terminal.KeyLeft:
		p.X--
	case terminal.KeyRight:
		p.X++
	}
	s.cursor = s.viewport.Clamp(p)
}

// Step runs one cycle: apply pending resize, render, decode, apply
func (s *Session) Step(ctx context.Context) error {
	if s.state == StateTerminated {
		return ErrQuit
	}
	logger := pslog.Ctx(ctx)

	if err := s.applyResize(logger); err != nil {
		return err
	}

	stats, err := s.renderer.Render(s.viewport, s.cursor)
	if err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	s.frames++
	if stats.Dropped > 0 {
		logger.Debug("frame fragments dropped", "dropped", stats.Dropped, "bytes", stats.Bytes)
	}

	ev, err := s.decoder.NextKey()
	if err != nil {
		return err
	}
	if ev.Key == terminal.KeyNone {
		return nil
	}
	logger.Trace("key", "name", ev.Name())
	return s.Apply(ev)
}

// applyResize re-probes after a resize notification and re-clamps the cursor
func (s *Session) applyResize(logger pslog.Logger) error {
	if s.opts.Resize == nil || !s.opts.Resize.Pending() {
		return nil
	}

	v, method, err := terminal.Probe(s.backend, s.opts.ForceFallback)
	if err != nil {
		return err
	}
	s.viewport = v
	s.cursor = v.Clamp(s.cursor)
	logger.Debug("viewport resized", "rows", v.Rows, "cols", v.Cols, "method", method.String())
	return nil
}

// Loop steps until quit, a fatal error, or ctx is done
func (s *Session) Loop(ctx context.Context) error {
	logger := pslog.Ctx(ctx)
	logger.Info("session started", "rows", s.viewport.Rows, "cols", s.viewport.Cols)

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("session cancelled", "cause", context.Cause(ctx))
			return err
		}

		err := s.Step(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrQuit):
			logger.Info("session ended", "reason", "quit", "frames", s.frames)
			return nil
		default:
			logger.Error("session failed", "err", err)
			return err
		}
	}
}

// Run owns the full lifecycle: raw mode, probe, loop, and release on every exit path.
// A fatal error or cancellation clears the screen before raw mode is restored.
func Run(ctx context.Context, b terminal.Backend, opts Options) (err error) {
	logger := pslog.Ctx(ctx)

	if err := b.Init(); err != nil {
		_ = terminal.ResetScreen(b)
		return err
	}
	defer func() {
		if ferr := b.Fini(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	v, method, err := terminal.Probe(b, opts.ForceFallback)
	if err != nil {
		_ = terminal.ResetScreen(b)
		return err
	}
	logger.Info("viewport probed", "rows", v.Rows, "cols", v.Cols, "method", method.String())

	if err := New(b, v, opts).Loop(ctx); err != nil {
		_ = terminal.ResetScreen(b)
		return err
	}
	return nil
}
