//go:build linux

package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"

	"github.com/lixenwraith/tilde/terminal"
)

// capture accumulates everything the program writes to the pty
type capture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

func (c *capture) waitFor(t *testing.T, s string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(c.String(), s) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %q, got %q", s, c.String())
}

func openPTY(t *testing.T, rows, cols uint16) (*os.File, *os.File, *capture) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}

	c := &capture{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				c.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
		<-done
	})
	return ptmx, tty, c
}

func execAsync(t *testing.T, a *app, args ...string) <-chan error {
	t.Helper()
	root := newRootCmd(a)
	root.SetArgs(args)
	errCh := make(chan error, 1)
	go func() {
		errCh <- root.ExecuteContext(context.Background())
	}()
	return errCh
}

func waitExit(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for command to exit")
		return nil
	}
}

func TestSessionThroughPTY(t *testing.T) {
	isolateConfig(t)
	ptmx, tty, out := openPTY(t, 12, 40)

	errCh := execAsync(t, &app{in: tty, out: tty}, "--log-level", "debug")

	// First frame is drawn only after raw mode is active
	out.waitFor(t, "\x1b[?25h")
	if _, err := ptmx.Write([]byte("\x1b[C\x1b[B")); err != nil {
		t.Fatalf("write: %v", err)
	}
	out.waitFor(t, "\x1b[2;2H")
	if _, err := ptmx.Write([]byte{0x11}); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := waitExit(t, errCh); err != nil {
		t.Fatalf("Expected clean quit, got %v", err)
	}
	out.waitFor(t, "\x1b[2J\x1b[H")
	if !strings.Contains(out.String(), "Tilde editor") {
		t.Errorf("Expected banner in output")
	}
}

func TestProbeThroughPTY(t *testing.T) {
	isolateConfig(t)
	_, tty, _ := openPTY(t, 30, 100)

	root := newRootCmd(&app{in: tty, out: tty})
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"probe"})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != "30 100 winsize" {
		t.Errorf("Expected %q, got %q", "30 100 winsize", got)
	}
}

func TestProbeFailureClearsScreen(t *testing.T) {
	isolateConfig(t)
	// Zero winsize forces the cursor report path; nothing answers it
	_, tty, out := openPTY(t, 0, 0)

	root := newRootCmd(&app{in: tty, out: tty})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"probe"})

	err := root.ExecuteContext(context.Background())
	if !terminal.IsKind(err, terminal.KindViewportProbe) {
		t.Fatalf("Expected viewport probe error, got %v", err)
	}
	out.waitFor(t, "\x1b[6n")
	out.waitFor(t, "\x1b[2J\x1b[H")
	if strings.Index(out.String(), "\x1b[2J\x1b[H") < strings.Index(out.String(), "\x1b[6n") {
		t.Errorf("Expected clean screen after the failed report, got %q", out.String())
	}
}

func TestKeysThroughPTY(t *testing.T) {
	isolateConfig(t)
	ptmx, tty, out := openPTY(t, 24, 80)

	errCh := execAsync(t, &app{in: tty, out: tty}, "keys")

	out.waitFor(t, "Ctrl+Q quits")
	if _, err := ptmx.Write([]byte("a\x1b[A\x11")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := waitExit(t, errCh); err != nil {
		t.Fatalf("Expected clean quit, got %v", err)
	}
	out.waitFor(t, "0x61")
}
