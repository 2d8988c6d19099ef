package terminal

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestErrorMessageNamesOperation(t *testing.T) {
	err := configError("tcsetattr", syscall.EIO)
	if got := err.Error(); got != "tcsetattr: "+syscall.EIO.Error() {
		t.Errorf("Unexpected message %q", got)
	}
	if !errors.Is(err, syscall.EIO) {
		t.Error("Expected OS error to unwrap")
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("session: %w", probeError("cursor position report", ErrReplyOverflow))
	if !IsKind(err, KindViewportProbe) {
		t.Error("Expected viewport probe kind through wrapping")
	}
	if IsKind(err, KindInputRead) {
		t.Error("Unexpected input read kind")
	}
	if IsKind(errors.New("plain"), KindTerminalConfig) {
		t.Error("Plain error must not match any kind")
	}
}
