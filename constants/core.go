package constants

import "time"

// Identity
const (
	// AppName is the binary and config directory name
	AppName = "tilde"

	// EnvPrefix prefixes environment overrides, e.g. TILDE_LOG_LEVEL
	EnvPrefix = "TILDE"
)

// Version is set via -ldflags "-X github.com/lixenwraith/tilde/constants.Version=..."
var Version = "0.1"

// BannerText returns the default welcome banner
func BannerText() string {
	return "Tilde editor -- version " + Version
}

// Input
const (
	// QuitKey is combined with Ctrl to end the session
	QuitKey = 'q'

	// DefaultReadTimeout is the raw-mode read window (VTIME 1)
	DefaultReadTimeout = 100 * time.Millisecond

	// MaxReadTimeout is the largest window VTIME can express
	MaxReadTimeout = 25500 * time.Millisecond
)

// Output & Logging Limits
const (
	// DefaultMaxFrameBytes bounds one frame's render buffer
	DefaultMaxFrameBytes = 1 << 20

	// DefaultLogMaxSize triggers log rotation on open (10MB)
	DefaultLogMaxSize = 10 * 1024 * 1024
)
