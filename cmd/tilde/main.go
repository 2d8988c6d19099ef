package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"pkt.systems/psi"

	"github.com/lixenwraith/tilde/config"
	"github.com/lixenwraith/tilde/constants"
	"github.com/lixenwraith/tilde/terminal"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) (code int) {
	// Panic Recovery: restore the terminal before printing so the trace is readable
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n%s crashed: %v\r\n", constants.AppName, r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			code = 1
		}
	}()

	root := newRootCmd(&app{in: os.Stdin, out: os.Stdout})
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, diagnostic(ctx, err))
		return 1
	}
	return 0
}

// diagnostic renders a fatal error for stderr, naming the failing operation
func diagnostic(ctx context.Context, err error) string {
	if errors.Is(err, context.Canceled) {
		return fmt.Sprintf("%s: terminated: %v", constants.AppName, context.Cause(ctx))
	}
	var te *terminal.Error
	if errors.As(err, &te) {
		return fmt.Sprintf("%s: %s error: %v", constants.AppName, te.Kind, te)
	}
	return fmt.Sprintf("%s: %v", constants.AppName, err)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           constants.AppName,
		Short:         "Full-screen raw terminal session with a clamped cursor",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          a.runSession,
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(newVersionCmd())
	root.AddCommand(newProbeCmd(a))
	root.AddCommand(newKeysCmd(a))

	return root
}
