package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"

	"github.com/lixenwraith/tilde/terminal"
)

func newProbeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Report the viewport size and which probe path answered",
		Args:  cobra.NoArgs,
		RunE:  a.runProbe,
	}
}

func (a *app) runProbe(cmd *cobra.Command, _ []string) error {
	ctx, cfg, release, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer release()

	b := a.backend(cfg)
	if err := b.Init(); err != nil {
		return err
	}
	v, method, err := terminal.Probe(b, cfg.Terminal.ForceFallback)
	if err != nil {
		_ = terminal.ResetScreen(b)
	}
	// Restore before printing so output uses cooked line endings
	if ferr := b.Fini(); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}
	pslog.Ctx(ctx).Info("viewport probed", "rows", v.Rows, "cols", v.Cols, "method", method.String())

	out := cmd.OutOrStdout()
	if method == terminal.ProbeCursorReport {
		// Fallback left the cursor at the bottom-right edge
		fmt.Fprintln(out)
	}
	_, err = fmt.Fprintf(out, "%d %d %s\n", v.Rows, v.Cols, method)
	return err
}
