package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"

	"github.com/lixenwraith/tilde/constants"
	"github.com/lixenwraith/tilde/terminal"
)

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print each decoded key by name until Ctrl+Q",
		Args:  cobra.NoArgs,
		RunE:  a.runKeys,
	}
}

func (a *app) runKeys(cmd *cobra.Command, _ []string) (err error) {
	ctx, cfg, release, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer release()
	logger := pslog.Ctx(ctx)

	b := a.backend(cfg)
	if err := b.Init(); err != nil {
		return err
	}
	defer func() {
		if ferr := b.Fini(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	// Output post-processing is off in raw mode, lines end in \r\n
	if _, err := fmt.Fprintf(b, "Press keys, Ctrl+%c quits\r\n", constants.QuitKey-'a'+'A'); err != nil {
		return err
	}

	dec := terminal.NewDecoder(b)
	for ev, err := range dec.Events(ctx) {
		if err != nil {
			return err
		}
		logger.Trace("key", "name", ev.Name())
		if ev.IsCtrl(constants.QuitKey) {
			return nil
		}
		if _, err := fmt.Fprint(b, formatKey(ev)); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// formatKey renders one event line, with the raw byte for single-byte keys
func formatKey(ev terminal.Event) string {
	switch ev.Key {
	case terminal.KeyRune, terminal.KeyCtrl:
		return fmt.Sprintf("%-12s 0x%02x\r\n", ev.Name(), ev.Byte)
	}
	return fmt.Sprintf("%s\r\n", ev.Name())
}
