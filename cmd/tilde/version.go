package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tilde/constants"
)

const defaultModule = "github.com/lixenwraith/tilde"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", modulePath(), constants.Version)
			return err
		},
	}
}

// modulePath returns the main module path from build info when available
func modulePath() string {
	info, ok := debug.ReadBuildInfo()
	if ok {
		if path := strings.TrimSpace(info.Main.Path); path != "" && !strings.HasSuffix(path, ".test") {
			return path
		}
	}
	return defaultModule
}
