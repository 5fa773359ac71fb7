package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured database is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			target := cc.Helper.Target()
			if target == "" {
				target = "default address"
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "connected to %s at %s in %s\n", cc.Cfg.Database.Type, target, time.Since(start).Round(time.Millisecond))
			_, _ = fmt.Fprintf(out, "breaker: %s\n", cc.Helper.BreakerState())
			return nil
		},
	}
}
