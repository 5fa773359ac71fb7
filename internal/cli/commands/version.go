package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/leapstack-labs/chainsql/pkg/adapter"
	"github.com/leapstack-labs/chainsql/pkg/dialect"
	"github.com/spf13/cobra"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the chainsql version, build metadata, and the registered adapters and dialects.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				_, _ = fmt.Fprintln(out, info.Version)
				return
			}
			_, _ = fmt.Fprintf(out, "chainsql v%s\n", info.Version)
			_, _ = fmt.Fprintln(out, "Chainable SQL builder with reserved word checks")
			_, _ = fmt.Fprintf(out, "  commit:   %s\n", info.GitCommit)
			_, _ = fmt.Fprintf(out, "  built:    %s\n", info.BuildDate)
			_, _ = fmt.Fprintf(out, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(out, "  adapters: %s\n", strings.Join(adapter.ListAdapters(), ", "))
			_, _ = fmt.Fprintf(out, "  dialects: %s\n", strings.Join(dialect.List(), ", "))
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
