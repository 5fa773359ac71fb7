package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/chainsql/pkg/dialect"
	"github.com/leapstack-labs/chainsql/pkg/guard"
	"github.com/spf13/cobra"
)

// ErrRejectedTokens is returned by check when at least one token is reserved.
var ErrRejectedTokens = errors.New("one or more tokens are reserved")

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	var dialectName string

	cmd := &cobra.Command{
		Use:   "check <token>...",
		Short: "Test fragments against the reserved word sets",
		Long: `Check reports, for each fragment, whether the builder would reject it.

Matching is exact and case-sensitive: "DROP" is rejected, "drop" and
"1=1 OR DROP" are not. A rejected name is shown quoted for the dialect of
database.type (or --dialect), which the builder accepts.`,
		Example: `  chainsql check users DROP "u.name"
  chainsql check --dialect postgres ORDER`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dialectName == "" {
				dialectName = GetConfig(cmd.Context()).Database.Type
			}
			d, ok := dialect.Get(dialectName)
			if !ok {
				return fmt.Errorf("unknown dialect %q (available: %s)",
					dialectName, strings.Join(dialect.List(), ", "))
			}

			out := cmd.OutOrStdout()
			rejected := 0
			for _, tok := range args {
				set, ok := guard.Lookup(tok)
				if !ok {
					_, _ = fmt.Fprintf(out, "ok        %s\n", tok)
					continue
				}
				rejected++
				_, _ = fmt.Fprintf(out, "rejected  %s (reserved %s; quote as %s)\n", tok, set, d.QuoteIdentifier(tok))
			}
			if rejected > 0 {
				return fmt.Errorf("%w: %d of %d", ErrRejectedTokens, rejected, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dialectName, "dialect", "", "Dialect used to quote rejected names (default: database.type)")
	_ = cmd.RegisterFlagCompletionFunc("dialect", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
