package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "exec <sql> [args...]",
		Short: "Run a trusted statement and commit",
		Long: `Run a statement verbatim, for DDL and anything the clause builders do not
cover. The statement text is not checked against the reserved word sets;
the arguments bound to its ? placeholders are.`,
		Example: `  chainsql exec "CREATE TABLE users (id INTEGER, name TEXT)"
  chainsql exec "DELETE FROM users WHERE id = ?" 7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(args[0]))
				return nil
			}

			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cc.Helper.AddCustomQuery(args[0]).Do(cmd.Context(), toArgs(args[1:])...); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the statement without running it")
	return cmd
}
