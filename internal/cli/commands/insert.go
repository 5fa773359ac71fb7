package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// NewInsertCommand creates the insert command.
func NewInsertCommand() *cobra.Command {
	var (
		sets   []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "insert <table>",
		Short: "Insert one row and commit",
		Long: `Insert a single row built from --set col=value pairs.

Values are bound through placeholders. The statement is committed only if it
succeeds.`,
		Example: `  chainsql insert users --set name=alice --set email=alice@example.com`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, values, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			var (
				cc      *CommandContext
				cleanup = func() {}
			)
			if dryRun {
				cc, err = NewCommandContextWithoutConnection(cmd)
			} else {
				cc, cleanup, err = NewCommandContext(cmd)
			}
			if err != nil {
				return err
			}
			defer cleanup()

			b := cc.Helper.Builder
			b.InsertInto(args[0], cols...)
			if err := b.Err(); err != nil {
				b.Reset()
				return err
			}

			if dryRun {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(b.SQL()))
				b.Reset()
				return nil
			}

			if err := b.Do(cmd.Context(), values...); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "inserted 1 row into %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Column assignment as col=value (repeatable, required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the SQL without running it")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

// parseAssignments splits col=value pairs. Columns come back sorted so the
// generated statement does not depend on flag order.
func parseAssignments(pairs []string) ([]string, []any, error) {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		col, val, ok := strings.Cut(p, "=")
		if !ok || col == "" {
			return nil, nil, fmt.Errorf("invalid assignment %q (expected col=value)", p)
		}
		if _, dup := m[col]; dup {
			return nil, nil, fmt.Errorf("column %q assigned twice", col)
		}
		m[col] = val
	}

	cols := make([]string, 0, len(m))
	for c := range m {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	values := make([]any, len(cols))
	for i, c := range cols {
		values[i] = m[c]
	}
	return cols, values, nil
}
