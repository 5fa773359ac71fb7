package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/chainsql/pkg/query"
	"github.com/spf13/cobra"
)

type selectOptions struct {
	table    string
	alias    string
	fields   []string
	distinct bool
	where    string
	groupBy  string
	orderBy  string
	desc     bool
	limit    int
	format   string
	dryRun   bool
}

// NewSelectCommand creates the select command.
func NewSelectCommand() *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select [args...]",
		Short: "Build and run a SELECT statement",
		Long: `Build a SELECT statement from flags and run it against the configured database.

Positional arguments are bound, in order, to the ? placeholders in --where.
Every identifier and argument is checked against the reserved word sets
before anything is sent to the database.`,
		Example: `  chainsql select --table users --field id --field name:n --where "id > ?" 10
  chainsql select --table users --order-by name --desc --limit 5 --format json
  chainsql select --table users --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.table, "table", "", "Table to select from (required)")
	cmd.Flags().StringVar(&opts.alias, "alias", "", "Table alias")
	cmd.Flags().StringArrayVar(&opts.fields, "field", nil, "Column as name[:alias] (repeatable, default *)")
	cmd.Flags().BoolVar(&opts.distinct, "distinct", false, "Use SELECT DISTINCT")
	cmd.Flags().StringVar(&opts.where, "where", "", "WHERE condition with ? placeholders")
	cmd.Flags().StringVar(&opts.groupBy, "group-by", "", "GROUP BY expression")
	cmd.Flags().StringVar(&opts.orderBy, "order-by", "", "ORDER BY expression")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "LIMIT (0 for none, requires --order-by)")
	cmd.Flags().StringVar(&opts.format, "format", FormatAuto, "Output format (auto|table|json|csv|md)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the SQL without running it")
	_ = cmd.MarkFlagRequired("table")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatAuto, FormatTable, FormatJSON, FormatCSV, FormatMarkdown}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runSelect(cmd *cobra.Command, opts *selectOptions, args []string) error {
	var (
		cc      *CommandContext
		cleanup = func() {}
		err     error
	)
	if opts.dryRun {
		cc, err = NewCommandContextWithoutConnection(cmd)
	} else {
		cc, cleanup, err = NewCommandContext(cmd)
	}
	if err != nil {
		return err
	}
	defer cleanup()

	b := cc.Helper.Builder
	if len(opts.fields) == 0 {
		b.SelectAll()
	} else {
		fields := parseFields(opts.fields)
		if opts.distinct {
			b.SelectDistinct(fields...)
		} else {
			b.Select(fields...)
		}
	}
	b.From(opts.table, opts.alias)
	if opts.where != "" {
		b.Where(opts.where)
	}
	if opts.groupBy != "" {
		b.GroupBy(opts.groupBy)
	}
	if opts.orderBy != "" {
		b.OrderBy(opts.orderBy, opts.desc, opts.limit)
	}

	if err := b.Err(); err != nil {
		b.Reset()
		return err
	}

	if opts.dryRun {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(b.SQL()))
		b.Reset()
		return nil
	}

	rows, err := b.Fetch(cmd.Context(), toArgs(args)...)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	return renderResults(cmd.OutOrStdout(), rows, opts.format)
}

// parseFields turns "name[:alias]" specs into fields.
func parseFields(specs []string) []query.Field {
	fields := make([]query.Field, 0, len(specs))
	for _, spec := range specs {
		name, alias, _ := strings.Cut(spec, ":")
		fields = append(fields, query.As(name, alias))
	}
	return fields
}

func toArgs(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
