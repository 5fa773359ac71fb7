package commands

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/leapstack-labs/chainsql/pkg/guard"
	"github.com/spf13/cobra"
)

var setNames = map[string]guard.Set{
	"keywords":   guard.SetKeywords,
	"exceptions": guard.SetExceptions,
	"mode":       guard.SetModeTokens,
}

// NewKeywordsCommand creates the keywords command.
func NewKeywordsCommand() *cobra.Command {
	var (
		setFlag string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "List reserved words",
		Long: `List the reserved words the builder rejects.

Sets:
  keywords    MariaDB reserved keywords
  exceptions  context-dependent reserved words
  mode        words reserved under Oracle compatibility mode`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, ok := setNames[strings.ToLower(setFlag)]
			if !ok {
				return fmt.Errorf("unknown set %q (expected keywords, exceptions or mode)", setFlag)
			}
			words := guard.Words(set)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(words)
			}
			for _, w := range words {
				_, _ = fmt.Fprintln(out, w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&setFlag, "set", "keywords", "Reserved set to list (keywords|exceptions|mode)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as a JSON array")

	_ = cmd.RegisterFlagCompletionFunc("set", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"keywords", "exceptions", "mode"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
