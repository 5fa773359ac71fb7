package commands

import (
	"fmt"

	"github.com/leapstack-labs/chainsql/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const masked = "********"

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after defaults, the config file, CHAINSQL_*
environment variables and flags have been applied. Secrets are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *GetConfig(cmd.Context())
			cfg.Database.Options = copyOptions(cfg.Database.Options)
			if cfg.Database.Password != "" {
				cfg.Database.Password = masked
			}
			if cfg.Validation.HMAC != "" {
				cfg.Validation.HMAC = masked
			}

			out := cmd.OutOrStdout()
			path, _ := config.Resolve(configFlag(cmd))
			if path == "" {
				path = "(none)"
			}
			_, _ = fmt.Fprintf(out, "# file: %s\n", path)

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func configFlag(cmd *cobra.Command) string {
	f := cmd.Flag("config")
	if f == nil {
		return ""
	}
	return f.Value.String()
}

func copyOptions(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
