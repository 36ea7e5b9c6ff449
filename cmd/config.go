package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration a scan would run with, after applying defaults,
the config file, FAILEDJOBS_* environment variables and flags.

The output is valid TOML and can be used as a starting point for
~/.config/failedjobs/config.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			data, err := toml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, "failed to encode configuration")
			}

			out := cmd.OutOrStdout()
			if cfg.Source != "" {
				fmt.Fprintf(out, "# Loaded from %s\n", cfg.Source)
			}
			_, err = out.Write(data)
			return err
		},
	}
}
