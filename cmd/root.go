package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"thoreinstein.com/failedjobs/pkg/accounting"
	"thoreinstein.com/failedjobs/pkg/config"
	fjerrors "thoreinstein.com/failedjobs/pkg/errors"
)

// configFlag names the persistent flag that selects a config file.
const configFlag = "config"

// NewRootCmd builds the failedjobs command tree. Each call returns a fresh
// tree with its own flag values.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "failedjobs",
		Short: "Report failed Grid Engine jobs from the accounting file",
		Long: `failedjobs scans a Grid Engine (SGE) accounting file and lists the jobs of
one user that finished within a recent time window and terminated abnormally,
that is with a non-zero failed code or exit status.

The report starts with two comment lines followed by one
"<job-number>, <job-script-name>" line per failed job, in file order.`,
		Example: `  failedjobs -i /opt/gridengine/default/common/accounting -o report.txt -u pavgi -s 3d
  failedjobs --ipfile /opt/gridengine/default/common/accounting --opfile report.txt --user pavgi --since 3d
  failedjobs --since 12h --format table`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd)
		},
	}

	config.AddFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringP(configFlag, "C", "", "config file (default is $HOME/.config/failedjobs/config.toml)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fjerrors.NewOptionErrorWithCause(err)
	})

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command tree against os.Args and exits with the status
// matching the outcome. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimRight(fjerrors.FormatUserError(err), "\n"))
	}
	os.Exit(fjerrors.ExitCode(err))
}

// resolveConfig builds the run configuration from the parsed flags of cmd.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, fjerrors.NewConfigErrorWithCause(configFlag, "failed to read flag", err)
	}

	return config.Resolve(config.Options{
		Flags:      cmd.Flags(),
		ConfigFile: cfgFile,
		Warnings:   cmd.ErrOrStderr(),
	})
}

func runScan(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	logOptions(logger, cfg)

	scanner := accounting.NewScanner(cfg,
		accounting.WithLogger(logger),
		accounting.WithStdout(cmd.OutOrStdout()),
	)

	_, err = scanner.Run(cmd.Context())
	return err
}
