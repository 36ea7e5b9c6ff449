package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X thoreinstein.com/failedjobs/cmd.version=..."
var version = "dev"

// GetVersion returns the build version.
func GetVersion() string {
	return version
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "failedjobs %s\n", GetVersion())
		},
	}
}
