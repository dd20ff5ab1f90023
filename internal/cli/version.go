package cli

import (
	"github.com/spf13/cobra"

	"github.com/suitegen/suitegen/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out.Println("suitegen %s", version.Version)
			out.Println("  commit: %s", version.Commit)
			out.Println("  built:  %s", version.Date)
		},
	}
}
