package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the drills release.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/ormdrills"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the drills version",
		Args:  argsBetween(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "drills v%s\nmodule: %s\n", Version, modulePath)
			return err
		},
	}
}
