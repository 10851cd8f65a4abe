package commands

import (
	"github.com/spf13/cobra"

	"github.com/matheuscmelo/stackvm/cmd/stackvm/handlers"
)

// Delete returns the delete command.
func Delete() *cobra.Command {
	var cleanup bool

	cmd := &cobra.Command{
		Use:   "delete INSTANCE",
		Short: "Delete an instance",
		Long: `Delete detaches the instance's floating IP, removes the instance and
waits until the backend no longer knows it. With --cleanup the floating IP
object is deleted too instead of returning to the pool.

Example:
  stackvm delete web1
  stackvm delete web1 --cleanup`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, verbose := rootFlags(cmd)
			return handlers.Delete(cmd.Context(), configPath, verbose, args[0], cleanup)
		},
	}

	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "Also delete the floating IP object")

	return cmd
}
