package commands

import (
	"github.com/spf13/cobra"

	"github.com/matheuscmelo/stackvm/cmd/stackvm/handlers"
)

// IP returns the ip command group.
func IP() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ip",
		Short: "Manage floating IPs",
	}
	cmd.AddCommand(ipAssign())
	cmd.AddCommand(ipRelease())
	return cmd
}

func ipAssign() *cobra.Command {
	var pool string

	cmd := &cobra.Command{
		Use:   "assign INSTANCE",
		Short: "Attach a floating IP to an instance",
		Long: `Assign attaches a floating IP from the pool to the instance, reusing a
free address when more than one is available and allocating a fresh one
otherwise. The pool defaults to floating_ip_pool from the configuration.

Example:
  stackvm ip assign web1 --pool ext-net`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, verbose := rootFlags(cmd)
			return handlers.AssignIP(cmd.Context(), configPath, verbose, args[0], pool)
		},
	}

	cmd.Flags().StringVar(&pool, "pool", "", "Floating IP pool (defaults to the configured pool)")

	return cmd
}

func ipRelease() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "release INSTANCE",
		Short: "Detach an instance's floating IP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, verbose := rootFlags(cmd)
			return handlers.ReleaseIP(cmd.Context(), configPath, verbose, args[0], remove)
		},
	}

	cmd.Flags().BoolVar(&remove, "delete", false, "Also delete the floating IP object")

	return cmd
}
