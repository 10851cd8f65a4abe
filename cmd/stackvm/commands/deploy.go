package commands

import (
	"github.com/spf13/cobra"

	"github.com/matheuscmelo/stackvm/cmd/stackvm/handlers"
)

// Deploy returns the deploy command.
//
// The deploy command realizes a new instance from a template. Sizing comes
// from a flavor, optionally overridden with explicit RAM and CPU values, in
// which case a matching flavor is found or created.
func Deploy() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy TEMPLATE",
		Short: "Deploy a new instance from a template",
		Long: `Deploy creates an instance from the named template and waits until it
runs. With --fip-pool a floating IP is acquired and attached.

Example:
  stackvm deploy ubuntu-22.04 --name web1 --flavor m1.small --fip-pool ext-net
  stackvm deploy ubuntu-22.04 --ram 4096 --cpus 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, verbose := rootFlags(cmd)
			opts.Template = args[0]
			return handlers.Deploy(cmd.Context(), configPath, verbose, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Instance name (generated when empty)")
	cmd.Flags().StringVar(&opts.Flavor, "flavor", "", "Flavor name (default m1.tiny)")
	cmd.Flags().IntVar(&opts.RAMMegabytes, "ram", 0, "RAM override in megabytes")
	cmd.Flags().IntVar(&opts.VCPUs, "cpus", 0, "CPU count override")
	cmd.Flags().StringVar(&opts.Network, "network", "", "Network name (required with multiple networks)")
	cmd.Flags().StringVar(&opts.FloatingIPPool, "fip-pool", "", "Floating IP pool to draw an address from")
	cmd.Flags().BoolVar(&opts.SkipPowerOn, "no-power-on", false, "Do not ensure the instance runs after deploy")

	return cmd
}
