// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the stackvm CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stackvm",
		Short: "Manage virtual machines on an OpenStack-compatible cloud",
	}

	cmd.PersistentFlags().StringP("config", "c", "stackvm.yaml", "Path to connection configuration file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(List())
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Start())
	cmd.AddCommand(Stop())
	cmd.AddCommand(Restart())
	cmd.AddCommand(Suspend())
	cmd.AddCommand(Pause())
	cmd.AddCommand(Delete())
	cmd.AddCommand(IP())
	cmd.AddCommand(Templatize())
	cmd.AddCommand(Volume())
	cmd.AddCommand(Version())

	return cmd
}

// rootFlags extracts the persistent flag values a handler needs.
func rootFlags(cmd *cobra.Command) (configPath string, verbose bool) {
	configPath, _ = cmd.Flags().GetString("config")
	verbose, _ = cmd.Flags().GetBool("verbose")
	return configPath, verbose
}
