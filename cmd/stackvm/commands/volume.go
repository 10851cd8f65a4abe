package commands

import (
	"github.com/spf13/cobra"

	"github.com/matheuscmelo/stackvm/cmd/stackvm/handlers"
)

// Volume returns the volume command group.
func Volume() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volume",
		Short: "Manage block storage volumes",
	}
	cmd.AddCommand(volumeList())
	cmd.AddCommand(volumeCreate())
	cmd.AddCommand(volumeDelete())
	return cmd
}

func volumeList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List volumes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, verbose := rootFlags(cmd)
			return handlers.ListVolumes(cmd.Context(), configPath, verbose)
		},
	}
}

func volumeCreate() *cobra.Command {
	var size int
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a volume and wait until it is available",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, verbose := rootFlags(cmd)
			return handlers.CreateVolume(cmd.Context(), configPath, verbose, size, name)
		},
	}

	cmd.Flags().IntVar(&size, "size", 1, "Volume size in gigabytes")
	cmd.Flags().StringVar(&name, "name", "", "Volume name")

	return cmd
}

func volumeDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete volumes and wait until they are gone",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, verbose := rootFlags(cmd)
			return handlers.DeleteVolumes(cmd.Context(), configPath, verbose, args)
		},
	}
}
