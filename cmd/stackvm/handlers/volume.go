package handlers

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// ListVolumes handles the volume list command.
func ListVolumes(ctx context.Context, configPath string, verbose bool) error {
	sys, _, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	vols, err := sys.ListVolumes(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Size (GB)", "Status"})
	for _, v := range vols {
		table.Append([]string{v.ID, v.Name, strconv.Itoa(v.Size), v.Status})
	}
	table.Render()
	return nil
}

// CreateVolume handles the volume create command.
func CreateVolume(ctx context.Context, configPath string, verbose bool, sizeGB int, name string) error {
	sys, _, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	id, err := sys.CreateVolume(ctx, sizeGB, name)
	if err != nil {
		return err
	}
	fmt.Printf("created volume %s\n", id)
	return nil
}

// DeleteVolumes handles the volume delete command.
func DeleteVolumes(ctx context.Context, configPath string, verbose bool, ids []string) error {
	sys, _, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	if err := sys.DeleteVolumes(ctx, ids...); err != nil {
		return err
	}
	fmt.Printf("deleted %d volume(s)\n", len(ids))
	return nil
}
