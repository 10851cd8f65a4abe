package handlers

import (
	"context"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/matheuscmelo/stackvm/pkg/openstack"
)

// ListInstances handles the list command.
func ListInstances(ctx context.Context, configPath string, verbose bool) error {
	sys, _, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	instances, err := sys.ListInstances(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "State", "Floating IP"})
	for _, inst := range instances {
		name, err := inst.Name(ctx)
		if err != nil {
			return err
		}
		state, err := inst.State(ctx)
		if err != nil && state != openstack.StateError {
			return err
		}
		addr, err := inst.IP(ctx)
		if err != nil {
			return err
		}
		table.Append([]string{inst.ID, name, state.String(), addr})
	}
	table.Render()
	return nil
}

// ListTemplates handles the list --templates command.
func ListTemplates(ctx context.Context, configPath string, verbose bool) error {
	sys, _, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	templates, err := sys.ListTemplates(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name"})
	for _, img := range templates {
		name, err := img.Name(ctx)
		if err != nil {
			return err
		}
		table.Append([]string{img.ID, name})
	}
	table.Render()
	return nil
}
