package handlers

import (
	"context"
	"fmt"
)

// AssignIP handles the ip assign command.
func AssignIP(ctx context.Context, configPath string, verbose bool, name, pool string) error {
	sys, cfg, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	if pool == "" {
		pool = cfg.FloatingIPPool
	}
	if pool == "" {
		return fmt.Errorf("no floating IP pool given and none configured")
	}

	inst, err := sys.GetInstanceByName(ctx, name)
	if err != nil {
		return err
	}

	addr, err := inst.AssignFloatingIP(ctx, pool)
	if err != nil {
		return err
	}
	fmt.Printf("%s has floating IP %s\n", name, addr)
	return nil
}

// ReleaseIP handles the ip release command.
func ReleaseIP(ctx context.Context, configPath string, verbose bool, name string, remove bool) error {
	sys, _, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	inst, err := sys.GetInstanceByName(ctx, name)
	if err != nil {
		return err
	}

	fip, err := inst.UnassignFloatingIP(ctx)
	if err != nil {
		return err
	}
	if fip == nil {
		fmt.Printf("%s has no floating IP\n", name)
		return nil
	}

	if remove {
		if _, err := sys.DeleteFloatingIP(ctx, fip.IP); err != nil {
			return err
		}
		fmt.Printf("released and deleted %s\n", fip.IP)
		return nil
	}
	fmt.Printf("released %s back to the pool\n", fip.IP)
	return nil
}
