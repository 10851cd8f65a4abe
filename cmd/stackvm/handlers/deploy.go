package handlers

import (
	"context"
	"fmt"

	"github.com/matheuscmelo/stackvm/pkg/openstack"
)

// DeployOptions carries the deploy command's flag values.
type DeployOptions struct {
	Template       string
	Name           string
	Flavor         string
	RAMMegabytes   int
	VCPUs          int
	Network        string
	FloatingIPPool string
	SkipPowerOn    bool
}

// Deploy handles the deploy command.
func Deploy(ctx context.Context, configPath string, verbose bool, opts DeployOptions) error {
	sys, cfg, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	img, err := sys.GetTemplateByName(ctx, opts.Template)
	if err != nil {
		return err
	}

	pool := opts.FloatingIPPool
	if pool == "" {
		pool = cfg.FloatingIPPool
	}

	inst, err := img.Deploy(ctx, opts.Name, openstack.DeployOptions{
		FlavorName:     opts.Flavor,
		RAMMegabytes:   opts.RAMMegabytes,
		VCPUs:          opts.VCPUs,
		NetworkName:    opts.Network,
		FloatingIPPool: pool,
		SkipPowerOn:    opts.SkipPowerOn,
	})
	if err != nil {
		return err
	}

	name, err := inst.Name(ctx)
	if err != nil {
		return err
	}
	addr, err := inst.IP(ctx)
	if err != nil {
		return err
	}

	if addr != "" {
		fmt.Printf("deployed %s (%s) with floating IP %s\n", name, inst.ID, addr)
	} else {
		fmt.Printf("deployed %s (%s)\n", name, inst.ID)
	}
	return nil
}
