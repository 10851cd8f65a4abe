package openstack

import (
	"context"
	"fmt"

	"github.com/gophercloud/gophercloud/openstack/compute/v2/flavors"
)

// resolveFlavor picks the deployment flavor from the options, defaulting
// to m1.tiny.
func (s *System) resolveFlavor(ctx context.Context, opts DeployOptions) (*flavors.Flavor, error) {
	if opts.FlavorID != "" {
		flavor, err := s.svc.Flavors.Get(ctx, opts.FlavorID)
		if err != nil {
			if IsNotFound(err) {
				return nil, &NotFoundError{Kind: "flavor", Ref: opts.FlavorID}
			}
			return nil, fmt.Errorf("failed to get flavor %s: %w", opts.FlavorID, err)
		}
		return flavor, nil
	}

	name := opts.FlavorName
	if name == "" {
		name = defaultFlavorName
	}
	return s.findFlavorByName(ctx, name)
}

func (s *System) findFlavorByName(ctx context.Context, name string) (*flavors.Flavor, error) {
	all, err := s.svc.Flavors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flavors: %w", err)
	}
	for idx := range all {
		if all[idx].Name == name {
			return &all[idx], nil
		}
	}
	return nil, &NotFoundError{Kind: "flavor", Ref: name}
}

// overrideFlavor finds or mints a flavor matching the base profile with
// RAM and CPU overridden. Zero overrides keep the base values. Flavor
// names are deterministic (<base>-<ram>M-<cpu>C) with a numeric suffix
// bumped past naming conflicts, so concurrent override requests converge
// instead of colliding.
func (s *System) overrideFlavor(ctx context.Context, base *flavors.Flavor, vcpus, ram int) (*flavors.Flavor, error) {
	s.log.Infof("RAM/CPU override of flavor %s: RAM %d MB, CPU %d cores", base.Name, ram, vcpus)
	if ram == 0 {
		ram = base.RAM
	}
	if vcpus == 0 {
		vcpus = base.VCPUs
	}

	all, err := s.svc.Flavors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flavors: %w", err)
	}
	for idx := range all {
		f := &all[idx]
		if f.RAM == ram && f.VCPUs == vcpus && f.Disk == base.Disk &&
			f.Ephemeral == base.Ephemeral && f.Swap == base.Swap &&
			f.RxTxFactor == base.RxTxFactor && f.IsPublic == base.IsPublic {
			s.log.Infof("found a suitable flavor %s", f.Name)
			return f, nil
		}
	}

	s.log.Infof("no suitable flavor found, creating a new one")
	baseName := fmt.Sprintf("%s-%dM-%dC", base.Name, ram, vcpus)
	name := baseName
	disk := base.Disk
	swap := base.Swap
	ephemeral := base.Ephemeral
	isPublic := base.IsPublic

	for counter := 0; ; counter++ {
		if counter > 0 {
			name = fmt.Sprintf("%s_%d", baseName, counter)
		}
		created, err := s.svc.Flavors.Create(ctx, flavors.CreateOpts{
			Name:       name,
			RAM:        ram,
			VCPUs:      vcpus,
			Disk:       &disk,
			Swap:       &swap,
			RxTxFactor: base.RxTxFactor,
			IsPublic:   &isPublic,
			Ephemeral:  &ephemeral,
		})
		if err != nil {
			if isConflict(err) {
				s.log.Infof("flavor name %s is already taken, changing the name", name)
				continue
			}
			return nil, fmt.Errorf("failed to create flavor %s: %w", name, err)
		}
		s.log.Infof("created a flavor %s with id %s", created.Name, created.ID)
		return created, nil
	}
}
