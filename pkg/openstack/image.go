package openstack

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/images"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
)

// imageStatusActive is the only terminal-success image status; everything
// else is transient or an error.
const imageStatusActive = "ACTIVE"

const imageGonePollInterval = 10 * time.Second

// Image is a handle on one backend image, usable as a deployment template.
type Image struct {
	ID string

	sys *System
	raw *images.Image
}

func newImage(sys *System, id string, raw *images.Image) *Image {
	return &Image{ID: id, sys: sys, raw: raw}
}

// Refresh re-fetches the backend snapshot.
func (img *Image) Refresh(ctx context.Context) error {
	raw, err := img.sys.svc.Images.Get(ctx, img.ID)
	if err != nil {
		if IsNotFound(err) {
			return &NotFoundError{Kind: "image", Ref: img.ID}
		}
		return fmt.Errorf("failed to get image %s: %w", img.ID, err)
	}
	img.raw = raw
	return nil
}

// Name returns the image's name.
func (img *Image) Name(ctx context.Context) (string, error) {
	if img.raw == nil {
		if err := img.Refresh(ctx); err != nil {
			return "", err
		}
	}
	return img.raw.Name, nil
}

// Exists reports whether the backend still knows the image.
func (img *Image) Exists(ctx context.Context) (bool, error) {
	err := img.Refresh(ctx)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// Delete removes the image and blocks until an existence poll confirms
// absence.
func (img *Image) Delete(ctx context.Context) error {
	if err := img.sys.svc.Images.Delete(ctx, img.ID); err != nil && !IsNotFound(err) {
		return fmt.Errorf("failed to delete image %s: %w", img.ID, err)
	}
	return waitFor(ctx, fmt.Sprintf("image %s to be gone", img.ID), img.sys.timeouts.ImageGone, imageGonePollInterval, func() (bool, error) {
		exists, err := img.Exists(ctx)
		return !exists, err
	})
}

// Cleanup is an alias for Delete.
func (img *Image) Cleanup(ctx context.Context) error {
	return img.Delete(ctx)
}

// DeployOptions selects sizing, placement and networking for a new
// instance. The zero value deploys an m1.tiny instance on the tenant's
// only network and powers it on.
type DeployOptions struct {
	// FlavorName or FlavorID selects the sizing profile; m1.tiny when
	// both are empty.
	FlavorName string
	FlavorID   string

	// RAMMegabytes and VCPUs override the selected flavor. A suitable
	// flavor is minted when none exists.
	RAMMegabytes int
	VCPUs        int

	// NetworkName is mandatory when the tenant has more than one network.
	NetworkName string

	// FloatingIPPool, when set, acquires and attaches a floating IP after
	// the instance reaches RUNNING.
	FloatingIPPool string

	// SkipPowerOn leaves the instance as the backend delivered it instead
	// of ensuring it runs.
	SkipPowerOn bool

	// Timeout bounds the wait for RUNNING; Timeouts.Deploy when zero.
	Timeout time.Duration
}

const defaultFlavorName = "m1.tiny"

// Deploy realizes a new instance from the image. An empty name gets a
// generated one.
func (img *Image) Deploy(ctx context.Context, name string, opts DeployOptions) (*Instance, error) {
	s := img.sys

	flavor, err := s.resolveFlavor(ctx, opts)
	if err != nil {
		return nil, err
	}
	if opts.RAMMegabytes != 0 || opts.VCPUs != 0 {
		flavor, err = s.overrideFlavor(ctx, flavor, opts.VCPUs, opts.RAMMegabytes)
		if err != nil {
			return nil, err
		}
	}

	if name == "" {
		name = "vm-" + uuid.NewString()[:8]
	}

	imgName, err := img.Name(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Infof("deploying template %s to instance %s (%s)", imgName, name, flavor.Name)

	nets, err := s.deployNetworks(ctx, opts.NetworkName)
	if err != nil {
		return nil, err
	}

	created, err := s.svc.Servers.Create(ctx, servers.CreateOpts{
		Name:      name,
		ImageRef:  img.ID,
		FlavorRef: flavor.ID,
		Networks:  nets,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create instance %s: %w", name, err)
	}

	inst := newInstance(s, created.ID, created)

	bound := opts.Timeout
	if bound == 0 {
		bound = s.timeouts.Deploy
	}
	if err := inst.waitForState(ctx, StateRunning, bound); err != nil {
		return nil, err
	}

	if opts.FloatingIPPool != "" {
		if _, err := inst.AssignFloatingIP(ctx, opts.FloatingIPPool); err != nil {
			return nil, err
		}
	}

	if !opts.SkipPowerOn {
		if err := inst.Start(ctx); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// deployNetworks maps the network selection rule: with a single network the
// backend places the instance itself; with several, one must be named.
func (s *System) deployNetworks(ctx context.Context, networkName string) ([]servers.Network, error) {
	all, err := s.svc.Networks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	if len(all) <= 1 {
		return nil, nil
	}
	if networkName == "" {
		return nil, ErrNetworkRequired
	}
	for _, n := range all {
		if n.Name == networkName {
			return []servers.Network{{UUID: n.ID}}, nil
		}
	}
	return nil, &NotFoundError{Kind: "network", Ref: networkName}
}
