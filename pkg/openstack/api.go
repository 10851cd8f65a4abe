package openstack

import (
	"context"

	"github.com/gophercloud/gophercloud/openstack/blockstorage/v2/volumes"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/floatingips"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/flavors"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/images"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
	"github.com/gophercloud/gophercloud/openstack/networking/v2/networks"
)

// Interfaces for the backend services, to allow mocking.

// ServerAPI defines the compute surface the client needs.
type ServerAPI interface {
	// ListPage returns the page of servers following marker, or the first
	// page when marker is empty. A marker referencing a deleted server
	// must surface as a bad request.
	ListPage(ctx context.Context, marker string) ([]servers.Server, error)
	Get(ctx context.Context, id string) (*servers.Server, error)
	Create(ctx context.Context, opts servers.CreateOpts) (*servers.Server, error)
	Delete(ctx context.Context, id string) error
	Rename(ctx context.Context, id, name string) error

	Start(ctx context.Context, id string) error
	Stop(ctx context.Context, id string) error
	Pause(ctx context.Context, id string) error
	Unpause(ctx context.Context, id string) error
	Suspend(ctx context.Context, id string) error
	Resume(ctx context.Context, id string) error

	// CreateImage snapshots the server and returns the new image ID.
	CreateImage(ctx context.Context, id, name string) (string, error)
}

// FloatingIPAPI defines the floating IP surface the client needs.
type FloatingIPAPI interface {
	// ListPage has the same marker contract as ServerAPI.ListPage.
	ListPage(ctx context.Context, marker string) ([]floatingips.FloatingIP, error)
	// Create allocates a new address from pool. Exhausted quota surfaces
	// as an over-limit error.
	Create(ctx context.Context, pool string) (*floatingips.FloatingIP, error)
	Delete(ctx context.Context, id string) error
	Associate(ctx context.Context, serverID, address string) error
	Disassociate(ctx context.Context, serverID, address string) error
}

// ImageAPI defines the image surface the client needs.
type ImageAPI interface {
	List(ctx context.Context) ([]images.Image, error)
	Get(ctx context.Context, id string) (*images.Image, error)
	Delete(ctx context.Context, id string) error
}

// FlavorAPI defines the flavor surface the client needs.
type FlavorAPI interface {
	List(ctx context.Context) ([]flavors.Flavor, error)
	Get(ctx context.Context, id string) (*flavors.Flavor, error)
	// Create may fail with a conflict when the flavor name is taken.
	Create(ctx context.Context, opts flavors.CreateOpts) (*flavors.Flavor, error)
}

// NetworkAPI defines the network surface the client needs.
type NetworkAPI interface {
	List(ctx context.Context) ([]networks.Network, error)
}

// VolumeAPI defines the block storage surface the client needs.
type VolumeAPI interface {
	List(ctx context.Context) ([]volumes.Volume, error)
	Get(ctx context.Context, id string) (*volumes.Volume, error)
	Create(ctx context.Context, opts volumes.CreateOpts) (*volumes.Volume, error)
	Delete(ctx context.Context, id string) error
}

// Services bundles the backend service clients a System operates on.
type Services struct {
	Servers     ServerAPI
	FloatingIPs FloatingIPAPI
	Images      ImageAPI
	Flavors     FlavorAPI
	Networks    NetworkAPI
	Volumes     VolumeAPI
}
