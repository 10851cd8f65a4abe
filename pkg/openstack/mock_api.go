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

// MockServerAPI is a mock implementation of ServerAPI.
type MockServerAPI struct {
	ListPageFunc    func(ctx context.Context, marker string) ([]servers.Server, error)
	GetFunc         func(ctx context.Context, id string) (*servers.Server, error)
	CreateFunc      func(ctx context.Context, opts servers.CreateOpts) (*servers.Server, error)
	DeleteFunc      func(ctx context.Context, id string) error
	RenameFunc      func(ctx context.Context, id, name string) error
	StartFunc       func(ctx context.Context, id string) error
	StopFunc        func(ctx context.Context, id string) error
	PauseFunc       func(ctx context.Context, id string) error
	UnpauseFunc     func(ctx context.Context, id string) error
	SuspendFunc     func(ctx context.Context, id string) error
	ResumeFunc      func(ctx context.Context, id string) error
	CreateImageFunc func(ctx context.Context, id, name string) (string, error)
}

// Ensure interface compliance
var _ ServerAPI = (*MockServerAPI)(nil)

func (m *MockServerAPI) ListPage(ctx context.Context, marker string) ([]servers.Server, error) {
	if m.ListPageFunc != nil {
		return m.ListPageFunc(ctx, marker)
	}
	return nil, nil
}

func (m *MockServerAPI) Get(ctx context.Context, id string) (*servers.Server, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &servers.Server{ID: id}, nil
}

func (m *MockServerAPI) Create(ctx context.Context, opts servers.CreateOpts) (*servers.Server, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, opts)
	}
	return &servers.Server{ID: "mock-id", Name: opts.Name}, nil
}

func (m *MockServerAPI) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockServerAPI) Rename(ctx context.Context, id, name string) error {
	if m.RenameFunc != nil {
		return m.RenameFunc(ctx, id, name)
	}
	return nil
}

func (m *MockServerAPI) Start(ctx context.Context, id string) error {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, id)
	}
	return nil
}

func (m *MockServerAPI) Stop(ctx context.Context, id string) error {
	if m.StopFunc != nil {
		return m.StopFunc(ctx, id)
	}
	return nil
}

func (m *MockServerAPI) Pause(ctx context.Context, id string) error {
	if m.PauseFunc != nil {
		return m.PauseFunc(ctx, id)
	}
	return nil
}

func (m *MockServerAPI) Unpause(ctx context.Context, id string) error {
	if m.UnpauseFunc != nil {
		return m.UnpauseFunc(ctx, id)
	}
	return nil
}

func (m *MockServerAPI) Suspend(ctx context.Context, id string) error {
	if m.SuspendFunc != nil {
		return m.SuspendFunc(ctx, id)
	}
	return nil
}

func (m *MockServerAPI) Resume(ctx context.Context, id string) error {
	if m.ResumeFunc != nil {
		return m.ResumeFunc(ctx, id)
	}
	return nil
}

func (m *MockServerAPI) CreateImage(ctx context.Context, id, name string) (string, error) {
	if m.CreateImageFunc != nil {
		return m.CreateImageFunc(ctx, id, name)
	}
	return "mock-image-id", nil
}

// MockFloatingIPAPI is a mock implementation of FloatingIPAPI.
type MockFloatingIPAPI struct {
	ListPageFunc     func(ctx context.Context, marker string) ([]floatingips.FloatingIP, error)
	CreateFunc       func(ctx context.Context, pool string) (*floatingips.FloatingIP, error)
	DeleteFunc       func(ctx context.Context, id string) error
	AssociateFunc    func(ctx context.Context, serverID, address string) error
	DisassociateFunc func(ctx context.Context, serverID, address string) error
}

// Ensure interface compliance
var _ FloatingIPAPI = (*MockFloatingIPAPI)(nil)

func (m *MockFloatingIPAPI) ListPage(ctx context.Context, marker string) ([]floatingips.FloatingIP, error) {
	if m.ListPageFunc != nil {
		return m.ListPageFunc(ctx, marker)
	}
	return nil, nil
}

func (m *MockFloatingIPAPI) Create(ctx context.Context, pool string) (*floatingips.FloatingIP, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, pool)
	}
	return &floatingips.FloatingIP{ID: "mock-fip-id", IP: "203.0.113.1", Pool: pool}, nil
}

func (m *MockFloatingIPAPI) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockFloatingIPAPI) Associate(ctx context.Context, serverID, address string) error {
	if m.AssociateFunc != nil {
		return m.AssociateFunc(ctx, serverID, address)
	}
	return nil
}

func (m *MockFloatingIPAPI) Disassociate(ctx context.Context, serverID, address string) error {
	if m.DisassociateFunc != nil {
		return m.DisassociateFunc(ctx, serverID, address)
	}
	return nil
}

// MockImageAPI is a mock implementation of ImageAPI.
type MockImageAPI struct {
	ListFunc   func(ctx context.Context) ([]images.Image, error)
	GetFunc    func(ctx context.Context, id string) (*images.Image, error)
	DeleteFunc func(ctx context.Context, id string) error
}

// Ensure interface compliance
var _ ImageAPI = (*MockImageAPI)(nil)

func (m *MockImageAPI) List(ctx context.Context) ([]images.Image, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockImageAPI) Get(ctx context.Context, id string) (*images.Image, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &images.Image{ID: id, Status: imageStatusActive}, nil
}

func (m *MockImageAPI) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockFlavorAPI is a mock implementation of FlavorAPI.
type MockFlavorAPI struct {
	ListFunc   func(ctx context.Context) ([]flavors.Flavor, error)
	GetFunc    func(ctx context.Context, id string) (*flavors.Flavor, error)
	CreateFunc func(ctx context.Context, opts flavors.CreateOpts) (*flavors.Flavor, error)
}

// Ensure interface compliance
var _ FlavorAPI = (*MockFlavorAPI)(nil)

func (m *MockFlavorAPI) List(ctx context.Context) ([]flavors.Flavor, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockFlavorAPI) Get(ctx context.Context, id string) (*flavors.Flavor, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &flavors.Flavor{ID: id}, nil
}

func (m *MockFlavorAPI) Create(ctx context.Context, opts flavors.CreateOpts) (*flavors.Flavor, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, opts)
	}
	return &flavors.Flavor{ID: "mock-flavor-id", Name: opts.Name, RAM: opts.RAM, VCPUs: opts.VCPUs}, nil
}

// MockNetworkAPI is a mock implementation of NetworkAPI.
type MockNetworkAPI struct {
	ListFunc func(ctx context.Context) ([]networks.Network, error)
}

// Ensure interface compliance
var _ NetworkAPI = (*MockNetworkAPI)(nil)

func (m *MockNetworkAPI) List(ctx context.Context) ([]networks.Network, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// MockVolumeAPI is a mock implementation of VolumeAPI.
type MockVolumeAPI struct {
	ListFunc   func(ctx context.Context) ([]volumes.Volume, error)
	GetFunc    func(ctx context.Context, id string) (*volumes.Volume, error)
	CreateFunc func(ctx context.Context, opts volumes.CreateOpts) (*volumes.Volume, error)
	DeleteFunc func(ctx context.Context, id string) error
}

// Ensure interface compliance
var _ VolumeAPI = (*MockVolumeAPI)(nil)

func (m *MockVolumeAPI) List(ctx context.Context) ([]volumes.Volume, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockVolumeAPI) Get(ctx context.Context, id string) (*volumes.Volume, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &volumes.Volume{ID: id, Status: volumeStatusAvailable}, nil
}

func (m *MockVolumeAPI) Create(ctx context.Context, opts volumes.CreateOpts) (*volumes.Volume, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, opts)
	}
	return &volumes.Volume{ID: "mock-volume-id", Name: opts.Name, Size: opts.Size, Status: volumeStatusAvailable}, nil
}

func (m *MockVolumeAPI) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
