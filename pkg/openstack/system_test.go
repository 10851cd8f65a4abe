package openstack

import (
	"context"
	"testing"

	"github.com/gophercloud/gophercloud/openstack/compute/v2/images"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingBackend(items ...*servers.Server) *MockServerAPI {
	return &MockServerAPI{
		ListPageFunc: func(_ context.Context, marker string) ([]servers.Server, error) {
			if marker != "" {
				return nil, nil
			}
			page := make([]servers.Server, 0, len(items))
			for _, s := range items {
				page = append(page, *s)
			}
			return page, nil
		},
	}
}

func TestListInstances(t *testing.T) {
	srv := listingBackend(
		testServer("i1", "vm1", "ACTIVE", ""),
		testServer("i2", "vm2", "SHUTOFF", ""),
	)
	sys := newTestSystem(Services{Servers: srv})

	instances, err := sys.ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "i1", instances[0].ID)
	assert.Equal(t, "i2", instances[1].ID)
}

func TestGetInstanceLookups(t *testing.T) {
	srv := listingBackend(
		testServer("i1", "vm1", "ACTIVE", "10.0.0.1"),
		testServer("i2", "vm2", "ACTIVE", "10.0.0.2"),
		testServer("i3", "vm2", "ACTIVE", ""),
	)
	sys := newTestSystem(Services{Servers: srv})
	ctx := context.Background()

	byName, err := sys.GetInstanceByName(ctx, "vm1")
	require.NoError(t, err)
	assert.Equal(t, "i1", byName.ID)

	byID, err := sys.GetInstanceByID(ctx, "i3")
	require.NoError(t, err)
	assert.Equal(t, "i3", byID.ID)

	byIP, err := sys.GetInstanceByIP(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.Equal(t, "i2", byIP.ID)

	_, err = sys.GetInstanceByName(ctx, "vm9")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = sys.GetInstanceByName(ctx, "vm2")
	var mm *MultipleMatchesError
	require.ErrorAs(t, err, &mm)
	assert.Contains(t, mm.Error(), "name=vm2")
}

func TestFindInstancesRequiresCriteria(t *testing.T) {
	sys := newTestSystem(Services{Servers: listingBackend()})

	_, err := sys.FindInstances(context.Background(), Lookup{})
	require.Error(t, err)
}

func TestTemplateLookups(t *testing.T) {
	imgs := &MockImageAPI{
		ListFunc: func(_ context.Context) ([]images.Image, error) {
			return []images.Image{
				{ID: "img-1", Name: "base"},
				{ID: "img-2", Name: "base"},
				{ID: "img-3", Name: "gold"},
			}, nil
		},
	}
	sys := newTestSystem(Services{Images: imgs})
	ctx := context.Background()

	all, err := sys.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	gold, err := sys.GetTemplateByName(ctx, "gold")
	require.NoError(t, err)
	assert.Equal(t, "img-3", gold.ID)

	_, err = sys.GetTemplateByName(ctx, "missing")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = sys.GetTemplateByName(ctx, "base")
	var mm *MultipleMatchesError
	require.ErrorAs(t, err, &mm)
}

// TestDeployedInstanceIsListed walks the full lifecycle: deploy from a
// template into an empty pool, observe the fresh address, find the instance
// in a listing.
func TestDeployedInstanceIsListed(t *testing.T) {
	b := newDeployBackend("private")
	b.srv.ListPageFunc = func(_ context.Context, marker string) ([]servers.Server, error) {
		if b.createdOpts == nil || marker != "" {
			return nil, nil
		}
		return []servers.Server{*testServer("i-new", b.createdOpts.Name, "ACTIVE", b.attached)}, nil
	}
	sys := newTestSystem(b.services())
	ctx := context.Background()

	img, err := sys.GetTemplateByID(ctx, "img-42")
	require.NoError(t, err)

	inst, err := img.Deploy(ctx, "vm1", DeployOptions{FloatingIPPool: "ext-net"})
	require.NoError(t, err)

	addr, err := inst.IP(ctx)
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.7", addr)

	found, err := sys.GetInstanceByName(ctx, "vm1")
	require.NoError(t, err)
	assert.Equal(t, "i-new", found.ID)

	state, err := found.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, state)
}
