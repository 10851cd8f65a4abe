package openstack

import (
	"context"
	"testing"

	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/floatingips"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singlePage serves items on the first fetch and ends the listing on any
// subsequent marker.
func singlePage(items []floatingips.FloatingIP) func(context.Context, string) ([]floatingips.FloatingIP, error) {
	return func(_ context.Context, marker string) ([]floatingips.FloatingIP, error) {
		if marker == "" {
			return items, nil
		}
		return nil, nil
	}
}

func TestFreeFloatingIPsSortsAscending(t *testing.T) {
	fips := &MockFloatingIPAPI{
		ListPageFunc: singlePage([]floatingips.FloatingIP{
			{ID: "f2", IP: "10.0.0.10", Pool: "ext-net"},
			{ID: "f3", IP: "10.0.0.2", Pool: "ext-net", FixedIP: "192.168.0.5"},
			{ID: "f1", IP: "10.0.0.1", Pool: "ext-net"},
			{ID: "f4", IP: "10.0.0.9", Pool: "other"},
		}),
	}
	sys := newTestSystem(Services{FloatingIPs: fips})

	free, err := sys.FreeFloatingIPs(context.Background(), "ext-net")
	require.NoError(t, err)
	require.Len(t, free, 2)
	// Numeric order, so 10.0.0.10 sorts after 10.0.0.1 despite the string order.
	assert.Equal(t, "10.0.0.1", free[0].IP)
	assert.Equal(t, "10.0.0.10", free[1].IP)
}

func TestAssignFloatingIPReusesEldestFree(t *testing.T) {
	var attached string
	created := false

	fips := &MockFloatingIPAPI{
		ListPageFunc: singlePage([]floatingips.FloatingIP{
			{ID: "f2", IP: "10.0.0.2", Pool: "ext-net"},
			{ID: "f1", IP: "10.0.0.1", Pool: "ext-net"},
		}),
		CreateFunc: func(_ context.Context, pool string) (*floatingips.FloatingIP, error) {
			created = true
			return &floatingips.FloatingIP{ID: "new", IP: "10.0.0.99", Pool: pool}, nil
		},
		AssociateFunc: func(_ context.Context, serverID, address string) error {
			attached = address
			return nil
		},
	}
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			return testServer(id, "vm1", "ACTIVE", attached), nil
		},
	}
	sys := newTestSystem(Services{Servers: srv, FloatingIPs: fips})
	inst := newInstance(sys, "i1", testServer("i1", "vm1", "ACTIVE", ""))

	addr, err := inst.AssignFloatingIP(context.Background(), "ext-net")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", addr)
	assert.False(t, created, "two addresses were free, nothing should be allocated")
}

func TestAssignFloatingIPKeepsOneSpare(t *testing.T) {
	var attached string

	fips := &MockFloatingIPAPI{
		ListPageFunc: singlePage([]floatingips.FloatingIP{
			{ID: "f1", IP: "10.0.0.1", Pool: "ext-net"},
		}),
		CreateFunc: func(_ context.Context, pool string) (*floatingips.FloatingIP, error) {
			return &floatingips.FloatingIP{ID: "new", IP: "10.0.0.99", Pool: pool}, nil
		},
		AssociateFunc: func(_ context.Context, serverID, address string) error {
			attached = address
			return nil
		},
	}
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			return testServer(id, "vm1", "ACTIVE", attached), nil
		},
	}
	sys := newTestSystem(Services{Servers: srv, FloatingIPs: fips})
	inst := newInstance(sys, "i1", testServer("i1", "vm1", "ACTIVE", ""))

	// A single free address stays in reserve; a fresh one gets allocated.
	addr, err := inst.AssignFloatingIP(context.Background(), "ext-net")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.99", addr)
}

func TestAssignFloatingIPOverLimitFallsBackToFree(t *testing.T) {
	var attached string

	fips := &MockFloatingIPAPI{
		ListPageFunc: singlePage([]floatingips.FloatingIP{
			{ID: "f1", IP: "10.0.0.1", Pool: "ext-net"},
		}),
		CreateFunc: func(_ context.Context, pool string) (*floatingips.FloatingIP, error) {
			return nil, gophercloud.ErrUnexpectedResponseCode{Actual: 413}
		},
		AssociateFunc: func(_ context.Context, serverID, address string) error {
			attached = address
			return nil
		},
	}
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			return testServer(id, "vm1", "ACTIVE", attached), nil
		},
	}
	sys := newTestSystem(Services{Servers: srv, FloatingIPs: fips})
	inst := newInstance(sys, "i1", testServer("i1", "vm1", "ACTIVE", ""))

	addr, err := inst.AssignFloatingIP(context.Background(), "ext-net")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", addr)
}

func TestAssignFloatingIPPoolExhausted(t *testing.T) {
	fips := &MockFloatingIPAPI{
		ListPageFunc: singlePage(nil),
		CreateFunc: func(_ context.Context, pool string) (*floatingips.FloatingIP, error) {
			return nil, gophercloud.ErrUnexpectedResponseCode{Actual: 413}
		},
	}
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			return testServer(id, "vm1", "ACTIVE", ""), nil
		},
	}
	sys := newTestSystem(Services{Servers: srv, FloatingIPs: fips})
	inst := newInstance(sys, "i1", testServer("i1", "vm1", "ACTIVE", ""))

	_, err := inst.AssignFloatingIP(context.Background(), "ext-net")
	var pe *PoolExhaustedError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "ext-net", pe.Pool)
}

func TestAssignFloatingIPRetriesAfterTheft(t *testing.T) {
	associateCalls := 0
	var attached string

	fips := &MockFloatingIPAPI{
		ListPageFunc: singlePage([]floatingips.FloatingIP{
			{ID: "f1", IP: "10.0.0.1", Pool: "ext-net"},
			{ID: "f2", IP: "10.0.0.2", Pool: "ext-net"},
		}),
		AssociateFunc: func(_ context.Context, serverID, address string) error {
			associateCalls++
			// The first attach is stolen within the safety window; the second
			// one sticks.
			if associateCalls >= 2 {
				attached = address
			}
			return nil
		},
	}
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			return testServer(id, "vm1", "ACTIVE", attached), nil
		},
	}
	sys := newTestSystem(Services{Servers: srv, FloatingIPs: fips})
	inst := newInstance(sys, "i1", testServer("i1", "vm1", "ACTIVE", ""))

	addr, err := inst.AssignFloatingIP(context.Background(), "ext-net")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", addr)
	assert.Equal(t, 2, associateCalls)
}

func TestAssignFloatingIPDetectsForeignAddress(t *testing.T) {
	var attached string

	fips := &MockFloatingIPAPI{
		ListPageFunc: singlePage([]floatingips.FloatingIP{
			{ID: "f1", IP: "10.0.0.1", Pool: "ext-net"},
			{ID: "f2", IP: "10.0.0.2", Pool: "ext-net"},
		}),
		AssociateFunc: func(_ context.Context, serverID, address string) error {
			// The backend reports some other address than the reserved one.
			attached = "10.0.0.77"
			return nil
		},
	}
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			return testServer(id, "vm1", "ACTIVE", attached), nil
		},
	}
	sys := newTestSystem(Services{Servers: srv, FloatingIPs: fips})
	inst := newInstance(sys, "i1", testServer("i1", "vm1", "ACTIVE", ""))

	_, err := inst.AssignFloatingIP(context.Background(), "ext-net")
	var iv *InvariantViolationError
	require.ErrorAs(t, err, &iv)
}

func TestAssignFloatingIPAlreadyAssigned(t *testing.T) {
	fips := &MockFloatingIPAPI{
		AssociateFunc: func(_ context.Context, serverID, address string) error {
			t.Fatal("no attach expected for an instance that already has an address")
			return nil
		},
	}
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			return testServer(id, "vm1", "ACTIVE", "10.0.0.5"), nil
		},
	}
	sys := newTestSystem(Services{Servers: srv, FloatingIPs: fips})
	inst := newInstance(sys, "i1", testServer("i1", "vm1", "ACTIVE", "10.0.0.5"))

	addr, err := inst.AssignFloatingIP(context.Background(), "ext-net")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", addr)
}

func TestUnassignFloatingIP(t *testing.T) {
	attached := "10.0.0.5"

	fips := &MockFloatingIPAPI{
		ListPageFunc: singlePage([]floatingips.FloatingIP{
			{ID: "f1", IP: "10.0.0.5", Pool: "ext-net", FixedIP: "192.168.0.4"},
		}),
		DisassociateFunc: func(_ context.Context, serverID, address string) error {
			attached = ""
			return nil
		},
	}
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			return testServer(id, "vm1", "ACTIVE", attached), nil
		},
	}
	sys := newTestSystem(Services{Servers: srv, FloatingIPs: fips})
	inst := newInstance(sys, "i1", testServer("i1", "vm1", "ACTIVE", attached))

	fip, err := inst.UnassignFloatingIP(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fip)
	assert.Equal(t, "10.0.0.5", fip.IP)
}

func TestUnassignFloatingIPWithoutAddress(t *testing.T) {
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			return testServer(id, "vm1", "ACTIVE", ""), nil
		},
	}
	sys := newTestSystem(Services{Servers: srv, FloatingIPs: &MockFloatingIPAPI{}})
	inst := newInstance(sys, "i1", testServer("i1", "vm1", "ACTIVE", ""))

	fip, err := inst.UnassignFloatingIP(context.Background())
	require.NoError(t, err)
	assert.Nil(t, fip)
}

func TestDeleteFloatingIP(t *testing.T) {
	deleted := false

	fips := &MockFloatingIPAPI{
		ListPageFunc: func(_ context.Context, marker string) ([]floatingips.FloatingIP, error) {
			if deleted || marker != "" {
				return nil, nil
			}
			return []floatingips.FloatingIP{{ID: "f1", IP: "10.0.0.5", Pool: "ext-net"}}, nil
		},
		DeleteFunc: func(_ context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	sys := newTestSystem(Services{FloatingIPs: fips})

	ok, err := sys.DeleteFloatingIP(context.Background(), "10.0.0.5")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, deleted)
}

func TestDeleteFloatingIPUnknownAddress(t *testing.T) {
	sys := newTestSystem(Services{FloatingIPs: &MockFloatingIPAPI{ListPageFunc: singlePage(nil)}})

	ok, err := sys.DeleteFloatingIP(context.Background(), "10.9.9.9")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = sys.DeleteFloatingIP(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}
