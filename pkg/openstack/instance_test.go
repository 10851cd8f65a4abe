package openstack

import (
	"context"
	"testing"
	"time"

	"github.com/gophercloud/gophercloud"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/floatingips"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/flavors"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServerBackend is a stateful ServerAPI for exercising the power state
// machine: power commands mutate the reported status.
type fakeServerBackend struct {
	MockServerAPI
	status  string
	gone    bool
	actions []string
}

func newFakeServerBackend(status string) *fakeServerBackend {
	b := &fakeServerBackend{status: status}
	b.GetFunc = func(_ context.Context, id string) (*servers.Server, error) {
		if b.gone {
			return nil, gophercloud.ErrDefault404{}
		}
		return testServer(id, "vm1", b.status, ""), nil
	}
	b.StartFunc = func(_ context.Context, id string) error {
		b.actions = append(b.actions, "start")
		b.status = "ACTIVE"
		return nil
	}
	b.StopFunc = func(_ context.Context, id string) error {
		b.actions = append(b.actions, "stop")
		b.status = "SHUTOFF"
		return nil
	}
	b.PauseFunc = func(_ context.Context, id string) error {
		b.actions = append(b.actions, "pause")
		b.status = "PAUSED"
		return nil
	}
	b.UnpauseFunc = func(_ context.Context, id string) error {
		b.actions = append(b.actions, "unpause")
		b.status = "ACTIVE"
		return nil
	}
	b.SuspendFunc = func(_ context.Context, id string) error {
		b.actions = append(b.actions, "suspend")
		b.status = "SUSPENDED"
		return nil
	}
	b.ResumeFunc = func(_ context.Context, id string) error {
		b.actions = append(b.actions, "resume")
		b.status = "ACTIVE"
		return nil
	}
	b.DeleteFunc = func(_ context.Context, id string) error {
		b.actions = append(b.actions, "delete")
		b.gone = true
		return nil
	}
	return b
}

func newFakeInstance(b *fakeServerBackend) *Instance {
	sys := newTestSystem(Services{Servers: b, FloatingIPs: &MockFloatingIPAPI{}})
	return newInstance(sys, "i1", nil)
}

func TestStateMapping(t *testing.T) {
	cases := []struct {
		status string
		want   PowerState
	}{
		{"ACTIVE", StateRunning},
		{"SHUTOFF", StateStopped},
		{"SUSPENDED", StateSuspended},
		{"PAUSED", StatePaused},
		{"BUILD", StateRunning},
		{"REBOOT", StateRunning},
		{"MIGRATING", StateRunning},
		{"VERIFY_RESIZE", StateRunning},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			inst := newFakeInstance(newFakeServerBackend(tc.status))
			state, err := inst.State(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, state)
		})
	}
}

func TestStateErrorCarriesFault(t *testing.T) {
	created := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			s := testServer(id, "vm1", "ERROR", "")
			s.Fault = servers.Fault{Code: 500, Message: "No valid host was found", Created: created}
			return s, nil
		},
	}
	inst := newInstance(newTestSystem(Services{Servers: srv}), "i1", nil)

	state, err := inst.State(context.Background())
	assert.Equal(t, StateError, state)

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "vm1", be.Instance)
	assert.Equal(t, 500, be.Code)
	assert.Contains(t, be.Error(), "No valid host was found")
	assert.Contains(t, be.Error(), "2026-02-03T10:00:00Z")
}

func TestStateErrorWithoutFault(t *testing.T) {
	inst := newFakeInstance(newFakeServerBackend("ERROR"))

	state, err := inst.State(context.Background())
	assert.Equal(t, StateError, state)

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "instance vm1 in error state", be.Error())
}

func TestStartAlreadyRunning(t *testing.T) {
	b := newFakeServerBackend("ACTIVE")
	inst := newFakeInstance(b)

	require.NoError(t, inst.Start(context.Background()))
	assert.Empty(t, b.actions, "start on a running instance must issue no commands")
}

func TestStartResumesSuspended(t *testing.T) {
	b := newFakeServerBackend("SUSPENDED")
	inst := newFakeInstance(b)

	require.NoError(t, inst.Start(context.Background()))
	assert.Equal(t, []string{"resume"}, b.actions)
}

func TestStartUnpausesPaused(t *testing.T) {
	b := newFakeServerBackend("PAUSED")
	inst := newFakeInstance(b)

	require.NoError(t, inst.Start(context.Background()))
	assert.Equal(t, []string{"unpause"}, b.actions)
}

func TestStartColdStartsStopped(t *testing.T) {
	b := newFakeServerBackend("SHUTOFF")
	inst := newFakeInstance(b)

	require.NoError(t, inst.Start(context.Background()))
	assert.Equal(t, []string{"start"}, b.actions)
}

func TestStopAlreadyStopped(t *testing.T) {
	b := newFakeServerBackend("SHUTOFF")
	inst := newFakeInstance(b)

	require.NoError(t, inst.Stop(context.Background()))
	assert.Empty(t, b.actions)
}

func TestStopRunning(t *testing.T) {
	b := newFakeServerBackend("ACTIVE")
	inst := newFakeInstance(b)

	require.NoError(t, inst.Stop(context.Background()))
	assert.Equal(t, []string{"stop"}, b.actions)

	state, err := inst.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateStopped, state)
}

func TestRestart(t *testing.T) {
	b := newFakeServerBackend("ACTIVE")
	inst := newFakeInstance(b)

	require.NoError(t, inst.Restart(context.Background()))
	assert.Equal(t, []string{"stop", "start"}, b.actions)
}

func TestSuspendAndPauseIdempotent(t *testing.T) {
	b := newFakeServerBackend("SUSPENDED")
	inst := newFakeInstance(b)
	require.NoError(t, inst.Suspend(context.Background()))
	assert.Empty(t, b.actions)

	b = newFakeServerBackend("PAUSED")
	inst = newFakeInstance(b)
	require.NoError(t, inst.Pause(context.Background()))
	assert.Empty(t, b.actions)
}

func TestWaitForStateTimesOut(t *testing.T) {
	// A status that never converges to the wanted state.
	b := newFakeServerBackend("SHUTOFF")
	inst := newFakeInstance(b)

	err := inst.waitForState(context.Background(), StateRunning, 30*time.Millisecond)
	var te *TimeoutError
	require.ErrorAs(t, err, &te)
}

func TestDeleteWaitsUntilGone(t *testing.T) {
	b := newFakeServerBackend("ACTIVE")
	inst := newFakeInstance(b)

	require.NoError(t, inst.Delete(context.Background()))
	assert.Equal(t, []string{"delete"}, b.actions)

	exists, err := inst.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCleanupDeletesFloatingIP(t *testing.T) {
	attached := "10.0.0.5"
	fipDeleted := false

	fips := &MockFloatingIPAPI{
		ListPageFunc: func(_ context.Context, marker string) ([]floatingips.FloatingIP, error) {
			if fipDeleted || marker != "" {
				return nil, nil
			}
			return []floatingips.FloatingIP{{ID: "f1", IP: "10.0.0.5", Pool: "ext-net"}}, nil
		},
		DisassociateFunc: func(_ context.Context, serverID, address string) error {
			attached = ""
			return nil
		},
		DeleteFunc: func(_ context.Context, id string) error {
			fipDeleted = true
			return nil
		},
	}

	gone := false
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			if gone {
				return nil, gophercloud.ErrDefault404{}
			}
			return testServer(id, "vm1", "ACTIVE", attached), nil
		},
		DeleteFunc: func(_ context.Context, id string) error {
			gone = true
			return nil
		},
	}

	sys := newTestSystem(Services{Servers: srv, FloatingIPs: fips})
	inst := newInstance(sys, "i1", nil)

	require.NoError(t, inst.Cleanup(context.Background()))
	assert.True(t, fipDeleted)
}

func TestHardwareConfiguration(t *testing.T) {
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			s := testServer(id, "vm1", "ACTIVE", "")
			s.Flavor = map[string]interface{}{"id": "fl-1"}
			return s, nil
		},
	}
	flavorGets := 0
	fl := &MockFlavorAPI{
		GetFunc: func(_ context.Context, id string) (*flavors.Flavor, error) {
			flavorGets++
			return &flavors.Flavor{ID: id, Name: "m1.small", RAM: 2048, VCPUs: 2}, nil
		},
	}
	sys := newTestSystem(Services{Servers: srv, Flavors: fl})
	inst := newInstance(sys, "i1", nil)

	hw, err := inst.HardwareConfiguration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Hardware{RAMMegabytes: 2048, VCPUs: 2}, hw)

	// Flavors are immutable, the second read must hit the cache.
	_, err = inst.HardwareConfiguration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, flavorGets)
}

func TestCreationTime(t *testing.T) {
	created := time.Date(2026, 1, 15, 8, 30, 0, 0, time.FixedZone("CET", 3600))
	srv := &MockServerAPI{
		GetFunc: func(_ context.Context, id string) (*servers.Server, error) {
			s := testServer(id, "vm1", "ACTIVE", "")
			s.Created = created
			return s, nil
		},
	}
	inst := newInstance(newTestSystem(Services{Servers: srv}), "i1", nil)

	got, err := inst.CreationTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(created))
}
