package openstack

import (
	"context"
	"fmt"
	"time"

	"github.com/gophercloud/gophercloud/openstack/compute/v2/flavors"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
)

// Poll delays for instance state convergence and existence checks.
const (
	statePollInterval  = 5 * time.Second
	existsPollInterval = 5 * time.Second
)

// Instance is a handle on one backend instance. The raw snapshot may be
// stale at any time; every state-dependent operation refreshes it before
// deciding.
type Instance struct {
	ID string

	sys    *System
	raw    *servers.Server
	flavor *flavors.Flavor
}

func newInstance(sys *System, id string, raw *servers.Server) *Instance {
	return &Instance{ID: id, sys: sys, raw: raw}
}

// Refresh re-fetches the backend snapshot.
func (i *Instance) Refresh(ctx context.Context) error {
	raw, err := i.sys.svc.Servers.Get(ctx, i.ID)
	if err != nil {
		if IsNotFound(err) {
			return &NotFoundError{Kind: "instance", Ref: i.ID}
		}
		return fmt.Errorf("failed to get instance %s: %w", i.ID, err)
	}
	i.raw = raw
	return nil
}

// Name returns the instance's current name, freshly read.
func (i *Instance) Name(ctx context.Context) (string, error) {
	if err := i.Refresh(ctx); err != nil {
		return "", err
	}
	return i.raw.Name, nil
}

// Exists reports whether the backend still knows the instance.
func (i *Instance) Exists(ctx context.Context) (bool, error) {
	err := i.Refresh(ctx)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// State returns the instance's power state, freshly read. An ERROR status
// surfaces as a BackendError carrying whatever fault detail the backend
// attached; so does any status missing from the mapping table.
func (i *Instance) State(ctx context.Context) (PowerState, error) {
	if err := i.Refresh(ctx); err != nil {
		return StateUnknown, err
	}
	return i.stateFromSnapshot()
}

func (i *Instance) stateFromSnapshot() (PowerState, error) {
	if st, ok := statusState[i.raw.Status]; ok {
		return st, nil
	}
	fault := i.raw.Fault
	if fault.Message == "" && fault.Code == 0 {
		return StateError, &BackendError{Instance: i.raw.Name}
	}
	return StateError, &BackendError{
		Instance: i.raw.Name,
		Code:     fault.Code,
		Message:  fault.Message,
		Created:  fault.Created,
	}
}

// IP returns the instance's floating address, freshly read, or "" when none
// is attached.
func (i *Instance) IP(ctx context.Context) (string, error) {
	if err := i.Refresh(ctx); err != nil {
		return "", err
	}
	return floatingAddress(i.raw), nil
}

// floatingAddress digs the floating NIC address out of the snapshot's
// addresses document.
func floatingAddress(s *servers.Server) string {
	for _, network := range s.Addresses {
		nics, ok := network.([]interface{})
		if !ok {
			continue
		}
		for _, entry := range nics {
			nic, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			if kind, _ := nic["OS-EXT-IPS:type"].(string); kind != "floating" {
				continue
			}
			if addr, _ := nic["addr"].(string); addr != "" {
				return addr
			}
		}
	}
	return ""
}

// CreationTime returns when the backend created the instance, in UTC.
func (i *Instance) CreationTime(ctx context.Context) (time.Time, error) {
	if i.raw == nil {
		if err := i.Refresh(ctx); err != nil {
			return time.Time{}, err
		}
	}
	return i.raw.Created.UTC(), nil
}

// Flavor returns the instance's sizing profile. Flavors are immutable, so
// the lookup is cached.
func (i *Instance) Flavor(ctx context.Context) (*flavors.Flavor, error) {
	if i.flavor != nil {
		return i.flavor, nil
	}
	if i.raw == nil {
		if err := i.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	id, _ := i.raw.Flavor["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("instance %s has no flavor reference", i.ID)
	}
	flavor, err := i.sys.svc.Flavors.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get flavor %s: %w", id, err)
	}
	i.flavor = flavor
	return flavor, nil
}

// Hardware is the sizing of an instance.
type Hardware struct {
	RAMMegabytes int
	VCPUs        int
}

// HardwareConfiguration returns the instance's RAM and CPU sizing.
func (i *Instance) HardwareConfiguration(ctx context.Context) (Hardware, error) {
	flavor, err := i.Flavor(ctx)
	if err != nil {
		return Hardware{}, err
	}
	return Hardware{RAMMegabytes: flavor.RAM, VCPUs: flavor.VCPUs}, nil
}

// Rename changes the instance's name.
func (i *Instance) Rename(ctx context.Context, name string) error {
	if err := i.sys.svc.Servers.Rename(ctx, i.ID, name); err != nil {
		return fmt.Errorf("failed to rename instance %s: %w", i.ID, err)
	}
	return nil
}

// Start brings the instance to RUNNING: resume when suspended, unpause
// when paused, a cold start otherwise. Already-running is a no-op. Blocks
// until the state converges or the state transition bound expires.
func (i *Instance) Start(ctx context.Context) error {
	state, err := i.State(ctx)
	if err != nil {
		return err
	}
	i.sys.log.Infof("starting instance %s", i.raw.Name)
	if state == StateRunning {
		return nil
	}

	switch state {
	case StateSuspended:
		err = i.sys.svc.Servers.Resume(ctx, i.ID)
	case StatePaused:
		err = i.sys.svc.Servers.Unpause(ctx, i.ID)
	default:
		err = i.sys.svc.Servers.Start(ctx, i.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to start instance %s: %w", i.ID, err)
	}
	return i.waitForState(ctx, StateRunning, i.sys.timeouts.StateTransition)
}

// Stop shuts the instance down and blocks until it reports STOPPED.
// Already-stopped is a no-op.
func (i *Instance) Stop(ctx context.Context) error {
	state, err := i.State(ctx)
	if err != nil {
		return err
	}
	i.sys.log.Infof("stopping instance %s", i.raw.Name)
	if state == StateStopped {
		return nil
	}

	if err := i.sys.svc.Servers.Stop(ctx, i.ID); err != nil {
		return fmt.Errorf("failed to stop instance %s: %w", i.ID, err)
	}
	return i.waitForState(ctx, StateStopped, i.sys.timeouts.StateTransition)
}

// Restart stops the instance, then starts it again.
func (i *Instance) Restart(ctx context.Context) error {
	i.sys.log.Infof("restarting instance %s", i.ID)
	if err := i.Stop(ctx); err != nil {
		return err
	}
	return i.Start(ctx)
}

// Suspend suspends the instance and blocks until it reports SUSPENDED.
// Already-suspended is a no-op.
func (i *Instance) Suspend(ctx context.Context) error {
	state, err := i.State(ctx)
	if err != nil {
		return err
	}
	i.sys.log.Infof("suspending instance %s", i.raw.Name)
	if state == StateSuspended {
		return nil
	}

	if err := i.sys.svc.Servers.Suspend(ctx, i.ID); err != nil {
		return fmt.Errorf("failed to suspend instance %s: %w", i.ID, err)
	}
	return i.waitForState(ctx, StateSuspended, i.sys.timeouts.StateTransition)
}

// Pause pauses the instance and blocks until it reports PAUSED.
// Already-paused is a no-op.
func (i *Instance) Pause(ctx context.Context) error {
	state, err := i.State(ctx)
	if err != nil {
		return err
	}
	i.sys.log.Infof("pausing instance %s", i.raw.Name)
	if state == StatePaused {
		return nil
	}

	if err := i.sys.svc.Servers.Pause(ctx, i.ID); err != nil {
		return fmt.Errorf("failed to pause instance %s: %w", i.ID, err)
	}
	return i.waitForState(ctx, StatePaused, i.sys.timeouts.StateTransition)
}

// waitForState polls until the instance reports the wanted state.
func (i *Instance) waitForState(ctx context.Context, want PowerState, bound time.Duration) error {
	return waitFor(ctx, fmt.Sprintf("instance %s to reach %s", i.ID, want), bound, statePollInterval, func() (bool, error) {
		state, err := i.State(ctx)
		if err != nil {
			return false, err
		}
		return state == want, nil
	})
}

// WaitForSteadyState blocks until the instance's status is not
// mid-transition.
func (i *Instance) WaitForSteadyState(ctx context.Context) error {
	return waitFor(ctx, fmt.Sprintf("instance %s to settle", i.ID), i.sys.timeouts.StateTransition, statePollInterval, func() (bool, error) {
		if err := i.Refresh(ctx); err != nil {
			return false, err
		}
		return steadyStatuses[i.raw.Status], nil
	})
}

// Delete detaches the instance's floating IP, deletes the instance and
// blocks until an existence poll confirms absence. The floating IP object
// itself is kept.
func (i *Instance) Delete(ctx context.Context) error {
	return i.delete(ctx, false)
}

// Cleanup is Delete plus deletion of the floating IP object.
func (i *Instance) Cleanup(ctx context.Context) error {
	return i.delete(ctx, true)
}

func (i *Instance) delete(ctx context.Context, deleteFIP bool) error {
	i.sys.log.Infof("deleting instance %s", i.ID)

	fip, err := i.UnassignFloatingIP(ctx)
	if err != nil {
		return err
	}
	if deleteFIP && fip != nil {
		if _, err := i.sys.DeleteFloatingIP(ctx, fip.IP); err != nil {
			return err
		}
	}

	if err := i.sys.svc.Servers.Delete(ctx, i.ID); err != nil && !IsNotFound(err) {
		return fmt.Errorf("failed to delete instance %s: %w", i.ID, err)
	}

	return waitFor(ctx, fmt.Sprintf("instance %s to be gone", i.ID), i.sys.timeouts.InstanceGone, existsPollInterval, func() (bool, error) {
		exists, err := i.Exists(ctx)
		return !exists, err
	})
}
