package openstack

import (
	"context"
	"fmt"
	"net/netip"
	"sort"
	"time"

	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/floatingips"
)

const fipPollInterval = time.Second

// FreeFloatingIPs returns the unattached addresses of pool, sorted
// ascending by address value so concurrent allocators contend on the same
// candidate order.
func (s *System) FreeFloatingIPs(ctx context.Context, pool string) ([]floatingips.FloatingIP, error) {
	all, err := s.listFloatingIPs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list floating IPs: %w", err)
	}

	var free []floatingips.FloatingIP
	for _, fip := range all {
		if fip.FixedIP == "" && (pool == "" || fip.Pool == pool) {
			free = append(free, fip)
		}
	}
	sort.Slice(free, func(a, b int) bool { return addrLess(free[a].IP, free[b].IP) })
	return free, nil
}

// addrLess orders addresses numerically, falling back to the string form
// for anything that does not parse.
func addrLess(a, b string) bool {
	pa, errA := netip.ParseAddr(a)
	pb, errB := netip.ParseAddr(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return pa.Less(pb)
}

// AssignFloatingIP attaches a floating IP from pool to the instance and
// returns the address.
//
// The backend offers no atomic create-and-reserve, so acquisition loops:
// pick the eldest free address while keeping one spare as a cushion (or
// allocate a new one), attach it, then sleep a safety window in which a
// concurrent allocator stealing the address would surface as the instance
// still observing no address. The loop repeats until an attach sticks. On
// exit the observed address must equal the attached one; anything else is
// backend-reported inconsistency and surfaces as an InvariantViolationError.
func (i *Instance) AssignFloatingIP(ctx context.Context, pool string) (string, error) {
	name, err := i.Name(ctx)
	if err != nil {
		return "", err
	}

	if addr := floatingAddress(i.raw); addr != "" {
		i.sys.log.Infof("instance %s already has a floating IP %s", name, addr)
		return addr, nil
	}

	var attached *floatingips.FloatingIP
	for attempt := 0; ; attempt++ {
		addr, err := i.IP(ctx)
		if err != nil {
			return "", err
		}
		if addr != "" {
			break
		}
		if attempt > 0 {
			metricFIPTheftRetries.Inc()
			i.sys.log.Warnf("floating IP %s did not stick on %s, retrying", attached.IP, name)
		}

		fip, err := i.sys.pickFloatingIP(ctx, pool)
		if err != nil {
			return "", err
		}

		if err := i.sys.svc.FloatingIPs.Associate(ctx, i.ID, fip.IP); err != nil {
			return "", fmt.Errorf("failed to attach floating IP %s to %s: %w", fip.IP, name, err)
		}
		attached = fip

		// Grace period in which a theft by a concurrent allocator would
		// surface. The re-check happens at the top of the loop.
		if err := sleep(ctx, i.sys.timeouts.FIPSafetyWindow); err != nil {
			return "", err
		}
	}

	addr, err := i.IP(ctx)
	if err != nil {
		return "", err
	}
	if attached != nil && addr != attached.IP {
		return "", &InvariantViolationError{
			Reason: fmt.Sprintf("instance %s observes address %s, not the reserved floating IP %s", name, addr, attached.IP),
		}
	}
	i.sys.log.Infof("instance %s got a floating IP %s", name, addr)
	return addr, nil
}

// pickFloatingIP chooses an address to attach: the eldest free one when
// more than one is free (the strict reserve of one spare), otherwise a
// fresh allocation, falling back to whatever the free pool still holds
// when the backend is over its allocation limit.
func (s *System) pickFloatingIP(ctx context.Context, pool string) (*floatingips.FloatingIP, error) {
	free, err := s.FreeFloatingIPs(ctx, pool)
	if err != nil {
		return nil, err
	}
	if len(free) > 1 {
		s.log.Infof("reusing %s from pool %s", free[0].IP, pool)
		return &free[0], nil
	}

	fip, err := s.svc.FloatingIPs.Create(ctx, pool)
	if err != nil {
		if !isOverLimit(err) {
			return nil, fmt.Errorf("failed to create floating IP in pool %s: %w", pool, err)
		}
		s.log.Errorf("probably no more floating IP slots available: %v", err)
		free, ferr := s.FreeFloatingIPs(ctx, pool)
		if ferr != nil {
			return nil, ferr
		}
		if len(free) == 0 {
			return nil, &PoolExhaustedError{Pool: pool}
		}
		// Something is free after all. Slight risk of a race.
		s.log.Infof("reusing %s from pool %s because no more free slots for new IPs", free[0].IP, pool)
		return &free[0], nil
	}
	metricFIPCreated.Inc()
	s.log.Infof("created %s in pool %s", fip.IP, pool)
	return fip, nil
}

// UnassignFloatingIP detaches the instance's floating IP, if any, and
// polls until the instance no longer observes it. It returns the detached
// floating IP object, or nil when the instance had none.
func (i *Instance) UnassignFloatingIP(ctx context.Context) (*floatingips.FloatingIP, error) {
	addr, err := i.IP(ctx)
	if err != nil {
		return nil, err
	}
	if addr == "" {
		return nil, nil
	}

	fip, err := i.sys.findFloatingIP(ctx, addr)
	if err != nil {
		return nil, err
	}
	if fip == nil {
		return nil, nil
	}

	i.sys.log.Infof("detaching floating IP %s/%s from %s", fip.ID, fip.IP, i.raw.Name)
	if err := i.sys.svc.FloatingIPs.Disassociate(ctx, i.ID, fip.IP); err != nil {
		return nil, fmt.Errorf("failed to detach floating IP %s: %w", fip.IP, err)
	}

	err = waitFor(ctx, fmt.Sprintf("floating IP %s to leave instance %s", fip.IP, i.ID), i.sys.timeouts.FIPDetach, fipPollInterval, func() (bool, error) {
		current, err := i.IP(ctx)
		return current == "", err
	})
	if err != nil {
		return nil, err
	}
	return fip, nil
}

// DeleteFloatingIP deletes the floating IP with the given address and
// polls until the backend no longer lists it. Deleting an address the
// backend does not know is not an error; the return value reports whether
// anything was deleted.
func (s *System) DeleteFloatingIP(ctx context.Context, address string) (bool, error) {
	if address == "" {
		// Allows chaining with UnassignFloatingIP, which can return nil.
		return false, nil
	}

	fip, err := s.findFloatingIP(ctx, address)
	if err != nil {
		return false, err
	}
	if fip == nil {
		return false, nil
	}

	s.log.Infof("deleting floating IP %s/%s", fip.ID, fip.IP)
	if err := s.svc.FloatingIPs.Delete(ctx, fip.ID); err != nil && !IsNotFound(err) {
		return false, fmt.Errorf("failed to delete floating IP %s: %w", fip.IP, err)
	}

	err = waitFor(ctx, fmt.Sprintf("floating IP %s to be gone", fip.IP), s.timeouts.FIPDelete, fipPollInterval, func() (bool, error) {
		current, err := s.findFloatingIP(ctx, address)
		if err != nil {
			return false, err
		}
		return current == nil, nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// findFloatingIP looks a floating IP object up by its address.
func (s *System) findFloatingIP(ctx context.Context, address string) (*floatingips.FloatingIP, error) {
	all, err := s.listFloatingIPs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list floating IPs: %w", err)
	}
	for idx := range all {
		if all[idx].IP == address {
			return &all[idx], nil
		}
	}
	return nil, nil
}
