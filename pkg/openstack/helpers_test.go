package openstack

import (
	"time"

	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"

	"github.com/matheuscmelo/stackvm/internal/config"
)

// testTimeouts keeps every bounded wait short enough for unit tests.
func testTimeouts() *config.Timeouts {
	return &config.Timeouts{
		StateTransition:  200 * time.Millisecond,
		Deploy:           200 * time.Millisecond,
		InstanceGone:     200 * time.Millisecond,
		ImageActive:      200 * time.Millisecond,
		ImageGone:        200 * time.Millisecond,
		FIPSafetyWindow:  time.Millisecond,
		FIPDetach:        200 * time.Millisecond,
		FIPDelete:        200 * time.Millisecond,
		VolumeAvailable:  200 * time.Millisecond,
		VolumeGone:       200 * time.Millisecond,
		RetryMaxAttempts: 2,
		RetryDelay:       time.Millisecond,
	}
}

func newTestSystem(svc Services) *System {
	return NewWithServices(svc, WithTimeouts(testTimeouts()))
}

// testServer builds a server snapshot in the given status, optionally
// carrying a floating address.
func testServer(id, name, status, floatingIP string) *servers.Server {
	s := &servers.Server{
		ID:     id,
		Name:   name,
		Status: status,
	}
	if floatingIP != "" {
		s.Addresses = map[string]interface{}{
			"private": []interface{}{
				map[string]interface{}{
					"OS-EXT-IPS:type": "floating",
					"addr":            floatingIP,
					"version":         float64(4),
				},
			},
		}
	}
	return s
}
