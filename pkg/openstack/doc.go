// Package openstack is a management client for OpenStack-compatible
// compute backends. It enumerates, provisions, mutates and tears down
// instances, images, volumes and floating IPs while hiding backend quirks
// such as pagination limits, eventual consistency and transient timeouts.
//
// The entry point is System, constructed from a config.Config via New, or
// from a Services value via NewWithServices for tests and alternative
// backends. Instances and images returned by a System hold a back-reference
// to it and a cached snapshot of backend state; any state-dependent
// operation re-fetches the snapshot before deciding.
//
// Operations are synchronous and blocking. A single Instance must not be
// driven by concurrent lifecycle calls; callers are responsible for
// serializing operations per instance.
package openstack
