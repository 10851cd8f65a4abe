package openstack

import (
	"errors"
	"fmt"
	"time"

	"github.com/gophercloud/gophercloud"
)

// NotFoundError reports that a lookup matched no resource.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Ref)
}

// MultipleMatchesError reports that a lookup by name or address was
// ambiguous.
type MultipleMatchesError struct {
	Kind     string
	Criteria string
}

func (e *MultipleMatchesError) Error() string {
	return fmt.Sprintf("multiple %ss match criteria: %s", e.Kind, e.Criteria)
}

// PoolExhaustedError reports that no floating IP could be obtained from a
// pool, neither free nor freshly allocated.
type PoolExhaustedError struct {
	Pool string
}

func (e *PoolExhaustedError) Error() string {
	return fmt.Sprintf("floating IP pool %q ran out of addresses", e.Pool)
}

// InvariantViolationError reports a backend-observed state that contradicts
// a post-condition this client just established. It is never expected in
// correct operation and must not be retried.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.Reason
}

// BackendError surfaces an instance fault reported by the backend. When the
// backend supplied no fault detail, Code is zero and Message empty.
type BackendError struct {
	Instance string
	Code     int
	Message  string
	Created  time.Time
}

func (e *BackendError) Error() string {
	if e.Message == "" && e.Code == 0 {
		return fmt.Sprintf("instance %s in error state", e.Instance)
	}
	return fmt.Sprintf("instance %s error %d: %s | %s", e.Instance, e.Code, e.Message, e.Created.Format(time.RFC3339))
}

// UnrecoverableListError reports that a paginated listing could not be
// resumed because every marker in the rollback window had been invalidated
// by concurrent deletions.
type UnrecoverableListError struct {
	Window int
}

func (e *UnrecoverableListError) Error() string {
	return fmt.Sprintf("could not resume listing after %d marker rollbacks, likely mass deletion in progress", e.Window)
}

// ErrNetworkRequired is returned by Deploy when the tenant has more than one
// network and the options do not select one.
var ErrNetworkRequired = errors.New("a network name must be selected when multiple networks exist")

// IsNotFound reports whether err represents a missing resource, either as a
// NotFoundError from this package or a 404 from the backend.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return true
	}
	var e404 gophercloud.ErrDefault404
	return errors.As(err, &e404)
}

// isBadRequest matches the backend's "invalid marker" condition: listing
// with a marker that references a deleted item yields a 400.
func isBadRequest(err error) bool {
	var e400 gophercloud.ErrDefault400
	return errors.As(err, &e400)
}

func isConflict(err error) bool {
	var e409 gophercloud.ErrDefault409
	return errors.As(err, &e409)
}

// isOverLimit matches the backend refusing a floating IP allocation because
// the tenant quota is spent. Some deployments report 403 instead of 413.
func isOverLimit(err error) bool {
	var e413 gophercloud.ErrUnexpectedResponseCode
	if errors.As(err, &e413) && e413.Actual == 413 {
		return true
	}
	var e403 gophercloud.ErrDefault403
	return errors.As(err, &e403)
}
