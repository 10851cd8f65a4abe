// Package retry implements bounded retry with exponential backoff for
// calls against a remote compute API.
package retry
