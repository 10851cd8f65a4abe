package openstack

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricMarkerRollbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stackvm_listing_marker_rollbacks_total",
		Help: "Pagination markers invalidated by concurrent deletions and rolled back.",
	})
	metricUnrecoverableListings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stackvm_listing_unrecoverable_total",
		Help: "Listings abandoned after exhausting the marker rollback window.",
	})
	metricFIPTheftRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stackvm_floating_ip_theft_retries_total",
		Help: "Floating IP acquisitions repeated because the address was stolen within the safety window.",
	})
	metricFIPCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stackvm_floating_ips_created_total",
		Help: "Floating IPs freshly allocated from a pool.",
	})
	metricTransientRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stackvm_api_transient_retries_total",
		Help: "Compute API requests retried after a transient timeout.",
	})
)
