package openstack

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gophercloud/gophercloud"
	goopenstack "github.com/gophercloud/gophercloud/openstack"
	"github.com/gophercloud/gophercloud/openstack/blockstorage/v2/volumes"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/floatingips"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/pauseunpause"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/startstop"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/suspendresume"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/flavors"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/images"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
	"github.com/gophercloud/gophercloud/openstack/networking/v2/networks"
	"github.com/gophercloud/gophercloud/pagination"

	"github.com/matheuscmelo/stackvm/internal/config"
	"github.com/matheuscmelo/stackvm/internal/util/retry"
)

const listPageLimit = 100

// dial authenticates against the backend and builds the service clients.
func dial(cfg *config.Config, timeouts *config.Timeouts) (Services, error) {
	provider, err := goopenstack.NewClient(cfg.AuthURL)
	if err != nil {
		return Services{}, fmt.Errorf("failed to create provider client: %w", err)
	}
	provider.HTTPClient = http.Client{
		Transport: &retryTransport{
			base:        http.DefaultTransport,
			maxAttempts: timeouts.RetryMaxAttempts,
			delay:       timeouts.RetryDelay,
		},
	}

	err = goopenstack.Authenticate(provider, gophercloud.AuthOptions{
		IdentityEndpoint: cfg.AuthURL,
		Username:         cfg.Username,
		Password:         cfg.Password,
		TenantName:       cfg.Tenant,
		DomainName:       cfg.Domain,
		AllowReauth:      true,
	})
	if err != nil {
		return Services{}, fmt.Errorf("authentication failed: %w", err)
	}

	endpoint := gophercloud.EndpointOpts{Region: cfg.Region}
	compute, err := goopenstack.NewComputeV2(provider, endpoint)
	if err != nil {
		return Services{}, fmt.Errorf("failed to create compute client: %w", err)
	}
	network, err := goopenstack.NewNetworkV2(provider, endpoint)
	if err != nil {
		return Services{}, fmt.Errorf("failed to create network client: %w", err)
	}
	blockstorage, err := goopenstack.NewBlockStorageV2(provider, endpoint)
	if err != nil {
		return Services{}, fmt.Errorf("failed to create block storage client: %w", err)
	}

	return Services{
		Servers:     &serverClient{c: compute},
		FloatingIPs: &fipClient{c: compute},
		Images:      &imageClient{c: compute},
		Flavors:     &flavorClient{c: compute},
		Networks:    &networkClient{c: network},
		Volumes:     &volumeClient{c: blockstorage},
	}, nil
}

// retryTransport retries requests that fail with a network timeout. Requests
// whose body cannot be replayed are not retried.
type retryTransport struct {
	base        http.RoundTripper
	maxAttempts int
	delay       time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	err := retry.Do(req.Context(), func() error {
		if req.Body != nil {
			body, err := req.GetBody()
			if err != nil {
				return retry.Permanent(err)
			}
			req.Body = body
		}
		var err error
		resp, err = t.base.RoundTrip(req)
		if err == nil {
			return nil
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() && (req.Body == nil || req.GetBody != nil) {
			metricTransientRetries.Inc()
			return err
		}
		return retry.Permanent(err)
	}, retry.WithMaxAttempts(t.maxAttempts), retry.WithInitialDelay(t.delay))
	return resp, err
}

// The gophercloud v1 calls below take no context; the interface carries one
// anyway so mocks and future SDK versions can honor it.

type serverClient struct {
	c *gophercloud.ServiceClient
}

var _ ServerAPI = (*serverClient)(nil)

func (sc *serverClient) ListPage(_ context.Context, marker string) ([]servers.Server, error) {
	var out []servers.Server
	err := servers.List(sc.c, servers.ListOpts{Marker: marker, Limit: listPageLimit}).EachPage(func(page pagination.Page) (bool, error) {
		extracted, err := servers.ExtractServers(page)
		if err != nil {
			return false, err
		}
		out = extracted
		// One page per call; the enumerator owns marker advancement.
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (sc *serverClient) Get(_ context.Context, id string) (*servers.Server, error) {
	return servers.Get(sc.c, id).Extract()
}

func (sc *serverClient) Create(_ context.Context, opts servers.CreateOpts) (*servers.Server, error) {
	return servers.Create(sc.c, opts).Extract()
}

func (sc *serverClient) Delete(_ context.Context, id string) error {
	return servers.Delete(sc.c, id).ExtractErr()
}

func (sc *serverClient) Rename(_ context.Context, id, name string) error {
	_, err := servers.Update(sc.c, id, servers.UpdateOpts{Name: name}).Extract()
	return err
}

func (sc *serverClient) Start(_ context.Context, id string) error {
	return startstop.Start(sc.c, id).ExtractErr()
}

func (sc *serverClient) Stop(_ context.Context, id string) error {
	return startstop.Stop(sc.c, id).ExtractErr()
}

func (sc *serverClient) Pause(_ context.Context, id string) error {
	return pauseunpause.Pause(sc.c, id).ExtractErr()
}

func (sc *serverClient) Unpause(_ context.Context, id string) error {
	return pauseunpause.Unpause(sc.c, id).ExtractErr()
}

func (sc *serverClient) Suspend(_ context.Context, id string) error {
	return suspendresume.Suspend(sc.c, id).ExtractErr()
}

func (sc *serverClient) Resume(_ context.Context, id string) error {
	return suspendresume.Resume(sc.c, id).ExtractErr()
}

func (sc *serverClient) CreateImage(_ context.Context, id, name string) (string, error) {
	return servers.CreateImage(sc.c, id, servers.CreateImageOpts{Name: name}).ExtractImageID()
}

type fipClient struct {
	c *gophercloud.ServiceClient
}

var _ FloatingIPAPI = (*fipClient)(nil)

// ListPage windows the full listing client-side; the floating IP endpoint
// has no marker support, and the uniform marker contract keeps the listing
// path identical to servers. A marker no longer present surfaces as a bad
// request, same as the server endpoint reports a stale marker.
func (fc *fipClient) ListPage(_ context.Context, marker string) ([]floatingips.FloatingIP, error) {
	pages, err := floatingips.List(fc.c).AllPages()
	if err != nil {
		return nil, err
	}
	all, err := floatingips.ExtractFloatingIPs(pages)
	if err != nil {
		return nil, err
	}

	start := 0
	if marker != "" {
		idx := -1
		for i := range all {
			if all[i].ID == marker {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, gophercloud.ErrDefault400{}
		}
		start = idx + 1
	}
	end := start + listPageLimit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (fc *fipClient) Create(_ context.Context, pool string) (*floatingips.FloatingIP, error) {
	return floatingips.Create(fc.c, floatingips.CreateOpts{Pool: pool}).Extract()
}

func (fc *fipClient) Delete(_ context.Context, id string) error {
	return floatingips.Delete(fc.c, id).ExtractErr()
}

func (fc *fipClient) Associate(_ context.Context, serverID, address string) error {
	return floatingips.AssociateInstance(fc.c, serverID, floatingips.AssociateOpts{FloatingIP: address}).ExtractErr()
}

func (fc *fipClient) Disassociate(_ context.Context, serverID, address string) error {
	return floatingips.DisassociateInstance(fc.c, serverID, floatingips.DisassociateOpts{FloatingIP: address}).ExtractErr()
}

type imageClient struct {
	c *gophercloud.ServiceClient
}

var _ ImageAPI = (*imageClient)(nil)

func (ic *imageClient) List(_ context.Context) ([]images.Image, error) {
	pages, err := images.ListDetail(ic.c, images.ListOpts{}).AllPages()
	if err != nil {
		return nil, err
	}
	return images.ExtractImages(pages)
}

func (ic *imageClient) Get(_ context.Context, id string) (*images.Image, error) {
	return images.Get(ic.c, id).Extract()
}

func (ic *imageClient) Delete(_ context.Context, id string) error {
	return images.Delete(ic.c, id).ExtractErr()
}

type flavorClient struct {
	c *gophercloud.ServiceClient
}

var _ FlavorAPI = (*flavorClient)(nil)

func (fc *flavorClient) List(_ context.Context) ([]flavors.Flavor, error) {
	pages, err := flavors.ListDetail(fc.c, flavors.ListOpts{}).AllPages()
	if err != nil {
		return nil, err
	}
	return flavors.ExtractFlavors(pages)
}

func (fc *flavorClient) Get(_ context.Context, id string) (*flavors.Flavor, error) {
	return flavors.Get(fc.c, id).Extract()
}

func (fc *flavorClient) Create(_ context.Context, opts flavors.CreateOpts) (*flavors.Flavor, error) {
	return flavors.Create(fc.c, opts).Extract()
}

type networkClient struct {
	c *gophercloud.ServiceClient
}

var _ NetworkAPI = (*networkClient)(nil)

func (nc *networkClient) List(_ context.Context) ([]networks.Network, error) {
	pages, err := networks.List(nc.c, networks.ListOpts{}).AllPages()
	if err != nil {
		return nil, err
	}
	return networks.ExtractNetworks(pages)
}

type volumeClient struct {
	c *gophercloud.ServiceClient
}

var _ VolumeAPI = (*volumeClient)(nil)

func (vc *volumeClient) List(_ context.Context) ([]volumes.Volume, error) {
	pages, err := volumes.List(vc.c, volumes.ListOpts{}).AllPages()
	if err != nil {
		return nil, err
	}
	return volumes.ExtractVolumes(pages)
}

func (vc *volumeClient) Get(_ context.Context, id string) (*volumes.Volume, error) {
	return volumes.Get(vc.c, id).Extract()
}

func (vc *volumeClient) Create(_ context.Context, opts volumes.CreateOpts) (*volumes.Volume, error) {
	return volumes.Create(vc.c, opts).Extract()
}

func (vc *volumeClient) Delete(_ context.Context, id string) error {
	return volumes.Delete(vc.c, id, volumes.DeleteOpts{}).ExtractErr()
}
