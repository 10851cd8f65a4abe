package openstack

import (
	"context"
	"fmt"
	"strings"

	"github.com/gophercloud/gophercloud/openstack/compute/v2/extensions/floatingips"
	"github.com/gophercloud/gophercloud/openstack/compute/v2/servers"
	"go.uber.org/zap"

	"github.com/matheuscmelo/stackvm/internal/config"
)

// defaultRollbackWindow is how many accumulated markers a listing walks
// backward through before giving up. A heuristic, not a proof; keep it
// configurable via WithRollbackWindow.
const defaultRollbackWindow = 10

// System is a handle on one backend tenant. It owns the service clients
// and hands out Instance and Image values that refer back to it.
type System struct {
	svc            Services
	log            *zap.SugaredLogger
	timeouts       *config.Timeouts
	rollbackWindow int
}

// Option customizes a System.
type Option func(*System)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *System) { s.log = log }
}

// WithTimeouts overrides the polling bounds. The default comes from
// config.LoadTimeouts.
func WithTimeouts(t *config.Timeouts) Option {
	return func(s *System) { s.timeouts = t }
}

// WithRollbackWindow overrides the pagination marker rollback window.
func WithRollbackWindow(n int) Option {
	return func(s *System) { s.rollbackWindow = n }
}

// New authenticates against the backend described by cfg and returns a
// System bound to it.
func New(cfg *config.Config, opts ...Option) (*System, error) {
	sys := NewWithServices(Services{}, opts...)
	svc, err := dial(cfg, sys.timeouts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.AuthURL, err)
	}
	sys.svc = svc
	return sys, nil
}

// NewWithServices returns a System operating on the given service clients.
func NewWithServices(svc Services, opts ...Option) *System {
	sys := &System{
		svc:            svc,
		log:            zap.NewNop().Sugar(),
		timeouts:       config.LoadTimeouts(),
		rollbackWindow: defaultRollbackWindow,
	}
	for _, opt := range opts {
		opt(sys)
	}
	return sys
}

// ListInstances returns every instance visible to the tenant. The listing
// survives instances deleted mid-scan by rolling pagination markers back.
func (s *System) ListInstances(ctx context.Context) ([]*Instance, error) {
	raw, err := collectPaged(
		func(marker string) ([]servers.Server, error) { return s.svc.Servers.ListPage(ctx, marker) },
		func(v servers.Server) string { return v.ID },
		s.rollbackWindow,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}

	instances := make([]*Instance, 0, len(raw))
	for i := range raw {
		instances = append(instances, newInstance(s, raw[i].ID, &raw[i]))
	}
	return instances, nil
}

// Lookup selects instances by name, ID or floating IP. Fields combine as
// OR; at least one must be set.
type Lookup struct {
	Name string
	ID   string
	IP   string
}

func (l Lookup) empty() bool { return l.Name == "" && l.ID == "" && l.IP == "" }

func (l Lookup) String() string {
	var parts []string
	if l.Name != "" {
		parts = append(parts, "name="+l.Name)
	}
	if l.ID != "" {
		parts = append(parts, "id="+l.ID)
	}
	if l.IP != "" {
		parts = append(parts, "ip="+l.IP)
	}
	return strings.Join(parts, ",")
}

// FindInstances returns every instance matching the lookup. The backend
// cannot filter by floating IP server-side, so this walks the full listing.
func (s *System) FindInstances(ctx context.Context, l Lookup) ([]*Instance, error) {
	if l.empty() {
		return nil, fmt.Errorf("must find by name, id or ip")
	}

	instances, err := s.ListInstances(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*Instance
	for _, inst := range instances {
		switch {
		case l.Name != "" && inst.raw.Name == l.Name:
			matches = append(matches, inst)
		case l.ID != "" && inst.ID == l.ID:
			matches = append(matches, inst)
		case l.IP != "" && floatingAddress(inst.raw) == l.IP:
			matches = append(matches, inst)
		}
	}
	return matches, nil
}

// GetInstance returns the single instance matching the lookup.
// It fails with NotFoundError when nothing matches and
// MultipleMatchesError when the lookup is ambiguous.
func (s *System) GetInstance(ctx context.Context, l Lookup) (*Instance, error) {
	matches, err := s.FindInstances(ctx, l)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, &NotFoundError{Kind: "instance", Ref: l.String()}
	}
	if len(matches) > 1 {
		return nil, &MultipleMatchesError{Kind: "instance", Criteria: l.String()}
	}
	return matches[0], nil
}

// GetInstanceByName returns the instance with the given name.
func (s *System) GetInstanceByName(ctx context.Context, name string) (*Instance, error) {
	return s.GetInstance(ctx, Lookup{Name: name})
}

// GetInstanceByID returns the instance with the given backend ID.
func (s *System) GetInstanceByID(ctx context.Context, id string) (*Instance, error) {
	return s.GetInstance(ctx, Lookup{ID: id})
}

// GetInstanceByIP returns the instance holding the given floating IP.
func (s *System) GetInstanceByIP(ctx context.Context, ip string) (*Instance, error) {
	return s.GetInstance(ctx, Lookup{IP: ip})
}

// ListTemplates returns every image visible to the tenant.
func (s *System) ListTemplates(ctx context.Context) ([]*Image, error) {
	raw, err := s.svc.Images.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	imgs := make([]*Image, 0, len(raw))
	for i := range raw {
		imgs = append(imgs, newImage(s, raw[i].ID, &raw[i]))
	}
	return imgs, nil
}

// FindTemplates returns every image with the given name.
func (s *System) FindTemplates(ctx context.Context, name string) ([]*Image, error) {
	imgs, err := s.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*Image
	for _, img := range imgs {
		if img.raw.Name == name {
			matches = append(matches, img)
		}
	}
	return matches, nil
}

// GetTemplateByName returns the single image with the given name.
func (s *System) GetTemplateByName(ctx context.Context, name string) (*Image, error) {
	matches, err := s.FindTemplates(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, &NotFoundError{Kind: "image", Ref: name}
	}
	if len(matches) > 1 {
		return nil, &MultipleMatchesError{Kind: "image", Criteria: "name=" + name}
	}
	return matches[0], nil
}

// GetTemplateByID returns the image with the given backend ID.
func (s *System) GetTemplateByID(ctx context.Context, id string) (*Image, error) {
	raw, err := s.svc.Images.Get(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, &NotFoundError{Kind: "image", Ref: id}
		}
		return nil, fmt.Errorf("failed to get image %s: %w", id, err)
	}
	return newImage(s, raw.ID, raw), nil
}

// ListFlavors returns the names of all flavors.
func (s *System) ListFlavors(ctx context.Context) ([]string, error) {
	raw, err := s.svc.Flavors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flavors: %w", err)
	}
	names := make([]string, 0, len(raw))
	for _, f := range raw {
		names = append(names, f.Name)
	}
	return names, nil
}

// ListNetworks returns the names of all networks.
func (s *System) ListNetworks(ctx context.Context) ([]string, error) {
	raw, err := s.svc.Networks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	names := make([]string, 0, len(raw))
	for _, n := range raw {
		names = append(names, n.Name)
	}
	return names, nil
}

// listFloatingIPs drains the floating IP listing with the same marker
// rollback protection as instance listing.
func (s *System) listFloatingIPs(ctx context.Context) ([]floatingips.FloatingIP, error) {
	return collectPaged(
		func(marker string) ([]floatingips.FloatingIP, error) { return s.svc.FloatingIPs.ListPage(ctx, marker) },
		func(ip floatingips.FloatingIP) string { return ip.ID },
		s.rollbackWindow,
	)
}
