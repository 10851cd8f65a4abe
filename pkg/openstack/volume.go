package openstack

import (
	"context"
	"fmt"
	"time"

	"github.com/gophercloud/gophercloud/openstack/blockstorage/v2/volumes"
)

const (
	volumeStatusAvailable    = "available"
	volumeCreatePollInterval = 500 * time.Millisecond
	volumeDeletePollInterval = 500 * time.Millisecond
)

// ListVolumes returns every volume visible to the tenant.
func (s *System) ListVolumes(ctx context.Context) ([]volumes.Volume, error) {
	all, err := s.svc.Volumes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volumes: %w", err)
	}
	return all, nil
}

// GetVolume returns the volume with the given ID.
func (s *System) GetVolume(ctx context.Context, id string) (*volumes.Volume, error) {
	vol, err := s.svc.Volumes.Get(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, &NotFoundError{Kind: "volume", Ref: id}
		}
		return nil, fmt.Errorf("failed to get volume %s: %w", id, err)
	}
	return vol, nil
}

// VolumeExists reports whether the backend knows the volume.
func (s *System) VolumeExists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetVolume(ctx, id)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// CreateVolume creates a volume of the given size and blocks until the
// backend reports it available.
func (s *System) CreateVolume(ctx context.Context, sizeGB int, name string) (string, error) {
	vol, err := s.svc.Volumes.Create(ctx, volumes.CreateOpts{Size: sizeGB, Name: name})
	if err != nil {
		return "", fmt.Errorf("failed to create volume: %w", err)
	}

	err = waitFor(ctx, fmt.Sprintf("volume %s to become %s", vol.ID, volumeStatusAvailable), s.timeouts.VolumeAvailable, volumeCreatePollInterval, func() (bool, error) {
		current, err := s.svc.Volumes.Get(ctx, vol.ID)
		if err != nil {
			return false, err
		}
		return current.Status == volumeStatusAvailable, nil
	})
	if err != nil {
		return "", err
	}
	return vol.ID, nil
}

// DeleteVolumes deletes the given volumes and blocks until existence polls
// confirm all of them gone.
func (s *System) DeleteVolumes(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if err := s.svc.Volumes.Delete(ctx, id); err != nil && !IsNotFound(err) {
			return fmt.Errorf("failed to delete volume %s: %w", id, err)
		}
	}

	return waitFor(ctx, fmt.Sprintf("%d volume(s) to be gone", len(ids)), s.timeouts.VolumeGone, volumeDeletePollInterval, func() (bool, error) {
		for _, id := range ids {
			exists, err := s.VolumeExists(ctx, id)
			if err != nil {
				return false, err
			}
			if exists {
				return false, nil
			}
		}
		return true, nil
	})
}

// VolumeAttachments returns the instance-name to device mapping of a
// volume's attachments.
func (s *System) VolumeAttachments(ctx context.Context, id string) (map[string]string, error) {
	vol, err := s.GetVolume(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(vol.Attachments))
	for _, att := range vol.Attachments {
		inst, err := s.GetInstanceByID(ctx, att.ServerID)
		if err != nil {
			return nil, err
		}
		result[inst.raw.Name] = att.Device
	}
	return result, nil
}
