package openstack

import (
	"context"
	"fmt"
	"time"
)

const (
	templateNameSuffix      = "_copytemplate"
	imageActivePollInterval = 5 * time.Second
)

// MarkAsTemplate converts the instance into a reusable image carrying the
// instance's original name.
//
// The backend cannot snapshot under a name an instance still holds, so the
// instance is renamed aside first, stopped if needed, snapshotted under the
// original name and finally deleted. Any failure after the rename triggers
// a best-effort rename back before the original error is returned.
func (i *Instance) MarkAsTemplate(ctx context.Context) (*Image, error) {
	originalName, err := i.Name(ctx)
	if err != nil {
		return nil, err
	}
	i.sys.log.Infof("marking %s as a template", originalName)

	copyName := originalName + templateNameSuffix
	if err := i.Rename(ctx, copyName); err != nil {
		return nil, err
	}

	img, err := i.materializeTemplate(ctx, originalName)
	if err != nil {
		i.sys.log.Errorf("could not mark %s as a template: %v", originalName, err)
		if renameErr := i.Rename(ctx, originalName); renameErr != nil {
			// Best effort only; the primary failure is what the caller sees.
			i.sys.log.Errorf("failed to rename %s back to %s: %v", copyName, originalName, renameErr)
		}
		return nil, err
	}
	return img, nil
}

func (i *Instance) materializeTemplate(ctx context.Context, name string) (*Image, error) {
	if err := i.WaitForSteadyState(ctx); err != nil {
		return nil, err
	}
	state, err := i.State(ctx)
	if err != nil {
		return nil, err
	}
	if state != StateStopped {
		if err := i.Stop(ctx); err != nil {
			return nil, err
		}
	}

	imageID, err := i.sys.svc.Servers.CreateImage(ctx, i.ID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot instance %s: %w", i.ID, err)
	}

	err = waitFor(ctx, fmt.Sprintf("image %s to become %s", imageID, imageStatusActive), i.sys.timeouts.ImageActive, imageActivePollInterval, func() (bool, error) {
		img, err := i.sys.svc.Images.Get(ctx, imageID)
		if err != nil {
			return false, err
		}
		return img.Status == imageStatusActive, nil
	})
	if err != nil {
		return nil, err
	}

	if err := i.Delete(ctx); err != nil {
		return nil, err
	}

	return newImage(i.sys, imageID, nil), nil
}
