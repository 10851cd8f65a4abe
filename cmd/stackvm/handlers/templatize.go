package handlers

import (
	"context"
	"fmt"
)

// Templatize handles the templatize command.
func Templatize(ctx context.Context, configPath string, verbose bool, name string) error {
	sys, _, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	inst, err := sys.GetInstanceByName(ctx, name)
	if err != nil {
		return err
	}

	img, err := inst.MarkAsTemplate(ctx)
	if err != nil {
		return err
	}

	imgName, err := img.Name(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("created template %s (%s)\n", imgName, img.ID)
	return nil
}
