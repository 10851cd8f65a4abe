package handlers

import (
	"context"
	"fmt"
)

// Power handles the start/stop/restart/suspend/pause commands.
func Power(ctx context.Context, configPath string, verbose bool, verb, name string) error {
	sys, _, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	inst, err := sys.GetInstanceByName(ctx, name)
	if err != nil {
		return err
	}

	switch verb {
	case "start":
		err = inst.Start(ctx)
	case "stop":
		err = inst.Stop(ctx)
	case "restart":
		err = inst.Restart(ctx)
	case "suspend":
		err = inst.Suspend(ctx)
	case "pause":
		err = inst.Pause(ctx)
	default:
		return fmt.Errorf("unknown power operation %q", verb)
	}
	if err != nil {
		return err
	}

	state, err := inst.State(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s is now %s\n", name, state)
	return nil
}

// Delete handles the delete command.
func Delete(ctx context.Context, configPath string, verbose bool, name string, cleanup bool) error {
	sys, _, err := connect(configPath, verbose)
	if err != nil {
		return err
	}

	inst, err := sys.GetInstanceByName(ctx, name)
	if err != nil {
		return err
	}

	if cleanup {
		err = inst.Cleanup(ctx)
	} else {
		err = inst.Delete(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", name)
	return nil
}
