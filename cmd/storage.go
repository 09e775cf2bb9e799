package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/moviebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// StorageKeys lists the keys held in local storage.
func (r *Runner) StorageKeys(ctx context.Context, cmd *cli.Command) error {
	kv, err := r.kv()
	if err != nil {
		return err
	}

	keys, err := kv.Keys(ctx)
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		return r.writePlain("No stored keys in %s\n", r.config.Database.Path)
	}
	for _, key := range keys {
		r.writePlain("%s\n", key)
	}
	return nil
}

// StorageGet prints the raw value stored under a key.
func (r *Runner) StorageGet(ctx context.Context, cmd *cli.Command) error {
	key, err := storageKey(cmd)
	if err != nil {
		return err
	}

	kv, err := r.kv()
	if err != nil {
		return err
	}

	value, ok, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no value stored under %q", shared.ErrInvalidArgument, key)
	}
	return r.writePlain("%s\n", value)
}

// StorageDelete removes a key from local storage. Deleting a missing key is not an error.
func (r *Runner) StorageDelete(ctx context.Context, cmd *cli.Command) error {
	key, err := storageKey(cmd)
	if err != nil {
		return err
	}

	kv, err := r.kv()
	if err != nil {
		return err
	}

	if err := kv.Delete(ctx, key); err != nil {
		return err
	}

	r.logger.Info("deleted storage key", "key", key)
	return r.writePlain("✓ Deleted %s\n", key)
}

// StorageReset drops and recreates the local schema, discarding every stored key.
func (r *Runner) StorageReset(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: storage reset discards all favorites, pass --yes to confirm", shared.ErrInvalidArgument)
	}

	kv, err := r.kv()
	if err != nil {
		return err
	}
	keys, err := kv.Keys(ctx)
	if err != nil {
		return err
	}

	db, err := r.database()
	if err != nil {
		return err
	}
	if err := shared.ResetSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to reset storage: %w", err)
	}

	r.logger.Warn("reset local storage", "path", r.config.Database.Path, "keys", len(keys))
	return r.writePlain("✓ Reset %s (%d key(s) discarded)\n", r.config.Database.Path, len(keys))
}

func storageKey(cmd *cli.Command) (string, error) {
	key := strings.TrimSpace(cmd.StringArg("key"))
	if key == "" {
		return "", fmt.Errorf("%w: key", shared.ErrMissingArgument)
	}
	return key, nil
}
