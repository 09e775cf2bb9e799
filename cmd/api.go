package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/moviebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the Movie API and prints the response body.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	api, err := r.requireAPI()
	if err != nil {
		return err
	}

	raw, ok := api.(rawAPI)
	if !ok {
		return fmt.Errorf("%w: %s does not support raw requests", shared.ErrServiceUnavailable, api.Name())
	}

	r.logger.Info("GET request", "path", path)

	resp, err := raw.Raw(ctx, path)
	if err != nil {
		return err
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !cmd.Bool("json"))
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
