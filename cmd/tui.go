package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moviebox/internal/shared"
	"github.com/desertthunder/moviebox/internal/store"
	"github.com/desertthunder/moviebox/internal/ui"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// TUI launches the interactive terminal movie browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	api, err := r.requireAPI()
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("%w: the TUI needs an interactive terminal, try 'moviebox serve' instead", shared.ErrServiceUnavailable)
	}

	// stderr output would corrupt the rendered screen
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(shared.WithLogger(fileLogger, "session", shared.GenerateID()))

	favorites, err := r.favorites(ctx)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, ui.Opts{
		Catalog:         store.NewCatalog(api, r.logger),
		Favorites:       favorites,
		Detail:          store.NewDetail(),
		ImageBase:       r.config.TMDB.ImageBaseURL,
		RefreshInterval: cmd.Duration("refresh"),
		Logger:          r.logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
