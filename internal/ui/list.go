package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/x/ansi"
	"github.com/desertthunder/moviebox/internal/models"
)

const descriptionWidth = 60

var (
	_ list.Item = movieItem{}
)

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string {
	if y := i.movie.Year(); y != "" {
		return fmt.Sprintf("%s (%s)", i.movie.Title, y)
	}
	return i.movie.Title
}
func (i movieItem) Description() string {
	desc := fmt.Sprintf("★ %.1f", i.movie.VoteAverage)
	if i.movie.Overview != "" {
		desc = fmt.Sprintf("%s • %s", desc, ansi.Truncate(i.movie.Overview, descriptionWidth, "…"))
	}
	return desc
}

func movieItems(movies []models.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m}
	}
	return items
}

func newMovieList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	return l
}
