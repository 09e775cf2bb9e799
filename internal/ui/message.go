package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moviebox/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCatalogLoaded MsgKind = iota
	MsgFavoritesSaved
	MsgRefreshTick
)

// catalogLoadedMsg is the constructor for [MsgCatalogLoaded]
func catalogLoadedMsg(err error) Msg {
	return Msg{kind: MsgCatalogLoaded, data: err}
}

type favoritesResult struct {
	verb  string
	movie models.Movie
	err   error
}

// favoritesSavedMsg is the constructor for [MsgFavoritesSaved]
func favoritesSavedMsg(verb string, movie models.Movie, err error) Msg {
	return Msg{kind: MsgFavoritesSaved, data: favoritesResult{verb, movie, err}}
}

// refreshTickMsg is the constructor for [MsgRefreshTick]; seq identifies the Movies screen visit that scheduled it.
func refreshTickMsg(seq int) Msg {
	return Msg{kind: MsgRefreshTick, data: seq}
}
