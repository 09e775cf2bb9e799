// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two screens:
//  1. [LandingView] : Static introduction with a way into the movies screen
//  2. [MoviesView] : Search box, catalog list, favorites list, and a details modal
//
// The Movies screen is rebuilt from scratch each time it is entered: the modal is closed, the search box is
// emptied and the popular listing is fetched again.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg
// union type. Fetches and favorites writes run as [tea.Cmd]s so the screen stays responsive while a request is
// outstanding. A catalog response superseded by a newer request comes back as [store.ErrStaleResponse] and is
// dropped without touching the screen.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, /, a, x, q) with contextual help displayed via
// charmbracelet/bubbles/help.
package ui
