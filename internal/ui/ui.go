package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviebox/internal/models"
	"github.com/desertthunder/moviebox/internal/shared"
	"github.com/desertthunder/moviebox/internal/store"
)

// ViewState represents the current screen in the TUI.
type ViewState int

const (
	LandingView ViewState = iota
	MoviesView
)

// Focus identifies which pane of the Movies screen receives keys.
type Focus int

const (
	FocusCatalog Focus = iota
	FocusFavorites
	FocusSearch
)

// Opts contains the dependencies of a [Model].
type Opts struct {
	Catalog         *store.Catalog
	Favorites       *store.Favorites
	Detail          *store.Detail
	ImageBase       string
	RefreshInterval time.Duration // <= 0 disables the automatic popular refresh
	Logger          *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx           context.Context
	view          ViewState
	focus         Focus
	catalog       *store.Catalog
	favorites     *store.Favorites
	detail        *store.Detail
	imageBase     string
	refreshEvery  time.Duration
	tickSeq       int
	logger        *log.Logger
	width         int
	height        int
	search        textinput.Model
	catalogList   list.Model
	favoritesList list.Model
	modal         viewport.Model
	loading       bool
	status        string
	statusErr     bool
	help          help.Model
	keys          keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Opts) *Model {
	search := textinput.New()
	search.Placeholder = "Search movies by title"
	search.Prompt = "/ "
	search.CharLimit = 100

	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	m := &Model{
		ctx:           ctx,
		view:          LandingView,
		focus:         FocusCatalog,
		catalog:       opts.Catalog,
		favorites:     opts.Favorites,
		detail:        opts.Detail,
		imageBase:     opts.ImageBase,
		refreshEvery:  opts.RefreshInterval,
		logger:        opts.Logger,
		search:        search,
		catalogList:   newMovieList("Popular"),
		favoritesList: newMovieList("Favorites"),
		modal:         viewport.New(0, 0),
		help:          help.New(),
		keys:          newKeyMap(),
	}
	m.syncFavorites()
	return m
}

// Init starts on the landing screen; nothing is fetched until the Movies screen is opened.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		switch m.view {
		case LandingView:
			return m.handleLandingKeys(msg)
		case MoviesView:
			if _, open := m.detail.Selected(); open {
				return m.handleModalKeys(msg)
			}
			if m.focus == FocusSearch {
				return m.handleSearchKeys(msg)
			}
			return m.handleListKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgCatalogLoaded:
		err, _ := msg.data.(error)
		if errors.Is(err, store.ErrStaleResponse) {
			return m, nil
		}
		m.loading = false
		if err != nil {
			m.setStatus(fmt.Sprintf("Could not load movies: %v", err), true)
		} else {
			m.setStatus("", false)
		}
		m.syncCatalog()
		return m, nil

	case MsgFavoritesSaved:
		res := msg.data.(favoritesResult)
		if res.err != nil {
			m.setStatus(fmt.Sprintf("Could not save favorites: %v", res.err), true)
			return m, nil
		}
		m.logger.Info("favorites updated", "action", res.verb, "id", res.movie.ID, "title", res.movie.Title)
		m.setStatus(fmt.Sprintf("%s %s", res.verb, res.movie.Title), false)
		m.syncFavorites()
		return m, nil

	case MsgRefreshTick:
		seq, _ := msg.data.(int)
		if m.view != MoviesView || seq != m.tickSeq {
			return m, nil
		}
		return m, tea.Batch(m.refresh(), m.scheduleRefresh())
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LandingView:
		return m.renderLanding()
	case MoviesView:
		if movie, ok := m.detail.Selected(); ok {
			return m.renderModal(movie)
		}
		return m.renderMovies()
	default:
		return ""
	}
}

func (m *Model) handleLandingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.back):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		return m, m.enterMovies()
	}
	return m, nil
}

func (m *Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.close):
		m.detail.Close()
		return m, nil
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		m.blurSearch()
		m.loading = true
		return m, m.runSearch(m.search.Value())
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.next):
		m.blurSearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.catalog.SetQuery(m.search.Value())
	return m, cmd
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.logger.Debug("leaving movies screen")
		m.view = LandingView
		m.tickSeq++
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.focus = FocusSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.next):
		if m.focus == FocusCatalog {
			m.focus = FocusFavorites
		} else {
			m.focus = FocusCatalog
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		m.loading = true
		return m, m.refresh()
	case key.Matches(msg, m.keys.details):
		if movie, ok := m.selectedMovie(); ok {
			m.showDetail(movie)
		}
		return m, nil
	case m.focus == FocusCatalog && key.Matches(msg, m.keys.add):
		if movie, ok := m.selectedMovie(); ok {
			return m, m.addFavorite(movie)
		}
		return m, nil
	case m.focus == FocusFavorites && key.Matches(msg, m.keys.remove):
		if movie, ok := m.selectedMovie(); ok {
			return m, m.removeFavorite(movie)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == FocusFavorites {
		m.favoritesList, cmd = m.favoritesList.Update(msg)
	} else {
		m.catalogList, cmd = m.catalogList.Update(msg)
	}
	return m, cmd
}

// enterMovies opens the Movies screen fresh: no detail, empty query, popular listing.
func (m *Model) enterMovies() tea.Cmd {
	m.logger.Debug("entering movies screen")
	m.view = MoviesView
	m.focus = FocusCatalog
	m.detail.Close()
	m.search.Reset()
	m.search.Blur()
	m.loading = true
	m.setStatus("", false)
	m.tickSeq++
	return tea.Batch(m.loadPopular(), m.scheduleRefresh())
}

func (m *Model) blurSearch() {
	m.search.Blur()
	m.focus = FocusCatalog
}

func (m *Model) selectedMovie() (models.Movie, bool) {
	l := m.catalogList
	if m.focus == FocusFavorites {
		l = m.favoritesList
	}
	if item, ok := l.SelectedItem().(movieItem); ok {
		return item.movie, true
	}
	return models.Movie{}, false
}

func (m *Model) showDetail(movie models.Movie) {
	m.detail.Show(movie)
	m.modal.SetContent(renderDetail(movie, m.imageBase, m.modal.Width))
	m.modal.GotoTop()
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) syncCatalog() {
	title := "Popular"
	if m.catalog.IsSearching() {
		title = fmt.Sprintf("Results for %q", strings.TrimSpace(m.catalog.Query()))
	}
	m.catalogList.Title = title
	m.catalogList.SetItems(movieItems(m.catalog.Movies()))
}

func (m *Model) syncFavorites() {
	movies := m.favorites.List()
	m.favoritesList.Title = fmt.Sprintf("Favorites (%d)", len(movies))
	m.favoritesList.SetItems(movieItems(movies))
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	paneWidth := max(20, (width-6)/2)
	paneHeight := max(5, height-12)
	m.catalogList.SetSize(paneWidth, paneHeight)
	m.favoritesList.SetSize(paneWidth, paneHeight)
	m.search.Width = max(10, width-8)

	m.modal.Width = min(80, max(20, width-10))
	m.modal.Height = max(5, height-10)
	if movie, ok := m.detail.Selected(); ok {
		m.modal.SetContent(renderDetail(movie, m.imageBase, m.modal.Width))
	}
}

func (m *Model) loadPopular() tea.Cmd {
	catalog, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		return catalogLoadedMsg(catalog.Reset(ctx))
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	catalog, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		return catalogLoadedMsg(catalog.Search(ctx, query))
	}
}

func (m *Model) refresh() tea.Cmd {
	catalog, ctx := m.catalog, m.ctx
	return func() tea.Msg {
		return catalogLoadedMsg(catalog.Refresh(ctx))
	}
}

func (m *Model) addFavorite(movie models.Movie) tea.Cmd {
	favorites, ctx := m.favorites, m.ctx
	return func() tea.Msg {
		return favoritesSavedMsg("Added", movie, favorites.Add(ctx, movie))
	}
}

func (m *Model) removeFavorite(movie models.Movie) tea.Cmd {
	favorites, ctx := m.favorites, m.ctx
	return func() tea.Msg {
		return favoritesSavedMsg("Removed", movie, favorites.Remove(ctx, movie.ID))
	}
}

func (m *Model) scheduleRefresh() tea.Cmd {
	if m.refreshEvery <= 0 {
		return nil
	}
	seq := m.tickSeq
	return tea.Tick(m.refreshEvery, func(time.Time) tea.Msg {
		return refreshTickMsg(seq)
	})
}

func (m *Model) renderLanding() string {
	title := styles.title.Render("🎬 moviebox")
	body := strings.Join([]string{
		"Browse what's popular on The Movie Database, search by title,",
		"and keep a list of favorites on this machine.",
	}, "\n")

	helpView := m.help.ShortHelpView([]key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "browse movies")),
		m.keys.quit,
	})
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderMovies() string {
	header := styles.title.Render("Movies")

	catalogPane := styles.panel
	favoritesPane := styles.panel
	switch m.focus {
	case FocusCatalog:
		catalogPane = styles.focused
	case FocusFavorites:
		favoritesPane = styles.focused
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		catalogPane.Render(m.catalogList.View()),
		favoritesPane.Render(m.favoritesList.View()),
	)

	var status string
	switch {
	case m.loading:
		status = styles.warn.Render("Loading…")
	case m.statusErr:
		status = styles.err.Render(m.status)
	case m.status != "":
		status = styles.ok.Render(m.status)
	}

	var bindings []key.Binding
	switch m.focus {
	case FocusSearch:
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			m.keys.back,
		}
	case FocusFavorites:
		bindings = []key.Binding{m.keys.remove, m.keys.details, m.keys.next, m.keys.search, m.keys.back, m.keys.quit}
	default:
		bindings = []key.Binding{m.keys.add, m.keys.details, m.keys.next, m.keys.search, m.keys.refresh, m.keys.back, m.keys.quit}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.search.View(),
		body,
		status,
		m.help.ShortHelpView(bindings),
	)
}

func (m *Model) renderModal(movie models.Movie) string {
	box := styles.modal.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.modal.View(),
		"",
		m.help.ShortHelpView([]key.Binding{m.keys.close, m.keys.up, m.keys.down}),
	))

	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderDetail lays out every detail field of movie for the modal body.
func renderDetail(movie models.Movie, imageBase string, width int) string {
	var b strings.Builder

	b.WriteString(styles.title.Render(movieItem{movie: movie}.Title()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Released: %s\n", orUnknown(movie.ReleaseDate))
	fmt.Fprintf(&b, "Rating:   ★ %.1f\n", movie.VoteAverage)
	if poster := movie.PosterURL(imageBase); poster != "" {
		fmt.Fprintf(&b, "Poster:   %s\n", styles.help.Render(poster))
	}
	b.WriteString("\n")

	overview := orUnknown(movie.Overview)
	if width > 0 {
		overview = lipgloss.NewStyle().Width(width).Render(overview)
	}
	b.WriteString(overview)
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
