package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tmattson/flix/internal/api"
	"github.com/tmattson/flix/internal/favorites"
	"github.com/tmattson/flix/internal/models"
)

// ViewState represents the current view in the browser.
type ViewState int

const (
	MovieListView ViewState = iota
	MovieDetailView
	GenreView
	DirectorView
	ProfileView
)

// Model represents the movie browser state.
type Model struct {
	ctx        context.Context
	view       ViewState
	client     *api.Client
	reconciler *favorites.Reconciler
	username   string
	width      int
	height     int
	movieList  list.Model
	movies     []models.Movie
	selected   *models.Movie
	genre      *models.Genre
	director   *models.Director
	profile    *models.User
	notice     string
	err        error
	help       help.Model
	keys       keyMap
}

// movieItem wraps [models.Movie] to implement list.Item. Favorites carry a
// star marker derived from the cached session, so a confirmed toggle is
// visible on the very next render.
type movieItem struct {
	movie    models.Movie
	favorite bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }

func (i movieItem) Title() string {
	if i.favorite {
		return "★ " + i.movie.Title
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.movie.Genre.Name, i.movie.Director.Name)
	if i.movie.Featured {
		desc += " • featured"
	}
	return desc
}

type moviesFetchedMsg struct {
	movies []models.Movie
	err    error
}

type favoriteToggledMsg struct {
	movieID  string
	favorite bool
	err      error
}

type genreFetchedMsg struct {
	genre *models.Genre
	err   error
}

type directorFetchedMsg struct {
	director *models.Director
	err      error
}

type profileFetchedMsg struct {
	user *models.User
	err  error
}

// NewModel creates a new browser model. username identifies the logged-in
// user for profile lookups.
func NewModel(ctx context.Context, client *api.Client, reconciler *favorites.Reconciler, username string) *Model {
	return &Model{
		ctx:        ctx,
		view:       MovieListView,
		client:     client,
		reconciler: reconciler,
		username:   username,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init fetches the movie catalog.
func (m *Model) Init() tea.Cmd {
	return m.fetchMovies()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.movieList.Width() == 0 {
			m.movieList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MovieListView:
			return m.handleMovieListKeys(msg)
		default:
			return m.handleDetailKeys(msg)
		}

	case moviesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.movies = msg.movies
		m.movieList = list.New(m.buildItems(), list.NewDefaultDelegate(), 0, 0)
		m.movieList.Title = "myFlix Catalog"
		m.movieList.SetSize(m.width-4, m.height-8)
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			m.notice = styles.err.Render(fmt.Sprintf("favorite toggle failed: %v", msg.err))
			return m, nil
		}
		if msg.favorite {
			m.notice = styles.ok.Render("added to favorites")
		} else {
			m.notice = styles.warn.Render("removed from favorites")
		}
		m.movieList.SetItems(m.buildItems())
		return m, nil

	case genreFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = MovieListView
			return m, nil
		}
		m.genre = msg.genre
		m.view = GenreView
		return m, nil

	case directorFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = MovieListView
			return m, nil
		}
		m.director = msg.director
		m.view = DirectorView
		return m, nil

	case profileFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = MovieListView
			return m, nil
		}
		m.profile = msg.user
		m.view = ProfileView
		return m, nil
	}

	var cmd tea.Cmd
	if m.view == MovieListView {
		m.movieList, cmd = m.movieList.Update(msg)
	}
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view == MovieListView && len(m.movies) == 0 {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case MovieDetailView:
		return m.renderMovieDetail()
	case GenreView:
		return m.renderGenre()
	case DirectorView:
		return m.renderDirector()
	case ProfileView:
		return m.renderProfile()
	default:
		return m.renderMovieList()
	}
}

func (m *Model) handleMovieListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if movie := m.selectedMovie(); movie != nil {
			m.selected = movie
			m.view = MovieDetailView
		}
		return m, nil
	case "f":
		if movie := m.selectedMovie(); movie != nil {
			return m, m.toggleFavorite(movie.ID)
		}
		return m, nil
	case "g":
		if movie := m.selectedMovie(); movie != nil {
			return m, m.fetchGenre(movie.Genre.Name)
		}
		return m, nil
	case "d":
		if movie := m.selectedMovie(); movie != nil {
			return m, m.fetchDirector(movie.Director.Name)
		}
		return m, nil
	case "p":
		return m, m.fetchProfile()
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.view = MovieListView
		m.genre = nil
		m.director = nil
		m.profile = nil
		return m, nil
	case "f":
		if m.view == MovieDetailView && m.selected != nil {
			return m, m.toggleFavorite(m.selected.ID)
		}
	}
	return m, nil
}

func (m *Model) selectedMovie() *models.Movie {
	item := m.movieList.SelectedItem()
	if item == nil {
		return nil
	}
	if mi, ok := item.(movieItem); ok {
		movie := mi.movie
		return &movie
	}
	return nil
}

func (m *Model) buildItems() []list.Item {
	items := make([]list.Item, len(m.movies))
	for i, movie := range m.movies {
		items[i] = movieItem{movie: movie, favorite: m.reconciler.IsFavorite(movie.ID)}
	}
	return items
}

func (m *Model) fetchMovies() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.client.Movies(m.ctx)
		return moviesFetchedMsg{movies: movies, err: err}
	}
}

func (m *Model) toggleFavorite(movieID string) tea.Cmd {
	return func() tea.Msg {
		fav, err := m.reconciler.Toggle(m.ctx, movieID)
		return favoriteToggledMsg{movieID: movieID, favorite: fav, err: err}
	}
}

func (m *Model) fetchGenre(name string) tea.Cmd {
	return func() tea.Msg {
		genre, err := m.client.Genre(m.ctx, name)
		return genreFetchedMsg{genre: genre, err: err}
	}
}

func (m *Model) fetchDirector(name string) tea.Cmd {
	return func() tea.Msg {
		director, err := m.client.Director(m.ctx, name)
		return directorFetchedMsg{director: director, err: err}
	}
}

func (m *Model) fetchProfile() tea.Cmd {
	return func() tea.Msg {
		user, err := m.client.User(m.ctx, m.username)
		return profileFetchedMsg{user: user, err: err}
	}
}

func (m *Model) renderMovieList() string {
	view := m.movieList.View()
	if m.notice != "" {
		view += "\n" + m.notice
	}
	return view + "\n" + m.help.View(m.keys)
}

func (m *Model) renderMovieDetail() string {
	if m.selected == nil {
		return ""
	}

	s := styles.title.Render(m.selected.Title) + "\n"
	if m.reconciler.IsFavorite(m.selected.ID) {
		s += styles.ok.Render("★ favorite") + "\n"
	}
	s += fmt.Sprintf("\n%s\n", m.selected.Description)
	s += fmt.Sprintf("\nGenre: %s\nDirector: %s\n", m.selected.Genre.Name, m.selected.Director.Name)
	if m.selected.Featured {
		s += styles.warn.Render("\nFeatured") + "\n"
	}
	if m.notice != "" {
		s += "\n" + m.notice
	}
	s += "\n" + styles.help.Render("f toggle favorite • esc back • q quit")
	return s
}

func (m *Model) renderGenre() string {
	if m.genre == nil {
		return ""
	}

	s := styles.title.Render(m.genre.Name) + "\n"
	s += fmt.Sprintf("\n%s\n", m.genre.Description)
	s += "\n" + styles.help.Render("esc back • q quit")
	return s
}

func (m *Model) renderDirector() string {
	if m.director == nil {
		return ""
	}

	s := styles.title.Render(m.director.Name) + "\n"
	s += fmt.Sprintf("\n%s\n", m.director.Bio)
	if m.director.Birth != "" {
		s += fmt.Sprintf("\nBorn: %s\n", m.director.Birth)
	}
	if m.director.Death != "" {
		s += fmt.Sprintf("Died: %s\n", m.director.Death)
	}
	s += "\n" + styles.help.Render("esc back • q quit")
	return s
}

func (m *Model) renderProfile() string {
	if m.profile == nil {
		return ""
	}

	s := styles.title.Render(m.profile.Username) + "\n"
	if m.profile.Email != "" {
		s += fmt.Sprintf("\nEmail: %s\n", m.profile.Email)
	}
	if m.profile.Birthday != "" {
		s += fmt.Sprintf("Birthday: %s\n", m.profile.Birthday)
	}
	s += fmt.Sprintf("Favorites: %d\n", len(m.profile.FavoriteMovies))
	s += "\n" + styles.help.Render("esc back • q quit")
	return s
}
