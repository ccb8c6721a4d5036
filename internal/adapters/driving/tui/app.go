package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/raghuraavi99/annotation-app/internal/adapters/driving/tui/messages"
	"github.com/raghuraavi99/annotation-app/internal/adapters/driving/tui/styles"
	"github.com/raghuraavi99/annotation-app/internal/adapters/driving/tui/views/annotate"
	"github.com/raghuraavi99/annotation-app/internal/adapters/driving/tui/views/documents"
	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	// documentsView is the document list.
	documentsView *documents.View

	// annotateView is the annotated document view.
	annotateView *annotate.View

	// selectedDocument tracks the open document for navigation.
	selectedDocument *domain.Document

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		documentsView: documents.NewView(s, ports.Workspace),
		annotateView:  annotate.NewView(s, ports.Workspace, ports.Search, ports.Rules),
		currentView:   messages.ViewDocuments,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("annotate"),
		a.documentsView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.annotateView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit. Plain q only quits from the document list so
		// it stays typeable in the search input.
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "q" && a.currentView == messages.ViewDocuments {
			return a, tea.Quit
		}
		if msg.String() == "?" && a.currentView != messages.ViewAnnotate {
			if a.currentView == messages.ViewHelp {
				a.currentView = messages.ViewDocuments
			} else {
				a.currentView = messages.ViewHelp
			}
			return a, nil
		}

		switch a.currentView {
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
			return a, cmd
		case messages.ViewAnnotate:
			a.annotateView, cmd = a.annotateView.Update(msg)
			return a, cmd
		case messages.ViewHelp:
			if msg.String() == "esc" {
				a.currentView = messages.ViewDocuments
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewDocuments {
			return a, a.documentsView.Init()
		}
		return a, nil

	case messages.DocumentSelected:
		a.selectedDocument = &msg.Document
		a.currentView = messages.ViewAnnotate
		return a, a.annotateView.SetDocument(&msg.Document)

	case messages.ErrorOccurred:
		a.err = msg.Err
	}

	// Forward other messages to the active view.
	switch a.currentView {
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewAnnotate:
		a.annotateView, cmd = a.annotateView.Update(msg)
	case messages.ViewHelp:
		// Help view has no state to update.
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewAnnotate:
		return a.annotateView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.documentsView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Documents:
  j/k, ↑/↓    Navigate
  enter       Open document
  r           Reload list
  q           Quit

Document:
  /           Search within the document
  n / N       Next / previous match
  a / A       Annotate current match / all matches
  p           Run PHI rules
  j/k, ↑/↓    Scroll
  esc         Clear search, then back

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.documentsView.SetDimensions(width, height)
	a.annotateView.SetDimensions(width, height)
}
