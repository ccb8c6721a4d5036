// Package annotate provides the annotated document view component for
// the TUI: highlighted spans, match badges, in-document search and
// rule runs.
package annotate

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/raghuraavi99/annotation-app/internal/adapters/driving/tui/messages"
	"github.com/raghuraavi99/annotation-app/internal/adapters/driving/tui/styles"
	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driving"
	"github.com/raghuraavi99/annotation-app/internal/core/services"
)

// mode is the view's input mode.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeLabelPick
)

// labelAction is what the pending label pick will annotate.
type labelAction int

const (
	actionAnnotateCurrent labelAction = iota
	actionAnnotateAll
)

// View is the annotated document view.
type View struct {
	styles    *styles.Styles
	workspace driving.WorkspaceService
	search    driving.SearchService
	rules     driving.RuleService

	document    *domain.Document
	annotations []domain.Annotation
	labels      []string

	mode          mode
	pendingAction labelAction
	labelSelected int
	searchInput   textinput.Model
	searchTerm    string
	matchCount    int

	lines        []string
	scrollOffset int
	status       string
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new annotate view.
func NewView(s *styles.Styles, workspace driving.WorkspaceService, search driving.SearchService, rules driving.RuleService) *View {
	ti := textinput.New()
	ti.Placeholder = "search term"
	ti.CharLimit = 120
	ti.Width = 40

	return &View{
		styles:      s,
		workspace:   workspace,
		search:      search,
		rules:       rules,
		searchInput: ti,
	}
}

// SetDocument opens a document and loads its annotations.
func (v *View) SetDocument(doc *domain.Document) tea.Cmd {
	v.document = doc
	v.annotations = nil
	v.scrollOffset = 0
	v.mode = modeBrowse
	v.searchTerm = ""
	v.matchCount = 0
	v.status = ""
	v.err = nil
	if doc != nil {
		v.search.Clear(doc.ID)
	}
	return tea.Batch(v.loadAnnotations(), v.loadLabels())
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// loadAnnotations returns a command that loads the document's annotations.
func (v *View) loadAnnotations() tea.Cmd {
	return func() tea.Msg {
		if v.document == nil {
			return messages.AnnotationsLoaded{Err: fmt.Errorf("no document open")}
		}
		anns, err := v.workspace.Annotations(context.Background(), v.document.ID)
		return messages.AnnotationsLoaded{DocID: v.document.ID, Annotations: anns, Err: err}
	}
}

// loadLabels returns a command that loads the label set.
func (v *View) loadLabels() tea.Cmd {
	return func() tea.Msg {
		labels, err := v.workspace.Labels(context.Background())
		return messages.LabelsLoaded{Labels: labels, Err: err}
	}
}

// runSearch returns a command that collects matches for the entered term.
func (v *View) runSearch(term string) tea.Cmd {
	return func() tea.Msg {
		if v.document == nil {
			return messages.SearchCompleted{Err: fmt.Errorf("no document open")}
		}
		n, err := v.search.Find(context.Background(), v.document.ID, term)
		return messages.SearchCompleted{DocID: v.document.ID, Term: term, Matches: n, Err: err}
	}
}

// annotateCurrent returns a command that annotates the match under the cursor.
func (v *View) annotateCurrent(label string) tea.Cmd {
	return func() tea.Msg {
		ann, err := v.search.AnnotateCurrent(context.Background(), v.document.ID, label)
		return messages.AnnotationAdded{Annotation: ann, Err: err}
	}
}

// annotateAll returns a command that annotates every match.
func (v *View) annotateAll(label string) tea.Cmd {
	return func() tea.Msg {
		n, err := v.search.AnnotateAll(context.Background(), v.document.ID, label)
		return messages.AnnotationsAdded{DocID: v.document.ID, Count: n, Err: err}
	}
}

// runPHI returns a command that applies the PHI rules to the document.
func (v *View) runPHI() tea.Cmd {
	return func() tea.Msg {
		report, err := v.rules.ApplyPHI(context.Background(), v.document.ID)
		return messages.RulesApplied{DocID: v.document.ID, Added: report.Added, Skipped: report.Skipped, Err: err}
	}
}

// Update handles messages for the annotate view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.rebuild()
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeSearch:
			return v.handleSearchKeyMsg(msg)
		case modeLabelPick:
			return v.handleLabelKeyMsg(msg)
		default:
			return v.handleBrowseKeyMsg(msg)
		}

	case messages.AnnotationsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.annotations = msg.Annotations
			v.err = nil
			v.rebuild()
		}
		return v, nil

	case messages.LabelsLoaded:
		if msg.Err == nil {
			v.labels = msg.Labels
		}
		return v, nil

	case messages.SearchCompleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.searchTerm = msg.Term
		v.matchCount = msg.Matches
		v.status = fmt.Sprintf("%d match(es) for %q", msg.Matches, msg.Term)
		v.rebuild()
		return v, nil

	case messages.AnnotationAdded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.status = fmt.Sprintf("Annotated %q as %s", msg.Annotation.Text, msg.Annotation.Label)
		return v, v.loadAnnotations()

	case messages.AnnotationsAdded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.status = fmt.Sprintf("Annotated %d match(es)", msg.Count)
		return v, v.loadAnnotations()

	case messages.RulesApplied:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.status = fmt.Sprintf("PHI rules added %d annotation(s)", msg.Added)
		return v, v.loadAnnotations()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleBrowseKeyMsg handles key presses in browse mode.
func (v *View) handleBrowseKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown", "ctrl+d":
		if v.scrollOffset += v.visibleLines(); v.scrollOffset > v.maxScrollOffset() {
			v.scrollOffset = v.maxScrollOffset()
		}
	case "g", "home":
		v.scrollOffset = 0
	case "G", "end":
		v.scrollOffset = v.maxScrollOffset()
	case "/":
		v.mode = modeSearch
		v.searchInput.SetValue("")
		return v, v.searchInput.Focus()
	case "n":
		if v.matchCount > 0 {
			v.search.Next(v.document.ID)
			v.rebuild()
		}
	case "N":
		if v.matchCount > 0 {
			v.search.Prev(v.document.ID)
			v.rebuild()
		}
	case "a":
		if v.matchCount > 0 && len(v.labels) > 0 {
			v.mode = modeLabelPick
			v.pendingAction = actionAnnotateCurrent
			v.labelSelected = 0
		}
	case "A":
		if v.matchCount > 0 && len(v.labels) > 0 {
			v.mode = modeLabelPick
			v.pendingAction = actionAnnotateAll
			v.labelSelected = 0
		}
	case "p":
		v.status = "Running PHI rules..."
		return v, v.runPHI()
	case "esc":
		if v.searchTerm != "" {
			// First esc clears the search, second leaves the view.
			v.search.Clear(v.document.ID)
			v.searchTerm = ""
			v.matchCount = 0
			v.status = ""
			v.rebuild()
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDocuments}
		}
	}

	return v, nil
}

// handleSearchKeyMsg handles key presses while typing a search term.
func (v *View) handleSearchKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		term := strings.TrimSpace(v.searchInput.Value())
		v.mode = modeBrowse
		v.searchInput.Blur()
		if term == "" {
			return v, nil
		}
		return v, v.runSearch(term)
	case "esc":
		v.mode = modeBrowse
		v.searchInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	return v, cmd
}

// handleLabelKeyMsg handles key presses while picking a label.
func (v *View) handleLabelKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.labelSelected > 0 {
			v.labelSelected--
		}
	case "down", "j":
		if v.labelSelected < len(v.labels)-1 {
			v.labelSelected++
		}
	case "enter":
		v.mode = modeBrowse
		label := v.labels[v.labelSelected]
		if v.pendingAction == actionAnnotateAll {
			return v, v.annotateAll(label)
		}
		return v, v.annotateCurrent(label)
	case "esc":
		v.mode = modeBrowse
	}

	return v, nil
}

// rebuild re-renders the document into display lines.
func (v *View) rebuild() {
	if v.document == nil {
		v.lines = nil
		return
	}

	matchIndex := map[domain.Span]int(nil)
	if v.matchCount > 0 {
		matchIndex = v.search.MatchIndexMap(v.document.ID)
	}
	segments := services.Render(v.document.Text, v.annotations, matchIndex)

	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case domain.SegmentHighlight:
			b.WriteString(v.renderHighlight(seg))
		default:
			b.WriteString(seg.Content)
		}
	}

	v.lines = wrapLines(b.String(), v.contentWidth())
	if v.scrollOffset > v.maxScrollOffset() {
		v.scrollOffset = v.maxScrollOffset()
	}
}

// renderHighlight styles a highlighted span line by line so colour
// survives the later split into display lines.
func (v *View) renderHighlight(seg domain.Segment) string {
	style := v.styles.Highlight(seg.Label)

	parts := strings.Split(seg.Content, "\n")
	for i, p := range parts {
		parts[i] = style.Render(p)
	}
	out := strings.Join(parts, "\n")

	out += v.styles.Badge.Render("⟨" + seg.Label + "⟩")
	if seg.Badge != "" {
		out += v.styles.Badge.Render("[" + seg.Badge + "]")
	}
	return out
}

// wrapLines splits text into lines, wrapping plain runs that exceed
// width. Styled runs carry ANSI sequences, so wrapping is by rune
// count only on unstyled text; styled lines are left unwrapped.
func wrapLines(text string, width int) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.Contains(line, "\x1b") {
			lines = append(lines, line)
			continue
		}
		runes := []rune(line)
		for len(runes) > width {
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		if len(runes) > 0 || line == "" {
			lines = append(lines, string(runes))
		}
	}
	return lines
}

func (v *View) contentWidth() int {
	w := v.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// visibleLines returns the number of content lines that fit.
func (v *View) visibleLines() int {
	// Title, separator, status, help and padding.
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	m := len(v.lines) - v.visibleLines()
	if m < 0 {
		m = 0
	}
	return m
}

// View renders the annotate view.
func (v *View) View() string {
	var b strings.Builder

	title := "Annotate"
	if v.document != nil {
		title = v.document.ID
	}
	b.WriteString(v.styles.Title.Render(title))
	if v.matchCount > 0 {
		if _, ok := v.search.Current(v.document.ID); ok {
			st := v.search.State(v.document.ID)
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  match %d/%d for %q", st.Cursor+1, v.matchCount, v.searchTerm)))
		}
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	switch v.mode {
	case modeSearch:
		b.WriteString(v.styles.InputField.Render(v.searchInput.View()))
		b.WriteString("\n\n")
	case modeLabelPick:
		b.WriteString(v.styles.Normal.Render("Pick a label:"))
		b.WriteString("\n")
		for i, l := range v.labels {
			line := "  " + l
			if i == v.labelSelected {
				line = v.styles.Selected.Render("▸ " + l)
			} else {
				line = v.styles.Highlight(l).Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.lines[i])
		b.WriteString("\n")
	}

	if v.status != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.status))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the help footer for the current mode.
func (v *View) renderHelp() string {
	switch v.mode {
	case modeSearch:
		return v.styles.Help.Render("[enter] search  [esc] cancel")
	case modeLabelPick:
		return v.styles.Help.Render("[↑/↓] pick label  [enter] annotate  [esc] cancel")
	default:
		return v.styles.Help.Render("[/] search  [n/N] next/prev  [a/A] annotate one/all  [p] PHI  [↑/↓] scroll  [esc] back")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.rebuild()
}

// Document returns the open document.
func (v *View) Document() *domain.Document {
	return v.document
}

// Annotations returns the loaded annotations.
func (v *View) Annotations() []domain.Annotation {
	return v.annotations
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
