package browser

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/codedocs/internal/preview"
	"github.com/mattsolo1/codedocs/internal/tui/browser/components/confirm"
	"github.com/mattsolo1/codedocs/pkg/models"
	"github.com/mattsolo1/codedocs/pkg/tree"
	"github.com/mattsolo1/codedocs/pkg/watch"
	"github.com/mattsolo1/codedocs/pkg/workspace"
)

type pane int

const (
	treePane pane = iota
	editorPane
	previewPane
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogPending
	dialogCreate
)

// displayNode represents a single line in the tree pane.
type displayNode struct {
	entry *tree.Entry
	doc   *models.Document // set for search results
	depth int
}

func (n *displayNode) path() string {
	if n.doc != nil {
		return n.doc.Path
	}
	return n.entry.Path
}

func (n *displayNode) isDir() bool {
	return n.entry != nil && n.entry.IsDir
}

// Options configures the browser.
type Options struct {
	// Root is opened on start. Empty asks the session's folder picker.
	Root         string
	PreviewStyle string
	Watch        bool
	Logger       *logrus.Entry
}

// Model is the main model for the document browser TUI
type Model struct {
	session    *workspace.Session
	dispatcher *workspace.Dispatcher
	renderer   *preview.Renderer
	watcher    *watch.Watcher
	watchRoot  string
	opts       Options
	log        *logrus.Entry

	snapshot     workspace.Snapshot
	displayNodes []*displayNode
	cursor       int
	scrollOffset int
	lastKey      string // For detecting 'gg'
	focus        pane

	keys   KeyMap
	help   help.Model
	width  int
	height int

	editor   textarea.Model
	viewport viewport.Model

	confirm confirm.Model
	dialog  dialogKind

	searchInput    textinput.Model
	searching      bool
	showingResults bool
	results        []*models.Document

	templatePicker  list.Model
	pickingTemplate bool

	statusMessage string
}

// New creates a new TUI model driving session.
func New(session *workspace.Session, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	editor := textarea.New()
	editor.Placeholder = "Select a document to start editing..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0

	searchInput := textinput.New()
	searchInput.Placeholder = "Search documents..."
	searchInput.CharLimit = 100

	var items []list.Item
	for _, t := range session.Templates() {
		items = append(items, templateItem(t))
	}
	picker := list.New(items, templateDelegate{}, 40, 10)
	picker.Title = "Insert Template"
	picker.SetShowHelp(false)
	picker.SetShowStatusBar(false)
	picker.SetShowPagination(false)
	picker.SetFilteringEnabled(false)

	m := Model{
		session:        session,
		dispatcher:     workspace.NewDispatcher(context.Background(), session),
		renderer:       preview.New(opts.PreviewStyle),
		opts:           opts,
		log:            log.WithField("component", "tui"),
		keys:           keys,
		help:           help.New(),
		editor:         editor,
		viewport:       viewport.New(0, 0),
		confirm:        confirm.New(),
		searchInput:    searchInput,
		templatePicker: picker,
	}
	m.snapshot = session.Snapshot()
	return m
}

// Init opens the initial folder and starts listening for completions.
func (m Model) Init() tea.Cmd {
	if m.opts.Root != "" {
		m.dispatcher.OpenPath(m.opts.Root)
	} else {
		m.dispatcher.OpenFolder()
	}
	return tea.Batch(waitForResult(m.dispatcher), textarea.Blink)
}

// Close stops background work. Call it after the program exits.
func (m Model) Close() {
	if m.watcher != nil {
		m.watcher.Close()
	}
	m.dispatcher.Close()
}

// Session returns the session the browser drives.
func (m Model) Session() *workspace.Session {
	return m.session
}

// startWatcher follows the open folder when watching is enabled.
func (m *Model) startWatcher() {
	root := m.snapshot.Root
	if !m.opts.Watch || root == "" || root == m.watchRoot {
		return
	}
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	d := m.dispatcher
	w, err := watch.New(root, func() { d.Refresh() }, watch.WithLogger(m.log))
	if err != nil {
		m.log.WithError(err).Warn("cannot watch folder")
		return
	}
	m.watcher = w
	m.watchRoot = root
	go w.Run(context.Background())
}

// templateItem implements the list.Item interface for the template picker.
type templateItem models.Template

func (i templateItem) FilterValue() string { return i.Name }
func (i templateItem) Title() string       { return i.Label }
func (i templateItem) Description() string { return i.Name }

// templateDelegate is a custom delegate with minimal spacing for the template picker
type templateDelegate struct{}

func (d templateDelegate) Height() int                             { return 1 }
func (d templateDelegate) Spacing() int                            { return 0 }
func (d templateDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d templateDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(templateItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%s (%s)", i.Label, i.Name)
	if index == m.Index() {
		str = lipgloss.NewStyle().Foreground(accent).Render("│ " + str)
	} else {
		str = "  " + str
	}

	fmt.Fprint(w, str)
}
