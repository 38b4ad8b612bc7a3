package browser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/codedocs/internal/tui/browser/components/confirm"
	"github.com/mattsolo1/codedocs/pkg/tree"
	"github.com/mattsolo1/codedocs/pkg/workspace"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		m.refreshPreview()
		return m, nil

	case resultMsg:
		m.applyResult(workspace.Result(msg))
		return m, waitForResult(m.dispatcher)

	case searchResultsMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Search failed: %v", msg.err)
			return m, nil
		}
		m.results = msg.docs
		m.showingResults = true
		m.cursor, m.scrollOffset = 0, 0
		m.buildDisplayTree()
		m.statusMessage = fmt.Sprintf("%d result(s) for %q", len(msg.docs), msg.query)
		return m, nil

	case confirm.ConfirmedMsg:
		dialog := m.dialog
		m.dialog = dialogNone
		switch dialog {
		case dialogPending:
			m.dispatcher.Confirm(msg.Value)
		case dialogCreate:
			m.dispatcher.Create(msg.Value)
		}
		return m, nil

	case confirm.CancelledMsg:
		if m.dialog == dialogPending {
			m.session.Cancel()
			m.snapshot = m.session.Snapshot()
		}
		m.dialog = dialogNone
		m.statusMessage = "Cancelled"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll {
		m.help.ShowAll = false
		return m, nil
	}

	if m.confirm.Active {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	if m.pickingTemplate {
		return m.handleTemplateKey(msg)
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if key.Matches(msg, m.keys.Save) {
		m.dispatcher.Save()
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.focus {
	case editorPane:
		return m.handleEditorKey(msg)
	case previewPane:
		return m.handlePreviewKey(msg)
	}
	return m.handleTreeKey(msg)
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle 'gg' sequence
	if msg.String() == "g" {
		if m.lastKey == "g" {
			m.cursor = 0
			m.adjustScroll()
			m.lastKey = ""
			return m, nil
		}
		m.lastKey = "g"
		return m, nil
	}
	m.lastKey = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = true
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.displayNodes)-1 {
			m.cursor++
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.GoToBottom):
		if len(m.displayNodes) > 0 {
			m.cursor = len(m.displayNodes) - 1
			m.adjustScroll()
		}
	case key.Matches(msg, m.keys.Back):
		if m.showingResults {
			m.showingResults = false
			m.results = nil
			m.cursor, m.scrollOffset = 0, 0
			m.buildDisplayTree()
			m.statusMessage = ""
		}
	case key.Matches(msg, m.keys.FocusNext):
		m.setFocus(editorPane)
	case key.Matches(msg, m.keys.Open):
		if node := m.currentNode(); node != nil {
			m.dispatcher.Select(node.path())
			if node.doc != nil {
				m.showingResults = false
				m.results = nil
				m.cursor, m.scrollOffset = 0, 0
				m.buildDisplayTree()
			}
		}
	case key.Matches(msg, m.keys.New):
		if !m.snapshot.FolderOpen() {
			m.statusMessage = "Open a folder first"
			break
		}
		m.dialog = dialogCreate
		m.confirm.ActivateInput("New document name (empty for default):", "")
	case key.Matches(msg, m.keys.Rename):
		node := m.currentNode()
		if node == nil || node.isDir() {
			m.statusMessage = "Only documents can be renamed"
			break
		}
		name := filepath.Base(node.path())
		m.session.RequestRename(node.path())
		m.snapshot = m.session.Snapshot()
		m.dialog = dialogPending
		m.confirm.ActivateInput(fmt.Sprintf("Rename %s to:", name), strings.TrimSuffix(name, "."+tree.DocumentExtension))
	case key.Matches(msg, m.keys.Delete):
		node := m.currentNode()
		if node == nil || node.isDir() {
			m.statusMessage = "Only documents can be deleted"
			break
		}
		m.session.RequestDelete(node.path())
		m.snapshot = m.session.Snapshot()
		m.dialog = dialogPending
		m.confirm.Activate(fmt.Sprintf("Delete %s?", filepath.Base(node.path())))
	case key.Matches(msg, m.keys.Clear):
		m.requestClear()
	case key.Matches(msg, m.keys.Outline):
		m.session.InsertOutline()
		m.syncBuffer()
	case key.Matches(msg, m.keys.Template):
		m.pickingTemplate = true
	case key.Matches(msg, m.keys.Search):
		if !m.snapshot.FolderOpen() {
			m.statusMessage = "Open a folder first"
			break
		}
		m.searching = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.Refresh):
		m.dispatcher.Refresh()
	}
	return m, nil
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.setFocus(treePane)
		return m, nil
	case key.Matches(msg, m.keys.FocusNext):
		m.setFocus(previewPane)
		return m, nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.session.Edit(after)
		m.snapshot = m.session.Snapshot()
		m.refreshPreview()
	}
	return m, cmd
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.FocusNext):
		m.setFocus(treePane)
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Clear):
		m.requestClear()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		return m, searchCmd(m.session, query)
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleTemplateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.pickingTemplate = false
		if item, ok := m.templatePicker.SelectedItem().(templateItem); ok {
			if err := m.session.InsertTemplate(item.Name); err != nil {
				m.statusMessage = err.Error()
			} else {
				m.syncBuffer()
				m.statusMessage = "Inserted " + item.Label
			}
		}
		return m, nil
	case tea.KeyEsc:
		m.pickingTemplate = false
		return m, nil
	}
	var cmd tea.Cmd
	m.templatePicker, cmd = m.templatePicker.Update(msg)
	return m, cmd
}

func (m *Model) requestClear() {
	m.session.RequestClear()
	m.snapshot = m.session.Snapshot()
	m.dialog = dialogPending
	m.confirm.Activate("Clear the editor buffer? Unsaved text is lost.")
}

// applyResult pulls the session state after an operation finished.
func (m *Model) applyResult(r workspace.Result) {
	m.snapshot = m.session.Snapshot()
	m.buildDisplayTree()
	m.syncEditor()
	m.refreshPreview()

	switch {
	case r.Err != nil:
		m.statusMessage = m.snapshot.Notice.Message
		if m.statusMessage == "" {
			m.statusMessage = r.Err.Error()
		}
	case m.snapshot.Notice.Message != "":
		m.statusMessage = m.snapshot.Notice.Message
	case r.Op == workspace.OpSelect:
		m.statusMessage = ""
	}

	if r.Err == nil && (r.Op == workspace.OpOpenFolder || r.Op == workspace.OpOpenPath) {
		m.cursor, m.scrollOffset = 0, 0
		m.startWatcher()
	}
}

// syncBuffer is used after local buffer edits that did not come from the
// editor widget.
func (m *Model) syncBuffer() {
	m.snapshot = m.session.Snapshot()
	m.syncEditor()
	m.refreshPreview()
}

func (m *Model) syncEditor() {
	if m.editor.Value() != m.snapshot.Buffer {
		m.editor.SetValue(m.snapshot.Buffer)
	}
}

func (m *Model) refreshPreview() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	m.viewport.SetContent(m.renderer.Render(m.snapshot.Buffer, width-2))
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	if p == editorPane {
		m.editor.Focus()
	} else {
		m.editor.Blur()
	}
}

// buildDisplayTree flattens the visible part of the tree, or the search
// results while they are shown.
func (m *Model) buildDisplayTree() {
	var nodes []*displayNode
	if m.showingResults {
		for _, doc := range m.results {
			nodes = append(nodes, &displayNode{doc: doc})
		}
	} else {
		var walk func(entries []*tree.Entry, depth int)
		walk = func(entries []*tree.Entry, depth int) {
			for _, e := range entries {
				nodes = append(nodes, &displayNode{entry: e, depth: depth})
				if e.IsDir && m.snapshot.Expanded[e.Path] {
					walk(e.Children, depth+1)
				}
			}
		}
		walk(m.snapshot.Tree, 0)
	}
	m.displayNodes = nodes
	m.clampCursor()
	m.adjustScroll()
}

func (m *Model) currentNode() *displayNode {
	if m.cursor < 0 || m.cursor >= len(m.displayNodes) {
		return nil
	}
	return m.displayNodes[m.cursor]
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.displayNodes) {
		if len(m.displayNodes) > 0 {
			m.cursor = len(m.displayNodes) - 1
		} else {
			m.cursor = 0
		}
	}
}

// getViewportHeight calculates how many lines are available for the panes.
func (m *Model) getViewportHeight() int {
	// Account for:
	// - Top margin: 1 line
	// - Header: 1 line
	// - Blank line after header: 1 line
	// - Pane borders: 2 lines
	// - Status bar: 1 line
	// - Footer (help): 1 line
	const fixedLines = 7
	availableHeight := m.height - fixedLines
	if availableHeight < 1 {
		return 1
	}
	return availableHeight
}

// adjustScroll ensures the cursor is visible in the viewport.
func (m *Model) adjustScroll() {
	viewportHeight := m.getViewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+viewportHeight {
		m.scrollOffset = m.cursor - viewportHeight + 1
	}
	// Ensure scrollOffset never goes negative
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// layout sizes the three panes: a fixed share for the tree, the rest split
// between editor and preview.
func (m *Model) layout() {
	rest := m.width - m.treeWidth() - 6 // three bordered panes
	if rest < 20 {
		rest = 20
	}
	editorWidth := rest / 2
	previewWidth := rest - editorWidth
	height := m.getViewportHeight()

	m.editor.SetWidth(editorWidth)
	m.editor.SetHeight(height)
	m.viewport.Width = previewWidth
	m.viewport.Height = height
}

func (m Model) treeWidth() int {
	w := m.width / 4
	if w < 24 {
		w = 24
	}
	return w
}
