package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/codedocs/pkg/workspace"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.help.ShowAll {
		return "\n" + lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render("codedocs - Help"),
			"",
			m.help.FullHelpView(m.keys.FullHelp()),
		)
	}

	var body string
	switch {
	case m.confirm.Active:
		body = m.confirm.View()
	case m.pickingTemplate:
		body = m.templatePicker.View()
	default:
		body = m.renderPanes()
	}

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		m.renderStatus(),
		m.help.ShortHelpView(m.keys.ShortHelp()),
	)

	// Add top margin to prevent border cutoff
	return "\n" + fullView
}

func (m Model) renderHeader() string {
	if !m.snapshot.FolderOpen() {
		return headerStyle.Render("codedocs") + mutedStyle.Render("  no folder open")
	}
	header := headerStyle.Render("codedocs") + "  " + displayRoot(m.snapshot.Root)
	if m.snapshot.Selected != "" {
		header += mutedStyle.Render("  ›  " + displayDocument(m.snapshot.Selected, m.snapshot.Root))
	}
	if m.snapshot.Pending.Active() {
		header += highlightStyle.Render(fmt.Sprintf("  [pending %s]", m.snapshot.Pending.Kind))
	}
	return header
}

func (m Model) renderPanes() string {
	height := m.getViewportHeight()
	treeWidth := m.treeWidth()

	treeBox := m.paneStyle(treePane).Width(treeWidth).Height(height).Render(m.renderTree(height))
	editorBox := m.paneStyle(editorPane).Height(height).Render(m.editor.View())
	previewBox := m.paneStyle(previewPane).Height(height).Render(m.viewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, treeBox, editorBox, previewBox)
}

func (m Model) paneStyle(p pane) lipgloss.Style {
	if m.focus == p {
		return activePaneStyle
	}
	return paneStyle
}

func (m Model) renderTree(height int) string {
	var b strings.Builder

	if m.searching {
		b.WriteString(m.searchInput.View() + "\n\n")
	}

	if len(m.displayNodes) == 0 {
		switch {
		case m.showingResults:
			b.WriteString(mutedStyle.Render("No matching documents."))
		case m.snapshot.NoDocuments():
			b.WriteString(mutedStyle.Render("No markdown documents found."))
		case !m.snapshot.FolderOpen():
			b.WriteString(mutedStyle.Render("No folder open."))
		}
		return b.String()
	}

	start := m.scrollOffset
	end := m.scrollOffset + height
	if end > len(m.displayNodes) {
		end = len(m.displayNodes)
	}

	for i := start; i < end; i++ {
		node := m.displayNodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = highlightStyle.Render("▶ ")
		}

		indent := strings.Repeat("  ", node.depth)
		var line string
		switch {
		case node.doc != nil:
			line = fmt.Sprintf("%s%s", cursor, node.doc.Title)
		case node.isDir():
			fold := "▶ "
			if m.snapshot.Expanded[node.entry.Path] {
				fold = "▼ "
			}
			line = fmt.Sprintf("%s%s%s%s", cursor, indent, fold, dirStyle.Render(node.entry.Name))
		default:
			line = fmt.Sprintf("%s%s  %s", cursor, indent, node.entry.Name)
			if node.entry.Path == m.snapshot.Selected {
				line = selectedStyle.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.displayNodes) > height {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.displayNodes))))
	}

	return b.String()
}

func (m Model) renderStatus() string {
	if m.statusMessage == "" {
		return ""
	}
	switch m.snapshot.Notice.Level {
	case workspace.NoticeError:
		if m.snapshot.Notice.Message == m.statusMessage {
			return errorStyle.Render(m.statusMessage)
		}
	case workspace.NoticeWarning:
		if m.snapshot.Notice.Message == m.statusMessage {
			return warningStyle.Render(m.statusMessage)
		}
	case workspace.NoticeInfo:
		if m.snapshot.Notice.Message == m.statusMessage {
			return infoStyle.Render(m.statusMessage)
		}
	}
	return mutedStyle.Render(m.statusMessage)
}
