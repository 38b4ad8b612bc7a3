package browser

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/codedocs/pkg/models"
	"github.com/mattsolo1/codedocs/pkg/workspace"
)

// resultMsg carries a finished session operation.
type resultMsg workspace.Result

// searchResultsMsg is sent when a search completes.
type searchResultsMsg struct {
	query string
	docs  []*models.Document
	err   error
}

// waitForResult delivers the next dispatcher completion. It is re-issued
// after every resultMsg.
func waitForResult(d *workspace.Dispatcher) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-d.Results()
		if !ok {
			return nil
		}
		return resultMsg(r)
	}
}

func searchCmd(s *workspace.Session, query string) tea.Cmd {
	return func() tea.Msg {
		docs, err := s.Search(context.Background(), query)
		return searchResultsMsg{query: query, docs: docs, err: err}
	}
}
