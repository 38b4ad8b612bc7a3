package desktop

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/mattsolo1/codedocs/pkg/service"
	"github.com/mattsolo1/codedocs/pkg/workspace"
)

type event struct {
	name string
	data interface{}
}

type harness struct {
	app    *App
	fs     afero.Fs
	events chan event
}

func newHarness(t *testing.T, dialog string, opts Options, files map[string]string) *harness {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	svc, err := service.New(&service.Config{Fs: fs})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	h := &harness{fs: fs, events: make(chan event, 64)}
	opts.Dialog = func(ctx context.Context, _ runtime.OpenDialogOptions) (string, error) {
		return dialog, nil
	}
	opts.Emit = func(ctx context.Context, name string, data ...interface{}) {
		var payload interface{}
		if len(data) > 0 {
			payload = data[0]
		}
		h.events <- event{name: name, data: payload}
	}
	h.app = New(svc, nil, opts)

	ctx, cancel := context.WithCancel(context.Background())
	h.app.startup(ctx)
	t.Cleanup(func() {
		cancel()
		h.app.shutdown(context.Background())
	})
	return h
}

// next returns the result and state events of the next finished operation.
func (h *harness) next(t *testing.T) (ResultEvent, workspace.Snapshot) {
	t.Helper()
	var result ResultEvent
	for i := 0; i < 2; i++ {
		select {
		case ev := <-h.events:
			switch ev.name {
			case EventResult:
				result = ev.data.(ResultEvent)
			case EventState:
				return result, ev.data.(workspace.Snapshot)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for events")
		}
	}
	t.Fatal("state event missing")
	return ResultEvent{}, workspace.Snapshot{}
}

func TestOpenFolderThroughDialog(t *testing.T) {
	h := newHarness(t, "/docs", Options{}, map[string]string{"/docs/a.md": "# A"})

	id := h.app.OpenFolder()
	result, state := h.next(t)

	assert.Equal(t, id, result.ID)
	assert.Equal(t, workspace.OpOpenFolder, result.Op)
	assert.Empty(t, result.Error)
	assert.Equal(t, "/docs", state.Root)
	require.Len(t, state.Tree, 1)
	assert.Equal(t, "a.md", state.Tree[0].Name)
}

func TestCancelledDialogKeepsState(t *testing.T) {
	h := newHarness(t, "", Options{}, map[string]string{"/docs/a.md": "# A"})

	h.app.OpenFolder()
	result, state := h.next(t)

	assert.Empty(t, result.Error)
	assert.False(t, state.FolderOpen())
	assert.Empty(t, state.Notice.Message)
}

func TestStartupOpensRoot(t *testing.T) {
	h := newHarness(t, "", Options{Root: "/docs"}, map[string]string{"/docs/guide/a.md": "# A"})

	result, state := h.next(t)
	assert.Equal(t, workspace.OpOpenPath, result.Op)
	assert.Equal(t, "/docs", state.Root)
	assert.Equal(t, "guide", state.Tree[0].Name)
}

func TestFailedOperationReportsError(t *testing.T) {
	h := newHarness(t, "", Options{Root: "/docs"}, map[string]string{"/docs/a.md": "# A"})
	h.next(t)

	h.app.Select("/docs/missing.md")
	result, state := h.next(t)

	assert.NotEmpty(t, result.Error)
	assert.Equal(t, workspace.NoticeError, state.Notice.Level)
	assert.Empty(t, state.Selected)
}

func TestEditAndSave(t *testing.T) {
	h := newHarness(t, "", Options{Root: "/docs"}, map[string]string{"/docs/a.md": "# A"})
	h.next(t)
	h.app.Select("/docs/a.md")
	_, state := h.next(t)
	require.Equal(t, "/docs/a.md", state.Selected)

	state = h.app.Edit("# Changed")
	assert.Contains(t, state.Rendered, "Changed")

	h.app.Save()
	result, _ := h.next(t)
	assert.Empty(t, result.Error)

	content, err := afero.ReadFile(h.fs, "/docs/a.md")
	require.NoError(t, err)
	assert.Equal(t, "# Changed", string(content))
}

func TestDeleteFlow(t *testing.T) {
	h := newHarness(t, "", Options{Root: "/docs"}, map[string]string{
		"/docs/a.md": "# A",
		"/docs/b.md": "# B",
	})
	h.next(t)

	state := h.app.RequestDelete("/docs/a.md")
	assert.Equal(t, workspace.ConfirmDelete, state.Pending.Kind)

	h.app.Confirm("")
	result, state := h.next(t)
	assert.Equal(t, workspace.OpConfirm, result.Op)
	assert.False(t, state.Pending.Active())
	require.Len(t, state.Tree, 1)
	assert.Equal(t, "b.md", state.Tree[0].Name)
}

func TestCancelPending(t *testing.T) {
	h := newHarness(t, "", Options{Root: "/docs"}, map[string]string{"/docs/a.md": "# A"})
	h.next(t)

	h.app.RequestRename("/docs/a.md")
	state := h.app.Cancel()
	assert.False(t, state.Pending.Active())
}

func TestDo(t *testing.T) {
	h := newHarness(t, "", Options{Root: "/docs"}, map[string]string{"/docs/a.md": "# A"})
	h.next(t)

	id, err := h.app.Do(`{"op":"select","path":"/docs/a.md"}`)
	require.NoError(t, err)
	result, state := h.next(t)
	assert.Equal(t, id, result.ID)
	assert.Equal(t, "# A", state.Buffer)
}

func TestDoRejectsMalformedRequests(t *testing.T) {
	h := newHarness(t, "", Options{}, nil)

	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `select`},
		{"missing op", `{}`},
		{"unknown op", `{"op":"format_disk"}`},
		{"unknown field", `{"op":"save","force":true}`},
		{"select without path", `{"op":"select"}`},
		{"open path without path", `{"op":"open_path"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.app.Do(tt.payload)
			assert.ErrorIs(t, err, workspace.ErrMalformedResponse)
		})
	}
}

func TestTemplatesAndOutline(t *testing.T) {
	h := newHarness(t, "", Options{}, nil)

	assert.NotEmpty(t, h.app.Templates())

	h.app.Edit("# Title\n## Part\n")
	assert.Len(t, h.app.Outline(), 2)

	state := h.app.InsertOutline()
	assert.Contains(t, state.Buffer, "- [Part](#part)")

	_, err := h.app.InsertTemplate("nope")
	assert.ErrorIs(t, err, workspace.ErrUnknownTemplate)
}
