package desktop

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/mattsolo1/codedocs/pkg/workspace"
)

// DialogFunc opens a native directory chooser. An empty path means the user
// closed the dialog.
type DialogFunc func(ctx context.Context, options runtime.OpenDialogOptions) (string, error)

// dialogPicker asks the user for a folder through the native dialog. The
// dialog needs the context wails handed to OnStartup, not the operation's.
type dialogPicker struct {
	app  *App
	open DialogFunc
}

func (p *dialogPicker) PickFolder(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir, err := p.open(p.app.uiContext(), runtime.OpenDialogOptions{
		Title:                "Open documentation folder",
		CanCreateDirectories: true,
	})
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", workspace.ErrCancelled
	}
	return dir, nil
}
