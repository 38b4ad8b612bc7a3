package desktop

import (
	"embed"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

// Run opens the desktop window and blocks until it is closed.
func Run(app *App) error {
	return wails.Run(&options.App{
		Title:     "codedocs",
		Width:     1280,
		Height:    820,
		MinWidth:  720,
		MinHeight: 480,

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		OnStartup:  app.startup,
		OnShutdown: app.shutdown,
		Bind:       []any{app},
	})
}
