package desktop

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/mattsolo1/codedocs/pkg/models"
	"github.com/mattsolo1/codedocs/pkg/outline"
	"github.com/mattsolo1/codedocs/pkg/watch"
	"github.com/mattsolo1/codedocs/pkg/workspace"
)

// Events emitted to the frontend.
const (
	EventResult = "workspace:result"
	EventState  = "workspace:state"
)

// EmitFunc publishes an event to the frontend.
type EmitFunc func(ctx context.Context, event string, data ...interface{})

// Options configures the desktop bridge.
type Options struct {
	// Root is opened on startup. Empty waits for the user to pick a folder.
	Root   string
	Watch  bool
	Logger *logrus.Entry

	// Dialog and Emit default to the wails runtime.
	Dialog DialogFunc
	Emit   EmitFunc
}

// ResultEvent reports a finished asynchronous operation.
type ResultEvent struct {
	ID    string       `json:"id"`
	Op    workspace.Op `json:"op"`
	Error string       `json:"error,omitempty"`
}

// App is bound to the wails frontend. Long-running operations return an id
// immediately and finish with an EventResult followed by an EventState.
type App struct {
	ctx        context.Context
	session    *workspace.Session
	dispatcher *workspace.Dispatcher
	opts       Options
	log        *logrus.Entry
	emit       EmitFunc

	mu        sync.Mutex
	watcher   *watch.Watcher
	watchRoot string
	done      chan struct{}
}

// New creates the bridge over store. Without a picker in config the native
// folder dialog is used.
func New(store workspace.Store, config *workspace.Config, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.Dialog == nil {
		opts.Dialog = runtime.OpenDirectoryDialog
	}
	if opts.Emit == nil {
		opts.Emit = runtime.EventsEmit
	}

	a := &App{
		ctx:  context.Background(),
		opts: opts,
		log:  log.WithField("component", "desktop"),
		emit: opts.Emit,
		done: make(chan struct{}),
	}

	cfg := workspace.Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.Picker == nil {
		cfg.Picker = &dialogPicker{app: a, open: opts.Dialog}
	}
	a.session = workspace.New(store, &cfg)
	return a
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.dispatcher = workspace.NewDispatcher(ctx, a.session)
	go a.forward()

	if a.opts.Root != "" {
		a.dispatcher.OpenPath(a.opts.Root)
	}
}

func (a *App) shutdown(ctx context.Context) {
	a.mu.Lock()
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	a.mu.Unlock()

	if a.dispatcher != nil {
		a.dispatcher.Close()
		<-a.done
	}
}

func (a *App) uiContext() context.Context {
	return a.ctx
}

// forward relays dispatcher completions to the frontend until the
// dispatcher closes.
func (a *App) forward() {
	defer close(a.done)
	for r := range a.dispatcher.Results() {
		a.handleResult(r)
	}
}

func (a *App) handleResult(r workspace.Result) {
	ev := ResultEvent{ID: r.ID, Op: r.Op}
	if r.Err != nil {
		ev.Error = r.Err.Error()
		a.log.WithError(r.Err).WithField("op", r.Op).Debug("operation failed")
	} else if r.Op == workspace.OpOpenFolder || r.Op == workspace.OpOpenPath {
		a.startWatcher()
	}
	a.emit(a.ctx, EventResult, ev)
	a.emit(a.ctx, EventState, a.session.Snapshot())
}

func (a *App) startWatcher() {
	root := a.session.Snapshot().Root
	if !a.opts.Watch || root == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if root == a.watchRoot {
		return
	}
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	d := a.dispatcher
	w, err := watch.New(root, func() { d.Refresh() }, watch.WithLogger(a.log))
	if err != nil {
		a.log.WithError(err).Warn("cannot watch folder")
		return
	}
	a.watcher = w
	a.watchRoot = root
	go w.Run(a.ctx)
}

// --- asynchronous operations ---

func (a *App) OpenFolder() string          { return a.dispatcher.OpenFolder() }
func (a *App) OpenPath(path string) string { return a.dispatcher.OpenPath(path) }
func (a *App) Refresh() string             { return a.dispatcher.Refresh() }
func (a *App) Select(path string) string   { return a.dispatcher.Select(path) }
func (a *App) Save() string                { return a.dispatcher.Save() }
func (a *App) Create(name string) string   { return a.dispatcher.Create(name) }
func (a *App) Confirm(input string) string { return a.dispatcher.Confirm(input) }

// Do runs an operation described by a JSON Request and returns its id.
func (a *App) Do(payload string) (string, error) {
	req, err := decodeRequest(payload)
	if err != nil {
		return "", err
	}
	switch req.Op {
	case workspace.OpOpenFolder:
		return a.OpenFolder(), nil
	case workspace.OpOpenPath:
		return a.OpenPath(req.Path), nil
	case workspace.OpRefresh:
		return a.Refresh(), nil
	case workspace.OpSelect:
		return a.Select(req.Path), nil
	case workspace.OpSave:
		return a.Save(), nil
	case workspace.OpCreate:
		return a.Create(req.Name), nil
	default:
		return a.Confirm(req.Input), nil
	}
}

// --- synchronous state changes ---

// State returns the current session snapshot.
func (a *App) State() workspace.Snapshot {
	return a.session.Snapshot()
}

// Edit replaces the buffer and returns the re-rendered state.
func (a *App) Edit(text string) workspace.Snapshot {
	a.session.Edit(text)
	return a.session.Snapshot()
}

func (a *App) RequestDelete(path string) workspace.Snapshot {
	a.session.RequestDelete(path)
	return a.session.Snapshot()
}

func (a *App) RequestRename(path string) workspace.Snapshot {
	a.session.RequestRename(path)
	return a.session.Snapshot()
}

func (a *App) RequestClear() workspace.Snapshot {
	a.session.RequestClear()
	return a.session.Snapshot()
}

func (a *App) Cancel() workspace.Snapshot {
	a.session.Cancel()
	return a.session.Snapshot()
}

func (a *App) ClearNotice() workspace.Snapshot {
	a.session.ClearNotice()
	return a.session.Snapshot()
}

func (a *App) InsertOutline() workspace.Snapshot {
	a.session.InsertOutline()
	return a.session.Snapshot()
}

func (a *App) InsertTemplate(name string) (workspace.Snapshot, error) {
	if err := a.session.InsertTemplate(name); err != nil {
		return a.session.Snapshot(), err
	}
	return a.session.Snapshot(), nil
}

func (a *App) Templates() []models.Template {
	return a.session.Templates()
}

func (a *App) Outline() []outline.Entry {
	return a.session.Outline()
}

func (a *App) Search(query string) ([]*models.Document, error) {
	return a.session.Search(a.ctx, query)
}
