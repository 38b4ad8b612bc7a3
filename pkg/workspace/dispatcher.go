package workspace

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Op names an asynchronous session operation.
type Op string

const (
	OpOpenFolder Op = "open_folder"
	OpOpenPath   Op = "open_path"
	OpRefresh    Op = "refresh"
	OpSelect     Op = "select"
	OpSave       Op = "save"
	OpCreate     Op = "create"
	OpConfirm    Op = "confirm"
)

// Result reports the completion of one dispatched operation.
type Result struct {
	ID  string
	Op  Op
	Err error
}

// Dispatcher runs session operations in the background and reports each
// completion on Results. Several operations may be in flight at once; the
// session resolves their writes last write wins.
type Dispatcher struct {
	session *Session
	ctx     context.Context
	cancel  context.CancelFunc
	results chan Result
	wg      sync.WaitGroup
	once    sync.Once

	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher bound to ctx. Cancelling ctx cancels
// in-flight operations.
func NewDispatcher(ctx context.Context, s *Session) *Dispatcher {
	ctx, cancel := context.WithCancel(ctx)
	return &Dispatcher{
		session: s,
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan Result, 16),
	}
}

// Session returns the session the dispatcher drives.
func (d *Dispatcher) Session() *Session {
	return d.session
}

// Results delivers completions. It is closed by Close.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Go runs fn in the background and returns its request id immediately.
// After Close the operation is dropped and no result is reported.
func (d *Dispatcher) Go(op Op, fn func(ctx context.Context) error) string {
	id := uuid.NewString()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return id
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		err := fn(d.ctx)
		select {
		case d.results <- Result{ID: id, Op: op, Err: err}:
		case <-d.ctx.Done():
		}
	}()
	return id
}

func (d *Dispatcher) OpenFolder() string {
	return d.Go(OpOpenFolder, d.session.OpenFolder)
}

func (d *Dispatcher) OpenPath(path string) string {
	return d.Go(OpOpenPath, func(ctx context.Context) error {
		return d.session.OpenPath(ctx, path)
	})
}

func (d *Dispatcher) Refresh() string {
	return d.Go(OpRefresh, d.session.Refresh)
}

func (d *Dispatcher) Select(path string) string {
	return d.Go(OpSelect, func(ctx context.Context) error {
		return d.session.Select(ctx, path)
	})
}

func (d *Dispatcher) Save() string {
	return d.Go(OpSave, d.session.Save)
}

func (d *Dispatcher) Create(name string) string {
	return d.Go(OpCreate, func(ctx context.Context) error {
		_, err := d.session.Create(ctx, name)
		return err
	})
}

func (d *Dispatcher) Confirm(input string) string {
	return d.Go(OpConfirm, func(ctx context.Context) error {
		return d.session.Confirm(ctx, input)
	})
}

// Wait blocks until every dispatched operation has finished. Results must
// be drained concurrently or the channel buffer must have room.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close cancels in-flight operations, waits for them and closes Results.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()
		d.cancel()
		d.wg.Wait()
		close(d.results)
	})
}
