package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mattsolo1/codedocs/pkg/tree"
)

// fakeStore keeps a flat set of documents in memory. Directories are not
// modelled; each folder lists the documents directly inside it.
type fakeStore struct {
	mu    sync.Mutex
	files map[string]string
	gate  func(folder string)
	delay map[string]chan struct{}
	// onDelete runs before a delete takes effect.
	onDelete func(path string)

	lists   int
	reads   int
	saves   int
	deletes int
}

func newFakeStore(paths ...string) *fakeStore {
	f := &fakeStore{files: map[string]string{}}
	for _, p := range paths {
		f.files[p] = "# " + filepath.Base(p)
	}
	return f
}

func (f *fakeStore) setGate(gate func(folder string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = gate
}

func (f *fakeStore) setOnDelete(fn func(path string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onDelete = fn
}

func (f *fakeStore) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes
}

// hold makes the next read of path block until the returned channel is
// closed.
func (f *fakeStore) hold(path string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delay == nil {
		f.delay = map[string]chan struct{}{}
	}
	ch := make(chan struct{})
	f.delay[path] = ch
	return ch
}

func (f *fakeStore) ListDocuments(ctx context.Context, folder string) ([]*tree.Entry, error) {
	f.mu.Lock()
	gate := f.gate
	f.lists++
	f.mu.Unlock()
	if gate != nil {
		gate(folder)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	entries := []*tree.Entry{}
	for path := range f.files {
		if filepath.Dir(path) == folder {
			entries = append(entries, &tree.Entry{Name: filepath.Base(path), Path: path})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	if len(entries) == 0 {
		return entries, tree.ErrNoDocuments
	}
	return entries, nil
}

func (f *fakeStore) ReadDocument(ctx context.Context, path string) (string, error) {
	f.mu.Lock()
	ch := f.delay[path]
	delete(f.delay, path)
	f.reads++
	f.mu.Unlock()
	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.files[path]
	if !ok {
		return "", &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return content, nil
}

func (f *fakeStore) SaveDocument(ctx context.Context, path, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.files[path] = content
	return nil
}

func (f *fakeStore) CreateDocument(ctx context.Context, folder, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := filepath.Join(folder, name)
	if _, ok := f.files[path]; ok {
		return "", errors.New("exists")
	}
	f.files[path] = ""
	return path, nil
}

func (f *fakeStore) RenameDocument(ctx context.Context, oldPath, newName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.files[oldPath]
	if !ok {
		return "", os.ErrNotExist
	}
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	delete(f.files, oldPath)
	f.files[newPath] = content
	return newPath, nil
}

func (f *fakeStore) DeleteDocument(ctx context.Context, path string) error {
	f.mu.Lock()
	hook := f.onDelete
	f.deletes++
	f.mu.Unlock()
	if hook != nil {
		hook(path)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[path]; !ok {
		return os.ErrNotExist
	}
	delete(f.files, path)
	return nil
}
