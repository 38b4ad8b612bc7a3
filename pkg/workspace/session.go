package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/codedocs/pkg/models"
	"github.com/mattsolo1/codedocs/pkg/outline"
	"github.com/mattsolo1/codedocs/pkg/render"
	"github.com/mattsolo1/codedocs/pkg/tree"
)

// DefaultNewDocumentName is used by Create when no name is given.
const DefaultNewDocumentName = "Untitled.md"

// DefaultSearchLimit caps Search results.
const DefaultSearchLimit = 50

// Config holds session configuration
type Config struct {
	Picker          FolderPicker
	Pipeline        *render.Pipeline
	Templates       []models.Template
	NewDocumentName string
	Logger          *logrus.Entry
}

// Session is the single editing session: the open folder, its document
// tree, the selected document, the editor buffer and its rendering, and the
// pending confirmation. Methods are safe for concurrent use. Store calls
// run without the lock held and their results are applied afterwards, so
// racing operations resolve last write wins per field.
type Session struct {
	store     Store
	picker    FolderPicker
	pipeline  *render.Pipeline
	templates []models.Template
	newName   string
	log       *logrus.Entry

	mu       sync.RWMutex
	root     string
	tree     []*tree.Entry
	expanded map[string]bool
	selected string
	buffer   string
	rendered string
	pending  Confirmation
	notice   Notice
}

// New creates a session in the no-folder state.
func New(store Store, config *Config) *Session {
	if config == nil {
		config = &Config{}
	}
	s := &Session{
		store:     store,
		picker:    config.Picker,
		pipeline:  config.Pipeline,
		templates: config.Templates,
		newName:   config.NewDocumentName,
		log:       config.Logger,
		tree:      []*tree.Entry{},
		expanded:  map[string]bool{},
	}
	if s.picker == nil {
		s.picker = StaticPicker("")
	}
	if s.pipeline == nil {
		s.pipeline = render.New(render.Options{})
	}
	if s.templates == nil {
		s.templates = models.MergeTemplates(nil)
	}
	if s.newName == "" {
		s.newName = DefaultNewDocumentName
	}
	if s.log == nil {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		s.log = logrus.NewEntry(logger)
	}
	s.log = s.log.WithField("component", "workspace")
	s.rendered = s.pipeline.Render("")
	return s
}

// OpenFolder asks the picker for a folder and opens it. A cancelled pick
// leaves the session unchanged and is not an error.
func (s *Session) OpenFolder(ctx context.Context) error {
	path, err := s.picker.PickFolder(ctx)
	if errors.Is(err, ErrCancelled) {
		s.log.Debug("folder selection cancelled")
		return nil
	}
	if err != nil {
		return s.fail("open folder", err)
	}
	return s.OpenPath(ctx, path)
}

// OpenPath opens folder directly, replacing root, tree, selection and
// buffer. A folder without documents is opened with an empty tree and a
// warning notice.
func (s *Session) OpenPath(ctx context.Context, folder string) error {
	if abs, err := filepath.Abs(folder); err == nil {
		folder = abs
	}
	s.log.WithField("path", folder).Debug("opening folder")

	entries, err := s.store.ListDocuments(ctx, folder)
	empty := isNoDocuments(err)
	if err != nil && !empty {
		return s.fail("open folder", err)
	}
	if entries == nil {
		entries = []*tree.Entry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = folder
	s.tree = entries
	s.expanded = map[string]bool{}
	s.selected = ""
	s.setBufferLocked("")
	s.pending = Confirmation{}
	if empty {
		s.notice = Notice{Level: NoticeWarning, Message: err.Error()}
	} else {
		s.notice = Notice{}
	}
	return nil
}

// Refresh rebuilds the tree of the open folder.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.RLock()
	root := s.root
	s.mu.RUnlock()
	if root == "" {
		return ErrNoFolder
	}
	return s.rebuild(ctx, root)
}

// Select acts on the tree entry at path. Directories toggle their
// expansion; documents are read into the buffer and become the selection.
// A failed read leaves selection and buffer untouched.
func (s *Session) Select(ctx context.Context, path string) error {
	s.mu.Lock()
	entry := tree.Find(s.tree, path)
	if entry != nil && entry.IsDir {
		s.expanded[path] = !s.expanded[path]
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	content, err := s.store.ReadDocument(ctx, path)
	if err != nil {
		return s.fail("read document", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = path
	s.setBufferLocked(content)
	s.notice = Notice{}
	return nil
}

// Edit replaces the buffer and re-renders it.
func (s *Session) Edit(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setBufferLocked(text)
}

// Save writes the buffer to the selected document. With nothing selected it
// does nothing. The tree is not rebuilt.
func (s *Session) Save(ctx context.Context) error {
	s.mu.RLock()
	path, content := s.selected, s.buffer
	s.mu.RUnlock()
	if path == "" {
		return nil
	}

	if err := s.store.SaveDocument(ctx, path, content); err != nil {
		return s.fail("save document", err)
	}
	s.setNotice(NoticeInfo, "Saved "+filepath.Base(path))
	return nil
}

// Create adds a new document to the root folder and rebuilds the tree. An
// empty name falls back to the configured default.
func (s *Session) Create(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	root := s.root
	s.mu.RUnlock()
	if root == "" {
		return "", s.fail("create document", ErrNoFolder)
	}
	if strings.TrimSpace(name) == "" {
		name = s.newName
	}

	path, err := s.store.CreateDocument(ctx, root, name)
	if err != nil {
		return "", s.fail("create document", err)
	}
	if err := s.rebuild(ctx, root); err != nil {
		return path, err
	}
	s.setNotice(NoticeInfo, "Created "+filepath.Base(path))
	return path, nil
}

// RequestDelete asks for confirmation before deleting path.
func (s *Session) RequestDelete(path string) {
	s.request(Confirmation{Kind: ConfirmDelete, Path: path})
}

// RequestRename asks for a new name for path.
func (s *Session) RequestRename(path string) {
	s.request(Confirmation{Kind: ConfirmRename, Path: path})
}

// RequestClear asks for confirmation before emptying the buffer.
func (s *Session) RequestClear() {
	s.request(Confirmation{Kind: ConfirmClear})
}

func (s *Session) request(c Confirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = c
	s.log.WithFields(logrus.Fields{"kind": c.Kind, "path": c.Path}).Debug("confirmation requested")
}

// Cancel drops the pending confirmation without effect.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = Confirmation{}
}

// Confirm performs the pending action. input is the new name for a rename
// and ignored otherwise. The request is taken out of the pending slot while
// the store works on it, so a second Confirm finds nothing to do. When the
// action fails the confirmation is pending again and the tree is untouched.
func (s *Session) Confirm(ctx context.Context, input string) error {
	name := strings.TrimSpace(input)

	s.mu.Lock()
	c, root := s.pending, s.root
	switch c.Kind {
	case ConfirmClear:
		s.setBufferLocked("")
		s.pending = Confirmation{}
		s.mu.Unlock()
		return nil
	case ConfirmDelete:
	case ConfirmRename:
		if name == "" {
			s.mu.Unlock()
			return s.fail("rename document", ErrNameRequired)
		}
	default:
		s.mu.Unlock()
		return ErrNothingPending
	}
	s.pending = Confirmation{}
	s.mu.Unlock()

	var message string
	switch c.Kind {
	case ConfirmDelete:
		if err := s.store.DeleteDocument(ctx, c.Path); err != nil {
			s.restore(c)
			return s.fail("delete document", err)
		}
		message = "Deleted " + filepath.Base(c.Path)
	case ConfirmRename:
		newPath, err := s.store.RenameDocument(ctx, c.Path, name)
		if err != nil {
			s.restore(c)
			return s.fail("rename document", err)
		}
		message = "Renamed to " + filepath.Base(newPath)
	}
	s.setNotice(NoticeInfo, message)

	if root == "" {
		return nil
	}
	return s.rebuild(ctx, root)
}

// restore puts c back unless another request took the slot meanwhile.
func (s *Session) restore(c Confirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pending.Active() {
		s.pending = c
	}
}

// Outline returns the outline of the current buffer.
func (s *Session) Outline() []outline.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return outline.Extract(s.buffer)
}

// InsertOutline appends the outline block of the buffer to the buffer.
func (s *Session) InsertOutline() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setBufferLocked(appendBlock(s.buffer, outline.Generate(s.buffer)))
}

// InsertTemplate appends the named template to the buffer.
func (s *Session) InsertTemplate(name string) error {
	t, ok := models.FindTemplate(s.templates, name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setBufferLocked(appendBlock(s.buffer, t.Body))
	return nil
}

// Templates lists the snippets available to InsertTemplate.
func (s *Session) Templates() []models.Template {
	out := make([]models.Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// Search queries the documents of the open folder.
func (s *Session) Search(ctx context.Context, query string) ([]*models.Document, error) {
	searcher, ok := s.store.(Searcher)
	if !ok {
		return nil, ErrSearchUnavailable
	}
	s.mu.RLock()
	root := s.root
	s.mu.RUnlock()
	if root == "" {
		return nil, ErrNoFolder
	}
	docs, err := searcher.SearchDocuments(ctx, query, DefaultSearchLimit)
	if err != nil {
		return nil, s.fail("search", err)
	}
	return docs, nil
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expanded := make(map[string]bool, len(s.expanded))
	for k, v := range s.expanded {
		if v {
			expanded[k] = true
		}
	}
	return Snapshot{
		Root:     s.root,
		Tree:     s.tree,
		Expanded: expanded,
		Selected: s.selected,
		Buffer:   s.buffer,
		Rendered: s.rendered,
		Pending:  s.pending,
		Notice:   s.notice,
	}
}

// ClearNotice drops the current notice.
func (s *Session) ClearNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = Notice{}
}

// rebuild relists root and installs the new tree unless another folder was
// opened in the meantime.
func (s *Session) rebuild(ctx context.Context, root string) error {
	entries, err := s.store.ListDocuments(ctx, root)
	if err != nil && !isNoDocuments(err) {
		return s.fail("refresh tree", err)
	}
	if entries == nil {
		entries = []*tree.Entry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root != root {
		s.log.WithField("path", root).Debug("dropping tree of a folder that is no longer open")
		return nil
	}
	s.tree = entries
	return nil
}

func (s *Session) setBufferLocked(text string) {
	s.buffer = text
	s.rendered = s.pipeline.Render(text)
}

func (s *Session) setNotice(level NoticeLevel, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = Notice{Level: level, Message: message}
}

// fail records err as an error notice and returns it wrapped with op.
func (s *Session) fail(op string, err error) error {
	s.log.WithError(err).Warn(op + " failed")
	s.setNotice(NoticeError, err.Error())
	return fmt.Errorf("%s: %w", op, err)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, tree.ErrNoDocuments)
}

// appendBlock appends block to buffer on a line of its own.
func appendBlock(buffer, block string) string {
	if buffer != "" && !strings.HasSuffix(buffer, "\n") {
		buffer += "\n"
	}
	return buffer + block
}
