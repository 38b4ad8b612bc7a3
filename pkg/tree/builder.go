package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Builder scans a directory and produces the pruned document tree.
type Builder struct {
	fs        afero.Fs
	extension string
	log       *logrus.Entry
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used to report unreadable directories.
func WithLogger(log *logrus.Entry) Option {
	return func(b *Builder) {
		b.log = log
	}
}

// NewBuilder creates a Builder reading from fs. A nil fs means the OS
// filesystem.
func NewBuilder(fs afero.Fs, opts ...Option) *Builder {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	b := &Builder{
		fs:        fs,
		extension: DocumentExtension,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		b.log = logrus.NewEntry(logger)
	}
	return b
}

// Build returns the document tree rooted at root. It never fails: a
// directory that cannot be read contributes no entries.
func (b *Builder) Build(root string) []*Entry {
	entries := b.scan(root)
	if entries == nil {
		return []*Entry{}
	}
	return entries
}

func (b *Builder) scan(dir string) []*Entry {
	infos, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		b.log.WithError(err).WithField("dir", dir).Debug("skipping unreadable directory")
		return nil
	}

	var dirs, files []os.FileInfo
	for _, info := range infos {
		if info.Mode()&os.ModeSymlink != 0 {
			// Symlinked directories are not followed to rule out cycles.
			resolved, err := b.fs.Stat(filepath.Join(dir, info.Name()))
			if err != nil || resolved.IsDir() {
				continue
			}
			info = resolved
		}
		if info.IsDir() {
			dirs = append(dirs, info)
		} else {
			files = append(files, info)
		}
	}
	sortByName(dirs)
	sortByName(files)

	var entries []*Entry
	for _, info := range dirs {
		path := filepath.Join(dir, info.Name())
		children := b.scan(path)
		if len(children) == 0 {
			continue
		}
		entries = append(entries, &Entry{
			Name:     info.Name(),
			Path:     path,
			IsDir:    true,
			Children: children,
		})
	}
	for _, info := range files {
		if !b.IsDocument(info.Name()) {
			continue
		}
		entries = append(entries, &Entry{
			Name:     info.Name(),
			Path:     filepath.Join(dir, info.Name()),
			Children: []*Entry{},
		})
	}
	return entries
}

// IsDocument reports whether name carries the document extension.
func (b *Builder) IsDocument(name string) bool {
	return Extension(name) == b.extension
}

// Extension returns the text after the last dot of a file name, without the
// dot. Names whose only dot is the leading one (".md") have no extension.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

func sortByName(infos []os.FileInfo) {
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})
}

// Build scans root on the OS filesystem with default options.
func Build(root string) []*Entry {
	return NewBuilder(nil).Build(root)
}
