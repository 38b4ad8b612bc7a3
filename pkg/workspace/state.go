package workspace

import (
	"fmt"

	"github.com/mattsolo1/codedocs/pkg/tree"
)

// ConfirmKind identifies the destructive action awaiting confirmation.
type ConfirmKind int

const (
	ConfirmNone ConfirmKind = iota
	ConfirmDelete
	ConfirmRename
	ConfirmClear
)

func (k ConfirmKind) String() string {
	switch k {
	case ConfirmDelete:
		return "delete"
	case ConfirmRename:
		return "rename"
	case ConfirmClear:
		return "clear"
	default:
		return "none"
	}
}

// MarshalText lets snapshots carry the kind as a readable string.
func (k ConfirmKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the names produced by String.
func (k *ConfirmKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "":
		*k = ConfirmNone
	case "delete":
		*k = ConfirmDelete
	case "rename":
		*k = ConfirmRename
	case "clear":
		*k = ConfirmClear
	default:
		return fmt.Errorf("%w: confirmation kind %q", ErrMalformedResponse, text)
	}
	return nil
}

// Confirmation is the single pending confirmation request. Path is empty for
// ConfirmClear and ConfirmNone.
type Confirmation struct {
	Kind ConfirmKind `json:"kind"`
	Path string      `json:"path,omitempty"`
}

// Active reports whether a confirmation is pending.
func (c Confirmation) Active() bool {
	return c.Kind != ConfirmNone
}

// NoticeLevel grades a Notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a display-only message about the last operation.
type Notice struct {
	Level   NoticeLevel `json:"level,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Snapshot is a consistent copy of the session state. Tree entries are
// shared with the session; the tree is replaced wholesale on rebuild and
// never modified in place, so sharing is safe for readers.
type Snapshot struct {
	Root     string          `json:"root"`
	Tree     []*tree.Entry   `json:"tree"`
	Expanded map[string]bool `json:"expanded"`
	Selected string          `json:"selected"`
	Buffer   string          `json:"buffer"`
	Rendered string          `json:"rendered"`
	Pending  Confirmation    `json:"pending"`
	Notice   Notice          `json:"notice"`
}

// FolderOpen reports whether a folder has been opened.
func (s Snapshot) FolderOpen() bool {
	return s.Root != ""
}

// Empty reports whether the editor buffer holds no text.
func (s Snapshot) Empty() bool {
	return s.Buffer == ""
}

// NoDocuments reports the "folder open but nothing to show" condition.
func (s Snapshot) NoDocuments() bool {
	return s.Root != "" && len(s.Tree) == 0
}
