package desktop

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattsolo1/codedocs/pkg/workspace"
)

// Request is the generic operation envelope the frontend may send instead of
// calling a bound method directly.
type Request struct {
	Op    workspace.Op `json:"op"`
	Path  string       `json:"path,omitempty"`
	Name  string       `json:"name,omitempty"`
	Input string       `json:"input,omitempty"`
}

// decodeRequest parses and validates a request payload.
func decodeRequest(payload string) (Request, error) {
	var req Request
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", workspace.ErrMalformedResponse, err)
	}

	switch req.Op {
	case workspace.OpOpenFolder, workspace.OpRefresh, workspace.OpSave,
		workspace.OpCreate, workspace.OpConfirm:
	case workspace.OpOpenPath, workspace.OpSelect:
		if req.Path == "" {
			return Request{}, fmt.Errorf("%w: %s needs a path", workspace.ErrMalformedResponse, req.Op)
		}
	case "":
		return Request{}, fmt.Errorf("%w: missing op", workspace.ErrMalformedResponse)
	default:
		return Request{}, fmt.Errorf("%w: unknown op %q", workspace.ErrMalformedResponse, req.Op)
	}
	return req, nil
}
