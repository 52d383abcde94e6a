package assignee

import "errors"

// ErrUnknownAssignee indicates the directory has no person with that id.
var ErrUnknownAssignee = errors.New("unknown assignee")
