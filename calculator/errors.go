package calculator

import (
	"fmt"
	"strings"
)

// UnresolvedError lists every assembly a part references but that was not built.
type UnresolvedError struct {
	Part  string
	Names []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("part %s: structures not found: %s", e.Part, strings.Join(e.Names, ", "))
}

// StageError ties a pipeline failure to the record it happened in: Owner is
// the assembly or part, Item the layer or referenced assembly, if any.
type StageError struct {
	Owner string
	Item  string
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("%s: %s: %v", e.Owner, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s/%s: %s: %v", e.Owner, e.Item, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
