package schema

import "fmt"

// CycleError reports a schema graph that is not a finite tree
type CycleError struct {
	Path string
}

func (e *CycleError) Error() string {
	if e.Path == "" {
		return "schema cycle detected at root"
	}
	return fmt.Sprintf("schema cycle detected at %q", e.Path)
}

// InvalidNodeError reports a structurally malformed schema node
type InvalidNodeError struct {
	Path   string
	Reason string
}

func (e *InvalidNodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid schema node: %s", e.Reason)
	}
	return fmt.Sprintf("invalid schema node at %q: %s", e.Path, e.Reason)
}

// DecodeError reports malformed JSON Schema input
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot decode schema: %s", e.Reason)
	}
	return fmt.Sprintf("cannot decode schema at %q: %s", e.Path, e.Reason)
}
