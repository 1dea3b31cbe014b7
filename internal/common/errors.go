package common

import (
	"fmt"
	"strings"
)

// InputError reports a manifest that could not be read or decoded.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("reading manifest %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// SchemaError reports a manifest field or type tag that cannot be mapped.
type SchemaError struct {
	Field  string // e.g. "methods[2].paramTypes[0].type"
	Tag    string // offending tag, if any
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s: %s %q", e.Field, e.Reason, e.Tag)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError lists destination files that already exist.
type ConflictError struct {
	Paths []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("output already exists (use -override to replace): %s", strings.Join(e.Paths, ", "))
}
