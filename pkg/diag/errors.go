// Package diag defines the error taxonomy and warning sink shared across
// oasgen's generation pipeline. Fatal conditions are returned as typed
// errors so callers can distinguish them with errors.As; non-fatal
// conditions (duplicate names, unrecognized types) are reported through
// Warn and generation proceeds.
package diag

import (
	"fmt"

	"github.com/fatih/color"
)

// IOError wraps a failed file read, write, or directory creation.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error at %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DeserializeError marks a document that failed to parse as JSON or YAML.
type DeserializeError struct {
	Path string
	Err  error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *DeserializeError) Unwrap() error { return e.Err }

// PathError marks a rejected path-join operation.
type PathError struct {
	Base, Ref string
	Reason    string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("cannot join %q with %q: %s", e.Base, e.Ref, e.Reason)
}

// ReferenceSyntaxError marks a $ref string missing a required name fragment.
type ReferenceSyntaxError struct {
	Raw string
}

func (e *ReferenceSyntaxError) Error() string {
	return fmt.Sprintf("reference %q has no name fragment", e.Raw)
}

// RefKey names a (file, name) lookup key, reused by the NotFound errors below.
type RefKey struct {
	File string
	Name string
}

func (k RefKey) String() string {
	if k.File == "" {
		return "#/" + k.Name
	}
	return k.File + "#/" + k.Name
}

// SchemaNotFoundError marks a schema $ref that does not resolve.
type SchemaNotFoundError struct {
	Key RefKey
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema not found: %s", e.Key)
}

// ParameterNotFoundError marks a parameter $ref that does not resolve.
type ParameterNotFoundError struct {
	Key RefKey
}

func (e *ParameterNotFoundError) Error() string {
	return fmt.Sprintf("parameter not found: %s", e.Key)
}

// InvalidSchemaError marks a schema missing structure required by its kind,
// e.g. an array schema with no items.
type InvalidSchemaError struct {
	SchemaName string
	Reason     string
}

func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("invalid schema %q: %s", e.SchemaName, e.Reason)
}

// InvalidIdentifierError marks a string that sanitizes to the empty string.
type InvalidIdentifierError struct {
	Raw string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("cannot derive an identifier from %q", e.Raw)
}

// NotImplementedError marks a feature the core deliberately does not handle.
type NotImplementedError struct {
	Feature string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Feature)
}

// Sink receives non-fatal diagnostics. The zero value writes to stderr.
type Sink struct {
	// Quiet suppresses all Warn output; used by tests that assert against
	// golden output and don't want warnings interleaved with it.
	Quiet bool
}

// Default is the package-level sink used by components that don't carry
// their own; generation entry points may swap in a Quiet one for tests.
var Default = &Sink{}

// Warn prints a non-fatal diagnostic (DuplicateName, UnknownType, ...).
func (s *Sink) Warn(format string, args ...any) {
	if s == nil || s.Quiet {
		return
	}
	color.New(color.FgYellow).Fprint(colorTarget, "WARN ")
	fmt.Fprintf(colorTarget, format+"\n", args...)
}

// Error prints a fatal diagnostic before it is returned up the call stack,
// matching the teacher's habit of logging the failing path alongside
// surfacing the error.
func (s *Sink) Error(format string, args ...any) {
	if s == nil {
		return
	}
	color.New(color.FgRed).Fprint(colorTarget, "ERROR ")
	fmt.Fprintf(colorTarget, format+"\n", args...)
}
