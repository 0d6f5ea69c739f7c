package typesystem

import "fmt"

// UnresolvedClassError indicates a class name could not be resolved
// against a ClassRegistry. The matcher itself never returns this — per
// spec.md §7 it treats an unresolved class optimistically — but hosts
// (package scenario's Build) surface it when a class lookup they
// insisted on fails outright.
type UnresolvedClassError struct {
	Name string
}

func (e *UnresolvedClassError) Error() string {
	return fmt.Sprintf("typesystem: class not registered: %s", e.Name)
}

func NewUnresolvedClassError(name string) *UnresolvedClassError {
	return &UnresolvedClassError{Name: name}
}
