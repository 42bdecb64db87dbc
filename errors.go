package pencil

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrCyclicAttach  = errors.New("pencil: attach would create a cycle")
	ErrUnknownType   = errors.New("pencil: unknown component type")
	ErrInvalidOption = errors.New("pencil: invalid option")
	ErrResourceLoad  = errors.New("pencil: resource load failed")
)

// CyclicAttachError is returned by Attach when the child is the parent itself
// or one of its ancestors. Neither tree is modified.
type CyclicAttachError struct {
	Parent string // type of the component receiving the child
	Child  string // type of the rejected child
}

func (e *CyclicAttachError) Error() string {
	return fmt.Sprintf("pencil: cannot attach %s to %s: would create a cycle", e.Child, e.Parent)
}

func (e *CyclicAttachError) Is(target error) bool { return target == ErrCyclicAttach }

// UnknownTypeError is returned by From when a definition's type tag has no
// registered constructor.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("pencil: unknown component type %q", e.Type)
}

func (e *UnknownTypeError) Is(target error) bool { return target == ErrUnknownType }

// InvalidOptionError reports an option or attribute value outside its domain.
type InvalidOptionError struct {
	Key    string
	Value  any
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("pencil: invalid option %s=%v: %s", e.Key, e.Value, e.Reason)
}

func (e *InvalidOptionError) Is(target error) bool { return target == ErrInvalidOption }

// ResourceLoadError is delivered with EventLoadFailed when an image or font
// could not be loaded.
type ResourceLoadError struct {
	URL string
	Err error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("pencil: load %s: %v", e.URL, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }

func (e *ResourceLoadError) Is(target error) bool { return target == ErrResourceLoad }
