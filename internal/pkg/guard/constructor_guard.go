// Package guard holds the ConstructorGuard used by commands, queries and
// domain entities to reject zero values that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the object was not
// constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as created through its designated constructor.
// Embed it as a field and set it with NewConstructorGuard inside the constructor;
// a zero-value struct then fails Validate.
//
// Example:
//
//	type CollectOrderCommand struct {
//	    owner string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c CollectOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrCollectOrderCommandIsNotConstructed)
//	}
//
// The guard is immutable and safe to copy and share between goroutines.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that validates successfully.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
