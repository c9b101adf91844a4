// Package guard implements the constructor guard pattern used by commands,
// queries, and value objects to ensure instances are only created through
// their designated constructor functions.
//
// The guard works by holding an internal flag that is only set when the object
// is created through the proper constructor. A zero-value struct fails
// validation, which catches accidental direct initialization before it can
// bypass invariant checks.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error
// is provided for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// Embed it in a struct and set it with NewConstructorGuard inside the
// constructor; zero-value instances then fail Validate.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking an object as properly
// constructed. Call it only inside the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
