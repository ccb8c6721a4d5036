package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSpan indicates annotation bounds outside the document,
	// or start > end. Operations failing with it change no state.
	ErrInvalidSpan = errors.New("invalid span")

	// ErrInvalidRelation indicates a self-relation or an endpoint that
	// does not resolve to an annotation of the document.
	ErrInvalidRelation = errors.New("invalid relation")

	// ErrEmptySelection indicates a collapsed (zero-width) selection.
	// No annotation is created from it.
	ErrEmptySelection = errors.New("empty selection")

	// ErrBadFormat indicates a malformed input item: a CSV without the
	// required columns, a corrupt workspace file, or an unparsable rule
	// pattern. Batch operations skip the item and continue.
	ErrBadFormat = errors.New("bad format")
)
