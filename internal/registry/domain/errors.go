package domain

import (
	"github.com/allisson/hname/internal/errors"
)

// Registry error definitions.
var (
	// ErrEntryNotFound indicates no entry matches the requested name or hname.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "entry not found")

	// ErrEntryAlreadyExists indicates the name is already registered.
	ErrEntryAlreadyExists = errors.Wrap(errors.ErrConflict, "entry already exists")

	// ErrHNameCollision indicates a different name already owns the hname.
	ErrHNameCollision = errors.Wrap(errors.ErrConflict, "hname collision")

	// ErrInvalidKind indicates an unsupported entry kind.
	ErrInvalidKind = errors.Wrap(
		errors.ErrInvalidInput,
		"invalid kind: must be one of contract, function, view, field, event",
	)

	// ErrInvalidName indicates a name that is empty, too long or padded with whitespace.
	ErrInvalidName = errors.Wrap(
		errors.ErrInvalidInput,
		"invalid name: must be 1-255 bytes without leading or trailing whitespace",
	)
)
