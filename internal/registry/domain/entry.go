// Package domain defines the name registry model and its errors.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/hname/internal/hname"
)

// MaxNameLength is the longest name, in bytes, the registry accepts.
const MaxNameLength = 255

// Kind classifies what a registered name refers to in a contract interface.
type Kind string

// Supported kinds.
const (
	KindContract Kind = "contract"
	KindFunction Kind = "function"
	KindView     Kind = "view"
	KindField    Kind = "field"
	KindEvent    Kind = "event"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindContract, KindFunction, KindView, KindField, KindEvent}

// ParseKind converts s to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrInvalidKind
}

// Entry is a registered name together with its hname. Within one registry both
// Name and HName are unique.
type Entry struct {
	ID        uuid.UUID
	Name      string
	Kind      Kind
	HName     hname.HName
	CreatedAt time.Time
}

// NewEntry validates name and kind and returns an entry with a fresh UUIDv7.
// h must be the hname of name.
func NewEntry(name string, kind Kind, h hname.HName) (*Entry, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}

	return &Entry{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      name,
		Kind:      kind,
		HName:     h,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ValidateName checks the registry's name constraints. Hashing itself accepts
// any string; these limits only apply to stored names.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLength || name != strings.TrimSpace(name) {
		return ErrInvalidName
	}
	return nil
}
