package document

import (
	"errors"
	"strings"
	"time"

	"github.com/akeefe/tagdex/pkg/types"
)

var (
	// ErrOutOfRange is returned when an element position is invalid
	ErrOutOfRange = errors.New("element position out of range")
)

// Document is the storage backend contract the engine runs against: an
// ordered, mutable sequence of elements with a named-anchor registry and a
// last-modified timestamp. Elements read from a document are value copies;
// mutating a returned element never affects the document.
type Document interface {
	// ID identifies the document for checkpoint keying
	ID() string

	// Len returns the number of top-level elements
	Len() int

	// ElementAt returns a value copy of the element at position i
	ElementAt(i int) (types.Element, error)

	// Append adds an element at the end of the document
	Append(el types.Element) error

	// Remove deletes the element at position i, shifting later elements
	// down by one
	Remove(i int) error

	// RegisterAnchor binds name to the element position. Re-registering an
	// existing name replaces the prior binding.
	RegisterAnchor(name string, pos int)

	// ResolveAnchor returns the live position bound to name, if any
	ResolveAnchor(name string) (int, bool)

	// ModifiedAt returns the document's last-modified timestamp, covering
	// both persisted and pending mutations
	ModifiedAt() time.Time

	// Flush persists pending mutations to backing storage
	Flush() error
}

// AnchorSlug converts an anchor name to a link fragment in the style of
// rendered Markdown heading IDs: lowercased, spaces collapsed to hyphens,
// punctuation dropped.
func AnchorSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return b.String()
}
