package document

import (
	"time"

	"github.com/akeefe/tagdex/pkg/types"
)

// Memory is an in-memory document. It backs the Markdown file document and
// serves as the fixture backend for engine tests.
type Memory struct {
	id       string
	elements []types.Element
	anchors  map[string]int
	modified time.Time
	flushes  int
}

// NewMemory creates an in-memory document with the given initial elements
func NewMemory(id string, elements ...types.Element) *Memory {
	els := make([]types.Element, len(elements))
	for i, el := range elements {
		els[i] = el.Clone()
	}
	return &Memory{
		id:       id,
		elements: els,
		anchors:  make(map[string]int),
		modified: time.Now(),
	}
}

// ID identifies the document for checkpoint keying
func (m *Memory) ID() string { return m.id }

// Len returns the number of top-level elements
func (m *Memory) Len() int { return len(m.elements) }

// ElementAt returns a value copy of the element at position i
func (m *Memory) ElementAt(i int) (types.Element, error) {
	if i < 0 || i >= len(m.elements) {
		return types.Element{}, ErrOutOfRange
	}
	return m.elements[i].Clone(), nil
}

// Append adds an element at the end of the document
func (m *Memory) Append(el types.Element) error {
	m.elements = append(m.elements, el.Clone())
	m.modified = time.Now()
	return nil
}

// Remove deletes the element at position i. Anchor bindings past i shift
// down with their elements; a binding at i itself is dropped.
func (m *Memory) Remove(i int) error {
	if i < 0 || i >= len(m.elements) {
		return ErrOutOfRange
	}
	m.elements = append(m.elements[:i], m.elements[i+1:]...)
	for name, pos := range m.anchors {
		switch {
		case pos == i:
			delete(m.anchors, name)
		case pos > i:
			m.anchors[name] = pos - 1
		}
	}
	m.modified = time.Now()
	return nil
}

// RegisterAnchor binds name to pos, replacing any prior binding
func (m *Memory) RegisterAnchor(name string, pos int) {
	m.anchors[name] = pos
}

// ResolveAnchor returns the live position bound to name, if any
func (m *Memory) ResolveAnchor(name string) (int, bool) {
	pos, ok := m.anchors[name]
	return pos, ok
}

// ModifiedAt returns the time of the last mutation
func (m *Memory) ModifiedAt() time.Time { return m.modified }

// Flush is a no-op for in-memory documents; flushes are counted so tests
// can assert write batching.
func (m *Memory) Flush() error {
	m.flushes++
	return nil
}

// Flushes returns how many times Flush has been called
func (m *Memory) Flushes() int { return m.flushes }

// Elements returns a snapshot copy of all elements, for assertions
func (m *Memory) Elements() []types.Element {
	out := make([]types.Element, len(m.elements))
	for i, el := range m.elements {
		out[i] = el.Clone()
	}
	return out
}

// SetModifiedAt overrides the modification timestamp. Tests use this to
// exercise the checkpoint staleness policy.
func (m *Memory) SetModifiedAt(t time.Time) { m.modified = t }
