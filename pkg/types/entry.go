package types

import (
	"sort"
	"strings"
	"unicode"
)

// TagEntry represents one occurrence of a tag and the content it covers:
// one element, or several when the tag declares a multi-element span.
type TagEntry struct {
	Tag      string    `msgpack:"tag"`
	Anchor   string    `msgpack:"anchor"`
	Elements []Element `msgpack:"elements"`
}

// Validate checks that the entry can live in a tag bucket. The detection
// pattern guarantees both properties for scanned entries; this guards
// entries arriving from persisted state.
func (e TagEntry) Validate() error {
	if e.Tag == "" {
		return ErrEmptyTag
	}
	if strings.ContainsFunc(e.Tag, unicode.IsSpace) {
		return ErrTagWhitespace
	}
	return nil
}

// PendingSpan tracks a multi-element tag that is still absorbing subsequent
// elements during the gathering phase. It exists only within a single
// invocation: gathering never suspends while a span is open, so spans are
// not part of the persisted RunState.
type PendingSpan struct {
	Tag       string
	Remaining int
	Entry     TagEntry
}

// Absorb appends a value copy of the element to the span's entry and
// decrements the remaining count. It reports whether the span is done.
func (s *PendingSpan) Absorb(el Element) bool {
	s.Entry.Elements = append(s.Entry.Elements, el.Clone())
	s.Remaining--
	return s.Remaining <= 0
}

// TagIndex maps a tag to its entries in document traversal order. Entries
// are appended as the scanner encounters them; the writer decides output
// order.
type TagIndex map[string][]TagEntry

// Add appends the entry to its tag's bucket
func (ti TagIndex) Add(entry TagEntry) {
	ti[entry.Tag] = append(ti[entry.Tag], entry)
}

// SortedTags returns all tag keys in ascending lexicographic order
func (ti TagIndex) SortedTags() []string {
	tags := make([]string, 0, len(ti))
	for tag := range ti {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// EntryCount returns the total number of entries across all tags
func (ti TagIndex) EntryCount() int {
	n := 0
	for _, entries := range ti {
		n += len(entries)
	}
	return n
}
