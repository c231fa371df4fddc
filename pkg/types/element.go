package types

import (
	"errors"
	"fmt"
)

// ElementKind identifies the kind of an atomic document unit
type ElementKind string

const (
	KindParagraph ElementKind = "paragraph"
	KindListItem  ElementKind = "list_item"
	KindImage     ElementKind = "image"
)

// Heading levels carried by paragraph elements. Level 0 is body text.
const (
	HeadingNone    = 0
	HeadingSection = 1 // demarcates the index region
	HeadingAnchor  = 3 // anchor headings ("dates" in journal usage)
)

// Element is one atomic unit of document content, captured as a value copy
// at detection time. The writer operates exclusively on these values, never
// on live document handles from a prior phase.
type Element struct {
	Kind         ElementKind `msgpack:"kind"`
	Text         string      `msgpack:"text"`
	HeadingLevel int         `msgpack:"heading_level,omitempty"`

	// Image fields, set only when Kind == KindImage
	Alt       string `msgpack:"alt,omitempty"`
	ImageData []byte `msgpack:"image_data,omitempty"`
	Width     int    `msgpack:"width,omitempty"`
	Height    int    `msgpack:"height,omitempty"`
}

// Paragraph creates a body-text paragraph element
func Paragraph(text string) Element {
	return Element{Kind: KindParagraph, Text: text}
}

// Heading creates a paragraph element carrying a heading level
func Heading(level int, text string) Element {
	return Element{Kind: KindParagraph, Text: text, HeadingLevel: level}
}

// ListItem creates a list item element
func ListItem(text string) Element {
	return Element{Kind: KindListItem, Text: text}
}

// Image creates an image element with its binary payload and dimensions
func Image(data []byte, width, height int) Element {
	return Element{Kind: KindImage, ImageData: data, Width: width, Height: height}
}

// IsHeading reports whether the element is a paragraph at the given level
// with non-empty text
func (e Element) IsHeading(level int) bool {
	return e.Kind == KindParagraph && e.HeadingLevel == level && e.Text != ""
}

// HasText reports whether the element kind carries scannable text
func (e Element) HasText() bool {
	return e.Kind == KindParagraph || e.Kind == KindListItem
}

// Clone returns a deep copy of the element. Image payloads are copied so a
// captured element never aliases live document storage.
func (e Element) Clone() Element {
	c := e
	if e.ImageData != nil {
		c.ImageData = make([]byte, len(e.ImageData))
		copy(c.ImageData, e.ImageData)
	}
	return c
}

// Validate checks element consistency
func (e Element) Validate() error {
	switch e.Kind {
	case KindParagraph, KindListItem:
		if e.ImageData != nil {
			return errors.New("text element cannot carry an image payload")
		}
	case KindImage:
		if len(e.ImageData) == 0 {
			return errors.New("image element requires a payload")
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidElementKind, e.Kind)
	}
	if e.HeadingLevel < 0 {
		return errors.New("heading level must be non-negative")
	}
	return nil
}
