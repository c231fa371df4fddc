package writer

import (
	"context"
	"fmt"

	"github.com/akeefe/tagdex/internal/budget"
	"github.com/akeefe/tagdex/internal/document"
	"github.com/akeefe/tagdex/internal/tag"
	"github.com/akeefe/tagdex/internal/textutil"
	"github.com/akeefe/tagdex/pkg/types"
)

// Writer implements the writing phase: it rebuilds the index section at the
// end of the document from the completed TagIndex.
type Writer struct {
	sectionName  string
	maxEntryText int
	flushEvery   int
}

// New creates a writer. maxEntryText bounds the visible length of rendered
// entry text; flushEvery bounds the number of element writes buffered
// between document flushes.
func New(sectionName string, maxEntryText, flushEvery int) *Writer {
	if flushEvery <= 0 {
		flushEvery = 25
	}
	return &Writer{
		sectionName:  sectionName,
		maxEntryText: maxEntryText,
		flushEvery:   flushEvery,
	}
}

// Run emits index content for each tag starting at the persisted cursors,
// until all tags are written or the time budget expires. It reports
// suspended=true when it stopped on the budget; the caller persists the
// cursors and returns control to the host. The TagIndex itself is immutable
// during writing and is not re-persisted.
//
// Tags are written in the frozen sorted order; within a tag, entries are
// emitted in reverse of collection order.
func (w *Writer) Run(ctx context.Context, doc document.Document, rs *types.RunState, clock *budget.Clock) (suspended bool, err error) {
	if err := w.ensureIndexHeading(doc, rs); err != nil {
		return false, err
	}

	changes := 0
	for rs.TagCursor < len(rs.SortedTags) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if clock.Expired() {
			return true, nil
		}

		name := rs.SortedTags[rs.TagCursor]
		entries := rs.TagIndex[name]

		if rs.EntryCursor == 0 {
			if err := doc.Append(types.Heading(2, name)); err != nil {
				return false, fmt.Errorf("failed to append tag heading: %w", err)
			}
			changes++
		}

		for rs.EntryCursor < len(entries) {
			if rs.EntryCursor > 0 {
				if err := ctx.Err(); err != nil {
					return false, err
				}
				if clock.Expired() {
					return true, nil
				}
			}

			// Collection order is traversal order; output is its reverse
			entry := entries[len(entries)-1-rs.EntryCursor]
			n, err := w.writeEntry(doc, entry)
			if err != nil {
				return false, err
			}
			changes += n
			rs.EntryCursor++

			if changes >= w.flushEvery {
				if err := doc.Flush(); err != nil {
					return false, fmt.Errorf("failed to flush document: %w", err)
				}
				changes = 0
			}
		}

		rs.EntryCursor = 0
		rs.TagCursor++
	}

	rs.Phase = types.PhaseComplete
	return false, nil
}

// ensureIndexHeading makes sure the index section heading exists at the end
// of the document, appending it once when the gathering pass saw none
func (w *Writer) ensureIndexHeading(doc document.Document, rs *types.RunState) error {
	if rs.IndexHeadingCreated {
		return nil
	}
	if err := doc.Append(types.Heading(types.HeadingSection, w.sectionName)); err != nil {
		return fmt.Errorf("failed to append index heading: %w", err)
	}
	rs.IndexHeadingCreated = true
	return nil
}

// writeEntry renders one entry: the bold (and, when the anchor resolves,
// linked) anchor line, the captured elements with tags stripped and text
// truncated, and a blank separator. It returns the number of elements
// appended.
func (w *Writer) writeEntry(doc document.Document, entry types.TagEntry) (int, error) {
	appended := 0

	line := fmt.Sprintf("**%s**", entry.Anchor)
	if _, ok := doc.ResolveAnchor(entry.Anchor); ok {
		line = fmt.Sprintf("**[%s](#%s)**", entry.Anchor, document.AnchorSlug(entry.Anchor))
	}
	if err := doc.Append(types.Paragraph(line)); err != nil {
		return appended, fmt.Errorf("failed to append anchor line: %w", err)
	}
	appended++

	for _, el := range entry.Elements {
		var out types.Element
		switch el.Kind {
		case types.KindImage:
			out = el.Clone()
		case types.KindParagraph:
			out = types.Paragraph(w.renderText(el.Text))
		case types.KindListItem:
			out = types.ListItem(w.renderText(el.Text))
		default:
			// No rendering rule for this kind; skip rather than abort
			continue
		}
		if err := doc.Append(out); err != nil {
			return appended, fmt.Errorf("failed to append entry element: %w", err)
		}
		appended++
	}

	if err := doc.Append(types.Paragraph("")); err != nil {
		return appended, fmt.Errorf("failed to append separator: %w", err)
	}
	appended++
	return appended, nil
}

// renderText strips tag tokens and truncates to the configured width
func (w *Writer) renderText(text string) string {
	return textutil.Truncate(tag.Strip(text), w.maxEntryText)
}
