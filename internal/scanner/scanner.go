package scanner

import (
	"context"
	"fmt"

	"github.com/akeefe/tagdex/internal/budget"
	"github.com/akeefe/tagdex/internal/document"
	"github.com/akeefe/tagdex/internal/tag"
	"github.com/akeefe/tagdex/pkg/types"
)

// Scanner implements the gathering phase: a single pass over the document's
// top-level elements that registers anchors, tears down stale index content,
// and collects tag entries into the run state's TagIndex.
type Scanner struct {
	sectionName string
}

// New creates a scanner that recognizes the given index section name
func New(sectionName string) *Scanner {
	return &Scanner{sectionName: sectionName}
}

// Run traverses elements from rs.ScanCursor until the document is exhausted
// or the time budget expires. It reports suspended=true when it stopped on
// the budget; the caller persists the state and returns control to the
// host. Suspension only happens between elements and never while a
// multi-element span is still absorbing content, so a span's captured
// elements always come from a single invocation.
func (s *Scanner) Run(ctx context.Context, doc document.Document, rs *types.RunState, clock *budget.Clock) (suspended bool, err error) {
	var spans []*types.PendingSpan

	for rs.ScanCursor < doc.Len() {
		if len(spans) == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			if clock.Expired() {
				return true, nil
			}
		}

		el, err := doc.ElementAt(rs.ScanCursor)
		if err != nil {
			return false, fmt.Errorf("failed to read element %d: %w", rs.ScanCursor, err)
		}

		if rs.InIndexRegion {
			// Stale index content from a previous run, torn down for
			// rebuild. The cursor stays put: removal shifts the next
			// element into place.
			if err := doc.Remove(rs.ScanCursor); err != nil {
				return false, fmt.Errorf("failed to remove stale index element %d: %w", rs.ScanCursor, err)
			}
			rs.RemovedCount++
			continue
		}

		switch {
		case el.IsHeading(types.HeadingAnchor):
			doc.RegisterAnchor(el.Text, rs.ScanCursor)
			rs.LastAnchor = el.Text

		case el.IsHeading(types.HeadingSection) && el.Text == s.sectionName:
			rs.InIndexRegion = true
			rs.IndexHeadingCreated = true
			// A span cannot extend into machine-owned content
			spans = closeSpans(spans, rs.TagIndex)

		case rs.LastAnchor != "":
			spans = s.scanElement(el, rs, spans)
		}

		rs.ScanCursor++
	}

	// Spans truncated by the end of the document keep what they captured
	closeSpans(spans, rs.TagIndex)
	return false, nil
}

// scanElement feeds an element to the open spans, then opens new entries for
// any tag tokens it carries
func (s *Scanner) scanElement(el types.Element, rs *types.RunState, spans []*types.PendingSpan) []*types.PendingSpan {
	open := spans[:0]
	for _, sp := range spans {
		if sp.Absorb(el) {
			rs.TagIndex.Add(sp.Entry)
		} else {
			open = append(open, sp)
		}
	}
	spans = open

	if !el.HasText() {
		return spans
	}

	for _, token := range tag.Find(el.Text) {
		name, span := tag.Parse(token)
		entry := types.TagEntry{
			Tag:      name,
			Anchor:   rs.LastAnchor,
			Elements: []types.Element{el.Clone()},
		}
		if span > 0 {
			spans = append(spans, &types.PendingSpan{Tag: name, Remaining: span, Entry: entry})
		} else {
			rs.TagIndex.Add(entry)
		}
	}
	return spans
}

// closeSpans finalizes all open spans into the index with whatever they
// have captured so far
func closeSpans(spans []*types.PendingSpan, idx types.TagIndex) []*types.PendingSpan {
	for _, sp := range spans {
		idx.Add(sp.Entry)
	}
	return nil
}
