package types

import "fmt"

// Phase identifies the stage of an indexing job
type Phase string

const (
	PhaseGathering Phase = "gathering"
	PhaseWriting   Phase = "writing"
	PhaseComplete  Phase = "complete"
)

// RunState is the complete resumable state of an indexing job for one
// document. It is created fresh when no valid checkpoint exists, loaded from
// the checkpoint store otherwise, mutated by the running phase, and
// discarded entirely once the phase reaches PhaseComplete.
type RunState struct {
	Phase Phase `msgpack:"phase"`

	// Gathering cursor state
	ScanCursor          int    `msgpack:"scan_cursor"`
	RemovedCount        int    `msgpack:"removed_count"`
	LastAnchor          string `msgpack:"last_anchor"`
	InIndexRegion       bool   `msgpack:"in_index_region"`
	IndexHeadingCreated bool   `msgpack:"index_heading_created"`

	// The index under construction (gathering) or being written (writing).
	// Immutable once gathering completes.
	TagIndex TagIndex `msgpack:"tag_index"`

	// Writing cursor state
	SortedTags  []string `msgpack:"sorted_tags,omitempty"`
	TagCursor   int      `msgpack:"tag_cursor"`
	EntryCursor int      `msgpack:"entry_cursor"`
}

// NewRunState creates the state for a fresh gathering pass
func NewRunState() *RunState {
	return &RunState{
		Phase:    PhaseGathering,
		TagIndex: TagIndex{},
	}
}

// BeginWriting transitions the state from gathering to writing: tag keys are
// frozen in ascending lexicographic order and the write cursors reset.
func (rs *RunState) BeginWriting() {
	rs.Phase = PhaseWriting
	rs.SortedTags = rs.TagIndex.SortedTags()
	rs.TagCursor = 0
	rs.EntryCursor = 0
}

// Validate checks that a loaded state is internally coherent. A state that
// fails validation is treated as a corrupt checkpoint.
func (rs *RunState) Validate() error {
	switch rs.Phase {
	case PhaseGathering, PhaseWriting, PhaseComplete:
	default:
		return fmt.Errorf("unknown phase %q", rs.Phase)
	}
	if rs.ScanCursor < 0 || rs.TagCursor < 0 || rs.EntryCursor < 0 {
		return fmt.Errorf("negative cursor (scan=%d tag=%d entry=%d)",
			rs.ScanCursor, rs.TagCursor, rs.EntryCursor)
	}
	if rs.TagIndex == nil {
		return fmt.Errorf("missing tag index")
	}
	for tag, entries := range rs.TagIndex {
		for _, entry := range entries {
			if err := entry.Validate(); err != nil {
				return fmt.Errorf("entry under %q: %w", tag, err)
			}
		}
	}
	if rs.Phase == PhaseWriting {
		if len(rs.SortedTags) != len(rs.TagIndex) {
			return fmt.Errorf("sorted tag list has %d keys, index has %d",
				len(rs.SortedTags), len(rs.TagIndex))
		}
		if rs.TagCursor > len(rs.SortedTags) {
			return fmt.Errorf("tag cursor %d beyond %d tags", rs.TagCursor, len(rs.SortedTags))
		}
	}
	return nil
}
