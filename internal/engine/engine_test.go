package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeefe/tagdex/internal/budget"
	"github.com/akeefe/tagdex/internal/checkpoint"
	"github.com/akeefe/tagdex/internal/config"
	"github.com/akeefe/tagdex/internal/document"
	"github.com/akeefe/tagdex/pkg/types"
)

func testConfig() config.Config {
	cfg := config.Default()
	// Generous budgets: tests force suspension via the clock factory
	cfg.Budget.Gather.Duration = 0
	cfg.Budget.Write.Duration = 0
	return cfg
}

func newTestEngine(t *testing.T, docs map[string]*document.Memory) (*Engine, *checkpoint.SQLiteStore) {
	t.Helper()
	store, err := checkpoint.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	open := func(docID string) (document.Document, error) {
		doc, ok := docs[docID]
		if !ok {
			return nil, fmt.Errorf("no such document %q", docID)
		}
		return doc, nil
	}
	return New(store, open, testConfig()), store
}

// stepClockFactory builds clocks that allow perRun yield-point checks per
// phase before expiring
func stepClockFactory(perRun int) func(time.Duration) *budget.Clock {
	return func(time.Duration) *budget.Clock {
		base := time.Unix(0, 0)
		calls := 0
		limit := time.Duration(perRun)*time.Second + 500*time.Millisecond
		return budget.NewClockWithNow(limit, func() time.Time {
			calls++
			return base.Add(time.Duration(calls) * time.Second)
		})
	}
}

func journalElements() []types.Element {
	return []types.Element{
		types.Heading(types.HeadingAnchor, "Jan 1"),
		types.Paragraph("Met with Bob #people"),
		types.Paragraph("Big plan #goals_+1"),
		types.Paragraph("Save money"),
		types.Heading(types.HeadingAnchor, "Jan 2"),
		types.Paragraph("Lunch with Ana #people #food"),
		types.ListItem("pack bags #travel_+2"),
		types.Image([]byte{7}, 32, 32),
		types.Paragraph("book hotel"),
	}
}

func TestRunIndexing_CompletesInOnePass(t *testing.T) {
	doc := document.NewMemory("j", journalElements()...)
	eng, store := newTestEngine(t, map[string]*document.Memory{"j": doc})

	res, err := eng.RunIndexing(context.Background(), "j")
	require.NoError(t, err)
	assert.False(t, res.Suspended)
	assert.Equal(t, types.PhaseComplete, res.Phase)
	assert.Equal(t, 4, res.Stats.TagsFound)
	assert.Equal(t, 5, res.Stats.EntriesFound)

	// Checkpoint artifacts are discarded on completion
	_, _, err = store.Load(context.Background(), "j")
	assert.ErrorIs(t, err, checkpoint.ErrNotFound)

	// Tag headings come out in ascending lexicographic order
	var headings []string
	for _, el := range doc.Elements() {
		if el.IsHeading(2) {
			headings = append(headings, el.Text)
		}
	}
	assert.Equal(t, []string{"#food", "#goals", "#people", "#travel"}, headings)
}

func TestRunIndexing_Idempotent(t *testing.T) {
	doc := document.NewMemory("j", journalElements()...)
	eng, _ := newTestEngine(t, map[string]*document.Memory{"j": doc})

	_, err := eng.RunIndexing(context.Background(), "j")
	require.NoError(t, err)
	first := doc.Elements()

	_, err = eng.RunIndexing(context.Background(), "j")
	require.NoError(t, err)
	assert.Equal(t, first, doc.Elements())
}

func TestRunIndexing_SplitRunEquivalence(t *testing.T) {
	docA := document.NewMemory("a", journalElements()...)
	docB := document.NewMemory("b", journalElements()...)
	docs := map[string]*document.Memory{"a": docA, "b": docB}

	engA, _ := newTestEngine(t, docs)
	res, err := engA.RunIndexing(context.Background(), "a")
	require.NoError(t, err)
	require.False(t, res.Suspended)

	engB, _ := newTestEngine(t, docs)
	engB.clockFor = stepClockFactory(2)
	passes := 0
	for i := 0; i < 50; i++ {
		res, err = engB.RunIndexing(context.Background(), "b")
		require.NoError(t, err)
		passes++
		if !res.Suspended {
			break
		}
	}
	require.False(t, res.Suspended, "did not finish within 50 passes")
	assert.Greater(t, passes, 2, "expected the budget to force multiple passes")

	a := docA.Elements()
	b := docB.Elements()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i], "element %d", i)
	}
}

func TestRunIndexing_SpanIntegrityAcrossCheckpoints(t *testing.T) {
	doc := document.NewMemory("j",
		types.Heading(types.HeadingAnchor, "Jan 1"),
		types.Paragraph("wide #x_+2"),
		types.Paragraph("mid"),
		types.Paragraph("end"),
		types.Paragraph("tail"),
	)
	eng, _ := newTestEngine(t, map[string]*document.Memory{"j": doc})
	eng.clockFor = stepClockFactory(2)

	var res *Result
	var err error
	for i := 0; i < 20; i++ {
		res, err = eng.RunIndexing(context.Background(), "j")
		require.NoError(t, err)
		if !res.Suspended {
			break
		}
	}
	require.False(t, res.Suspended)

	// The span's three elements appear contiguously in the index
	var texts []string
	for _, el := range doc.Elements() {
		texts = append(texts, el.Text)
	}
	assert.Contains(t, texts, "wide")
	i := indexOf(texts, "wide")
	require.Greater(t, i, 0)
	assert.Equal(t, "mid", texts[i+1])
	assert.Equal(t, "end", texts[i+2])
}

func indexOf(items []string, want string) int {
	for i, s := range items {
		if s == want {
			return i
		}
	}
	return -1
}

func TestRunIndexing_RebuildDropsStaleSections(t *testing.T) {
	doc := document.NewMemory("j",
		types.Heading(types.HeadingAnchor, "Jan 1"),
		types.Paragraph("note #current"),
		types.Heading(types.HeadingSection, "Tags"),
		types.Heading(2, "#removed"),
		types.Paragraph("**Jan 1**"),
		types.Paragraph("old content"),
	)
	eng, _ := newTestEngine(t, map[string]*document.Memory{"j": doc})

	res, err := eng.RunIndexing(context.Background(), "j")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Stats.StaleRemoved)

	for _, el := range doc.Elements() {
		if el.IsHeading(2) {
			assert.NotEqual(t, "#removed", el.Text)
		}
	}
}

func TestRunIndexing_StaleCheckpointStartsFresh(t *testing.T) {
	doc := document.NewMemory("j", journalElements()...)
	eng, store := newTestEngine(t, map[string]*document.Memory{"j": doc})

	// A leftover checkpoint that predates a document edit must be ignored
	ghost := types.NewRunState()
	ghost.TagIndex.Add(types.TagEntry{
		Tag:      "#ghost",
		Anchor:   "Jan 1",
		Elements: []types.Element{types.Paragraph("boo #ghost")},
	})
	ghost.BeginWriting()
	require.NoError(t, store.Save(context.Background(), "j", ghost))
	doc.SetModifiedAt(time.Now().Add(time.Hour))

	res, err := eng.RunIndexing(context.Background(), "j")
	require.NoError(t, err)
	assert.False(t, res.Resumed)

	for _, el := range doc.Elements() {
		assert.NotEqual(t, "#ghost", el.Text)
	}
}

func TestRunIndexing_ResumesFreshCheckpoint(t *testing.T) {
	doc := document.NewMemory("j", journalElements()...)
	eng, _ := newTestEngine(t, map[string]*document.Memory{"j": doc})
	eng.clockFor = stepClockFactory(2)

	res, err := eng.RunIndexing(context.Background(), "j")
	require.NoError(t, err)
	require.True(t, res.Suspended)

	res, err = eng.RunIndexing(context.Background(), "j")
	require.NoError(t, err)
	assert.True(t, res.Resumed)
}

func TestRunIndexing_CorruptCheckpointRecovered(t *testing.T) {
	doc := document.NewMemory("j", journalElements()...)
	store := &fakeStore{loadErr: checkpoint.ErrCorrupt}
	open := func(string) (document.Document, error) { return doc, nil }
	eng := New(store, open, testConfig())

	res, err := eng.RunIndexing(context.Background(), "j")
	require.NoError(t, err)
	assert.Equal(t, types.PhaseComplete, res.Phase)
	assert.GreaterOrEqual(t, store.deletes, 2) // discard + completion cleanup
}

func TestRunIndexing_StoreFailurePropagates(t *testing.T) {
	doc := document.NewMemory("j", journalElements()...)
	store := &fakeStore{saveErr: errors.New("disk full")}
	open := func(string) (document.Document, error) { return doc, nil }
	eng := New(store, open, testConfig())

	_, err := eng.RunIndexing(context.Background(), "j")
	require.Error(t, err)
	assert.Equal(t, 0, store.deletes, "checkpoint must survive a backend failure")
}

func TestRunIndexing_OpenFailurePropagates(t *testing.T) {
	eng, _ := newTestEngine(t, map[string]*document.Memory{})
	_, err := eng.RunIndexing(context.Background(), "missing")
	assert.Error(t, err)
}

func TestRunIndexing_LockRejectsConcurrentInvocation(t *testing.T) {
	doc := document.NewMemory("j", journalElements()...)
	eng, _ := newTestEngine(t, map[string]*document.Memory{"j": doc})

	require.True(t, eng.locks.lockFor("j").TryAcquire())
	_, err := eng.RunIndexing(context.Background(), "j")
	assert.ErrorIs(t, err, ErrIndexingInProgress)
	eng.locks.lockFor("j").Release()

	_, err = eng.RunIndexing(context.Background(), "j")
	assert.NoError(t, err)
}

// fakeStore is a checkpoint.Store with injectable failures
type fakeStore struct {
	state   *types.RunState
	savedAt time.Time
	loadErr error
	saveErr error
	deletes int
}

func (f *fakeStore) Load(ctx context.Context, docID string) (*types.RunState, time.Time, error) {
	if f.loadErr != nil {
		err := f.loadErr
		f.loadErr = nil
		return nil, time.Time{}, err
	}
	if f.state == nil {
		return nil, time.Time{}, checkpoint.ErrNotFound
	}
	return f.state, f.savedAt, nil
}

func (f *fakeStore) Save(ctx context.Context, docID string, rs *types.RunState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.state = rs
	f.savedAt = time.Now()
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, docID string) error {
	f.deletes++
	f.state = nil
	return nil
}

func (f *fakeStore) Close() error { return nil }
