package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeefe/tagdex/pkg/types"
)

func TestMemory_AppendAndRead(t *testing.T) {
	doc := NewMemory("d1")
	require.NoError(t, doc.Append(types.Paragraph("hello")))
	require.NoError(t, doc.Append(types.ListItem("item")))

	assert.Equal(t, 2, doc.Len())
	el, err := doc.ElementAt(0)
	require.NoError(t, err)
	assert.Equal(t, "hello", el.Text)
	assert.Equal(t, types.KindParagraph, el.Kind)

	_, err = doc.ElementAt(5)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestMemory_ElementAtReturnsCopy(t *testing.T) {
	doc := NewMemory("d1", types.Image([]byte{1, 2, 3}, 10, 10))
	el, err := doc.ElementAt(0)
	require.NoError(t, err)

	el.ImageData[0] = 99
	again, err := doc.ElementAt(0)
	require.NoError(t, err)
	assert.Equal(t, byte(1), again.ImageData[0])
}

func TestMemory_RemoveShiftsAnchors(t *testing.T) {
	doc := NewMemory("d1",
		types.Paragraph("a"),
		types.Heading(types.HeadingAnchor, "Jan 1"),
		types.Paragraph("b"),
	)
	doc.RegisterAnchor("Jan 1", 1)

	require.NoError(t, doc.Remove(0))
	pos, ok := doc.ResolveAnchor("Jan 1")
	require.True(t, ok)
	assert.Equal(t, 0, pos)

	// Removing the anchored element drops the binding
	require.NoError(t, doc.Remove(0))
	_, ok = doc.ResolveAnchor("Jan 1")
	assert.False(t, ok)
}

func TestMemory_ReregisterReplacesAnchor(t *testing.T) {
	doc := NewMemory("d1",
		types.Heading(types.HeadingAnchor, "Jan 1"),
		types.Heading(types.HeadingAnchor, "Jan 1"),
	)
	doc.RegisterAnchor("Jan 1", 0)
	doc.RegisterAnchor("Jan 1", 1)

	pos, ok := doc.ResolveAnchor("Jan 1")
	require.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestMemory_ModifiedAtAdvances(t *testing.T) {
	doc := NewMemory("d1")
	before := doc.ModifiedAt()
	require.NoError(t, doc.Append(types.Paragraph("x")))
	assert.False(t, doc.ModifiedAt().Before(before))
}

func TestAnchorSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Jan 1", "jan-1"},
		{"  Mixed Case Title  ", "mixed-case-title"},
		{"a_b-c d", "a-b-c-d"},
		{"Punct! (here)", "punct-here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AnchorSlug(tt.name), tt.name)
	}
}
