package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/akeefe/tagdex/pkg/types"
)

func TestCodec_RoundTrip(t *testing.T) {
	rs := types.NewRunState()
	rs.ScanCursor = 12
	rs.InIndexRegion = true
	rs.TagIndex.Add(types.TagEntry{
		Tag:    "#goals",
		Anchor: "Jan 2",
		Elements: []types.Element{
			types.Paragraph("Big plan #goals_+1"),
			types.Image([]byte{0xff, 0x01}, 320, 200),
		},
	})
	rs.BeginWriting()

	blob, err := encodeState(rs)
	require.NoError(t, err)

	got, err := decodeState(blob)
	require.NoError(t, err)
	assert.Equal(t, rs, got)
}

func TestCodec_RejectsGarbage(t *testing.T) {
	_, err := decodeState([]byte{0x01, 0x02, 0x03})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestCodec_RejectsSchemaMismatch(t *testing.T) {
	blob, err := msgpack.Marshal(&payload{Schema: 99, State: types.NewRunState()})
	require.NoError(t, err)

	_, err = decodeState(blob)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestCodec_RejectsInvalidState(t *testing.T) {
	rs := types.NewRunState()
	rs.Phase = "bogus"
	blob, err := msgpack.Marshal(&payload{Schema: payloadSchema, State: rs})
	require.NoError(t, err)

	_, err = decodeState(blob)
	assert.ErrorIs(t, err, ErrCorrupt)
}
