package histogram

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-countsort-2c2025/protocol/common"
)

func TestRoundTrip(t *testing.T) {
	original := &Histogram{Rank: 2, Counts: []int64{2, 1, 2, 1, 1, 1, 0, 0, 2}}

	data, err := Serialize(original)
	require.NoError(t, err)

	msgType, err := common.GetMessageType(data)
	require.NoError(t, err)
	assert.Equal(t, common.HistogramMessageType, msgType)

	decoded, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestRoundTripEmptyCounts(t *testing.T) {
	data, err := Serialize(&Histogram{Rank: 1, Counts: []int64{}})
	require.NoError(t, err)

	decoded, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, int32(1), decoded.Rank)
	assert.Empty(t, decoded.Counts)
}

func TestDeserializeRejectsBucketCountMismatch(t *testing.T) {
	data, err := Serialize(&Histogram{Rank: 0, Counts: []int64{1, 2, 3}})
	require.NoError(t, err)

	// Claim one more bucket than the body carries. The declared total
	// length stays consistent so only the bucket check can catch it.
	binary.BigEndian.PutUint32(data[common.HeaderSize+4:], 4)

	_, err = Deserialize(data)
	assert.Error(t, err)
}

func TestDeserializeRejectsShortBuffer(t *testing.T) {
	_, err := Deserialize([]byte{0, 7})
	assert.Error(t, err)
}

func TestSerializeNil(t *testing.T) {
	_, err := Serialize(nil)
	assert.Error(t, err)
}
