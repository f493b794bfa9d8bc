package minmax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-countsort-2c2025/protocol/common"
)

func TestContributionRoundTrip(t *testing.T) {
	original := &Contribution{Rank: 3, Min: -42, Max: 99999}

	data, err := SerializeContribution(original)
	require.NoError(t, err)

	msgType, err := common.GetMessageType(data)
	require.NoError(t, err)
	assert.Equal(t, common.MinMaxMessageType, msgType)

	decoded, err := DeserializeContribution(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestRangeRoundTrip(t *testing.T) {
	original := &Range{Min: -1, Max: 1}

	data, err := SerializeRange(original)
	require.NoError(t, err)

	decoded, err := DeserializeRange(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDeserializeContributionRejectsWrongType(t *testing.T) {
	data, err := SerializeRange(&Range{Min: 0, Max: 1})
	require.NoError(t, err)

	_, err = DeserializeContribution(data)
	assert.Error(t, err)
}

func TestDeserializeRangeRejectsTruncatedBuffer(t *testing.T) {
	data, err := SerializeRange(&Range{Min: 0, Max: 1})
	require.NoError(t, err)

	_, err = DeserializeRange(data[:len(data)-2])
	assert.Error(t, err)
}

func TestSerializeNil(t *testing.T) {
	_, err := SerializeContribution(nil)
	assert.Error(t, err)

	_, err = SerializeRange(nil)
	assert.Error(t, err)
}
