package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-countsort-2c2025/protocol/common"
)

func TestTokenRoundTrip(t *testing.T) {
	data, err := SerializeToken(&Token{Rank: 5})
	require.NoError(t, err)

	msgType, err := common.GetMessageType(data)
	require.NoError(t, err)
	assert.Equal(t, common.BarrierMessageType, msgType)

	decoded, err := DeserializeToken(data)
	require.NoError(t, err)
	assert.Equal(t, int32(5), decoded.Rank)
}

func TestRelease(t *testing.T) {
	data := SerializeRelease()

	msgType, err := common.GetMessageType(data)
	require.NoError(t, err)
	assert.Equal(t, common.ReleaseMessageType, msgType)

	assert.NoError(t, ValidateRelease(data))
}

func TestValidateReleaseRejectsToken(t *testing.T) {
	data, err := SerializeToken(&Token{Rank: 0})
	require.NoError(t, err)

	assert.Error(t, ValidateRelease(data))
}

func TestSerializeNilToken(t *testing.T) {
	_, err := SerializeToken(nil)
	assert.Error(t, err)
}
