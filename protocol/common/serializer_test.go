package common

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageBuffer(t *testing.T) {
	buf := NewMessageBuffer(HistogramMessageType, 12)

	require.Len(t, buf, HeaderSize+12)
	assert.Equal(t, uint16(HeaderSize), binary.BigEndian.Uint16(buf[0:]))
	assert.Equal(t, uint32(HeaderSize+12), binary.BigEndian.Uint32(buf[HeaderLengthSize:]))

	msgType, err := GetMessageType(buf)
	require.NoError(t, err)
	assert.Equal(t, HistogramMessageType, msgType)
}

func TestMessageBody(t *testing.T) {
	buf := NewMessageBuffer(SegmentMessageType, 3)
	copy(buf[HeaderSize:], []byte{1, 2, 3})

	body, err := MessageBody(buf, SegmentMessageType)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, body)
}

func TestMessageBodyRejectsWrongType(t *testing.T) {
	buf := NewMessageBuffer(SegmentMessageType, 0)

	_, err := MessageBody(buf, HistogramMessageType)
	assert.Error(t, err)
}

func TestMessageBodyRejectsLengthMismatch(t *testing.T) {
	buf := NewMessageBuffer(SegmentMessageType, 4)

	_, err := MessageBody(buf[:len(buf)-1], SegmentMessageType)
	assert.Error(t, err)
}

func TestGetMessageTypeRejectsShortBuffer(t *testing.T) {
	_, err := GetMessageType([]byte{1, 2, 3})
	assert.Error(t, err)
}
