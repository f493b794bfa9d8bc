package common

import (
	"encoding/binary"
	"fmt"
)

// NewMessageBuffer allocates a buffer for a message with the given body length
// and fills in the common header. The caller writes the body starting at
// offset HeaderSize. All integer fields are big-endian.
func NewMessageBuffer(msgType int, bodyLen int) []byte {
	buf := make([]byte, HeaderSize+bodyLen)
	binary.BigEndian.PutUint16(buf[0:], uint16(HeaderSize))
	binary.BigEndian.PutUint32(buf[HeaderLengthSize:], uint32(HeaderSize+bodyLen))
	buf[HeaderLengthSize+TotalLengthSize] = byte(msgType)
	return buf
}

// GetMessageType returns the message type without full deserialization
func GetMessageType(data []byte) (int, error) {
	if len(data) < HeaderSize {
		return 0, fmt.Errorf("data too short to contain a message header: %d bytes", len(data))
	}
	return int(data[HeaderLengthSize+TotalLengthSize]), nil
}

// MessageBody validates the header against the expected message type and
// returns the body slice. The declared total length must match the buffer.
func MessageBody(data []byte, wantType int) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("data too short to contain a message header: %d bytes", len(data))
	}

	headerLength := binary.BigEndian.Uint16(data[0:])
	if headerLength != HeaderSize {
		return nil, fmt.Errorf("unexpected header length %d, want %d", headerLength, HeaderSize)
	}

	totalLength := int(binary.BigEndian.Uint32(data[HeaderLengthSize:]))
	if totalLength != len(data) {
		return nil, fmt.Errorf("declared length %d does not match buffer length %d", totalLength, len(data))
	}

	msgType := int(data[HeaderLengthSize+TotalLengthSize])
	if msgType != wantType {
		return nil, fmt.Errorf("unexpected message type %d, want %d", msgType, wantType)
	}

	return data[HeaderSize:], nil
}
