package segment

import (
	"encoding/binary"
	"fmt"

	"tp-countsort-2c2025/protocol/common"
)

// Segment is a rank-stamped slice of the dataset. It carries each rank's
// chunk during the dataset allgather and the full sorted sequence during the
// result broadcast. Offset is the element index where Values start in the
// assembled array.
type Segment struct {
	Rank   int32
	Offset int64
	Values []int32
}

const fixedBodySize = 4 + 8 + 4 // Rank + Offset + value count

// Serialize serializes a Segment message
func Serialize(s *Segment) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("cannot serialize nil segment")
	}

	buf := common.NewMessageBuffer(common.SegmentMessageType, fixedBodySize+4*len(s.Values))
	offset := common.HeaderSize
	binary.BigEndian.PutUint32(buf[offset:], uint32(s.Rank))
	binary.BigEndian.PutUint64(buf[offset+4:], uint64(s.Offset))
	binary.BigEndian.PutUint32(buf[offset+12:], uint32(len(s.Values)))
	offset += fixedBodySize
	for _, v := range s.Values {
		binary.BigEndian.PutUint32(buf[offset:], uint32(v))
		offset += 4
	}
	return buf, nil
}

// Deserialize deserializes a Segment message
func Deserialize(data []byte) (*Segment, error) {
	body, err := common.MessageBody(data, common.SegmentMessageType)
	if err != nil {
		return nil, fmt.Errorf("invalid segment message: %w", err)
	}
	if len(body) < fixedBodySize {
		return nil, fmt.Errorf("segment body is %d bytes, want at least %d", len(body), fixedBodySize)
	}

	rank := int32(binary.BigEndian.Uint32(body[0:]))
	elemOffset := int64(binary.BigEndian.Uint64(body[4:]))
	count := int(binary.BigEndian.Uint32(body[12:]))
	if len(body) != fixedBodySize+4*count {
		return nil, fmt.Errorf("segment declares %d values but body is %d bytes", count, len(body))
	}

	values := make([]int32, count)
	offset := fixedBodySize
	for i := range values {
		values[i] = int32(binary.BigEndian.Uint32(body[offset:]))
		offset += 4
	}

	return &Segment{Rank: rank, Offset: elemOffset, Values: values}, nil
}
