package histogram

import (
	"encoding/binary"
	"fmt"

	"tp-countsort-2c2025/protocol/common"
)

// Histogram is one rank's local histogram, sent to the coordinator during the
// gather phase. Counts[i] is the number of occurrences of value min+i in that
// rank's partition.
type Histogram struct {
	Rank   int32
	Counts []int64
}

const fixedBodySize = 4 + 4 // Rank + bucket count

// Serialize serializes a Histogram message
func Serialize(h *Histogram) ([]byte, error) {
	if h == nil {
		return nil, fmt.Errorf("cannot serialize nil histogram")
	}

	buf := common.NewMessageBuffer(common.HistogramMessageType, fixedBodySize+8*len(h.Counts))
	offset := common.HeaderSize
	binary.BigEndian.PutUint32(buf[offset:], uint32(h.Rank))
	binary.BigEndian.PutUint32(buf[offset+4:], uint32(len(h.Counts)))
	offset += fixedBodySize
	for _, count := range h.Counts {
		binary.BigEndian.PutUint64(buf[offset:], uint64(count))
		offset += 8
	}
	return buf, nil
}

// Deserialize deserializes a Histogram message
func Deserialize(data []byte) (*Histogram, error) {
	body, err := common.MessageBody(data, common.HistogramMessageType)
	if err != nil {
		return nil, fmt.Errorf("invalid histogram message: %w", err)
	}
	if len(body) < fixedBodySize {
		return nil, fmt.Errorf("histogram body is %d bytes, want at least %d", len(body), fixedBodySize)
	}

	rank := int32(binary.BigEndian.Uint32(body[0:]))
	buckets := int(binary.BigEndian.Uint32(body[4:]))
	if len(body) != fixedBodySize+8*buckets {
		return nil, fmt.Errorf("histogram declares %d buckets but body is %d bytes", buckets, len(body))
	}

	counts := make([]int64, buckets)
	offset := fixedBodySize
	for i := range counts {
		counts[i] = int64(binary.BigEndian.Uint64(body[offset:]))
		offset += 8
	}

	return &Histogram{Rank: rank, Counts: counts}, nil
}
