package minmax

import (
	"encoding/binary"
	"fmt"

	"tp-countsort-2c2025/protocol/common"
)

// Contribution is one rank's local minimum and maximum, sent to the
// coordinator during the range reduction.
type Contribution struct {
	Rank int32
	Min  int32
	Max  int32
}

// Range is the reduced global value range, broadcast to every rank.
type Range struct {
	Min int32
	Max int32
}

const (
	contributionBodySize = 4 + 4 + 4
	rangeBodySize        = 4 + 4
)

// SerializeContribution serializes a Contribution message
func SerializeContribution(c *Contribution) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("cannot serialize nil contribution")
	}

	buf := common.NewMessageBuffer(common.MinMaxMessageType, contributionBodySize)
	offset := common.HeaderSize
	binary.BigEndian.PutUint32(buf[offset:], uint32(c.Rank))
	binary.BigEndian.PutUint32(buf[offset+4:], uint32(c.Min))
	binary.BigEndian.PutUint32(buf[offset+8:], uint32(c.Max))
	return buf, nil
}

// DeserializeContribution deserializes a Contribution message
func DeserializeContribution(data []byte) (*Contribution, error) {
	body, err := common.MessageBody(data, common.MinMaxMessageType)
	if err != nil {
		return nil, fmt.Errorf("invalid min/max contribution: %w", err)
	}
	if len(body) != contributionBodySize {
		return nil, fmt.Errorf("min/max contribution body is %d bytes, want %d", len(body), contributionBodySize)
	}

	return &Contribution{
		Rank: int32(binary.BigEndian.Uint32(body[0:])),
		Min:  int32(binary.BigEndian.Uint32(body[4:])),
		Max:  int32(binary.BigEndian.Uint32(body[8:])),
	}, nil
}

// SerializeRange serializes a reduced Range message
func SerializeRange(r *Range) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("cannot serialize nil range")
	}

	buf := common.NewMessageBuffer(common.RangeMessageType, rangeBodySize)
	offset := common.HeaderSize
	binary.BigEndian.PutUint32(buf[offset:], uint32(r.Min))
	binary.BigEndian.PutUint32(buf[offset+4:], uint32(r.Max))
	return buf, nil
}

// DeserializeRange deserializes a reduced Range message
func DeserializeRange(data []byte) (*Range, error) {
	body, err := common.MessageBody(data, common.RangeMessageType)
	if err != nil {
		return nil, fmt.Errorf("invalid range message: %w", err)
	}
	if len(body) != rangeBodySize {
		return nil, fmt.Errorf("range body is %d bytes, want %d", len(body), rangeBodySize)
	}

	return &Range{
		Min: int32(binary.BigEndian.Uint32(body[0:])),
		Max: int32(binary.BigEndian.Uint32(body[4:])),
	}, nil
}
