package signal

import (
	"encoding/binary"
	"fmt"

	"tp-countsort-2c2025/protocol/common"
)

// Token is a barrier arrival notice sent by a rank to the coordinator.
type Token struct {
	Rank int32
}

const tokenBodySize = 4

// SerializeToken serializes a barrier Token message
func SerializeToken(t *Token) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("cannot serialize nil token")
	}

	buf := common.NewMessageBuffer(common.BarrierMessageType, tokenBodySize)
	binary.BigEndian.PutUint32(buf[common.HeaderSize:], uint32(t.Rank))
	return buf, nil
}

// DeserializeToken deserializes a barrier Token message
func DeserializeToken(data []byte) (*Token, error) {
	body, err := common.MessageBody(data, common.BarrierMessageType)
	if err != nil {
		return nil, fmt.Errorf("invalid barrier token: %w", err)
	}
	if len(body) != tokenBodySize {
		return nil, fmt.Errorf("barrier token body is %d bytes, want %d", len(body), tokenBodySize)
	}

	return &Token{Rank: int32(binary.BigEndian.Uint32(body))}, nil
}

// SerializeRelease serializes the coordinator's barrier release, a header-only
// message broadcast to every rank.
func SerializeRelease() []byte {
	return common.NewMessageBuffer(common.ReleaseMessageType, 0)
}

// ValidateRelease checks that data is a well-formed barrier release.
func ValidateRelease(data []byte) error {
	body, err := common.MessageBody(data, common.ReleaseMessageType)
	if err != nil {
		return fmt.Errorf("invalid barrier release: %w", err)
	}
	if len(body) != 0 {
		return fmt.Errorf("barrier release carries %d unexpected body bytes", len(body))
	}
	return nil
}
