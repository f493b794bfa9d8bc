package common

// Header represents the common header structure for all message types
type Header struct {
	HeaderLength uint16
	TotalLength  int32
	MsgTypeID    int
}

// Field sizes of the serialized header
const (
	HeaderLengthSize = 2
	TotalLengthSize  = 4
	MsgTypeIDSize    = 1

	HeaderSize = HeaderLengthSize + TotalLengthSize + MsgTypeIDSize
)

// MessageType constants
const (
	MinMaxMessageType    = 1
	RangeMessageType     = 2
	HistogramMessageType = 3
	SegmentMessageType   = 4
	BarrierMessageType   = 5
	ReleaseMessageType   = 6
)
