package countingsort

// Partition is the half-open index range [Start, End) of the dataset owned by
// one rank.
type Partition struct {
	Start int64
	End   int64
}

// Len returns the number of elements in the partition.
func (p Partition) Len() int64 {
	return p.End - p.Start
}

// PartitionFor computes the partition of an n-element dataset owned by the
// given rank in a group of the given size. The dataset is divided into
// size equal chunks of n/size elements; rank r > 0 owns chunk r-1, and the
// coordinator owns the last chunk plus the n mod size trailing elements the
// even division leaves out. When n < size the regular chunks are empty and
// the coordinator owns everything.
func PartitionFor(n int64, size, rank int) Partition {
	chunk := n / int64(size)
	if rank > 0 {
		return Partition{
			Start: int64(rank-1) * chunk,
			End:   int64(rank) * chunk,
		}
	}
	return Partition{
		Start: int64(size-1) * chunk,
		End:   n,
	}
}
