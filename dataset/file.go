package dataset

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"tp-countsort-2c2025/comm"
)

const elementSize = 4 // little-endian int32 records

// FillFromFile fills data with the first len(data) values of a binary file of
// little-endian int32 records, on every rank of the group. Each rank reads
// its n/size-element slice at its own offset and the slices are allgathered;
// every rank then reads the n mod size leftover tail directly, since the tail
// is at most size-1 elements.
func FillFromFile(data []int32, path string, c comm.Communicator) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	n := int64(len(data))
	size := int64(c.Size())
	localSize := n / size

	local := make([]int32, localSize)
	if localSize > 0 {
		offset := int64(c.Rank()) * localSize * elementSize
		if err := readValuesAt(file, local, offset); err != nil {
			return fmt.Errorf("rank %d failed to read its slice of %s: %w", c.Rank(), path, err)
		}
	}

	gathered, err := c.Allgather(local)
	if err != nil {
		return fmt.Errorf("dataset allgather failed: %w", err)
	}
	copy(data, gathered)

	indexLeftover := localSize * size
	if indexLeftover < n {
		tail := make([]int32, n-indexLeftover)
		if err := readValuesAt(file, tail, indexLeftover*elementSize); err != nil {
			return fmt.Errorf("failed to read leftover tail of %s: %w", path, err)
		}
		copy(data[indexLeftover:], tail)
	}

	return nil
}

// readValuesAt reads exactly len(values) records starting at the given byte
// offset. A full read that ends exactly at EOF is fine.
func readValuesAt(file *os.File, values []int32, offset int64) error {
	buf := make([]byte, len(values)*elementSize)
	if n, err := file.ReadAt(buf, offset); err != nil && !(n == len(buf) && err == io.EOF) {
		return fmt.Errorf("short read of %d values at offset %d: %w", len(values), offset, err)
	}
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(buf[i*elementSize:]))
	}
	return nil
}
