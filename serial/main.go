package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"tp-countsort-2c2025/countingsort"
	"tp-countsort-2c2025/dataset"
)

const (
	defaultRangeMin = 0
	defaultRangeMax = 100000
)

// Single-process reference implementation. Same CLI contract as the worker;
// the record's worker count field is 0 to mark the serial run.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "ERROR! usage: serial array_size")
		os.Exit(1)
	}

	size, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil || size < 1 {
		fmt.Fprintf(os.Stderr, "ERROR! array_size must be a positive integer, got %q\n", os.Args[1])
		os.Exit(1)
	}

	rangeMin, err := envInt32("RANGE_MIN", defaultRangeMin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! %v\n", err)
		os.Exit(1)
	}
	rangeMax, err := envInt32("RANGE_MAX", defaultRangeMax)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! %v\n", err)
		os.Exit(1)
	}
	if rangeMax <= rangeMin {
		fmt.Fprintln(os.Stderr, "ERROR! can't have RANGE_MAX <= RANGE_MIN.")
		os.Exit(1)
	}

	data := make([]int32, size)

	start := time.Now()
	if err := dataset.FillRandomLocal(data, rangeMin, rangeMax); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! %v\n", err)
		os.Exit(1)
	}
	initTime := time.Since(start).Seconds()

	start = time.Now()
	if err := countingsort.Serial(data); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! %v\n", err)
		os.Exit(1)
	}
	sortTime := time.Since(start).Seconds()

	fmt.Printf("%d;0;%.5f;%.5f;%.5f\n", size, initTime, sortTime, initTime+sortTime)
}

func envInt32(key string, defaultValue int32) (int32, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return int32(parsed), nil
}
