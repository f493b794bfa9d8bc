package main

import (
	"fmt"
	"os"
	"strconv"

	"tp-countsort-2c2025/shared/middleware"
)

// The worker takes exactly one positional argument, the dataset size N. On
// success the coordinator alone prints one delimited record to stdout:
// size;worker_count;init_time;sort_time;total_time. Any failure is fatal for
// the whole group, so every error path exits non-zero.
func main() {
	middleware.InitLogger()

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) != 2 {
		if config.Rank == 0 {
			fmt.Fprintln(os.Stderr, "ERROR! usage: worker array_size")
		}
		os.Exit(1)
	}

	size, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil || size < 1 {
		if config.Rank == 0 {
			fmt.Fprintf(os.Stderr, "ERROR! array_size must be a positive integer, got %q\n", os.Args[1])
		}
		os.Exit(1)
	}

	worker, err := NewSortWorker(config, size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! rank %d failed to start: %v\n", config.Rank, err)
		os.Exit(1)
	}
	defer worker.Close()

	report, err := worker.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR! rank %d failed: %v\n", config.Rank, err)
		os.Exit(1)
	}

	if worker.IsCoordinator() {
		fmt.Printf("%d;%d;%.5f;%.5f;%.5f\n",
			size, config.NumWorkers, report.InitTime, report.SortTime, report.TotalTime())
	}
}
