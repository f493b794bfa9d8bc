package main

import (
	"fmt"
	"time"

	"tp-countsort-2c2025/comm"
	"tp-countsort-2c2025/comm/amqpcomm"
	"tp-countsort-2c2025/countingsort"
	"tp-countsort-2c2025/dataset"
	"tp-countsort-2c2025/shared/middleware"
)

// SortWorker is one rank of the distributed counting sort. All state is
// scoped to a single run: the replicated dataset buffer, the group
// membership, nothing else.
type SortWorker struct {
	config *WorkerConfig
	comm   *amqpcomm.Comm
	data   []int32
}

// RunReport carries the phase timings the coordinator prints.
type RunReport struct {
	InitTime float64
	SortTime float64
}

// TotalTime is the combined initialization and sort time in seconds.
func (r *RunReport) TotalTime() float64 {
	return r.InitTime + r.SortTime
}

// NewSortWorker joins the worker group and allocates the dataset buffer.
func NewSortWorker(config *WorkerConfig, size int64) (*SortWorker, error) {
	if err := middleware.WaitForConnection(config.ConnectionConfig, DefaultConnectionRetries, time.Second); err != nil {
		return nil, err
	}

	groupComm, err := amqpcomm.New(config.ConnectionConfig, config.Rank, config.NumWorkers)
	if err != nil {
		return nil, fmt.Errorf("failed to join worker group: %w", err)
	}

	middleware.LogInfo("Sort Worker", "Rank %d of %d joined the group", config.Rank, config.NumWorkers)

	return &SortWorker{
		config: config,
		comm:   groupComm,
		data:   make([]int32, size),
	}, nil
}

// Run initializes the dataset and sorts it, timing both phases. Each timed
// section starts from a barrier so all ranks measure the same span, as the
// reference implementation does.
func (w *SortWorker) Run() (*RunReport, error) {
	report := &RunReport{}

	if err := w.comm.Barrier(); err != nil {
		return nil, err
	}
	start := time.Now()
	if err := w.initDataset(); err != nil {
		return nil, fmt.Errorf("dataset initialization failed: %w", err)
	}
	report.InitTime = time.Since(start).Seconds()

	if err := w.comm.Barrier(); err != nil {
		return nil, err
	}
	start = time.Now()
	if err := countingsort.Sort(w.data, w.comm); err != nil {
		return nil, fmt.Errorf("sort failed: %w", err)
	}
	report.SortTime = time.Since(start).Seconds()

	middleware.LogInfo("Sort Worker", "Rank %d finished: init %.5fs, sort %.5fs",
		w.config.Rank, report.InitTime, report.SortTime)

	return report, nil
}

func (w *SortWorker) initDataset() error {
	if w.config.InputFile != "" {
		return dataset.FillFromFile(w.data, w.config.InputFile, w.comm)
	}
	return dataset.FillRandom(w.data, w.config.RangeMin, w.config.RangeMax, w.comm)
}

// IsCoordinator reports whether this worker emits the timing record.
func (w *SortWorker) IsCoordinator() bool {
	return w.config.Rank == comm.CoordinatorRank
}

// Close leaves the group and releases all broker resources.
func (w *SortWorker) Close() {
	if w.comm != nil {
		w.comm.Close()
	}
}
