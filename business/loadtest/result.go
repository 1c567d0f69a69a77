package loadtest

import (
	"math"
	"sort"
	"time"
)

// p95Budget is the hard tail latency gate.
const p95Budget = 100 * time.Millisecond

// Gate names reported when a run fails.
const (
	GateZeroErrors   = "zero-errors"
	GateZeroWarnings = "zero-warnings"
	GateFullSuccess  = "full-success"
	GateP95Latency   = "p95-latency"
)

// Result represents the aggregated outcome of one harness run.
type Result struct {
	Duration    time.Duration
	Total       int
	Successful  int
	Errors      int
	Warnings    int
	SuccessRate float64
	AvgLatency  time.Duration
	P95Latency  time.Duration
	Passed      bool
	FailedGates []string
}

// evaluateGates applies the four pass/fail gates. Every gate must pass for
// an overall pass; each violated gate is named.
func (r *Result) evaluateGates() {
	var failed []string

	if r.Errors > 0 {
		failed = append(failed, GateZeroErrors)
	}
	if r.Warnings > 0 {
		failed = append(failed, GateZeroWarnings)
	}
	if r.SuccessRate < 100.0 {
		failed = append(failed, GateFullSuccess)
	}
	if r.P95Latency >= p95Budget {
		failed = append(failed, GateP95Latency)
	}

	r.FailedGates = failed
	r.Passed = len(failed) == 0
}

// Percentile returns the nearest-rank percentile of the observed latencies:
// the value at position ceil(p/100*N) of the sorted sequence.
func Percentile(latencies []time.Duration, pct float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rank := int(math.Ceil(pct / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}

	return sorted[rank-1]
}

func average(latencies []time.Duration) time.Duration {
	if len(latencies) == 0 {
		return 0
	}

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	return sum / time.Duration(len(latencies))
}
