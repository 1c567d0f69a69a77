package loadtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPercentileNearestRank(t *testing.T) {

	// 100 observations 1ms..100ms: the 95th percentile is the value at
	// nearest-rank 95 of the sorted sequence.
	latencies := make([]time.Duration, 100)
	for i := range latencies {
		latencies[i] = time.Duration(i+1) * time.Millisecond
	}

	assert.Equal(t, 95*time.Millisecond, Percentile(latencies, 95))
	assert.Equal(t, 100*time.Millisecond, Percentile(latencies, 100))
	assert.Equal(t, 50*time.Millisecond, Percentile(latencies, 50))
}

func TestPercentileSmallSets(t *testing.T) {
	assert.Equal(t, time.Duration(0), Percentile(nil, 95))
	assert.Equal(t, 7*time.Millisecond, Percentile([]time.Duration{7 * time.Millisecond}, 95))

	// Unsorted input must not matter.
	latencies := []time.Duration{30 * time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond}
	assert.Equal(t, 30*time.Millisecond, Percentile(latencies, 95))
}

func TestGates(t *testing.T) {
	clean := Result{
		Total:       100,
		Successful:  100,
		SuccessRate: 100,
		P95Latency:  40 * time.Millisecond,
	}

	tests := []struct {
		name   string
		mutate func(r *Result)
		failed []string
	}{
		{"all pass", func(r *Result) {}, nil},
		{"one error fails", func(r *Result) {
			r.Errors = 1
			r.Successful = 99
			r.SuccessRate = 99
		}, []string{GateZeroErrors, GateFullSuccess}},
		{"one warning fails", func(r *Result) {
			r.Warnings = 1
			r.Successful = 99
			r.SuccessRate = 99
		}, []string{GateZeroWarnings, GateFullSuccess}},
		{"p95 at budget fails", func(r *Result) {
			r.P95Latency = 100 * time.Millisecond
		}, []string{GateP95Latency}},
		{"p95 under budget passes", func(r *Result) {
			r.P95Latency = 99 * time.Millisecond
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := clean
			tt.mutate(&r)
			r.evaluateGates()

			assert.Equal(t, tt.failed, r.FailedGates)
			assert.Equal(t, len(tt.failed) == 0, r.Passed)
		})
	}
}

func TestValidateStatus(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, ValidateStatus([]byte(`{"status":"healthy","height":150247}`)))
	assert.Equal(t, OutcomeError, ValidateStatus([]byte(`{"status":"healthy","height":0}`)))
	assert.Equal(t, OutcomeWarning, ValidateStatus([]byte(`{"status":"degraded","height":150247}`)))
	assert.Equal(t, OutcomeError, ValidateStatus([]byte(`not json`)))
}

func TestValidateBlocks(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, ValidateBlocks([]byte(`{"blocks":[{"height":1}]}`)))
	assert.Equal(t, OutcomeError, ValidateBlocks([]byte(`{"blocks":[]}`)))
	assert.Equal(t, OutcomeError, ValidateBlocks([]byte(`{}`)))
}
