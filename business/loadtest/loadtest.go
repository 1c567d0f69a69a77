// Package loadtest drives sustained request load against the node's HTTP
// surface and gates the aggregated results on hard error and tail latency
// thresholds.
package loadtest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/quantumcoin/node/foundation/validate"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// State represents the lifecycle of a harness run.
type State int

// Harness lifecycle states.
const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

// String implements the fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Config represents the load profile for one harness run.
type Config struct {
	BaseURL   string        `json:"base_url" validate:"required,url"`
	Duration  time.Duration `json:"duration" validate:"required"`
	Rate      float64       `json:"rate" validate:"required,gt=0"`
	Workers   int           `json:"workers" validate:"required,gt=0"`
	Timeout   time.Duration `json:"timeout" validate:"required"`
	Endpoints []Endpoint    `json:"endpoints" validate:"required,min=1"`
}

// Harness issues requests against the node at an approximate target rate
// through a bounded pool of in-flight requests.
type Harness struct {
	log    *zap.SugaredLogger
	cfg    Config
	client *resty.Client

	mu    sync.Mutex
	state State
}

// New constructs a harness for the specified load profile.
func New(log *zap.SugaredLogger, cfg Config) (*Harness, error) {
	if err := validate.Check(cfg); err != nil {
		return nil, errors.Wrap(err, "validating load profile")
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	h := Harness{
		log:    log,
		cfg:    cfg,
		client: client,
		state:  StateIdle,
	}

	return &h, nil
}

// State returns the current lifecycle state of the harness.
func (h *Harness) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.state
}

// Run executes the load profile and blocks until the time budget elapses and
// all in-flight requests have completed. A harness can run only once.
func (h *Harness) Run(ctx context.Context) (Result, error) {
	h.mu.Lock()
	if h.state != StateIdle {
		h.mu.Unlock()
		return Result{}, errors.Errorf("harness is %s, must be idle", h.state)
	}
	h.state = StateRunning
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.state = StateCompleted
		h.mu.Unlock()
	}()

	h.log.Infow("loadtest started", "duration", h.cfg.Duration, "rate", h.cfg.Rate, "workers", h.cfg.Workers)

	start := time.Now()
	deadline := start.Add(h.cfg.Duration)

	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	// The limiter paces submissions at the target rate while the semaphore
	// bounds the number of requests in flight.
	limiter := rate.NewLimiter(rate.Limit(h.cfg.Rate), 1)
	sem := make(chan struct{}, h.cfg.Workers)

	var col collector
	var wg sync.WaitGroup

	var submitted int
	for time.Now().Before(deadline) {
		if err := limiter.Wait(ctx); err != nil {

			// The time budget elapsed while waiting for a token.
			break
		}

		endpoint := h.cfg.Endpoints[submitted%len(h.cfg.Endpoints)]
		submitted++

		sem <- struct{}{}
		wg.Add(1)

		go func(ep Endpoint) {
			defer wg.Done()
			defer func() { <-sem }()
			h.issue(ep, &col)
		}(endpoint)
	}

	wg.Wait()

	result := col.result(time.Since(start))
	h.log.Infow("loadtest completed",
		"total", result.Total, "successful", result.Successful, "errors", result.Errors, "warnings", result.Warnings,
		"successrate", result.SuccessRate, "avg", result.AvgLatency, "p95", result.P95Latency,
		"passed", result.Passed, "failedgates", result.FailedGates)

	return result, nil
}

// issue sends a single request and classifies the response. A transport
// fault is counted as an error and never stops the submission loop; only
// requests that produced a response contribute a latency.
func (h *Harness) issue(ep Endpoint, col *collector) {
	start := time.Now()
	resp, err := h.client.R().Get(ep.Path)
	latency := time.Since(start)

	switch {
	case err != nil:
		err = errors.Wrapf(err, "request %s", ep.Path)
		h.log.Warnw("loadtest request failed", "endpoint", ep.Path, "ERROR", err)
		col.recordFault()

	case resp.StatusCode() != http.StatusOK:
		h.log.Warnw("loadtest unexpected status", "endpoint", ep.Path, "status", resp.StatusCode())
		col.record(latency, OutcomeError)

	default:
		outcome := OutcomeSuccess
		if ep.Validate != nil {
			outcome = ep.Validate(resp.Body())
		}
		if outcome != OutcomeSuccess {
			h.log.Warnw("loadtest response rejected", "endpoint", ep.Path, "outcome", outcome)
		}
		col.record(latency, outcome)
	}
}

// collector accumulates per-request observations across the worker pool.
type collector struct {
	mu        sync.Mutex
	total     int
	success   int
	errors    int
	warnings  int
	latencies []time.Duration
}

func (c *collector) record(latency time.Duration, outcome Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	c.latencies = append(c.latencies, latency)

	switch outcome {
	case OutcomeSuccess:
		c.success++
	case OutcomeWarning:
		c.warnings++
	case OutcomeError:
		c.errors++
	}
}

// recordFault counts a request that never produced a response. The elapsed
// time of a fault is not a response latency, so it stays out of the
// percentile pool.
func (c *collector) recordFault() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	c.errors++
}

func (c *collector) result(elapsed time.Duration) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := Result{
		Duration:   elapsed,
		Total:      c.total,
		Successful: c.success,
		Errors:     c.errors,
		Warnings:   c.warnings,
		AvgLatency: average(c.latencies),
		P95Latency: Percentile(c.latencies, 95),
	}
	if c.total > 0 {
		r.SuccessRate = float64(c.success) / float64(c.total) * 100
	}

	r.evaluateGates()

	return r
}
