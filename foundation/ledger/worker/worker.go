// Package worker implements the background production of simulated blocks.
package worker

import (
	"sync"
	"time"

	"github.com/quantumcoin/node/foundation/ledger"
)

// Worker manages the single goroutine that advances the ledger on the block
// interval. There is exactly one producer; it never runs concurrently with
// itself.
type Worker struct {
	ledger    *ledger.Ledger
	wg        sync.WaitGroup
	ticker    *time.Ticker
	shut      chan struct{}
	evHandler ledger.EventHandler
}

// Run creates a worker and starts the block production goroutine. Run does
// not return until the goroutine is up and running.
func Run(lgr *ledger.Ledger, evHandler ledger.EventHandler) *Worker {
	w := Worker{
		ledger:    lgr,
		ticker:    time.NewTicker(lgr.BlockInterval()),
		shut:      make(chan struct{}),
		evHandler: evHandler,
	}

	w.wg.Add(1)

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.produceBlocks()
	}()

	<-hasStarted

	return &w
}

// Shutdown terminates the goroutine performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.ticker.Stop()
	close(w.shut)
	w.wg.Wait()
}

// produceBlocks advances the ledger by one record on each ticker firing.
// There is no catch-up for missed ticks; drift is acceptable.
func (w *Worker) produceBlocks() {
	w.evHandler("worker: produceBlocks: G started")
	defer w.evHandler("worker: produceBlocks: G completed")

	for {
		select {
		case <-w.ticker.C:
			rec := w.ledger.Advance()
			w.evHandler("worker: produceBlocks: produced block: height %d hash %s", rec.Height, rec.Hash[:16])

		case <-w.shut:
			return
		}
	}
}
