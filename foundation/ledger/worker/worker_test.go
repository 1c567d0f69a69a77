package worker_test

import (
	"testing"
	"time"

	"github.com/quantumcoin/node/foundation/ledger"
	"github.com/quantumcoin/node/foundation/ledger/worker"
)

func Test_ProducerAdvancesLedger(t *testing.T) {
	lgr := ledger.New(ledger.Config{
		StartHeight:   150247,
		GenesisHash:   ledger.GenesisHash,
		Difficulty:    0x1d00ffff,
		BlockInterval: 10 * time.Millisecond,
	})

	ev := func(v string, args ...any) {}

	w := worker.Run(lgr, ev)

	// Give the producer room for several ticks, then stop it.
	time.Sleep(150 * time.Millisecond)
	w.Shutdown()

	snap := lgr.Snapshot()
	if snap.Height <= 150247 {
		t.Fatalf("error: expected the producer to advance past 150247 got %d", snap.Height)
	}
	if len(snap.Window) != 10 {
		t.Errorf("error: expected the window to stay at 10 records got %d", len(snap.Window))
	}

	// No production after shutdown.
	height := snap.Height
	time.Sleep(50 * time.Millisecond)
	if got := lgr.Snapshot().Height; got != height {
		t.Errorf("error: expected no production after shutdown, height moved %d -> %d", height, got)
	}
}
