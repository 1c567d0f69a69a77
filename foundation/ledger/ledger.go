// Package ledger maintains the simulated rolling view of the chain. A single
// background producer advances the state while the status API reads it
// through snapshots.
package ledger

import (
	"sync"
	"time"
)

// windowSize is the number of recent blocks retained in memory. Older blocks
// are evicted as new ones are produced.
const windowSize = 10

// GenesisHash seeds the first record of the window.
const GenesisHash = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"

// EventHandler defines a function that is called when events occur in the
// processing of new blocks.
type EventHandler func(v string, args ...any)

// Config represents the values required to construct the ledger.
type Config struct {
	StartHeight     uint64
	GenesisHash     string
	TotalSupply     uint64
	Difficulty      uint64
	PeerBaseline    int
	MempoolBaseline int
	HashRate        float64
	BlockInterval   time.Duration
	EvHandler       EventHandler
}

// Ledger manages the rolling window of simulated blocks. The producer worker
// is the sole writer; every read goes through Snapshot.
type Ledger struct {
	mu      sync.RWMutex
	height  uint64
	tipHash string
	window  []Record

	totalSupply     uint64
	difficulty      uint64
	peerBaseline    int
	mempoolBaseline int
	hashRate        float64
	blockInterval   time.Duration
	startedAt       time.Time
	evHandler       EventHandler
}

// New constructs a ledger seeded with a full window of records chained
// forward from the genesis hash, timestamped backwards from now at the block
// interval. All invariants hold before New returns, so readers can run as
// soon as the value exists.
func New(cfg Config) *Ledger {
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	l := Ledger{
		height:          cfg.StartHeight,
		tipHash:         cfg.GenesisHash,
		totalSupply:     cfg.TotalSupply,
		difficulty:      cfg.Difficulty,
		peerBaseline:    cfg.PeerBaseline,
		mempoolBaseline: cfg.MempoolBaseline,
		hashRate:        cfg.HashRate,
		blockInterval:   cfg.BlockInterval,
		startedAt:       time.Now().UTC(),
		evHandler:       ev,
	}

	interval := int64(cfg.BlockInterval / time.Second)
	now := time.Now().Unix()

	prevHash := cfg.GenesisHash
	for i := 0; i < windowSize; i++ {
		height := cfg.StartHeight - uint64(windowSize-1-i)
		timestamp := now - int64(windowSize-1-i)*interval

		rec := BuildRecord(height, timestamp, prevHash, cfg.Difficulty)
		l.window = append(l.window, rec)
		prevHash = rec.Hash
	}

	l.tipHash = prevHash
	l.evHandler("ledger: seeded %d blocks, tip height %d", len(l.window), l.height)

	return &l
}

// Advance builds the next record in the chain, appends it and evicts the
// oldest record once the window is full. The lock is held across the full
// build/append/evict/update sequence so a reader can never observe the height
// advanced without the matching record present.
func (l *Ledger) Advance() Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := BuildRecord(l.height+1, time.Now().Unix(), l.tipHash, l.difficulty)

	l.window = append(l.window, rec)
	if len(l.window) > windowSize {
		l.window = l.window[len(l.window)-windowSize:]
	}

	l.height = rec.Height
	l.tipHash = rec.Hash

	return rec
}

// Snapshot represents an immutable copy of the ledger at a point in time.
// Subsequent writes by the producer do not affect it.
type Snapshot struct {
	Height          uint64
	TipHash         string
	Window          []Record
	TotalSupply     uint64
	Difficulty      uint64
	PeerBaseline    int
	MempoolBaseline int
	HashRate        float64
	StartedAt       time.Time
}

// Snapshot returns a copy of the current window and counters for reader use.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	window := make([]Record, len(l.window))
	copy(window, l.window)

	return Snapshot{
		Height:          l.height,
		TipHash:         l.tipHash,
		Window:          window,
		TotalSupply:     l.totalSupply,
		Difficulty:      l.difficulty,
		PeerBaseline:    l.peerBaseline,
		MempoolBaseline: l.mempoolBaseline,
		HashRate:        l.hashRate,
		StartedAt:       l.startedAt,
	}
}

// BlockInterval returns the nominal spacing between produced blocks.
func (l *Ledger) BlockInterval() time.Duration {
	return l.blockInterval
}

// EvHandler returns the event handler the ledger was configured with.
func (l *Ledger) EvHandler() EventHandler {
	return l.evHandler
}
