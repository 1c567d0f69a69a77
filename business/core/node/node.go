// Package node provides the read API over the simulated chain state plus
// credential generation. The core is a stateless projector: every read is
// derived from a ledger snapshot.
package node

import (
	"fmt"
	"time"

	"github.com/quantumcoin/node/foundation/ledger"
	"github.com/quantumcoin/node/foundation/wallet"
)

// Network identity reported by the status surface.
const (
	Network = "mainnet"
	ChainID = "qtc-mainnet-1"
)

// Limits applied to block listing queries.
const (
	minBlockLimit     = 1
	maxBlockLimit     = 100
	DefaultBlockLimit = 10
)

// Core manages the set of APIs for node access.
type Core struct {
	ledger *ledger.Ledger
	keyGen wallet.KeyGenerator
}

// NewCore constructs a core for node api access.
func NewCore(lgr *ledger.Ledger, keyGen wallet.KeyGenerator) *Core {
	return &Core{
		ledger: lgr,
		keyGen: keyGen,
	}
}

// Status represents the node health view. The node has no real fault
// detection so the health flag is always healthy; peers and mempool vary with
// wall clock time for display plausibility only.
type Status struct {
	Status        string
	Height        uint64
	Peers         int
	Mempool       int
	SyncProgress  float64
	LastBlockTime int64
	UptimeSeconds int64
}

// Status returns the current node health view.
func (c *Core) Status() Status {
	snap := c.ledger.Snapshot()
	now := time.Now()

	return Status{
		Status:        "healthy",
		Height:        snap.Height,
		Peers:         peerCount(snap, now),
		Mempool:       mempoolCount(snap, now),
		SyncProgress:  1.0,
		LastBlockTime: now.Unix() - 300,
		UptimeSeconds: int64(now.UTC().Sub(snap.StartedAt).Seconds()),
	}
}

// RecentBlocks returns the last limit records in ascending height order along
// with the chain height and the clamped limit that was applied. Out of range
// limits are clamped to [1,100].
func (c *Core) RecentBlocks(limit int) ([]ledger.Record, uint64, int) {
	if limit < minBlockLimit {
		limit = minBlockLimit
	}
	if limit > maxBlockLimit {
		limit = maxBlockLimit
	}

	snap := c.ledger.Snapshot()

	blocks := snap.Window
	if len(blocks) > limit {
		blocks = blocks[len(blocks)-limit:]
	}

	return blocks, snap.Height, limit
}

// Stats represents the aggregate chain statistics view.
type Stats struct {
	Height        uint64
	TotalSupply   uint64
	Difficulty    string
	HashRate      string
	Peers         int
	Mempool       int
	LastBlockTime int64
}

// Stats returns the aggregate chain statistics.
func (c *Core) Stats() Stats {
	snap := c.ledger.Snapshot()
	now := time.Now()

	return Stats{
		Height:        snap.Height,
		TotalSupply:   snap.TotalSupply,
		Difficulty:    fmt.Sprintf("%.8f", float64(snap.Difficulty)/1e6),
		HashRate:      fmt.Sprintf("%.2f TH/s", snap.HashRate/1e12),
		Peers:         peerCount(snap, now),
		Mempool:       mempoolCount(snap, now),
		LastBlockTime: now.Unix() - 300,
	}
}

// Blockchain returns the full retained window plus the chain height.
func (c *Core) Blockchain() ([]ledger.Record, uint64) {
	snap := c.ledger.Snapshot()
	return snap.Window, snap.Height
}

// Balance represents the balance view for an address. There is no real
// ledger of account balances to query, so the values are always zero.
type Balance struct {
	Address   string
	Balance   uint64
	Confirmed uint64
}

// Balance returns the zero balance view for the specified address.
func (c *Core) Balance(address string) Balance {
	return Balance{
		Address: address,
	}
}

// GenerateCredentials produces a new credential pair through the key
// generation collaborator. A collaborator fault is surfaced to the caller.
func (c *Core) GenerateCredentials() (wallet.Credentials, error) {
	creds, err := wallet.Generate(c.keyGen)
	if err != nil {
		return wallet.Credentials{}, fmt.Errorf("generate credentials: %w", err)
	}

	return creds, nil
}

// peerCount derives the display peer count: the baseline plus a jitter from
// the wall clock second, floored at 8.
func peerCount(snap ledger.Snapshot, now time.Time) int {
	peers := snap.PeerBaseline + int(now.Unix()%5)
	if peers < 8 {
		peers = 8
	}
	return peers
}

// mempoolCount derives the display mempool depth the same way, floored at 10.
func mempoolCount(snap ledger.Snapshot, now time.Time) int {
	mempool := snap.MempoolBaseline + int(now.Unix()%20)
	if mempool < 10 {
		mempool = 10
	}
	return mempool
}
