package ledger_test

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/quantumcoin/node/foundation/ledger"
)

const testDifficulty = 0x1d00ffff

func newTestLedger() *ledger.Ledger {
	return ledger.New(ledger.Config{
		StartHeight:     150247,
		GenesisHash:     ledger.GenesisHash,
		TotalSupply:     7512937500000000,
		Difficulty:      testDifficulty,
		PeerBaseline:    12,
		MempoolBaseline: 45,
		HashRate:        1.2e12,
		BlockInterval:   600 * time.Second,
	})
}

func Test_BuildRecord(t *testing.T) {
	rec := ledger.BuildRecord(150248, 1700000000, "prevhash", testDifficulty)

	hash := sha256.Sum256([]byte(fmt.Sprintf("%d%d%s%s", 150248, 1700000000, "prevhash", "quantumcoin")))
	if rec.Hash != hex.EncodeToString(hash[:]) {
		t.Errorf("error: expected hash %s got %s", hex.EncodeToString(hash[:]), rec.Hash)
	}

	merkle := sha256.Sum256([]byte("merkle150248"))
	if rec.MerkleRoot != hex.EncodeToString(merkle[:]) {
		t.Errorf("error: expected merkle root %s got %s", hex.EncodeToString(merkle[:]), rec.MerkleRoot)
	}

	if rec.Transactions != int(1+150248%50) {
		t.Errorf("error: expected %d transactions got %d", 1+150248%50, rec.Transactions)
	}
	if rec.Size != int(1000+150248%3000) {
		t.Errorf("error: expected size %d got %d", 1000+150248%3000, rec.Size)
	}
	if rec.Nonce != 150248*12345+67890 {
		t.Errorf("error: expected nonce %d got %d", 150248*12345+67890, rec.Nonce)
	}
	if rec.Difficulty != "0x1d00ffff" {
		t.Errorf("error: expected difficulty 0x1d00ffff got %s", rec.Difficulty)
	}
	if rec.PrevHash != "prevhash" {
		t.Errorf("error: expected previous hash to round trip, got %s", rec.PrevHash)
	}

	// The same inputs must produce the same record.
	if again := ledger.BuildRecord(150248, 1700000000, "prevhash", testDifficulty); again != rec {
		t.Error("error: expected record construction to be deterministic")
	}
}

func Test_SeedEstablishesInvariants(t *testing.T) {
	lgr := newTestLedger()
	snap := lgr.Snapshot()

	if len(snap.Window) != 10 {
		t.Fatalf("error: expected a full window of 10 records got %d", len(snap.Window))
	}

	checkChain(t, snap)

	if snap.Window[0].PrevHash != ledger.GenesisHash {
		t.Errorf("error: expected oldest record to chain from the genesis hash got %s", snap.Window[0].PrevHash)
	}

	// Consecutive timestamps must step by the block interval.
	for i := 1; i < len(snap.Window); i++ {
		if got := snap.Window[i].Timestamp - snap.Window[i-1].Timestamp; got != 600 {
			t.Errorf("error: expected 600s spacing between records got %ds", got)
		}
	}
}

func Test_AdvanceMaintainsInvariants(t *testing.T) {
	lgr := newTestLedger()

	for i := 0; i < 25; i++ {
		rec := lgr.Advance()
		snap := lgr.Snapshot()

		if len(snap.Window) != 10 {
			t.Fatalf("error: after advance %d expected window of 10 got %d", i+1, len(snap.Window))
		}
		if snap.Height != 150247+uint64(i+1) {
			t.Fatalf("error: after advance %d expected height %d got %d", i+1, 150247+i+1, snap.Height)
		}
		if snap.Height != rec.Height {
			t.Fatalf("error: expected height to match the produced record")
		}
		if snap.TipHash != rec.Hash {
			t.Fatalf("error: expected the tip hash to match the produced record")
		}

		checkChain(t, snap)
	}
}

func Test_SnapshotIsolation(t *testing.T) {
	lgr := newTestLedger()

	snap := lgr.Snapshot()
	heightBefore := snap.Height
	tipBefore := snap.Window[len(snap.Window)-1].Hash

	lgr.Advance()
	lgr.Advance()

	if snap.Height != heightBefore {
		t.Error("error: expected snapshot height to be unaffected by later advances")
	}
	if snap.Window[len(snap.Window)-1].Hash != tipBefore {
		t.Error("error: expected snapshot window to be unaffected by later advances")
	}
}

// checkChain validates height continuity, hash linkage and the tip fields
// over a snapshot.
func checkChain(t *testing.T, snap ledger.Snapshot) {
	t.Helper()

	for i := 1; i < len(snap.Window); i++ {
		earlier := snap.Window[i-1]
		later := snap.Window[i]

		if later.Height != earlier.Height+1 {
			t.Fatalf("error: expected gap free heights, got %d after %d", later.Height, earlier.Height)
		}
		if later.PrevHash != earlier.Hash {
			t.Fatalf("error: broken hash linkage at height %d", later.Height)
		}
	}

	last := snap.Window[len(snap.Window)-1]
	if snap.Height != last.Height {
		t.Fatalf("error: expected height %d to match last record height %d", snap.Height, last.Height)
	}
	if snap.TipHash != last.Hash {
		t.Fatalf("error: expected tip hash to match last record hash")
	}
}
