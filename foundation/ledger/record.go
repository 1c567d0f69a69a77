package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// domainSalt is the domain separation string mixed into every block hash.
const domainSalt = "quantumcoin"

// Record represents one simulated block in the rolling window. A record is
// immutable once built.
type Record struct {
	Hash         string `json:"hash"`
	Height       uint64 `json:"height"`
	Timestamp    int64  `json:"timestamp"`
	Transactions int    `json:"transactions"`
	Size         int    `json:"size"`
	Difficulty   string `json:"difficulty"`
	Nonce        uint64 `json:"nonce"`
	MerkleRoot   string `json:"merkle_root"`
	PrevHash     string `json:"previous_hash"`
}

// BuildRecord constructs a single record from the height, timestamp and the
// hash of the preceding record. The block hash commits to all three inputs
// plus the domain salt. Transaction count, size and nonce are derived from
// the height so the chain stays deterministic for a given seed.
func BuildRecord(height uint64, timestamp int64, prevHash string, difficulty uint64) Record {
	data := fmt.Sprintf("%d%d%s%s", height, timestamp, prevHash, domainSalt)
	hash := sha256.Sum256([]byte(data))
	merkle := sha256.Sum256(fmt.Appendf(nil, "merkle%d", height))

	return Record{
		Hash:         hex.EncodeToString(hash[:]),
		Height:       height,
		Timestamp:    timestamp,
		Transactions: int(1 + height%50),
		Size:         int(1000 + height%3000),
		Difficulty:   fmt.Sprintf("0x%08x", difficulty),
		Nonce:        height*12345 + 67890,
		MerkleRoot:   hex.EncodeToString(merkle[:]),
		PrevHash:     prevHash,
	}
}
