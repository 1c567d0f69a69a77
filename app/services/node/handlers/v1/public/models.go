package public

import "github.com/quantumcoin/node/foundation/ledger"

type statusResponse struct {
	Status        string  `json:"status"`
	Height        uint64  `json:"height"`
	Peers         int     `json:"peers"`
	Mempool       int     `json:"mempool"`
	SyncProgress  float64 `json:"sync_progress"`
	LastBlockTime int64   `json:"last_block_time"`
	Network       string  `json:"network"`
	ChainID       string  `json:"chain_id"`
	UptimeSeconds int64   `json:"uptime_seconds"`
}

type blocksResponse struct {
	Blocks []ledger.Record `json:"blocks"`
	Total  uint64          `json:"total"`
	Limit  int             `json:"limit"`
}

type statsResponse struct {
	Height        uint64 `json:"height"`
	TotalSupply   uint64 `json:"total_supply"`
	Difficulty    string `json:"difficulty"`
	HashRate      string `json:"hash_rate"`
	Peers         int    `json:"peers"`
	Mempool       int    `json:"mempool"`
	LastBlockTime int64  `json:"last_block_time"`
	Network       string `json:"network"`
	ChainID       string `json:"chain_id"`
}

type blockchainResponse struct {
	Blocks []ledger.Record `json:"blocks"`
	Height uint64          `json:"height"`
}

type balanceResponse struct {
	Address   string `json:"address"`
	Balance   uint64 `json:"balance"`
	Confirmed uint64 `json:"confirmed_balance"`
}

type keySizes struct {
	PublicKeyBytes  int `json:"public_key_bytes"`
	PrivateKeyBytes int `json:"private_key_bytes"`
}

type walletResponse struct {
	Success       bool     `json:"success"`
	Address       string   `json:"address,omitempty"`
	PublicKey     string   `json:"public_key,omitempty"`
	PrivateKey    string   `json:"private_key,omitempty"`
	Algorithm     string   `json:"algorithm,omitempty"`
	SecurityLevel string   `json:"security_level,omitempty"`
	KeySizes      keySizes `json:"key_sizes,omitzero"`
	Error         string   `json:"error,omitempty"`
}
