// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/quantumcoin/node/business/core/node"
	"github.com/quantumcoin/node/business/web/errs"
	"github.com/quantumcoin/node/foundation/events"
	"github.com/quantumcoin/node/foundation/wallet"
	"github.com/quantumcoin/node/foundation/web"
	"go.uber.org/zap"
)

// availableEndpoints is the path list returned for unmatched requests.
var availableEndpoints = []string{
	"/status",
	"/explorer/blocks",
	"/explorer/stats",
	"/blockchain",
	"/balance/{address}",
	"/wallet/generate",
}

// Handlers manages the set of node endpoints.
type Handlers struct {
	Log  *zap.SugaredLogger
	Node *node.Core
	WS   websocket.Upgrader
	Evts *events.Events
}

// Status returns the node health view.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	status := h.Node.Status()

	resp := statusResponse{
		Status:        status.Status,
		Height:        status.Height,
		Peers:         status.Peers,
		Mempool:       status.Mempool,
		SyncProgress:  status.SyncProgress,
		LastBlockTime: status.LastBlockTime,
		Network:       node.Network,
		ChainID:       node.ChainID,
		UptimeSeconds: status.UptimeSeconds,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Blocks returns the most recent blocks, clamped to the requested limit.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	limit := web.QueryInt(r, "limit", node.DefaultBlockLimit)

	blocks, total, limit := h.Node.RecentBlocks(limit)

	resp := blocksResponse{
		Blocks: blocks,
		Total:  total,
		Limit:  limit,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Stats returns the aggregate chain statistics.
func (h Handlers) Stats(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	stats := h.Node.Stats()

	resp := statsResponse{
		Height:        stats.Height,
		TotalSupply:   stats.TotalSupply,
		Difficulty:    stats.Difficulty,
		HashRate:      stats.HashRate,
		Peers:         stats.Peers,
		Mempool:       stats.Mempool,
		LastBlockTime: stats.LastBlockTime,
		Network:       node.Network,
		ChainID:       node.ChainID,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Blockchain returns the full retained window.
func (h Handlers) Blockchain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks, height := h.Node.Blockchain()

	resp := blockchainResponse{
		Blocks: blocks,
		Height: height,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balance returns the balance view for the specified address.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	balance := h.Node.Balance(address)

	resp := balanceResponse{
		Address:   balance.Address,
		Balance:   balance.Balance,
		Confirmed: balance.Confirmed,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// GenerateWallet produces a new credential pair. A collaborator fault is the
// only end-to-end failure visible to a caller and it is reported through the
// success field, still with HTTP 200.
func (h Handlers) GenerateWallet(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	creds, err := h.Node.GenerateCredentials()
	if err != nil {
		h.Log.Errorw("wallet generate", "traceid", web.GetTraceID(ctx), "ERROR", err)

		resp := walletResponse{
			Success: false,
			Error:   err.Error(),
		}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}

	resp := walletResponse{
		Success:       true,
		Address:       creds.Address,
		PublicKey:     creds.PublicKey,
		PrivateKey:    creds.PrivateKey,
		Algorithm:     wallet.Algorithm,
		SecurityLevel: wallet.SecurityLevel,
		KeySizes: keySizes{
			PublicKeyBytes:  creds.PublicKeyBytes,
			PrivateKeyBytes: creds.PrivateKeyBytes,
		},
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// UnknownPath answers any request that matched no registered route. The body
// describes the fault and lists the known paths, still with HTTP 200.
func (h Handlers) UnknownPath(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, errs.NewUnknownPath(availableEndpoints), http.StatusOK)
}

// Events handles a web socket to provide produced-block events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return err
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// The upgrader writes its own HTTP response on failure, and once the
	// connection is hijacked no middleware can respond either. Faults on
	// this handler are logged, never propagated.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Errorw("events upgrade", "traceid", v.TraceID, "ERROR", err)
		return nil
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
