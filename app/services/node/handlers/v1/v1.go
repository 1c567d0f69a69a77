// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/quantumcoin/node/app/services/node/handlers/v1/public"
	"github.com/quantumcoin/node/business/core/node"
	"github.com/quantumcoin/node/foundation/events"
	"github.com/quantumcoin/node/foundation/web"
	"go.uber.org/zap"
)

// The public paths are the node's wire contract and carry no version prefix.
const version = ""

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log  *zap.SugaredLogger
	Node *node.Core
	Evts *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:  cfg.Log,
		Node: cfg.Node,
		Evts: cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/status", pbl.Status)
	app.Handle(http.MethodGet, version, "/explorer/blocks", pbl.Blocks)
	app.Handle(http.MethodGet, version, "/explorer/stats", pbl.Stats)
	app.Handle(http.MethodGet, version, "/blockchain", pbl.Blockchain)
	app.Handle(http.MethodGet, version, "/balance/:address", pbl.Balance)
	app.Handle(http.MethodPost, version, "/wallet/generate", pbl.GenerateWallet)
	app.Handle(http.MethodGet, version, "/events", pbl.Events)

	// Requests that match no route still receive a 200 JSON body listing
	// the known paths.
	app.HandleNoMatch(pbl.UnknownPath)
}
