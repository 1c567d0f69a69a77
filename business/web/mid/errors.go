package mid

import (
	"context"
	"net/http"

	"github.com/quantumcoin/node/business/web/errs"
	"github.com/quantumcoin/node/foundation/web"
	"go.uber.org/zap"
)

// Errors handles errors coming out of the call chain. The transport contract
// is that every request receives HTTP 200 with a JSON body: a handler fault
// is logged and converted into a recovered-response body, never into an HTTP
// error status.
func Errors(log *zap.SugaredLogger) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			// If the context is missing this value, request the service
			// to be shutdown gracefully.
			v, err := web.GetValues(ctx)
			if err != nil {
				return err
			}

			// Run the next handler and catch any propagated error.
			if err := handler(ctx, w, r); err != nil {

				// Log the error.
				log.Errorw("request error", "traceid", v.TraceID, "message", err)

				// Respond with the recovered form, still HTTP 200.
				if err := web.Respond(ctx, w, errs.NewRecovered(err), http.StatusOK); err != nil {
					return err
				}
			}

			// The error has been handled so no further propagation.
			return nil
		}

		return h
	}

	return m
}
