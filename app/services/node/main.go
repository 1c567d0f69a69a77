package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/quantumcoin/node/app/services/node/handlers"
	"github.com/quantumcoin/node/business/core/node"
	"github.com/quantumcoin/node/business/loadtest"
	"github.com/quantumcoin/node/foundation/events"
	"github.com/quantumcoin/node/foundation/ledger"
	"github.com/quantumcoin/node/foundation/ledger/worker"
	"github.com/quantumcoin/node/foundation/logger"
	"github.com/quantumcoin/node/foundation/wallet"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("NODE")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			APIHost         string        `conf:"default:0.0.0.0:8080"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
		}
		Chain struct {
			StartHeight     uint64        `conf:"default:150247"`
			TotalSupply     uint64        `conf:"default:7512937500000000"`
			Difficulty      uint64        `conf:"default:486604799"`
			PeerBaseline    int           `conf:"default:12"`
			MempoolBaseline int           `conf:"default:45"`
			HashRate        float64       `conf:"default:1.2e12"`
			BlockInterval   time.Duration `conf:"default:600s"`
		}
		LoadTest struct {
			Enabled  bool          `conf:"default:false"`
			Duration time.Duration `conf:"default:120s"`
			Rate     float64       `conf:"default:16.67"`
			Workers  int           `conf:"default:20"`
			Timeout  time.Duration `conf:"default:5s"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "NODE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Chain Simulation Support

	// Block production events are logged and streamed to any websocket
	// client connected through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Send(s)
	}

	// The ledger value owns the rolling window of simulated blocks. It is
	// seeded with a full window before any reader runs.
	lgr := ledger.New(ledger.Config{
		StartHeight:     cfg.Chain.StartHeight,
		GenesisHash:     ledger.GenesisHash,
		TotalSupply:     cfg.Chain.TotalSupply,
		Difficulty:      cfg.Chain.Difficulty,
		PeerBaseline:    cfg.Chain.PeerBaseline,
		MempoolBaseline: cfg.Chain.MempoolBaseline,
		HashRate:        cfg.Chain.HashRate,
		BlockInterval:   cfg.Chain.BlockInterval,
		EvHandler:       ev,
	})

	// The worker advances the ledger on the block interval for the lifetime
	// of the process. It is the only writer to the ledger.
	w := worker.Run(lgr, ev)
	defer w.Shutdown()

	// The core projects the ledger state into the status API and owns the
	// credential generation collaborator.
	core := node.NewCore(lgr, wallet.RandomGenerator{})

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug router started", "host", cfg.Web.DebugHost)

	debugMux := handlers.DebugMux(build, log)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Start API Service

	log.Infow("startup", "status", "initializing API support")

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	apiMux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Node:     core,
		Evts:     evts,
	})

	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      apiMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Load Validation

	// When enabled, run the harness once against our own surface after the
	// listener is up and log the gated result. A failed run does not stop
	// the service; it keeps serving for inspection.
	if cfg.LoadTest.Enabled {
		go func() {
			time.Sleep(2 * time.Second)

			harness, err := loadtest.New(log, loadtest.Config{
				BaseURL:   fmt.Sprintf("http://%s", cfg.Web.APIHost),
				Duration:  cfg.LoadTest.Duration,
				Rate:      cfg.LoadTest.Rate,
				Workers:   cfg.LoadTest.Workers,
				Timeout:   cfg.LoadTest.Timeout,
				Endpoints: loadtest.DefaultEndpoints(),
			})
			if err != nil {
				log.Errorw("loadtest", "status", "construct failed", "ERROR", err)
				return
			}

			result, err := harness.Run(context.Background())
			if err != nil {
				log.Errorw("loadtest", "status", "run failed", "ERROR", err)
				return
			}

			if result.Passed {
				log.Infow("loadtest", "status", "PASSED", "total", result.Total, "p95", result.P95Latency)
				return
			}
			log.Errorw("loadtest", "status", "FAILED", "gates", result.FailedGates,
				"errors", result.Errors, "warnings", result.Warnings,
				"successrate", result.SuccessRate, "p95", result.P95Latency)
		}()
	}

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown api started")
		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop api service gracefully: %w", err)
		}
	}

	return nil
}
