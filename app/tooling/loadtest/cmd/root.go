// Package cmd contains the loadtest app.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/quantumcoin/node/business/loadtest"
	"github.com/quantumcoin/node/foundation/logger"
	"github.com/spf13/cobra"
)

var (
	baseURL  string
	duration time.Duration
	rps      float64
	workers  int
	timeout  time.Duration
)

func init() {
	rootCmd.Flags().StringVarP(&baseURL, "url", "u", "http://localhost:8080", "Base URL of the node under test.")
	rootCmd.Flags().DurationVarP(&duration, "duration", "d", 120*time.Second, "How long to sustain the load.")
	rootCmd.Flags().Float64VarP(&rps, "rate", "r", 16.67, "Target requests per second.")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 20, "Maximum requests in flight.")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "Per request timeout.")
}

var rootCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Drive sustained load against a node and gate the results",
	RunE:  runLoadTest,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runLoadTest(cmd *cobra.Command, args []string) error {
	log, err := logger.New("LOADTEST")
	if err != nil {
		return err
	}
	defer log.Sync()

	harness, err := loadtest.New(log, loadtest.Config{
		BaseURL:   baseURL,
		Duration:  duration,
		Rate:      rps,
		Workers:   workers,
		Timeout:   timeout,
		Endpoints: loadtest.DefaultEndpoints(),
	})
	if err != nil {
		return err
	}

	result, err := harness.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Duration:      %v\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("Total:         %d\n", result.Total)
	fmt.Printf("Successful:    %d\n", result.Successful)
	fmt.Printf("Errors:        %d\n", result.Errors)
	fmt.Printf("Warnings:      %d\n", result.Warnings)
	fmt.Printf("Success Rate:  %.2f%%\n", result.SuccessRate)
	fmt.Printf("Avg Latency:   %v\n", result.AvgLatency.Round(time.Microsecond))
	fmt.Printf("P95 Latency:   %v\n", result.P95Latency.Round(time.Microsecond))

	if !result.Passed {
		return fmt.Errorf("load test failed gates: %v", result.FailedGates)
	}

	fmt.Println("PASSED: all gates satisfied")
	return nil
}
