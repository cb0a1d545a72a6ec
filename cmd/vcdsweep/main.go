/*
Copyright The vcd-e2e Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// vcdsweep deletes leftover test resources from a vCloud Director
// organization. Connection settings come from the same environment
// variables the test suite reads.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/deterok/vcd-e2e/pkg/logging"
	"github.com/deterok/vcd-e2e/pkg/sweep"
	"github.com/deterok/vcd-e2e/pkg/vcd"
)

var (
	prefix      string
	maxAge      time.Duration
	interval    time.Duration
	dryRun      bool
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "vcdsweep",
	Short: "Delete leftover test resources from a vCloud Director org",
	Long: `vcdsweep finds vApps, independent disks, org VDC networks and captured
templates whose names carry the test prefix, and deletes the ones older
than the age threshold. With --interval it keeps sweeping until
interrupted.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&prefix, "prefix", "e2e-", "name prefix that marks test resources")
	rootCmd.Flags().DurationVar(&maxAge, "max-age", 2*time.Hour, "minimum resource age before deletion (0 sweeps regardless of age)")
	rootCmd.Flags().DurationVar(&interval, "interval", 0, "sweep repeatedly at this interval (0 runs once)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log what would be deleted without deleting")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
}

func run(ctx context.Context) error {
	log := logging.SweepLogger

	cfg := vcd.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	client := vcd.NewClient(cfg)
	defer func() {
		if err := client.Disconnect(); err != nil {
			log.Warn("logout failed", "error", err)
		}
	}()

	if metricsAddr != "" {
		go serveMetrics(log, metricsAddr)
	}

	sweeper := sweep.New(client, sweep.Options{
		Prefix: prefix,
		MaxAge: maxAge,
		DryRun: dryRun,
	})

	for {
		runCtx, cancel := context.WithTimeout(ctx, cfg.TaskTimeout)
		summary, err := sweeper.Run(runCtx)
		cancel()
		if err != nil {
			log.Error(err, "sweep run had failures", "swept", summary.Total())
			if interval == 0 {
				return err
			}
		}

		if interval == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func serveMetrics(log *logging.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error(err, "metrics listener failed")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
