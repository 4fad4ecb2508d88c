package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinytelemetry/logsearch/internal/mockbackend"
)

var (
	demoAddr      string
	demoLatency   time.Duration
	demoServeOnly bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Open the dashboard against a built-in sample server",
	Long: `Start an in-process server with synthetic views, series and log rows and
open the dashboard against it. With --serve-only the server runs until
interrupted so other clients can point at it.`,
	Annotations: map[string]string{interactiveAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mockbackend.NewServer(demoAddr, nil, mockbackend.Options{Latency: demoLatency})
		if err := srv.Start(); err != nil {
			return fmt.Errorf("starting demo server: %w", err)
		}
		defer srv.Stop()

		if demoServeOnly {
			fmt.Fprintf(cmd.OutOrStdout(), "Serving sample data at %s (ctrl+c to stop)\n", srv.URL())
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		}

		c := cfg
		c.ServerURL = srv.URL()
		return runTUI(c)
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoAddr, "addr", "", "listen address (default a random local port)")
	demoCmd.Flags().DurationVar(&demoLatency, "latency", 150*time.Millisecond, "delay added to every response")
	demoCmd.Flags().BoolVar(&demoServeOnly, "serve-only", false, "run the server without the dashboard")
}
