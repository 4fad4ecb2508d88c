package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tinytelemetry/logsearch/internal/model"
)

var metricsOutput string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List metric names the server can aggregate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMetricsList(cmd.Context(), newClient(cfg), cmd.OutOrStdout(), metricsOutput)
	},
}

func init() {
	metricsCmd.Flags().StringVarP(&metricsOutput, "output", "o", outputTable, "output format: table, json or yaml")
}

func runMetricsList(ctx context.Context, r model.CatalogReader, w io.Writer, format string) error {
	names, err := r.ListMetrics(ctx)
	if err != nil {
		return err
	}
	if format != outputTable {
		return writeStructured(w, format, names)
	}
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	return nil
}
