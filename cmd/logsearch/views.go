package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinytelemetry/logsearch/internal/model"
)

var (
	viewsOutput string
	viewColumns []string
	viewFilter  string
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List views and their columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runViewsList(cmd.Context(), newClient(cfg), cmd.OutOrStdout(), viewsOutput)
	},
}

var viewsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create or replace a view",
	Long: `Create or replace a view. Columns are given as name=query[:agg]; a column
without an aggregation is listed but never charted.

  logsearch views create errors --filter "level = 'ERROR'" \
    --column "latency_ms=logdata->'latency':avg" --column "status=logdata->'status'"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := parseViewDefinition(args[0], viewFilter, viewColumns)
		if err != nil {
			return err
		}
		if err := newClient(cfg).CreateView(cmd.Context(), def); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "View %q saved with %d columns.\n", args[0], len(def.Columns))
		return nil
	},
}

var viewsDeleteCmd = &cobra.Command{
	Use:     "delete [name]",
	Aliases: []string{"rm"},
	Short:   "Delete a view",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient(cfg).DeleteView(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "View %q deleted.\n", args[0])
		return nil
	},
}

func init() {
	viewsCmd.Flags().StringVarP(&viewsOutput, "output", "o", outputTable, "output format: table, json or yaml")

	viewsCreateCmd.Flags().StringArrayVar(&viewColumns, "column", nil, "column as name=query[:agg] (repeatable)")
	viewsCreateCmd.Flags().StringVar(&viewFilter, "filter", "true", "row filter query")

	viewsCmd.AddCommand(viewsCreateCmd)
	viewsCmd.AddCommand(viewsDeleteCmd)
}

func runViewsList(ctx context.Context, r model.CatalogReader, w io.Writer, format string) error {
	views, err := r.ListViews(ctx)
	if err != nil {
		return err
	}

	if format != outputTable {
		return writeStructured(w, format, views)
	}

	if len(views) == 0 {
		fmt.Fprintln(w, "No views. Run 'logsearch views create' to add one.")
		return nil
	}

	var rows [][]string
	for _, v := range views {
		if len(v.Cols) == 0 {
			rows = append(rows, []string{v.Name, "", ""})
			continue
		}
		for i, c := range v.Cols {
			name := ""
			if i == 0 {
				name = v.Name
			}
			agg := c.Agg
			if agg == "" {
				agg = "-"
			}
			rows = append(rows, []string{name, c.Metric, agg})
		}
	}
	fmt.Fprintln(w, renderTable([]string{"VIEW", "COLUMN", "AGG"}, rows))
	return nil
}

// parseViewDefinition builds a view from name=query[:agg] column flags. The
// aggregation is split at the last colon so queries may contain colons.
func parseViewDefinition(name, filter string, columns []string) (model.ViewDefinition, error) {
	def := model.ViewDefinition{
		Filter: model.FilterDefinition{Name: name, Query: filter},
	}
	for _, arg := range columns {
		colName, rest, ok := strings.Cut(arg, "=")
		if !ok || colName == "" || rest == "" {
			return def, fmt.Errorf("invalid column %q: want name=query[:agg]", arg)
		}
		col := model.ColumnDefinition{Name: colName, Query: rest}
		if i := strings.LastIndex(rest, ":"); i >= 0 && isAggregation(rest[i+1:]) {
			col.Query, col.MetricAgg = rest[:i], rest[i+1:]
		}
		def.Columns = append(def.Columns, col)
	}
	return def, nil
}

func isAggregation(s string) bool {
	switch s {
	case "avg", "sum", "min", "max", "count":
		return true
	}
	return false
}
