package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tinytelemetry/logsearch/internal/catalog"
	"github.com/tinytelemetry/logsearch/internal/humanize"
	"github.com/tinytelemetry/logsearch/internal/logparse"
	"github.com/tinytelemetry/logsearch/internal/logstore"
	"github.com/tinytelemetry/logsearch/internal/model"
	"github.com/tinytelemetry/logsearch/internal/timerange"
)

var (
	fetchLast        time.Duration
	fetchStart       string
	fetchEnd         string
	fetchRows        int
	fetchDensityOnly bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one refresh and print the series and first log rows",
	Long: `Run one dashboard refresh without the UI: fetch the density histogram, every
aggregated column of the view and the first page of logs, then print them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := newClient(cfg)
		if _, err := client.Health(ctx); err != nil {
			return fmt.Errorf("server %s unreachable: %w", client.BaseURL(), err)
		}

		times, err := resolveRange(time.Now().UTC(), fetchLast, fetchStart, fetchEnd)
		if err != nil {
			return err
		}

		var store *logstore.Store
		if fetchDensityOnly {
			store = logstore.NewDensityStore(client, times)
		} else {
			store = logstore.New(client, times, logstore.WithDensityBuckets(cfg.DensityBuckets))
		}
		store.SetView(resolveView(ctx, client, cfg.View))
		store.Update(ctx)
		store.Wait()

		return printFetch(cmd.OutOrStdout(), store, fetchRows, fetchDensityOnly)
	},
}

func init() {
	fetchCmd.Flags().DurationVar(&fetchLast, "last", 0, "range ending now, e.g. 15m or 24h")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "range start (RFC 3339, epoch ms, or a date)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "range end (default now)")
	fetchCmd.Flags().IntVar(&fetchRows, "rows", 10, "log rows to print")
	fetchCmd.Flags().BoolVar(&fetchDensityOnly, "density-only", false, "print only the density summary")
}

// resolveRange builds the range store from either --last or --start/--end.
// With neither, the store keeps its defaults.
func resolveRange(now time.Time, last time.Duration, start, end string) (*timerange.Store, error) {
	times := timerange.NewAt(now)
	if last > 0 && (start != "" || end != "") {
		return nil, errors.New("use either --last or --start/--end")
	}
	if last > 0 {
		r := timerange.Last(last, now)
		times.Set(r.Start, r.End)
		return times, nil
	}
	if start != "" {
		t, err := timerange.ParseInstant(start, now)
		if err != nil {
			return nil, err
		}
		times.SetStart(t)
	}
	if end != "" {
		t, err := timerange.ParseInstant(end, now)
		if err != nil {
			return nil, err
		}
		times.SetEnd(t)
	}
	return times, nil
}

// resolveView looks the preferred view up in the catalog. When the catalog
// cannot be read the view is used by name alone, without columns.
func resolveView(ctx context.Context, r model.CatalogReader, preferred string) model.View {
	cat, err := catalog.Load(ctx, r)
	if err != nil {
		log.Warn().Err(err).Msg("fetch: catalog unavailable, charting density only")
		name := preferred
		if name == "" {
			name = model.DefaultViewName
		}
		return model.View{Name: name}
	}
	return cat.DefaultView(preferred)
}

func printFetch(w io.Writer, store *logstore.Store, rows int, densityOnly bool) error {
	st := store.Snapshot()

	fmt.Fprintf(w, "view   %s\n", st.ViewName)
	fmt.Fprintf(w, "range  %s → %s (%s)\n",
		st.Range.Start.UTC().Format(time.RFC3339),
		st.Range.End.UTC().Format(time.RFC3339),
		st.Range.Duration())

	if densityOnly {
		nol := st.Metrics[model.NumberOfLogs]
		fmt.Fprintf(w, "peak   %s logs/bucket over %d buckets\n", humanize.HumanReadable(store.MaxDensity()), len(nol.Data))
		return nil
	}

	charted := store.Graphics()
	names := []string{model.NumberOfLogs}
	for _, n := range store.MetricNames() {
		if n != model.NumberOfLogs {
			names = append(names, n)
		}
	}

	var lines [][]string
	for _, n := range names {
		m := st.Metrics[n]
		last := "-"
		if v, ok := m.Data.Last(); ok {
			last = humanize.HumanReadable(v)
		}
		yes := "no"
		if slices.Contains(charted, n) {
			yes = "yes"
		}
		lines = append(lines, []string{n, strconv.Itoa(len(m.Data)), humanize.HumanReadable(m.Data.Max()), last, yes})
	}
	fmt.Fprintln(w, renderTable([]string{"SERIES", "BUCKETS", "MAX", "LAST", "CHARTED"}, lines))

	parsed := logparse.ParseRows(st.Logs)
	fmt.Fprintf(w, "%d log rows\n", len(parsed))
	for _, row := range parsed[:clampRows(rows, len(parsed))] {
		ts := row.RawTime
		if !row.Time.IsZero() {
			ts = row.Time.Format(time.RFC3339Nano)
		}
		fmt.Fprintf(w, "  %-24s %-5s %s\n", ts, row.Level, row.Message())
	}
	return nil
}

func clampRows(want, have int) int {
	return max(0, min(want, have))
}
