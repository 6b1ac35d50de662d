package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	coremetrics "github.com/kilianp07/co2path/core/metrics"
	"github.com/kilianp07/co2path/infra/logger"
	"github.com/kilianp07/co2path/infra/store"
	"github.com/kilianp07/co2path/jobs/backfill"
)

var backfillFlags struct {
	runID    string
	building string
	start    string
	end      string
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Replay stored results into the configured metrics sinks",
	Args:  cobra.NoArgs,
	RunE:  runBackfill,
}

func init() {
	f := backfillCmd.Flags()
	f.StringVar(&backfillFlags.runID, "run-id", "", "only replay this run")
	f.StringVar(&backfillFlags.building, "building", "", "only replay this building")
	f.StringVar(&backfillFlags.start, "start", "", "earliest record time (RFC 3339)")
	f.StringVar(&backfillFlags.end, "end", "", "latest record time (RFC 3339)")
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	q := store.Query{RunID: backfillFlags.runID, BuildingID: backfillFlags.building}
	var err error
	if q.Start, err = parseFlagTime(backfillFlags.start); err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	if q.End, err = parseFlagTime(backfillFlags.end); err != nil {
		return fmt.Errorf("--end: %w", err)
	}

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	if c, ok := sink.(interface{ Close() }); ok {
		defer c.Close()
	}
	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("result store: %w", err)
	}
	defer func() { _ = st.Close() }()

	n, err := backfill.Backfill(cmd.Context(), st, sink, q)
	if err != nil {
		return err
	}
	logger.New("backfill").Infof("replayed %d records from %s", n, cfg.Store.Path)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d records replayed\n", n)
	return nil
}

func parseFlagTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
