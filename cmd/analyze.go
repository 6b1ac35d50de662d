package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2path/app"
	"github.com/kilianp07/co2path/core/ranking"
	"github.com/kilianp07/co2path/infra/dataset"
	"github.com/kilianp07/co2path/pkg/export"
)

var analyzeFlags struct {
	criterion string
	budget    float64
	format    string
	output    string
	top       int
	noStore   bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dataset.csv>",
	Short: "Evaluate and rank every renovation scenario of the dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.criterion, "criterion", string(ranking.ByScore), "ranking criterion: score, co2, roi, amortization, npv")
	f.Float64Var(&analyzeFlags.budget, "budget", 0, "portfolio budget in CHF (0 = unlimited)")
	f.StringVarP(&analyzeFlags.format, "format", "f", "table", "output format: table, json, csv, yaml")
	f.StringVarP(&analyzeFlags.output, "output", "o", "", "output file (stdout when empty)")
	f.IntVar(&analyzeFlags.top, "top", 0, "only print the first N scenarios (0 = all)")
	f.BoolVar(&analyzeFlags.noStore, "no-store", false, "do not persist the results")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := checkFormat(analyzeFlags.format, "table", "json", "csv", "yaml"); err != nil {
		return err
	}
	criterion, err := ranking.ParseCriterion(analyzeFlags.criterion)
	if err != nil {
		return err
	}
	rep, err := analyzeFile(ctx, cmd, args[0], !analyzeFlags.noStore, app.Options{Criterion: criterion, BudgetCHF: analyzeFlags.budget})
	if err != nil {
		return err
	}

	rows := export.Scenarios(rep.Scenarios)
	if analyzeFlags.top > 0 && analyzeFlags.top < len(rows) {
		rows = rows[:analyzeFlags.top]
	}
	w, closeOut, err := openOutput(cmd, analyzeFlags.output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()
	switch analyzeFlags.format {
	case "json":
		return export.WriteJSON(w, rows)
	case "yaml":
		return export.WriteYAML(w, rows)
	case "csv":
		return export.WriteScenariosCSV(w, rows)
	}
	return writeTable(w, rep, analyzeFlags.top)
}

// analyzeFile reads the dataset and runs the analysis. Blocking validation
// issues are printed before the error is returned.
func analyzeFile(ctx context.Context, cmd *cobra.Command, path string, persist bool, opts app.Options) (*app.Report, error) {
	buildings, issues, err := dataset.ReadFile(path)
	if err != nil {
		for _, is := range issues {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), is)
		}
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	svc, err := newService(persist)
	if err != nil {
		return nil, err
	}
	defer closeService(svc)
	rep, err := svc.Analyze(ctx, buildings, opts)
	if errors.Is(err, app.ErrBlockingIssues) {
		for _, is := range rep.Issues {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), is)
		}
	}
	return rep, err
}

func writeTable(w io.Writer, rep *app.Report, top int) error {
	rows := ranking.Compare(rep.Scenarios)
	if top > 0 && top < len(rows) {
		rows = rows[:top]
	}
	st := rep.Stats
	if _, err := fmt.Fprintf(w, "run %s: %d buildings, %.1f t CO2/a, %d scenarios\n\n",
		rep.RunID, st.Buildings, st.TotalT, len(rep.Scenarios)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "rank\tbuilding\tmeasure\tnet CHF\tCO2 t/a\tsavings CHF/a\tpayback a\tNPV CHF\tscore\ttier\t")
	for _, r := range rows {
		payback := "never"
		if !math.IsInf(r.AmortizationYears, 1) {
			payback = strconv.FormatFloat(r.AmortizationYears, 'f', 1, 64)
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%.0f\t%.2f\t%.0f\t%s\t%.0f\t%.1f\t%s\t\n",
			r.Rank, r.BuildingID, r.RenovationID, r.NetInvestmentCHF, r.CO2SavingsT,
			r.AnnualSavingsCHF, payback, r.NPVCHF, r.PriorityScore, r.Tier)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	sel := rep.Selection
	if math.IsInf(sel.BudgetCHF, 1) {
		return nil
	}
	_, err := fmt.Fprintf(w, "\nbudget %.0f CHF: %d measures, %.0f CHF (%.1f %%), %.2f t CO2/a\n",
		sel.BudgetCHF, len(sel.Selected), sel.TotalInvestmentCHF, sel.UtilizationPct, sel.CO2ReductionT)
	return err
}
