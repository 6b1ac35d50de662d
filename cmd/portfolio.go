package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2path/app"
	"github.com/kilianp07/co2path/core/portfolio"
	"github.com/kilianp07/co2path/pkg/export"
)

var portfolioFlags struct {
	budget        float64
	years         int
	budgetPerYear float64
	criterion     string
	format        string
	output        string
}

var portfolioCmd = &cobra.Command{
	Use:   "portfolio <dataset.csv>",
	Short: "Summarise the portfolio and select measures within a budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runPortfolio,
}

func init() {
	f := portfolioCmd.Flags()
	f.Float64Var(&portfolioFlags.budget, "budget", 0, "total budget in CHF (0 = unlimited)")
	f.IntVar(&portfolioFlags.years, "years", 0, "number of years of the renovation plan")
	f.Float64Var(&portfolioFlags.budgetPerYear, "budget-per-year", 0, "yearly budget of the renovation plan in CHF")
	f.StringVar(&portfolioFlags.criterion, "criterion", string(portfolio.ByPotential), "building priority: emissions, efficiency, potential")
	f.StringVarP(&portfolioFlags.format, "format", "f", "yaml", "output format: json, yaml")
	f.StringVarP(&portfolioFlags.output, "output", "o", "", "output file (stdout when empty)")
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := checkFormat(portfolioFlags.format, "json", "yaml"); err != nil {
		return err
	}
	rep, err := analyzeFile(ctx, cmd, args[0], false, app.Options{
		BudgetCHF:        portfolioFlags.budget,
		PlanYears:        portfolioFlags.years,
		BudgetPerYearCHF: portfolioFlags.budgetPerYear,
	})
	if err != nil {
		return err
	}
	summary, err := rep.Summary(portfolio.BuildingCriterion(portfolioFlags.criterion))
	if err != nil {
		return err
	}
	w, closeOut, err := openOutput(cmd, portfolioFlags.output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()
	if portfolioFlags.format == "json" {
		return export.WriteJSON(w, summary)
	}
	return export.WriteYAML(w, summary)
}
