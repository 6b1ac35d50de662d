package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/core/finance"
	"github.com/kilianp07/co2path/core/model"
	"github.com/kilianp07/co2path/infra/dataset"
	"github.com/kilianp07/co2path/pkg/export"
)

var sensitivityFlags struct {
	building    string
	renovation  string
	params      []string
	multipliers []float64
	co2Prices   bool
	cashFlows   bool
	format      string
	output      string
}

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity <dataset.csv>",
	Short: "Sweep energy price, CO2 tax or subsidy for one scenario",
	Long: `sensitivity evaluates one renovation scenario of one building (the most
recent year in the dataset) under scaled assumptions. Every sweep starts
from the configured assumptions; nothing is changed globally.`,
	Args: cobra.ExactArgs(1),
	RunE: runSensitivity,
}

func init() {
	f := sensitivityCmd.Flags()
	f.StringVarP(&sensitivityFlags.building, "building", "b", "", "building id")
	f.StringVarP(&sensitivityFlags.renovation, "renovation", "r", "", "renovation id, e.g. heating_gas_to_hp or combo_hp_pv")
	f.StringSliceVarP(&sensitivityFlags.params, "param", "p", []string{string(finance.ParamEnergyPrice)}, "parameters to sweep: energy_price, co2_tax, subsidy")
	f.Float64SliceVarP(&sensitivityFlags.multipliers, "multipliers", "m", nil, "multipliers (configured defaults when empty)")
	f.BoolVar(&sensitivityFlags.co2Prices, "co2-prices", false, "also evaluate the configured CO2 price points")
	f.BoolVar(&sensitivityFlags.cashFlows, "cashflows", false, "print the cash-flow table instead of a sweep")
	f.StringVarP(&sensitivityFlags.format, "format", "f", "csv", "output format: csv, json, yaml")
	f.StringVarP(&sensitivityFlags.output, "output", "o", "", "output file (stdout when empty)")
	_ = sensitivityCmd.MarkFlagRequired("building")
	_ = sensitivityCmd.MarkFlagRequired("renovation")
	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	if err := checkFormat(sensitivityFlags.format, "csv", "json", "yaml"); err != nil {
		return err
	}
	buildings, _, err := dataset.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	b, ok := latestBuilding(buildings, sensitivityFlags.building)
	if !ok {
		return fmt.Errorf("building %q not found", sensitivityFlags.building)
	}
	svc, err := newService(false)
	if err != nil {
		return err
	}
	defer closeService(svc)
	if issues := emissions.Validate([]model.Building{b}, svc.Factors()); emissions.HasBlocking(issues) {
		return fmt.Errorf("building %s: %s", b.ID, issues[0].Message)
	}
	sc, err := svc.Scenario(b, sensitivityFlags.renovation)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(cmd, sensitivityFlags.output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	if sensitivityFlags.cashFlows {
		flows := finance.Evaluate(sc, b, svc.Assumptions()).CashFlows
		switch sensitivityFlags.format {
		case "json":
			return export.WriteJSON(w, flows)
		case "yaml":
			return export.WriteYAML(w, flows)
		}
		return export.WriteCashFlowsCSV(w, flows)
	}

	var rows []finance.SensitivityRow
	for _, name := range sensitivityFlags.params {
		p, err := finance.ParseParameter(name)
		if err != nil {
			return err
		}
		sweep, err := svc.Sensitivity(sc, b, p, sensitivityFlags.multipliers)
		if err != nil {
			return err
		}
		rows = append(rows, sweep...)
	}
	if sensitivityFlags.co2Prices {
		rows = append(rows, svc.CO2Prices(sc, b)...)
	}
	out := export.SensitivityRows(rows)
	switch sensitivityFlags.format {
	case "json":
		return export.WriteJSON(w, out)
	case "yaml":
		return export.WriteYAML(w, out)
	}
	return export.WriteSensitivityCSV(w, out)
}

// latestBuilding returns the most recent row of the building with id.
func latestBuilding(buildings []model.Building, id string) (model.Building, bool) {
	var found model.Building
	ok := false
	for _, b := range buildings {
		if b.ID == id && (!ok || b.Year > found.Year) {
			found, ok = b, true
		}
	}
	return found, ok
}
