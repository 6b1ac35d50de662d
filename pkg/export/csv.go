package export

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/kilianp07/co2path/core/model"
)

var scenarioHeader = []string{
	"rank", "building_id", "renovation_id", "name", "category",
	"gross_investment_chf", "subsidy_chf", "net_investment_chf",
	"co2_savings_kg", "annual_savings_chf", "amortization_years",
	"npv_chf", "roi_percent", "priority_score", "tier",
}

// WriteScenariosCSV writes one row per scenario, see Scenarios.
func WriteScenariosCSV(w io.Writer, rows []Scenario) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scenarioHeader); err != nil {
		return err
	}
	for _, s := range rows {
		rec := []string{
			strconv.Itoa(s.Rank), s.BuildingID, s.RenovationID, s.Name, s.Category,
			fixed(s.GrossInvestmentCHF, 2), fixed(s.SubsidyCHF, 2), fixed(s.NetInvestmentCHF, 2),
			fixed(s.CO2SavingsKg, 3), fixed(s.AnnualSavingsCHF, 2), yearsCell(s.AmortizationYears),
			fixed(s.NPVCHF, 2), fixed(s.ROIPercent, 2), fixed(s.PriorityScore, 2), s.Tier,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSensitivityCSV writes sweep results.
func WriteSensitivityCSV(w io.Writer, rows []Sensitivity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"parameter", "multiplier", "label", "annual_savings_chf", "amortization_years", "npv_chf", "roi_percent"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Parameter, strconv.FormatFloat(r.Multiplier, 'f', -1, 64), r.Label,
			fixed(r.AnnualSavingsCHF, 2), yearsCell(r.AmortizationYears),
			fixed(r.NPVCHF, 2), fixed(r.ROIPercent, 2),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCashFlowsCSV writes the cash-flow table of one scenario.
func WriteCashFlowsCSV(w io.Writer, flows []model.CashFlow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "cash_flow_chf", "cumulative_chf"}); err != nil {
		return err
	}
	for _, f := range flows {
		if err := cw.Write([]string{strconv.Itoa(f.Year), fixed(f.CashFlowCHF, 2), fixed(f.CumulativeCHF, 2)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fixed(v float64, places int32) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func yearsCell(v *float64) string {
	if v == nil {
		return "inf"
	}
	return fixed(*v, 2)
}
