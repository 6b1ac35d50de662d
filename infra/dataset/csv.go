// Package dataset reads building energy datasets.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/core/model"
)

// Column names. The German names of legacy exports are accepted as aliases.
const (
	ColBuildingID       = "building_id"
	ColYear             = "year"
	ColHeatingType      = "heating_type"
	ColHeatingKWh       = "heating_kwh"
	ColElectricityKWh   = "electricity_kwh"
	ColFloorArea        = "floor_area_m2"
	ColConstructionYear = "construction_year"
)

// RequiredColumns must be present in every dataset.
var RequiredColumns = []string{ColBuildingID, ColYear, ColHeatingType, ColHeatingKWh, ColElectricityKWh}

var aliases = map[string]string{
	"gebaeude_id":         ColBuildingID,
	"jahr":                ColYear,
	"heizung_typ":         ColHeatingType,
	"jahresverbrauch_kwh": ColHeatingKWh,
	"strom_kwh_jahr":      ColElectricityKWh,
	"flaeche_m2":          ColFloorArea,
	"baujahr":             ColConstructionYear,
}

// ErrMissingColumns is returned when required columns are absent.
var ErrMissingColumns = errors.New("missing required columns")

// ReadFile reads the CSV dataset at path.
func ReadFile(path string) ([]model.Building, []emissions.Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f)
}

// ReadCSV reads one building row per line. Missing required columns yield a
// blocking issue and ErrMissingColumns. Unknown heating labels are kept on
// the building for emissions.Validate to report. Empty optional cells read
// as zero.
func ReadCSV(r io.Reader) ([]model.Building, []emissions.Issue, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	idx := columnIndex(header)
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		issue := emissions.Issue{
			Severity: emissions.SeverityBlocking,
			Field:    "columns",
			Message:  "missing required columns: " + strings.Join(missing, ", "),
		}
		return nil, []emissions.Issue{issue}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var out []model.Building
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		b, err := parseRow(rec, idx)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, b)
	}
	return out, nil, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if canonical, ok := aliases[name]; ok {
			name = canonical
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func parseRow(rec []string, idx map[string]int) (model.Building, error) {
	cell := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	var b model.Building
	var err error
	b.ID = cell(ColBuildingID)
	if b.ID == "" {
		return b, fmt.Errorf("%s is empty", ColBuildingID)
	}
	if b.Year, err = parseInt(cell(ColYear), ColYear, true); err != nil {
		return b, err
	}
	b.HeatingLabel = cell(ColHeatingType)
	b.Heating, _ = model.ParseHeatingType(b.HeatingLabel)
	if b.HeatingKWh, err = parseFloat(cell(ColHeatingKWh), ColHeatingKWh, true); err != nil {
		return b, err
	}
	if b.ElectricityKWh, err = parseFloat(cell(ColElectricityKWh), ColElectricityKWh, true); err != nil {
		return b, err
	}
	if b.FloorAreaM2, err = parseFloat(cell(ColFloorArea), ColFloorArea, false); err != nil {
		return b, err
	}
	if b.ConstructionYear, err = parseInt(cell(ColConstructionYear), ColConstructionYear, false); err != nil {
		return b, err
	}
	return b, nil
}

func parseFloat(s, col string, required bool) (float64, error) {
	if s == "" {
		if required {
			return 0, fmt.Errorf("%s is empty", col)
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", col, err)
	}
	return v, nil
}

func parseInt(s, col string, required bool) (int, error) {
	v, err := parseFloat(s, col, required)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
