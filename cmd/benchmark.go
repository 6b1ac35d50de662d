package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2path/core/emissions"
	"github.com/kilianp07/co2path/infra/dataset"
	"github.com/kilianp07/co2path/pkg/export"
)

var benchmarkFlags struct {
	standard string
	format   string
	output   string
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark <dataset.csv>",
	Short: "Compare the most recent year with Swiss standards and climate targets",
	Args:  cobra.ExactArgs(1),
	RunE:  runBenchmark,
}

func init() {
	f := benchmarkCmd.Flags()
	f.StringVar(&benchmarkFlags.standard, "standard", "minergie", "reference for the savings potential: sia_2024, minergie, minergie_p, muken_2014")
	f.StringVarP(&benchmarkFlags.format, "format", "f", "yaml", "output format: json, yaml")
	f.StringVarP(&benchmarkFlags.output, "output", "o", "", "output file (stdout when empty)")
	rootCmd.AddCommand(benchmarkCmd)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	if err := checkFormat(benchmarkFlags.format, "json", "yaml"); err != nil {
		return err
	}
	buildings, _, err := dataset.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	svc, err := newService(false)
	if err != nil {
		return err
	}
	defer closeService(svc)
	if issues := emissions.Validate(buildings, svc.Factors()); emissions.HasBlocking(issues) {
		for _, is := range issues {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), is)
		}
		return fmt.Errorf("dataset has blocking validation issues")
	}
	latest := emissions.Latest(emissions.ComputeAll(buildings, svc.Factors()))
	out := svc.Benchmark(latest, benchmarkFlags.standard)

	w, closeOut, err := openOutput(cmd, benchmarkFlags.output)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()
	if benchmarkFlags.format == "json" {
		return export.WriteJSON(w, out)
	}
	return export.WriteYAML(w, out)
}
