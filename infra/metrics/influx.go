package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/co2path/core/metrics"
	"github.com/kilianp07/co2path/infra/logger"
)

// InfluxSink writes analysis results to an InfluxDB instance.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails, so an unreachable database never blocks an
// analysis.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.AnalysisSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordScenarios writes one point per evaluated scenario.
func (s *InfluxSink) RecordScenarios(recs []coremetrics.ScenarioRecord) error {
	if len(recs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(recs))
	for _, r := range recs {
		points = append(points, scenarioPoint(r))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

func scenarioPoint(r coremetrics.ScenarioRecord) *write.Point {
	e := r.Evaluated
	p := write.NewPointWithMeasurement("renovation_scenario").
		AddTag("run_id", r.RunID).
		AddTag("building_id", e.BuildingID).
		AddTag("renovation_id", e.RenovationID).
		AddTag("category", e.Category.String()).
		AddField("net_investment_chf", round3(e.NetInvestmentCHF)).
		AddField("subsidy_chf", round3(e.SubsidyCHF)).
		AddField("co2_savings_kg", round3(e.CO2SavingsKg)).
		AddField("annual_savings_chf", round3(e.Savings.TotalCHF)).
		AddField("npv_chf", round3(e.NPVCHF)).
		AddField("roi_percent", round3(e.ROIPercent)).
		AddField("priority_score", round3(e.PriorityScore)).
		AddField("rank", e.Rank).
		SetTime(r.Time)
	// line protocol has no representation for infinity
	if e.PaysBack() {
		p = p.AddField("amortization_years", round3(e.AmortizationYears))
	}
	return p
}

// RecordRun writes a run summary.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("analysis_run").
		AddTag("run_id", ev.RunID).
		AddField("buildings", ev.Buildings).
		AddField("scenarios", ev.Scenarios).
		AddField("advisory_issues", ev.Advisory).
		AddField("blocking_issues", ev.Blocking).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPortfolio writes the portfolio totals.
func (s *InfluxSink) RecordPortfolio(ev coremetrics.PortfolioEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("portfolio").
		AddTag("run_id", ev.RunID).
		AddField("buildings", ev.Buildings).
		AddField("emissions_t", round3(ev.TotalT)).
		AddField("kg_per_m2", round3(ev.MeanKgPerM2)).
		AddField("selected_investment_chf", round3(ev.SelectedCHF)).
		AddField("co2_reduction_t", round3(ev.CO2ReductionT)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
