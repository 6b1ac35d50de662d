package metrics

import (
	"github.com/kilianp07/co2path/core/factory"
	coremetrics "github.com/kilianp07/co2path/core/metrics"
)

// init registers the built-in sinks.
func init() {
	_ = coremetrics.RegisterSink("nop", func(map[string]any) (coremetrics.AnalysisSink, error) {
		return coremetrics.NopSink{}, nil
	})

	// The listen address is handled by StartPromServer; the sink only
	// registers collectors.
	_ = coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.AnalysisSink, error) {
		return NewPromSink()
	})

	_ = coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.AnalysisSink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})
}
