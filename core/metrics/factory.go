package metrics

import "github.com/kilianp07/co2path/core/factory"

var sinkRegistry = factory.NewRegistry[AnalysisSink]()

// RegisterSink adds a sink factory identified by name.
func RegisterSink(name string, f factory.Factory[AnalysisSink]) error {
	return sinkRegistry.Register(name, f)
}

// SinkTypes lists the registered sink types.
func SinkTypes() []string { return sinkRegistry.Types() }

// NewSink creates an AnalysisSink from the provided configuration.
func NewSink(cfgs []factory.ModuleConfig) (AnalysisSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]AnalysisSink, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}
