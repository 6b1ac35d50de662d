// Package metrics defines the sinks analysis results are reported to.
// Implementations like the Prometheus and InfluxDB sinks live in
// infra/metrics and register themselves with RegisterSink. NewSink builds the
// configured sinks and wraps several of them in a MultiSink.
//
// Besides AnalysisSink, a sink may implement RunRecorder and
// PortfolioRecorder; callers check for them with a type assertion.
package metrics
