// Package factory provides a small generic registry used to instantiate
// pluggable modules (metrics sinks, result stores) from configuration. A
// module is described by a type string and a map of raw settings; factories
// decode the settings into typed structs with Decode and return the concrete
// implementation.
//
//	reg := factory.NewRegistry[metrics.AnalysisSink]()
//	_ = reg.Register("influx", func(conf map[string]any) (metrics.AnalysisSink, error) {
//	    var c struct{ URL string `json:"url"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newInfluxSink(c.URL), nil
//	})
//	sink, err := reg.Create(factory.ModuleConfig{Type: "influx", Conf: map[string]any{"url": "http://localhost:8086"}})
package factory
