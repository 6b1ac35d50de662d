package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/co2path/app"
	"github.com/kilianp07/co2path/config"
	coremetrics "github.com/kilianp07/co2path/core/metrics"
	"github.com/kilianp07/co2path/infra/logger"
	_ "github.com/kilianp07/co2path/infra/metrics" // registers the metrics sinks
	"github.com/kilianp07/co2path/infra/store"
)

var (
	cfgPath  string
	logLevel string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "co2path",
	Short: "CO2 reduction pathways for building portfolios",
	Long: `co2path computes the emissions of a building portfolio, prices the
renovation measures that apply to each building and ranks them by cost
effectiveness.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (defaults and CO2_* environment variables when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := logger.SetLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	cfg = c
	return nil
}

// newService wires the configured sinks and, when persist is set, the result
// store into an app.Service.
func newService(persist bool) (*app.Service, error) {
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	opts := []app.Option{app.WithSink(sink)}
	if persist {
		st, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("result store: %w", err)
		}
		opts = append(opts, app.WithStore(st))
	}
	return app.New(cfg, opts...)
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}
