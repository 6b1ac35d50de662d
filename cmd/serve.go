package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/co2path/api/buildings"
	"github.com/kilianp07/co2path/app"
	"github.com/kilianp07/co2path/core/factory"
	"github.com/kilianp07/co2path/infra/logger"
	"github.com/kilianp07/co2path/infra/metrics"
	"github.com/kilianp07/co2path/infra/store"
)

var serveFlags struct {
	token   string
	dataset string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored analysis results over HTTP",
	Long: `serve exposes the result store on the configured API address:

  GET /api/buildings/{id}/scenarios
  GET /api/scenarios

The Prometheus endpoint is started as well when a prometheus sink is
configured. With --dataset the dataset is analysed once at startup so the
store and the metrics reflect it.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.token, "token", os.Getenv("CO2_API_TOKEN"), "bearer token required by the API (none when empty)")
	serveCmd.Flags().StringVar(&serveFlags.dataset, "dataset", "", "dataset to analyse at startup")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logger.New("server")

	if serveFlags.dataset != "" {
		rep, err := analyzeFile(ctx, cmd, serveFlags.dataset, true, app.Options{})
		if err != nil {
			return err
		}
		log.Infof("analysed %s: run %s, %d scenarios", serveFlags.dataset, rep.RunID, len(rep.Scenarios))
	}

	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("result store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Errorf("store close: %v", err)
		}
	}()

	mux := http.NewServeMux()
	buildings.Register(mux, st, serveFlags.token)
	srv := &http.Server{Addr: cfg.API.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("api listening on %s", cfg.API.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if promEnabled() {
		g.Go(func() error {
			log.Infof("metrics listening on %s", cfg.Prometheus.Addr)
			return metrics.StartPromServer(ctx, cfg.Prometheus.Addr)
		})
	}
	return g.Wait()
}

func promEnabled() bool {
	return slices.ContainsFunc(cfg.Metrics.Sinks, func(s factory.ModuleConfig) bool { return s.Type == "prometheus" })
}
