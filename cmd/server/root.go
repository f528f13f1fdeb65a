package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"benchreview/internal/platform/config"
	"benchreview/internal/platform/httpserver"
	"benchreview/internal/platform/logger"
	"benchreview/internal/platform/metrics"
	"benchreview/internal/review/handler"
	"benchreview/internal/review/service"
	"benchreview/internal/review/store"
	"benchreview/internal/review/watch"
	"benchreview/pkg/platform/audit/publisher"
	auditmemory "benchreview/pkg/platform/audit/store/memory"
)

const (
	shutdownTimeout = 10 * time.Second
	auditBuffer     = 256
)

func newRootCmd() *cobra.Command {
	cfg := config.FromEnv()

	cmd := &cobra.Command{
		Use:   "benchreview <dataset-dir>",
		Short: "Review OCR benchmark test records against their source PDFs",
		Long: `benchreview serves a browser review workflow over a dataset directory
containing a pdfs/ folder and a newline-delimited JSON record file.
Every edit is written back to the record file before it is acknowledged.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.DatasetDir = args[0]
			return run(cmd.Context(), cfg, logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Debug))
		},
	}

	cmd.Flags().StringVar(&cfg.Host, "host", cfg.Host, "Address to bind the HTTP server to")
	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "Port to listen on")
	cmd.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable debug logging")
	cmd.Flags().StringVar(&cfg.RecordFile, "records", cfg.RecordFile, "Record file name inside the dataset directory")
	cmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "Reload the dataset when the record file is changed externally")
	return cmd
}

// run validates the dataset, loads it and serves until ctx is cancelled.
// Validation and load failures are returned before anything listens.
func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		log.Error("invalid dataset", "error", err.Error())
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	auditPublisher := publisher.NewPublisher(auditmemory.NewInMemoryStore(),
		publisher.WithAsyncBuffer(auditBuffer),
		publisher.WithLogger(log),
	)
	defer auditPublisher.Close()

	svc := service.New(store.NewFileStore(cfg.RecordPath(), log),
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithAuditPublisher(auditPublisher),
	)
	if err := svc.Load(ctx); err != nil {
		log.Error("failed to load dataset", "path", cfg.RecordPath(), "error", err.Error())
		return err
	}

	router := handler.NewRouter(handler.New(svc, cfg.PDFPath(), log), log, m, reg)
	srv := httpserver.New(cfg.Addr(), router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting benchreview", "addr", cfg.Addr(), "dataset", cfg.DatasetDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Watch {
		g.Go(func() error {
			return watch.New(cfg.RecordPath(), svc, watch.WithLogger(log)).Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err.Error())
		return err
	}
	return nil
}
