package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/pkg/resolver"
	"github.com/wayfind-dev/wayfind/pkg/telemetry"
	"github.com/wayfind-dev/wayfind/pkg/web"
)

func serveCmd() *cobra.Command {
	var (
		dir     string
		port    int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the navigation bridge server",
		Long: `Serve loads the route manifest from wayfind.json and exposes the
resolver over a websocket at /wayfind/ws. Clients send navigate frames
and receive outlet state frames. Prometheus metrics are exported at
/metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)

			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if len(cfg.Routes) == 0 {
				return fmt.Errorf("no routes in manifest (looked in %q)", dir)
			}

			table, err := buildTable(cfg)
			if err != nil {
				return err
			}

			handler := web.NewHandler(table,
				web.WithLogger(logger.With("component", "web")),
				web.WithResolverOptions(
					resolver.WithObserver[web.ViewRef](telemetry.Metrics()),
					resolver.WithObserver[web.ViewRef](telemetry.Trace()),
				),
			)

			r := chi.NewRouter()
			r.Use(chimw.Recoverer)
			r.Mount("/wayfind", handler.Routes())
			r.Handle("/metrics", promhttp.Handler())

			logger.Info("serving",
				"addr", cfg.Addr(),
				"routes", table.Len(),
			)
			return http.ListenAndServe(cfg.Addr(), r)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory containing wayfind.json")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override the configured port")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	return cmd
}
