package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mecodix/dontsee/internal/logger"
	"github.com/mecodix/dontsee/pkg/api"
	"github.com/mecodix/dontsee/pkg/metrics"
	"github.com/mecodix/dontsee/pkg/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve starts the codec worker and exposes it over HTTP: signature scans,
message concealment and recovery via multipart uploads. With metrics
enabled, a Prometheus endpoint runs on its own port.

Examples:
  dontsee serve
  dontsee serve --config /etc/dontsee/config.yaml
  DONTSEE_SERVER_PORT=9000 dontsee serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	var codecMetrics metrics.CodecMetrics
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		codecMetrics = metrics.NewCodecMetrics()
	}

	w := worker.New(cfg.Worker.QueueDepth, codecMetrics)
	go w.Run(ctx)

	errChan := make(chan error, 2)
	servers := 1

	if cfg.Metrics.Enabled {
		servers++
		go func() {
			errChan <- serveMetrics(ctx, cfg.Metrics.Port)
		}()
	}

	go func() {
		errChan <- api.NewServer(cfg.Server, w).Start(ctx)
	}()

	logger.Info("dontsee server started",
		"version", Version, "api_port", cfg.Server.Port, "metrics", cfg.Metrics.Enabled)

	// Each server exits on its own when ctx is canceled; a failure in one
	// tears down the rest.
	var firstErr error
	for i := 0; i < servers; i++ {
		if err := <-errChan; err != nil && firstErr == nil {
			firstErr = err
			cancel()
		}
	}
	return firstErr
}

// serveMetrics runs the Prometheus endpoint until ctx is canceled.
func serveMetrics(ctx context.Context, port int) error {
	server := &http.Server{
		Addr: fmt.Sprintf(":%d", port),
		Handler: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}),
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return server.Close()
	}
}
