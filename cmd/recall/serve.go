package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"recall-ai/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the retrieval API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Shutdown finished with errors", "error", err)
		}
	}()

	deps := &http.Deps{
		Logger:           logger,
		Retriever:        a.retriever,
		Selector:         a.selector,
		Topics:           a.topics,
		Navigation:       a.nav,
		Links:            a.links,
		Queue:            a.queue,
		Store:            a.db,
		VectorCollection: cfg.QdrantCollection,
	}
	if a.vectors != nil {
		deps.VectorStore = a.vectors
	}

	srv := &nethttp.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: http.NewRouter(deps),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
