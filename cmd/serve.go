package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/api"
	"github.com/amixedcolor/aws-identity-gift/internal/api/handler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve saved results over HTTP",
	Long: `Serve the result archive as JSON.

  GET    /result/{id}
  GET    /results?order=asc|desc
  DELETE /result/{id}
  GET    /healthz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openCLIEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		addr := e.cfg.ServeAddr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}
		results := handler.NewResults(e.archive, e.logger)
		results.BaseURL, _ = cmd.Flags().GetString("base-url")

		srv := &http.Server{
			Addr:              addr,
			Handler:           api.NewRouter(api.Dependencies{Logger: e.logger, Results: results}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			e.logger.Info("starting server", zap.String("addr", addr), zap.String("archive", e.cfg.Archive.Backend))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-cmd.Context().Done():
		}

		e.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, then 127.0.0.1:8080)")
	serveCmd.Flags().String("base-url", "", "Public URL prefix used in share links")
}
