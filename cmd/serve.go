package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/josephgoksu/OpsWing/internal/server"
	"github.com/josephgoksu/OpsWing/internal/telemetry"
	"github.com/josephgoksu/OpsWing/internal/ui"
	"github.com/josephgoksu/OpsWing/store"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serve the OpsWing HTTP API. Every response uses the
{success, data, message, error} envelope. With store.watch enabled the file
workbook is reloaded whenever it changes on disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if servePort > 0 {
			cfg.Server.Port = servePort
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, rs, err := newService(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := svc.Close(); err != nil {
				LogError("close service", err)
			}
		}()

		var wg sync.WaitGroup
		if fs, ok := rs.(*store.FileStore); ok && cfg.Store.Watch {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := fs.Watch(ctx, nil); err != nil {
					slog.Warn("workbook watch stopped", "error", err)
				}
			}()
		}

		srv := server.New(cfg.Server, svc)
		errChan := make(chan error, 1)
		srv.Start(&wg, errChan)
		svc.Track(telemetry.EventServerStarted, telemetry.Properties{"store": cfg.Store.Driver})

		if !isJSON() {
			ui.RenderPageHeader(cmd.OutOrStdout(), "OpsWing API", fmt.Sprintf("listening on %s, store %s", srv.Addr(), cfg.Store.Driver))
		}

		select {
		case err = <-errChan:
			stop()
		case <-ctx.Done():
			slog.Info("shutting down API server")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			slog.Error("server shutdown failed", "error", serr)
		}
		wg.Wait()
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "override server.port")
}
