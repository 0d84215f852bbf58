package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dotlas/api-client-go/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local notebook proxy",
	Long:  "Starts an HTTP proxy over the Dotlas API so browser notebooks can query it without embedding the key in frontend code.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP server port (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Server.Port
	}

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(client),
		ReadHeaderTimeout: 10 * time.Second,
	}

	zap.L().Info("starting proxy server", zap.String("addr", addr))

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down proxy server")
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "proxy server")
	}
	return nil
}
