package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/futureslog/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal as a JSON API",
	Long: `Start the HTTP API used by the mobile app.

Example:
  futureslog serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.WarmNews(ctx)

	addr := a.Config.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	if a.Config.Log.Environment != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	var opts []api.Option
	if rate, ok, err := a.Config.Server.ChatRateLimit(); err != nil {
		return err
	} else if ok {
		opts = append(opts, api.WithChatRate(rate))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(a.Trades, a.Chat, a.News, a.Log.Named("api"), opts...).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
