package cli

import (
	"Academy/internal/handlers"
	"Academy/internal/sessions"
	"Academy/web"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmdRun(a, cmd)
		},
	}
}

func serveCmdRun(a *app, cmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return a.serve(ctx)
}

func (a *app) serve(ctx context.Context) error {
	store, conn, err := openStore(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := seed(ctx, store, a.cfg, a.log); err != nil {
		return err
	}

	sess := sessions.New(a.cfg.SessionSecret, a.cfg.SessionTTL, a.cfg.SecureCookies)
	h, err := handlers.New(store, sess, web.FS, a.log)
	if err != nil {
		return err
	}
	router, err := h.Router()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
