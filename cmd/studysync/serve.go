package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/studysync/studysync/internal/analytics"
	"github.com/studysync/studysync/internal/api"
	"github.com/studysync/studysync/internal/model"
	"github.com/studysync/studysync/internal/notify"
	"github.com/studysync/studysync/internal/service"
	appsync "github.com/studysync/studysync/internal/sync"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		addr    string
		console bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminder poller",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := flags.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if addr != "" {
				cfg.Server.Addr = addr
			}

			svc := service.New(st)
			deps := api.Deps{
				Service:   svc,
				Analytics: analytics.New(st, svc.Now),
				Health:    st,
			}

			sinks := notify.Multi{notify.NewLogSink(log.Default())}
			if console {
				sinks = append(sinks, notify.NewConsoleSink(cmd.OutOrStdout()))
			}
			if cfg.Reminders.BrowserNotifications {
				deps.Outbox = notify.NewOutbox(notify.DefaultOutboxSize)
				sinks = append(sinks, notify.OnlyChannel(model.ChannelBrowser, deps.Outbox))
			}

			poller := appsync.New(svc,
				appsync.WithInterval(cfg.Reminders.PollInterval()),
				appsync.WithSink(sinks),
			)
			poller.Start()
			defer poller.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serveHTTP(ctx, cfg.Server.Addr, api.NewRouter(deps, cfg.Server.Mode))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().BoolVar(&console, "console", false, "Also print newly due reminders as banners on stdout")
	return cmd
}

// serveHTTP runs handler on addr until ctx is done, then shuts down
// gracefully.
func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[api] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	log.Println("[api] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
