package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"painters-telegraph/internal/ui"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		addr      string
		publicURL string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the player page in a local browser",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, _ []string) error {
			if !a.cfg.Verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			if opts.gameName != "" {
				a.engine.SetGameName(opts.gameName)
			}
			if addr == "" {
				addr = a.cfg.UIAddr
			}
			server, err := ui.New(&ui.Config{
				Engine:    a.engine,
				Store:     a.store,
				LoginURL:  a.client.LoginURL(),
				PublicURL: publicURL,
			})
			if err != nil {
				return err
			}

			go func() {
				if err := a.engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("session stopped error=%v", err)
				}
			}()
			go server.Forward(ctx)

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				log.Printf("telegraph listening on http://%s", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}),
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from TELEGRAPH_UI_ADDR)")
	cmd.Flags().StringVar(&publicURL, "public-url", "", "address encoded into invite QR codes")
	return cmd
}
