package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/octofit/octofit-tracker/api/handlers"
	"github.com/octofit/octofit-tracker/api/services"
	"github.com/octofit/octofit-tracker/internal/metrics"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout    = 10 * time.Second
	draftSweepInterval = time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the OctoFit web shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {

		// Load the config and set up logging
		if err := commonSetUp(cmd); err != nil {
			return err
		}

		svc := services.NewService(appCfg, metrics.New())
		drafts := handlers.NewDraftStore(appCfg.Server.DraftTTL, appCfg.Server.MaxDrafts)
		r := handlers.NewRouter(svc, drafts)

		listenHost, listenPort := appCfg.Server.Host, appCfg.Server.Port
		if cmd.Flags().Changed("host") {
			listenHost = host
		}
		if cmd.Flags().Changed("port") {
			listenPort = port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf("%s:%d", listenHost, listenPort),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			log.Info().Str("backend", svc.Backend.BaseURL).Msgf("Server started at %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("could not start server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			drafts.Run(ctx, draftSweepInterval)
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			log.Info().Msg("Shutting down server")
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 3000, "port to run the server on")
}
