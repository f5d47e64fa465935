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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/api"
	"github.com/phishguard/phishguard/internal/collector"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run phishguard as a REST API service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := resolveAssessConfig(cmd)
		addr, _ := cmd.Flags().GetString("addr")
		authToken, _ := cmd.Flags().GetString("auth-token")
		shutdownTimeout, _ := cmd.Flags().GetDuration("shutdown-timeout")
		corsOrigins, _ := cmd.Flags().GetStringSlice("cors-origins")
		rateLimit, _ := cmd.Flags().GetInt("api-rate-limit")
		rateBurst, _ := cmd.Flags().GetInt("api-rate-burst")
		nameserver, _ := cmd.Flags().GetString("nameserver")

		apiLogger := logger.Desugar()

		service := &api.Service{
			Engine: newEngine(cfg),
			Prober: &collector.VariantProber{Nameserver: nameserver},
		}
		server := api.NewServer(api.Config{
			Assess:      service,
			Variants:    service,
			Corpus:      service,
			Health:      service,
			AuthToken:   authToken,
			Logger:      apiLogger,
			CORSOrigins: corsOrigins,
			RateLimit:   rateLimit,
			RateBurst:   rateBurst,
		})

		httpServer := &http.Server{
			Addr:         addr,
			Handler:      server,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("%s API server listening on %s\n", colorInfo("→"), addr)
			fmt.Printf("%s Press Ctrl+C to gracefully shutdown\n", colorInfo("→"))
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			fmt.Printf("\n%s Received signal %v, initiating graceful shutdown...\n", colorInfo("→"), sig)

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				if closeErr := httpServer.Close(); closeErr != nil {
					return fmt.Errorf("failed to gracefully shutdown server: %w (close error: %v)", err, closeErr)
				}
				return fmt.Errorf("failed to gracefully shutdown server: %w", err)
			}
			apiLogger.Info("server shutdown complete", zap.String("addr", addr))
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address for the API server")
	serveCmd.Flags().String("auth-token", "", "Optional shared secret for API requests")
	serveCmd.Flags().Duration("shutdown-timeout", 30*time.Second, "Graceful shutdown timeout")
	serveCmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (empty = allow all)")
	serveCmd.Flags().Int("api-rate-limit", 10, "Rate limit per IP (requests/second, 0 = disabled)")
	serveCmd.Flags().Int("api-rate-burst", 20, "Rate limit burst size")
	serveCmd.Flags().String("nameserver", "", "Resolver for variant probing as host:port (default 8.8.8.8:53)")
	serveCmd.Flags().Duration("timeout", 0, "Per-collector timeout (default 5s)")
	serveCmd.Flags().Bool("offline", false, "Disable network collectors")
	rootCmd.AddCommand(serveCmd)
}
