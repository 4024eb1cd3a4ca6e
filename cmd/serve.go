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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/gatekey/internal/api"
	"github.com/darmiel/gatekey/internal/audit"
	"github.com/darmiel/gatekey/internal/config"
	"github.com/darmiel/gatekey/internal/core"
	"github.com/darmiel/gatekey/internal/logging"
	"github.com/darmiel/gatekey/internal/registry"
	"github.com/darmiel/gatekey/internal/store"
	"github.com/darmiel/gatekey/internal/tasks"
	"github.com/darmiel/gatekey/internal/token"
	"github.com/darmiel/gatekey/internal/validators"
)

var serveConfigFile string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Gatekey server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(serveConfigFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		signingKey, err := cfg.LoadSigningKey()
		if err != nil {
			return fmt.Errorf("loading signing key: %w", err)
		}
		signer, err := token.NewSigner(signingKey)
		if err != nil {
			return fmt.Errorf("creating signer: %w", err)
		}

		log.Info().Msg("Initializing identity providers...")
		reg := registry.New(validators.DefaultBuild)
		if err := validators.Apply(ctx, reg, cfg.Providers, logging.NewZLogger(log.Logger)); err != nil {
			// a bad provider is logged and skipped; the server still starts
			log.Warn().Err(err).Msg("some providers failed to apply")
		}

		auditor, err := buildAuditor(cfg.Audit)
		if err != nil {
			return fmt.Errorf("setting up audit sink: %w", err)
		}
		defer func() {
			_ = auditor.Close()
		}()

		manager := tasks.NewManager()
		manager.Register("providers.sync", cfg.Sync.Interval, func(taskCtx context.Context, logger logging.InternalLogger) error {
			fresh, err := config.Load(serveConfigFile)
			if err != nil {
				return fmt.Errorf("reloading config: %w", err)
			}
			logger.Info("re-applying %d provider(s) from config", len(fresh.Providers))
			return validators.Apply(taskCtx, reg, fresh.Providers, logger)
		})

		srv := api.NewServer(
			reg,
			store.NewPolicyStore(),
			store.NewIdentityStore(),
			store.NewAttachmentStore(),
			auditor,
			manager,
			signer,
			signingKey,
		)

		server := &http.Server{
			Addr:    cfg.Listen,
			Handler: srv.Routes(),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", cfg.Listen)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func buildAuditor(cfg config.AuditConfig) (core.Auditor, error) {
	if !cfg.Enabled {
		return audit.NewNoopAuditor(), nil
	}
	switch cfg.Type {
	case "file":
		return audit.NewFileAuditor(cfg.Path)
	case "memory", "":
		return audit.NewInMemoryAuditor(), nil
	default:
		return nil, fmt.Errorf("unknown audit sink type %q", cfg.Type)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "f", "gatekey.yaml", "Server configuration file")
}
