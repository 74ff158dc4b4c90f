// Serve command for the coffer CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cofferhq/coffer/internal/auth"
	"github.com/cofferhq/coffer/internal/csvstore"
	"github.com/cofferhq/coffer/internal/rates"
	"github.com/cofferhq/coffer/internal/server"
	"github.com/cofferhq/coffer/pkg/types"
)

// flagListen is set by the --listen flag and overrides listen_addr.
var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the coffer HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runServe(); err != nil {
			fmt.Fprintln(os.Stderr, "serve:", err)
			os.Exit(exitSysError)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "listen address (default: listen_addr from config.yaml)")
}

func runServe() error {
	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	store, err := csvstore.Open(types.Config{DataDir: dataDir}, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	secret := cfg.GetString(cfgKeySessionSecret)
	if secret == "" {
		// A fresh secret signs out every user when the process restarts.
		secret = auth.RandomSecret()
		log.Infow("session secret not configured, generated one for this process")
	}
	ttl := time.Duration(cfg.GetInt(cfgKeySessionTTL)) * time.Hour
	sessions := auth.NewSessions(secret, ttl)

	client := rates.NewClient(rates.Config{
		APIKey:   cfg.GetString(cfgKeyExchangeKey),
		FreeURL:  cfg.GetString(cfgKeyExchangeFree),
		KeyedURL: cfg.GetString(cfgKeyExchangeKeyed),
	}, log)

	srv := server.New(store, sessions, client, log)

	addr := flagListen
	if addr == "" {
		addr = cfg.GetString(cfgKeyListenAddr)
	}

	log.Infow("listening", "addr", addr, "data_dir", dataDir)
	return http.ListenAndServe(addr, srv.Router())
}

// buildLogger constructs the zap logger for the server. The --verbose flag
// switches to the development encoder with debug level enabled.
func buildLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
