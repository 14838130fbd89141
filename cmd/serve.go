package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/odpanel/internal/server"
	"github.com/KaramelBytes/odpanel/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard views as a JSON API",
	Long: `Start the HTTP API. Each POST /api/v1/sessions loads the survey files into a new,
independent session; page endpoints live under /api/v1/sessions/{id}/.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return errNoConfig
		}
		set, err := settings()
		if err != nil {
			return err
		}
		load, err := loadFunc()
		if err != nil {
			return err
		}
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		store := session.NewStore(load, cfg.Server.MaxSessions, cfg.Server.SessionTTL())
		srv := server.New(store, set, server.Options{CORSOrigins: cfg.Server.CORSOrigins})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Printf("✓ Serving on %s (Ctrl+C to stop)\n", addr)
		defer func() { _ = zap.L().Sync() }()
		return srv.Run(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}
