// Command blogtok runs the blog server and its maintenance tasks.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/blogtok"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "blogtok",
		Short:        "BlogTok blog server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", blogtok.EnvOr("BLOGTOK_CONFIG", "blogtok.yaml"), "path to the YAML config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newAdminPasswordCmd(&configPath),
		&cobra.Command{
			Use:   "version",
			Short: "Print the blogtok version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "blogtok %s\n", version)
			},
		},
	)
	return root
}

func loadConfig(path string) (blogtok.Config, error) {
	cfg, err := blogtok.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	blogtok.InitLogger(cfg.LogLevel, cfg.LogPretty)
	return cfg, nil
}

func newServeCmd(configPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app := blogtok.New(cfg)
			if err := app.Init(ctx); err != nil {
				return err
			}
			defer app.Close()
			return app.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides the config")
	return cmd
}

func newAdminPasswordCmd(configPath *string) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "admin-password",
		Short: "Set the admin password, creating the account if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if username == "" {
				username = cfg.AdminUsername
			}
			if password == "" {
				password = os.Getenv("BLOGTOK_NEW_ADMIN_PASSWORD")
			}
			store, err := blogtok.NewStore(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SetAdminPassword(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username (default from config)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password (or BLOGTOK_NEW_ADMIN_PASSWORD)")
	return cmd
}
