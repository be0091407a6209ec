// file: internals/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"swimclub_backend/internals/configs"
	database "swimclub_backend/internals/databases"
)

// Execute runs the root command. Without a subcommand the HTTP server starts.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	serve := NewServeCommand()

	cmd := &cobra.Command{
		Use:           "swimclub",
		Short:         "Swim club attendance backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSeedCommand())
	cmd.AddCommand(NewSweepCommand())
	cmd.AddCommand(NewGateCommand())
	return cmd
}

// openDB loads config and connects. The caller closes the DB.
func openDB() (*configs.AppConfig, *gorm.DB, error) {
	cfg, err := configs.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	return cfg, db, nil
}

func commandContext(cmd *cobra.Command, cfg *configs.AppConfig) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	// batch commands get more room than one HTTP request
	return context.WithTimeout(ctx, 10*cfg.RequestTimeout)
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
