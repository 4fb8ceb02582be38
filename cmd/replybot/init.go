package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/replybot/internal/config"
	"github.com/sandevgo/replybot/internal/service/installer"
	"github.com/sandevgo/replybot/pkg/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Interactively write the runtime .env",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		logger := log.FromCtx(ctx)
		runtimePath := config.GetRuntimePath()

		if _, err := installer.RunWizard(runtimePath); err != nil {
			return err
		}

		// make the new values visible to a follow-up `config` in the same process
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Str("path", envPath).Msg("configuration written")
		logger.Info().Msg("Setup complete! You can now run 'replybot serve'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
