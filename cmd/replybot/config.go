package main

import (
	"fmt"

	"github.com/sandevgo/replybot/internal/config"
	"github.com/sandevgo/replybot/pkg/env"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configDumpCmd = &cobra.Command{
	Use:          "dump",
	Short:        "Print the effective configuration as .env lines, secrets masked",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		appCfg := loadAppConfig(ctx)
		providerCfg := config.NewProviderConfig(ctx)

		for _, section := range []struct {
			name string
			cfg  any
		}{
			{"app", appCfg},
			{"provider", providerCfg},
		} {
			out, err := env.MarshalEnv(section.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", section.name, out)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDumpCmd)
	rootCmd.AddCommand(configCmd)
}
