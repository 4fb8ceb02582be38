package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/replybot/internal/config"
	"github.com/sandevgo/replybot/internal/service/knowledge"
	"github.com/sandevgo/replybot/internal/service/ui"
	"github.com/sandevgo/replybot/internal/storage/sqlite"
	"github.com/sandevgo/replybot/pkg/log"
	"github.com/spf13/cobra"
)

var (
	kbPolicy string
	kbDBPath string
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect and convert the knowledge base",
}

var kbCheckCmd = &cobra.Command{
	Use:           "check [path]",
	Short:         "Validate a knowledge source strictly",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		path := knowledgePath(ctx, args)
		records, err := knowledge.ReadRecords(ctx, path)
		if err != nil {
			return err
		}

		base := knowledge.NewBase(ctx, records)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records, %d usable entries\n", path, len(records), base.Len())
		if skipped := len(records) - base.Len(); skipped > 0 {
			return fmt.Errorf("%d records skipped", skipped)
		}
		return nil
	},
}

var kbMatchCmd = &cobra.Command{
	Use:          "match <utterance>",
	Short:        "Show which entry would answer an utterance",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		policy := kbPolicy
		if policy == "" {
			policy = loadAppConfig(ctx).MatchPolicy
		}

		base := knowledge.Load(ctx, knowledgePath(ctx, nil))
		m := knowledge.NewMatcher(base, knowledge.ParsePolicy(ctx, policy))

		res, ok := m.Lookup(strings.Join(args, " "))
		out := cmd.OutOrStdout()
		if !ok {
			fmt.Fprintln(out, "no match, the generative fallback would answer")
			return nil
		}

		fmt.Fprintln(out, ui.Field("tier", res.Tier.String()))
		fmt.Fprintln(out, ui.Field("policy", m.Policy().String()))
		fmt.Fprintln(out, ui.Field("entry", fmt.Sprintf("#%d (score %d)", res.Index, res.Score)))
		fmt.Fprintln(out, ui.Field("triggers", strings.Join(res.Entry.Triggers(), ", ")))
		fmt.Fprintln(out, ui.Field("answer", ui.AnswerStyle.Render(res.Entry.Answer())))
		return nil
	},
}

var kbImportCmd = &cobra.Command{
	Use:          "import <source>",
	Short:        "Import a JSON or YAML knowledge source into SQLite",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if knowledge.FormatOf(args[0]) == knowledge.FormatSQLite {
			return fmt.Errorf("source is already a sqlite database")
		}

		records, err := knowledge.ReadRecords(ctx, args[0])
		if err != nil {
			return err
		}

		db, err := sqlite.NewDB(ctx, kbDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := sqlite.NewKnowledgeRepo(db).ReplaceAll(ctx, records); err != nil {
			return err
		}

		log.FromCtx(ctx).Info().
			Str("source", args[0]).
			Str("db", kbDBPath).
			Int("records", len(records)).
			Msg("knowledge imported")
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d records into %s\n", len(records), kbDBPath)
		return nil
	},
}

// knowledgePath prefers an explicit argument over KNOWLEDGE_PATH.
func knowledgePath(ctx context.Context, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return loadAppConfig(ctx).GetKnowledgePath()
}

func loadAppConfig(ctx context.Context) *config.AppConfig {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("ignoring .env")
	}
	return config.NewAppConfig(ctx)
}

func init() {
	kbMatchCmd.Flags().StringVar(&kbPolicy, "policy", "", "match policy override (first-hit or score)")
	kbImportCmd.Flags().StringVar(&kbDBPath, "db", "knowledge.db", "target sqlite database")

	kbCmd.AddCommand(kbCheckCmd, kbMatchCmd, kbImportCmd)
	rootCmd.AddCommand(kbCmd)
}
