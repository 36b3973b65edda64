package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// finalizeCmd は、動画付きシーンにナレーションを付けてシーケンサーの再生順を出すのだ。
var finalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "ナレーションを付けてプロジェクトを仕上げるのだ。",
	Args:  cobra.NoArgs,
	RunE:  finalizeCommand,
}

func finalizeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	slog.Info("ナレーションを付けて仕上げるのだ！", "voice", cfg.NarrationVoice, "language", cfg.NarrationLanguage)
	if err := pipeline.ExecuteFinalize(ctx, cfg, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("仕上げ中にエラーが発生したのだ: %w", err)
	}
	slog.Info("すべての仕上げ工程が完了したのだ！")
	return nil
}
