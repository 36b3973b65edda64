package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// videoCmd は、シーン画像から動画を生成するのだ。
var videoCmd = &cobra.Command{
	Use:   "video <scene-id>",
	Short: "シーン画像から動画を生成するのだ。",
	Long: `シーンの画像と画像プロンプトから 16:9 の動画を生成するのだ。
有料モデルなので GEMINI_PAID_API_KEY か --billing-enabled が必要なのだよ。`,
	Args: cobra.ExactArgs(1),
	RunE: videoCommand,
}

func videoCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	slog.Info("動画の生成を始めるのだ！完了まで数分かかるのだ。", "scene", args[0], "model", cfg.VideoModel)
	if err := pipeline.ExecuteSceneVideo(ctx, cfg, args[0]); err != nil {
		return fmt.Errorf("動画の生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
