package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// imagesCmd は、シーン画像を生成するのだ。
var imagesCmd = &cobra.Command{
	Use:   "images [scene-id]",
	Short: "シーン画像を生成するのだ。",
	Long: `scene-id を指定するとそのシーンだけ、省略するとすべてのシーンを順番に生成するのだ。
一括生成では失敗したシーンがあっても残りを続けるのだよ。`,
	Args: cobra.MaximumNArgs(1),
	RunE: imagesCommand,
}

func imagesCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	if len(args) == 1 {
		slog.Info("シーン画像を生成するのだ！", "scene", args[0], "model", cfg.ImageModel)
		if err := pipeline.ExecuteSceneImage(ctx, cfg, args[0]); err != nil {
			return fmt.Errorf("シーン画像の生成中にエラーが発生したのだ: %w", err)
		}
		return nil
	}

	slog.Info("すべてのシーン画像を生成するのだ！", "model", cfg.ImageModel)
	if err := pipeline.ExecuteAllImages(ctx, cfg); err != nil {
		return fmt.Errorf("一括画像生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
