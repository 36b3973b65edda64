package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// createCmd は、シーンに紐付かない画像を自由なプロンプトで生成するのだ。
var createCmd = &cobra.Command{
	Use:   "create <prompt>",
	Short: "自由なプロンプトで画像を生成するのだ。",
	Long: `プロンプトを写実的に最適化してから画像を生成し、ギャラリーに追加するのだ。
--pro を付けると高解像度の Pro モデルを使うのだ（課金が有効なキーが必要なのだよ）。`,
	Args: cobra.ExactArgs(1),
	RunE: createCommand,
}

func init() {
	createCmd.Flags().BoolVar(&opts.Pro, "pro", false, "Pro 画像モデルを使うのだ。")
	createCmd.Flags().StringVar(&opts.Size, "size", "", "Pro 画像の解像度（1K, 2K, 4K）なのだ。")
	createCmd.Flags().StringVarP(&opts.Aspect, "aspect", "a", "16:9", "アスペクト比（16:9, 9:16, 1:1, 4:3, 3:4）なのだ。")
	createCmd.Flags().BoolVar(&opts.UseSearch, "search", false, "Pro モデルで Google 検索を使うのだ。")
}

func createCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	model := cfg.ImageModel
	if opts.Pro {
		model = cfg.ProImageModel
	}
	slog.Info("画像を生成するのだ！", "model", model, "aspect", opts.Aspect, "size", opts.Size)
	if err := pipeline.ExecuteCreate(ctx, cfg, args[0], cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("画像の生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
