package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// animateCmd は、任意の画像から動画を生成するのだ。
var animateCmd = &cobra.Command{
	Use:   "animate <image> [prompt]",
	Short: "画像から動画を生成するのだ。",
	Long: `画像（ファイル、data URI、またはギャラリーのアセットID）を動かして動画にするのだ。
有料モデルなので GEMINI_PAID_API_KEY か --billing-enabled が必要なのだよ。`,
	Args: cobra.RangeArgs(1, 2),
	RunE: animateCommand,
}

func init() {
	animateCmd.Flags().StringVarP(&opts.Aspect, "aspect", "a", "16:9", "動画のアスペクト比（16:9 または 9:16）なのだ。")
}

func animateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	prompt := ""
	if len(args) == 2 {
		prompt = args[1]
	}
	slog.Info("動画の生成を始めるのだ！完了まで数分かかるのだ。", "model", cfg.VideoModel, "aspect", opts.Aspect)
	if err := pipeline.ExecuteAnimate(ctx, cfg, args[0], prompt, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("動画の生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
