package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var publishTitle string

// publishCmd は、ワークスペースの成果物を Markdown のストーリーボードとして書き出すのだ。
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "ストーリーボードを Markdown とファイルに書き出すのだ。",
	Long: `シーン画像とナレーションを output-dir 配下に保存し、
シーンごとの説明・画像・動画・ナレーションを並べた storyboard.md を作るのだ。`,
	Args: cobra.NoArgs,
	RunE: publishCommand,
}

func init() {
	publishCmd.Flags().StringVarP(&publishTitle, "title", "t", "", "ストーリーボードのタイトルなのだ。")
}

func publishCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	slog.Info("ストーリーボードを書き出すのだ！", "output", opts.OutputDir)
	if err := pipeline.ExecutePublish(cmd.Context(), cfg, publishTitle); err != nil {
		return fmt.Errorf("書き出し中にエラーが発生したのだ: %w", err)
	}
	return nil
}
