package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var styleRef string

// thumbnailCmd は、台本と最初のシーン画像からサムネイルを生成するのだ。
var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail",
	Short: "台本からサムネイルを生成するのだ。",
	Long: `台本からサムネイルの構図を考え、最初の3枚のシーン画像を参照してサムネイルを描くのだ。
restyle サブコマンドで、ギャラリーの画像をスタイル参照画像に合わせて描き直せるのだよ。`,
	Args: cobra.NoArgs,
	RunE: thumbnailCommand,
}

// restyleCmd は、ギャラリーの画像をスタイル参照画像の画風で描き直すのだ。
var restyleCmd = &cobra.Command{
	Use:   "restyle <asset-id>",
	Short: "ギャラリーの画像をスタイル参照画像に合わせて描き直すのだ。",
	Args:  cobra.ExactArgs(1),
	RunE:  restyleCommand,
}

func init() {
	restyleCmd.Flags().StringVarP(&styleRef, "style", "s", "", "スタイル参照画像（ファイル、data URI、またはアセットID）なのだ。")
	thumbnailCmd.AddCommand(restyleCmd)
}

func thumbnailCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	slog.Info("サムネイルを生成するのだ！", "model", cfg.ImageModel)
	if err := pipeline.ExecuteThumbnail(ctx, cfg, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("サムネイルの生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}

func restyleCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	slog.Info("スタイル変換を始めるのだ！", "asset", args[0], "style", styleRef != "")
	if err := pipeline.ExecuteRestyle(ctx, cfg, args[0], styleRef, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("スタイル変換中にエラーが発生したのだ: %w", err)
	}
	return nil
}
