package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"

	"github.com/spf13/cobra"
)

// editCmd は、画像を指示どおりに編集するのだ。
var editCmd = &cobra.Command{
	Use:   "edit <image> [instruction]",
	Short: "画像を編集するのだ。",
	Long: `画像（ファイル、data URI、またはギャラリーのアセットID）を指示どおりに編集するのだ。
--quick で用意済みの編集を選べるのだ: ` + quickKeys() + `
--magic を付けると、その画像を使っているシーンも編集結果に差し替えるのだよ。`,
	Args: cobra.RangeArgs(1, 2),
	RunE: editCommand,
}

func init() {
	editCmd.Flags().StringVarP(&opts.Quick, "quick", "q", "", "用意済みの編集キーなのだ。")
	editCmd.Flags().BoolVar(&opts.Magic, "magic", false, "編集結果でシーン画像を差し替えるのだ。")
}

func editCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	instruction := ""
	if len(args) == 2 {
		instruction = args[1]
	}
	if instruction == "" && opts.Quick == "" {
		return fmt.Errorf("編集指示か --quick を指定してほしいのだ")
	}

	cfg := loadConfig()
	slog.Info("画像を編集するのだ！", "model", cfg.ImageModel, "quick", opts.Quick, "magic", opts.Magic)
	if err := pipeline.ExecuteEdit(ctx, cfg, args[0], instruction, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("画像の編集中にエラーが発生したのだ: %w", err)
	}
	return nil
}

func quickKeys() string {
	keys := make([]string, 0, len(prompts.QuickEdits))
	for _, q := range prompts.QuickEdits {
		keys = append(keys, q.Key)
	}
	return strings.Join(keys, ", ")
}
