package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// analyzeCmd は、台本をシーンに分解してワークスペースに保存するのだ。
var analyzeCmd = &cobra.Command{
	Use:   "analyze [台本テキスト]",
	Short: "台本を解析してシーン一覧を作るのだ。",
	Long: `台本を AI に解析させ、タイムスタンプ・説明・画像プロンプトを持つシーンに分解するのだ。
台本は引数、--script-file、または標準入力から渡せるのだよ。
既存のシーン一覧は置き換えられるのだ。`,
	Args: cobra.MaximumNArgs(1),
	RunE: analyzeCommand,
}

func init() {
	analyzeCmd.Flags().StringVarP(&opts.ScriptFile, "script-file", "f", "", "台本ファイルのパス（'-'で標準入力なのだ）。")
	analyzeCmd.Flags().BoolVar(&opts.UseSearch, "search", false, "Google 検索で台本の背景情報を補うのだ。")
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	script, err := readScript(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(script) == "" {
		return fmt.Errorf("台本（引数、--script-file、または標準入力）を指定してほしいのだ")
	}

	cfg := loadConfig()
	slog.Info("台本の解析を始めるのだ！",
		"model", cfg.AnalysisModel,
		"search", opts.UseSearch,
		"chars", len([]rune(script)))

	if err := pipeline.ExecuteAnalyze(ctx, cfg, script, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("台本の解析中にエラーが発生したのだ: %w", err)
	}
	return nil
}

// readScript は引数、ファイル、標準入力の順に台本を探すのだ。
func readScript(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	switch {
	case opts.ScriptFile == "-" || (opts.ScriptFile == "" && isStdin()):
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("標準入力の読み込みに失敗したのだ: %w", err)
		}
		return string(b), nil
	case opts.ScriptFile != "":
		b, err := os.ReadFile(opts.ScriptFile)
		if err != nil {
			return "", fmt.Errorf("台本ファイル '%s' の読み込みに失敗したのだ: %w", opts.ScriptFile, err)
		}
		return string(b), nil
	}
	return "", nil
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
