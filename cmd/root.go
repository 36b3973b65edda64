package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-storyboard-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は各コマンドのフラグが書き込む実行時パラメータなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 入出力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "ワークスペースと動画を保存するディレクトリなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.WorkspaceFile, "workspace", "w", "", "ワークスペースのJSONパスなのだ（未指定なら output-dir/workspace.json）。")
	rootCmd.PersistentFlags().StringVar(&opts.VideoDir, "video-dir", "", "動画の保存先ディレクトリなのだ（未指定なら output-dir/videos）。")

	rootCmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", config.DefaultEnvFile, "APIキーなどを読み込む .env ファイルなのだ。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().BoolVar(&opts.BillingEnabled, "billing-enabled", false, "課金が有効なキーを使っていることを宣言して、Pro画像と動画を解禁するのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return err
	}
	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GEMINI_PAID_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// loadConfig は環境変数とフラグを合わせた設定を返すのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.Options = opts
	return cfg
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"storyboard-go",
		addAppFlags,
		preRunAppE,
		analyzeCmd,
		imagesCmd,
		videoCmd,
		finalizeCmd,
		thumbnailCmd,
		createCmd,
		animateCmd,
		editCmd,
		refsCmd,
		showCmd,
		publishCmd,
	)
}
