package cmd

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// refsCmd は、キャラクター参照画像を管理するのだ。
var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "キャラクター参照画像を管理するのだ。",
	Long: `シーン画像の一貫性に使うキャラクター参照画像を追加・削除するのだ。
参照画像は最大4枚までなのだよ。`,
}

var refsAddCmd = &cobra.Command{
	Use:   "add <image>...",
	Short: "参照画像を追加するのだ。",
	Args:  cobra.MinimumNArgs(1),
	RunE:  refsAddCommand,
}

var refsRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "index 番目の参照画像を削除するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE:  refsRemoveCommand,
}

var refsVariationsCmd = &cobra.Command{
	Use:   "variations",
	Short: "最初の参照画像から別アングルの参照画像を生成するのだ。",
	Args:  cobra.NoArgs,
	RunE:  refsVariationsCommand,
}

var refsConsistencyCmd = &cobra.Command{
	Use:       "consistency <on|off>",
	Short:     "シーン画像に参照画像を使うかどうかを切り替えるのだ。",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      refsConsistencyCommand,
}

func init() {
	refsCmd.AddCommand(refsAddCmd, refsRemoveCmd, refsVariationsCmd, refsConsistencyCmd)
}

func refsAddCommand(cmd *cobra.Command, args []string) error {
	if err := pipeline.ExecuteAddRefs(cmd.Context(), loadConfig(), args); err != nil {
		return fmt.Errorf("参照画像の追加中にエラーが発生したのだ: %w", err)
	}
	return nil
}

func refsRemoveCommand(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("index は数値で指定してほしいのだ: %w", err)
	}
	if err := pipeline.ExecuteRemoveRef(cmd.Context(), loadConfig(), index); err != nil {
		return fmt.Errorf("参照画像の削除中にエラーが発生したのだ: %w", err)
	}
	return nil
}

func refsVariationsCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	slog.Info("キャラクターのバリエーションを生成するのだ！", "model", cfg.ImageModel)
	if err := pipeline.ExecuteVariations(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("バリエーションの生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}

func refsConsistencyCommand(cmd *cobra.Command, args []string) error {
	var enabled bool
	switch args[0] {
	case "on":
		enabled = true
	case "off":
	default:
		return fmt.Errorf("on か off を指定してほしいのだ: %q", args[0])
	}
	return pipeline.ExecuteConsistency(cmd.Context(), loadConfig(), enabled)
}
