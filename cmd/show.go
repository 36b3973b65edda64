package cmd

import (
	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// showCmd は、ワークスペースのシーン一覧とギャラリーを表示するのだ。
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "シーン一覧とギャラリーを表示するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteShow(cmd.Context(), loadConfig(), cmd.OutOrStdout())
	},
}
