package builder

import (
	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/pkg/workflow"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各コマンドに渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config        *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options       config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です。
	Workspace     *workspace.Workspace   // Workspaceは、コマンド間で引き継ぐストーリーボードの状態です。
	Workflow      workflow.Workflow      // Workflowは、各工程の Runner を構築します。
	workspacePath string
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	ws *workspace.Workspace,
	wf workflow.Workflow,
	workspacePath string,
) AppContext {
	return AppContext{
		Config:        cfg,
		Options:       cfg.Options,
		Workspace:     ws,
		Workflow:      wf,
		workspacePath: workspacePath,
	}
}

// WorkspacePath はワークスペースのスナップショットの保存先です。
func (a *AppContext) WorkspacePath() string {
	return a.workspacePath
}
