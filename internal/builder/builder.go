package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/pkg/asset"
	"github.com/shouni/go-storyboard-kit/pkg/workflow"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

// BuildAppContext は、ワークスペースを読み込み、ワークフローを組み立てた AppContext を返します。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	if err := resolvePaths(&cfg.Options); err != nil {
		return nil, err
	}

	ws, err := workspace.Load(cfg.Options.WorkspaceFile)
	if err != nil {
		return nil, fmt.Errorf("ワークスペースの読み込みに失敗しました: %w", err)
	}

	manager, err := workflow.New(ctx, workflow.ManagerArgs{
		Config:      cfg.WorkflowConfig(),
		Workspace:   ws,
		KeySelector: NewBillingSelector(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("ワークフローの初期化に失敗しました: %w", err)
	}

	slog.DebugContext(ctx, "ワークスペースを読み込みました",
		"path", cfg.Options.WorkspaceFile,
		"scenes", len(ws.Scenes()),
		"gallery", len(ws.Gallery()))

	appCtx := NewAppContext(cfg, ws, manager, cfg.Options.WorkspaceFile)
	return &appCtx, nil
}

// resolvePaths は未指定の出力先を OutputDir 配下のデフォルトで埋めます。
func resolvePaths(opts *config.GenerateOptions) error {
	if opts.OutputDir == "" {
		opts.OutputDir = config.DefaultOutputDir
	}
	if opts.WorkspaceFile == "" {
		path, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultWorkspaceFile)
		if err != nil {
			return fmt.Errorf("ワークスペースのパス解決に失敗しました: %w", err)
		}
		opts.WorkspaceFile = path
	}
	if opts.VideoDir == "" {
		path, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultVideoDir)
		if err != nil {
			return fmt.Errorf("動画ディレクトリのパス解決に失敗しました: %w", err)
		}
		opts.VideoDir = path
	}
	return nil
}
