package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

// StoryboardScriptRunner は台本を解析してワークスペースのシーン一覧を作り直します。
type StoryboardScriptRunner struct {
	analyzer ScriptAnalyzer
	ws       *workspace.Workspace
}

// NewStoryboardScriptRunner は依存関係を注入して初期化します。
func NewStoryboardScriptRunner(analyzer ScriptAnalyzer, ws *workspace.Workspace) *StoryboardScriptRunner {
	return &StoryboardScriptRunner{analyzer: analyzer, ws: ws}
}

// Run は台本を保存し、解析結果でシーン一覧を置き換えます。
// 解析に失敗した場合、既存のシーンには一切手を付けません。
func (r *StoryboardScriptRunner) Run(ctx context.Context, script string, useSearch bool) (domain.Scenes, error) {
	r.ws.SetScript(script)

	done := trackState(r.ws, domain.StateAnalyzing)
	defer done()

	slog.InfoContext(ctx, "ScriptRunner: 台本の解析を開始します", "search", useSearch)
	scenes, err := r.analyzer.AnalyzeScript(ctx, script, useSearch)
	if err != nil {
		return nil, fmt.Errorf("台本の解析に失敗しました: %w", err)
	}

	r.ws.ReplaceScenes(scenes)
	return scenes.Clone(), nil
}
