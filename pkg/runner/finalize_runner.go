package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

// NarrationPromptPrefix はナレーションのギャラリー項目に付ける接頭辞です。
const NarrationPromptPrefix = "Narração: "

// FinalizeRunner は動画のあるシーンにナレーションを付け、シーケンサー用の一覧を組み立てます。
type FinalizeRunner struct {
	narrator NarrationGenerator
	ws       *workspace.Workspace
}

// NewFinalizeRunner は依存関係を注入して初期化します。
func NewFinalizeRunner(narrator NarrationGenerator, ws *workspace.Workspace) *FinalizeRunner {
	return &FinalizeRunner{narrator: narrator, ws: ws}
}

// Run は動画がありナレーションの無いシーンを順に読み上げ、すべて終わってからシーケンサーの一覧を返すのだ。
// 1件でも失敗した場合は一覧を返さず、それまでに付けたナレーションはそのまま残します。
func (r *FinalizeRunner) Run(ctx context.Context) (domain.Scenes, error) {
	scenes := r.ws.Scenes()
	if len(scenes.WithVideo()) == 0 {
		return nil, ErrNoVideoScenes
	}

	done := trackState(r.ws, domain.StateFinalizing)
	defer done()

	var tasks []Task
	for _, s := range scenes {
		if !s.NeedsNarration() {
			continue
		}
		scene := s
		tasks = append(tasks, Task{
			Name: scene.ID,
			Run: func(ctx context.Context) error {
				return r.narrate(ctx, scene)
			},
		})
	}

	slog.InfoContext(ctx, "FinalizeRunner: ナレーションを生成します", "scenes", len(tasks))
	if _, err := (Sequence{Policy: StopOnError}).Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("プロジェクトの仕上げに失敗しました: %w", err)
	}
	return r.ws.SequencerScenes(), nil
}

func (r *FinalizeRunner) narrate(ctx context.Context, scene domain.Scene) error {
	url, err := r.narrator.GenerateNarration(ctx, scene.Description)
	if err != nil {
		return err
	}
	if _, err := r.ws.UpdateScene(scene.ID, func(s domain.Scene) domain.Scene {
		s.NarrationURL = url
		return s
	}); err != nil {
		return err
	}
	r.ws.AddAsset(domain.NewAsset(domain.AssetTypeNarration, url, NarrationPromptPrefix+scene.Description))
	return nil
}
