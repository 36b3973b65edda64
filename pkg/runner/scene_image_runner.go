package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"

	"golang.org/x/sync/singleflight"
)

// SceneImageRunner はシーンごとの画像生成と、全シーンの一括生成を担当します。
type SceneImageRunner struct {
	images ImageGenerator
	ws     *workspace.Workspace
	group  singleflight.Group
}

// NewSceneImageRunner は依存関係を注入して初期化します。
func NewSceneImageRunner(images ImageGenerator, ws *workspace.Workspace) *SceneImageRunner {
	return &SceneImageRunner{images: images, ws: ws}
}

// Run は1シーン分の画像を生成し、シーンとギャラリーに反映します。
// 同じシーンへの同時呼び出しは1回の生成にまとめるのだ。
func (r *SceneImageRunner) Run(ctx context.Context, sceneID string) (domain.Scene, error) {
	v, err, shared := r.group.Do(sceneID, func() (any, error) {
		return r.generate(ctx, sceneID)
	})
	if shared {
		slog.DebugContext(ctx, "進行中の生成結果を共有しました", "scene", sceneID)
	}
	if err != nil {
		return domain.Scene{}, err
	}
	return v.(domain.Scene), nil
}

func (r *SceneImageRunner) generate(ctx context.Context, sceneID string) (domain.Scene, error) {
	scene, err := r.ws.UpdateScene(sceneID, func(s domain.Scene) domain.Scene {
		s.Status = domain.SceneStatusGenerating
		return s
	})
	if err != nil {
		return domain.Scene{}, err
	}

	refs := r.ws.ConsistencyRefs()
	slog.InfoContext(ctx, "SceneImageRunner: シーン画像を生成します", "scene", sceneID, "refs", len(refs))

	url, genErr := r.images.GenerateImage(ctx, scene.ImagePrompt, SceneAspectRatio, refs)
	if genErr != nil {
		if _, err := r.ws.UpdateScene(sceneID, func(s domain.Scene) domain.Scene {
			s.Status = domain.SceneStatusError
			return s
		}); err != nil {
			slog.WarnContext(ctx, "シーンの状態を更新できませんでした", "scene", sceneID, "error", err)
		}
		return domain.Scene{}, fmt.Errorf("シーン %s の画像生成に失敗しました: %w", sceneID, genErr)
	}

	updated, err := r.ws.UpdateScene(sceneID, func(s domain.Scene) domain.Scene {
		s.Status = domain.SceneStatusCompleted
		s.ImageURL = url
		return s
	})
	if err != nil {
		return domain.Scene{}, err
	}
	r.ws.AddAsset(domain.NewAsset(domain.AssetTypeImage, url, updated.Description))
	return updated, nil
}

// RunAll はすべてのシーンの画像を台本の順に1件ずつ生成します。
// 途中で失敗したシーンはログに残して飛ばし、処理全体はエラーにしません。
func (r *SceneImageRunner) RunAll(ctx context.Context) (RunReport, error) {
	scenes := r.ws.Scenes()
	if len(scenes) == 0 {
		return RunReport{Policy: ContinueOnError}, nil
	}

	done := trackState(r.ws, domain.StateGenerating)
	defer done()

	tasks := make([]Task, 0, len(scenes))
	for _, s := range scenes {
		id := s.ID
		tasks = append(tasks, Task{
			Name: id,
			Run: func(ctx context.Context) error {
				_, err := r.Run(ctx, id)
				return err
			},
		})
	}

	report, err := Sequence{Policy: ContinueOnError}.Run(ctx, tasks)
	if err != nil {
		return report, err
	}
	slog.InfoContext(ctx, "ストーリーボードの一括生成が完了しました", "done", report.Done(), "failed", report.Failed())
	return report, nil
}
