package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

// SceneVideoRunner はシーン画像やクリエイターの画像を動画にします。
// 動画モデルは有料なので、投入の前に必ず前提条件を確認します。
type SceneVideoRunner struct {
	videos VideoGenerator
	gate   Capability
	ws     *workspace.Workspace
}

// NewSceneVideoRunner は依存関係を注入して初期化します。gate が nil なら確認を行いません。
func NewSceneVideoRunner(videos VideoGenerator, gate Capability, ws *workspace.Workspace) *SceneVideoRunner {
	if gate == nil {
		gate = Unrestricted{}
	}
	return &SceneVideoRunner{videos: videos, gate: gate, ws: ws}
}

// Run はシーンの画像から動画を生成し、同じシーンに反映します。
func (r *SceneVideoRunner) Run(ctx context.Context, sceneID string) (domain.Scene, error) {
	scene, err := r.ws.Scene(sceneID)
	if err != nil {
		return domain.Scene{}, err
	}
	if !scene.HasImage() {
		return domain.Scene{}, fmt.Errorf("%w: %s", ErrSceneHasNoImage, sceneID)
	}
	if err := r.gate.Check(ctx); err != nil {
		return domain.Scene{}, err
	}

	done := trackState(r.ws, domain.StateGenerating)
	defer done()

	slog.InfoContext(ctx, "SceneVideoRunner: シーン動画を生成します", "scene", sceneID)
	url, err := r.videos.GenerateVideo(ctx, scene.ImageURL, scene.ImagePrompt, SceneAspectRatio)
	if err != nil {
		return domain.Scene{}, fmt.Errorf("シーン %s の動画生成に失敗しました: %w", sceneID, err)
	}

	updated, err := r.ws.UpdateScene(sceneID, func(s domain.Scene) domain.Scene {
		s.VideoURL = url
		return s
	})
	if err != nil {
		return domain.Scene{}, err
	}
	r.ws.AddAsset(domain.NewAsset(domain.AssetTypeVideo, url, updated.Description))
	return updated, nil
}

// Animate は任意の画像を動画にしてギャラリーに追加します。シーンには関連付けません。
func (r *SceneVideoRunner) Animate(ctx context.Context, image, prompt string, aspect domain.AspectRatio) (domain.GeneratedAsset, error) {
	if image == "" {
		return domain.GeneratedAsset{}, fmt.Errorf("動画にする画像が指定されていません")
	}
	if strings.TrimSpace(prompt) == "" {
		return domain.GeneratedAsset{}, ErrEmptyPrompt
	}
	if err := r.gate.Check(ctx); err != nil {
		return domain.GeneratedAsset{}, err
	}

	done := trackState(r.ws, domain.StateGenerating)
	defer done()

	url, err := r.videos.GenerateVideo(ctx, image, prompt, aspect)
	if err != nil {
		return domain.GeneratedAsset{}, fmt.Errorf("動画生成に失敗しました: %w", err)
	}
	asset := domain.NewAsset(domain.AssetTypeVideo, url, prompt)
	r.ws.AddAsset(asset)
	return asset, nil
}
