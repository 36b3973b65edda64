package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/generator"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

// CreateRequest は独立クリエイターへの入力です。
type CreateRequest struct {
	Prompt    string
	Pro       bool
	Size      domain.ImageSize
	Aspect    domain.AspectRatio
	UseSearch bool
}

// CreatorRunner はシーンに紐付かない自由な画像生成を担当します。
type CreatorRunner struct {
	images ImageGenerator
	gate   Capability
	ws     *workspace.Workspace
}

// NewCreatorRunner は依存関係を注入して初期化します。gate は Pro モデルの前に確認されます。
func NewCreatorRunner(images ImageGenerator, gate Capability, ws *workspace.Workspace) *CreatorRunner {
	if gate == nil {
		gate = Unrestricted{}
	}
	return &CreatorRunner{images: images, gate: gate, ws: ws}
}

// Run は要求に応じて標準モデルか Pro モデルで画像を生成し、ギャラリーに追加します。
func (r *CreatorRunner) Run(ctx context.Context, req CreateRequest) (domain.GeneratedAsset, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return domain.GeneratedAsset{}, ErrEmptyPrompt
	}
	if req.Aspect == "" {
		req.Aspect = domain.AspectWide
	}
	refs := r.ws.ConsistencyRefs()

	if req.Pro {
		if err := r.gate.Check(ctx); err != nil {
			return domain.GeneratedAsset{}, err
		}
	}

	done := trackState(r.ws, domain.StateGenerating)
	defer done()

	slog.InfoContext(ctx, "CreatorRunner: 画像を生成します", "pro", req.Pro, "aspect", req.Aspect, "refs", len(refs))
	var (
		url string
		err error
	)
	if req.Pro {
		url, err = r.images.GenerateProImage(ctx, generator.ProImageRequest{
			Prompt:    req.Prompt,
			Size:      req.Size,
			Aspect:    req.Aspect,
			UseSearch: req.UseSearch,
			Refs:      refs,
		})
	} else {
		url, err = r.images.GenerateImage(ctx, req.Prompt, req.Aspect, refs)
	}
	if err != nil {
		return domain.GeneratedAsset{}, fmt.Errorf("画像の生成に失敗しました: %w", err)
	}

	asset := domain.NewAsset(domain.AssetTypeImage, url, req.Prompt)
	r.ws.AddAsset(asset)
	return asset, nil
}
