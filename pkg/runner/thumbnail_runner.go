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

// RestyledPromptPrefix はスタイル変換したサムネイルのプロンプトに付ける接頭辞です。
const RestyledPromptPrefix = "Estilizado: "

// ThumbnailRunner は台本からのサムネイル生成と、スタイル参照による描き直しを担当します。
type ThumbnailRunner struct {
	thumbs ThumbnailGenerator
	ws     *workspace.Workspace
}

// NewThumbnailRunner は依存関係を注入して初期化します。
func NewThumbnailRunner(thumbs ThumbnailGenerator, ws *workspace.Workspace) *ThumbnailRunner {
	return &ThumbnailRunner{thumbs: thumbs, ws: ws}
}

// Run は台本と先頭のシーン画像を使ってサムネイルを生成し、ギャラリーに追加します。
func (r *ThumbnailRunner) Run(ctx context.Context) (domain.GeneratedAsset, error) {
	script := r.ws.Script()
	if strings.TrimSpace(script) == "" {
		return domain.GeneratedAsset{}, ErrNoScript
	}
	refs := r.ws.Scenes().ImageURLs(generator.MaxThumbnailRefs)

	done := trackState(r.ws, domain.StateGenerating)
	defer done()

	slog.InfoContext(ctx, "ThumbnailRunner: サムネイルを生成します", "refs", len(refs))
	thumb, err := r.thumbs.GenerateThumbnail(ctx, script, refs)
	if err != nil {
		return domain.GeneratedAsset{}, fmt.Errorf("サムネイルの生成に失敗しました: %w", err)
	}
	asset := domain.NewAsset(domain.AssetTypeThumbnail, thumb.URL, thumb.Prompt)
	r.ws.AddAsset(asset)
	return asset, nil
}

// Restyle はギャラリーの画像かサムネイルをスタイル参照画像の画風で描き直し、新しい項目として追加します。
// 元の項目は変更しません。動画やナレーションは ErrNotAnImage になります。
func (r *ThumbnailRunner) Restyle(ctx context.Context, assetID string) (domain.GeneratedAsset, error) {
	styleRef := r.ws.StyleReference()
	if styleRef == "" {
		return domain.GeneratedAsset{}, ErrNoStyleReference
	}
	source, err := r.ws.Asset(assetID)
	if err != nil {
		return domain.GeneratedAsset{}, err
	}
	if !source.Type.IsImage() {
		return domain.GeneratedAsset{}, fmt.Errorf("%w: %s は %s です", ErrNotAnImage, assetID, source.Type)
	}

	done := trackState(r.ws, domain.StateGenerating)
	defer done()

	url, err := r.thumbs.RestyleImage(ctx, source.URL, styleRef, source.Prompt)
	if err != nil {
		return domain.GeneratedAsset{}, fmt.Errorf("スタイルの適用に失敗しました: %w", err)
	}
	asset := domain.NewAsset(domain.AssetTypeThumbnail, url, RestyledPromptPrefix+source.Prompt)
	r.ws.AddAsset(asset)
	return asset, nil
}
