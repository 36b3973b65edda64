package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

// MagicEditPrompt はシーン画像を差し替えた編集結果のギャラリー項目名です。
const MagicEditPrompt = "Magic Edit de Ativo"

// EditRunner は画像の編集と、編集結果のシーンへの反映を担当します。
type EditRunner struct {
	editor ImageEditor
	ws     *workspace.Workspace
}

// NewEditRunner は依存関係を注入して初期化します。
func NewEditRunner(editor ImageEditor, ws *workspace.Workspace) *EditRunner {
	return &EditRunner{editor: editor, ws: ws}
}

// Run は自由記述の指示で画像を編集し、結果をギャラリーに追加します。
func (r *EditRunner) Run(ctx context.Context, source, instruction string) (domain.GeneratedAsset, error) {
	url, err := r.edit(ctx, source, instruction)
	if err != nil {
		return domain.GeneratedAsset{}, err
	}
	asset := domain.NewAsset(domain.AssetTypeImage, url, instruction)
	r.ws.AddAsset(asset)
	return asset, nil
}

// QuickEdit は用意済みの指示をキーで選んで編集します。
func (r *EditRunner) QuickEdit(ctx context.Context, source, key string) (domain.GeneratedAsset, error) {
	q, ok := prompts.FindQuickEdit(key)
	if !ok {
		return domain.GeneratedAsset{}, fmt.Errorf("%w: %s", ErrUnknownQuickEdit, key)
	}
	return r.Run(ctx, source, q.Prompt)
}

// MagicEdit は画像を編集し、その画像を使っているすべてのシーンを編集結果に差し替えます。
// 差し替えたシーンの件数も返すのだ。
func (r *EditRunner) MagicEdit(ctx context.Context, source, instruction string) (domain.GeneratedAsset, int, error) {
	if q, ok := prompts.FindQuickEdit(instruction); ok {
		instruction = q.Prompt
	}
	url, err := r.edit(ctx, source, instruction)
	if err != nil {
		return domain.GeneratedAsset{}, 0, err
	}
	asset, n := r.SaveMagicEdit(source, url)
	slog.InfoContext(ctx, "EditRunner: 編集結果をシーンに反映しました", "scenes", n)
	return asset, n, nil
}

// SaveMagicEdit は source を使っているシーンの画像を edited に置き換え、ギャラリーに追加します。
func (r *EditRunner) SaveMagicEdit(source, edited string) (domain.GeneratedAsset, int) {
	n := r.ws.ReplaceSceneImage(source, edited)
	asset := domain.NewAsset(domain.AssetTypeImage, edited, MagicEditPrompt)
	r.ws.AddAsset(asset)
	return asset, n
}

func (r *EditRunner) edit(ctx context.Context, source, instruction string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("編集する画像が指定されていません")
	}
	if strings.TrimSpace(instruction) == "" {
		return "", ErrEmptyPrompt
	}

	done := trackState(r.ws, domain.StateGenerating)
	defer done()

	url, err := r.editor.EditImage(ctx, source, instruction)
	if err != nil {
		return "", fmt.Errorf("画像の編集に失敗しました: %w", err)
	}
	return url, nil
}
