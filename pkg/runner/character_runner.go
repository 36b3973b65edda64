package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

// CharacterRunner はキャラクター参照画像の管理とバリエーション生成を担当します。
type CharacterRunner struct {
	variations VariationGenerator
	ws         *workspace.Workspace
}

// NewCharacterRunner は依存関係を注入して初期化します。
func NewCharacterRunner(variations VariationGenerator, ws *workspace.Workspace) *CharacterRunner {
	return &CharacterRunner{variations: variations, ws: ws}
}

// AddRefs は参照画像を追加します。data URI として読めないものは拒否します。
func (r *CharacterRunner) AddRefs(refs ...string) ([]string, error) {
	for i, ref := range refs {
		if _, err := domain.ParseDataURI(ref); err != nil {
			return nil, fmt.Errorf("参照画像 #%d: %w", i+1, err)
		}
	}
	return r.ws.AddCharacterRefs(refs...), nil
}

// Variations は先頭の参照画像からバリエーションを生成し、上限まで参照画像に加えます。
func (r *CharacterRunner) Variations(ctx context.Context) ([]string, error) {
	refs := r.ws.CharacterRefs()
	if len(refs) == 0 {
		return nil, ErrNoCharacterRefs
	}

	done := trackState(r.ws, domain.StateGenerating)
	defer done()

	generated, err := r.variations.GenerateCharacterVariations(ctx, refs[0])
	if err != nil {
		return nil, fmt.Errorf("バリエーションの生成に失敗しました: %w", err)
	}
	updated := r.ws.AddCharacterRefs(generated...)
	slog.InfoContext(ctx, "CharacterRunner: 参照画像を更新しました", "generated", len(generated), "refs", len(updated))
	return updated, nil
}
