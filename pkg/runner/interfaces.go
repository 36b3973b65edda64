package runner

import (
	"context"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/generator"
)

// ScriptAnalyzer は台本をシーンに分解します。
type ScriptAnalyzer interface {
	AnalyzeScript(ctx context.Context, script string, useSearch bool) (domain.Scenes, error)
}

// ImageGenerator は標準モデルと Pro モデルで画像を生成します。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, aspect domain.AspectRatio, refs []string) (string, error)
	GenerateProImage(ctx context.Context, req generator.ProImageRequest) (string, error)
}

// VideoGenerator はシード画像から動画を生成します。
type VideoGenerator interface {
	GenerateVideo(ctx context.Context, seed, prompt string, aspect domain.AspectRatio) (string, error)
}

// NarrationGenerator はテキストを読み上げた音声を生成します。
type NarrationGenerator interface {
	GenerateNarration(ctx context.Context, text string) (string, error)
}

// ThumbnailGenerator はサムネイルの生成とスタイル変換を行います。
type ThumbnailGenerator interface {
	GenerateThumbnail(ctx context.Context, script string, refs []string) (generator.Thumbnail, error)
	RestyleImage(ctx context.Context, source, styleRef, prompt string) (string, error)
}

// ImageEditor は指示に従って画像を編集します。
type ImageEditor interface {
	EditImage(ctx context.Context, source, instruction string) (string, error)
}

// VariationGenerator は顔写真から全身のバリエーションを生成します。
type VariationGenerator interface {
	GenerateCharacterVariations(ctx context.Context, face string) ([]string, error)
}
