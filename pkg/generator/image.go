package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"

	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

const (
	// VariationAspectRatio はキャラクターバリエーションの縦長フォーマットです。
	VariationAspectRatio = domain.AspectPortrait
	// ThumbnailAspectRatio はサムネイルとスタイル変換のフォーマットです。
	ThumbnailAspectRatio = domain.AspectWide
	// MaxThumbnailRefs はサムネイル生成に渡す参照画像の上限です。
	MaxThumbnailRefs = 3
)

// ProImageRequest は Pro 画像生成の入力です。
type ProImageRequest struct {
	Prompt    string
	Size      domain.ImageSize
	Aspect    domain.AspectRatio
	UseSearch bool
	Refs      []string
}

// Thumbnail は生成されたサムネイルと、それを生んだ最適化済みプロンプトです。
type Thumbnail struct {
	URL    string
	Prompt string
}

// GenerateImage は標準モデルで画像を生成し、data URI を返します。
func (g *AssetGenerator) GenerateImage(ctx context.Context, prompt string, aspect domain.AspectRatio, refs []string) (string, error) {
	optimized, err := g.OptimizePrompt(ctx, prompt, OptimizeCinematic)
	if err != nil {
		return "", err
	}

	parts, err := referenceParts(refs)
	if err != nil {
		return "", err
	}
	parts = append(parts, genai.NewPartFromText(prompts.BuildIdentityInstruction(optimized)))

	slog.InfoContext(ctx, "画像を生成します", "model", g.cfg.Models.Image, "aspect", aspect, "refs", len(refs))
	return g.generateImage(ctx, "generate_image", g.cfg.Models.Image, parts, imageOptions(aspect), ErrImageFailed)
}

// GenerateProImage は高解像度モデルで画像を生成します。
// 課金設定の確認はワークフロー側で送信前に済ませておくこと。
func (g *AssetGenerator) GenerateProImage(ctx context.Context, req ProImageRequest) (string, error) {
	size := req.Size
	if size == "" {
		size = domain.ImageSize1K
	}
	config := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: string(req.Aspect),
			ImageSize:   string(size),
		},
	}
	if req.UseSearch {
		config.Tools = searchTools()
	}

	optimized, err := g.OptimizePrompt(ctx, req.Prompt, OptimizeCinematic)
	if err != nil {
		return "", err
	}

	parts, err := referenceParts(req.Refs)
	if err != nil {
		return "", err
	}
	parts = append(parts, genai.NewPartFromText(prompts.BuildProIdentityInstruction(optimized)))

	slog.InfoContext(ctx, "Pro 画像を生成します",
		"model", g.cfg.Models.ProImage,
		"size", size,
		"aspect", req.Aspect,
		"search", req.UseSearch,
		"refs", len(req.Refs),
	)
	return g.generateContentImage(ctx, "generate_pro_image", g.cfg.Models.ProImage, parts, config, ErrProImageFailed)
}

// GenerateCharacterVariations は1枚の顔写真から固定シナリオごとの全身画像を生成します。
// シナリオは1件ずつ順番に送信し、返ってきた画像をすべて集めるのだ。
func (g *AssetGenerator) GenerateCharacterVariations(ctx context.Context, face string) ([]string, error) {
	inline, err := domain.ParseDataURI(face)
	if err != nil {
		return nil, fmt.Errorf("参照画像を読み込めません: %w", err)
	}

	var results []string
	for i, scenario := range prompts.VariationScenarios {
		parts := []*genai.Part{
			adapters.InlinePart(inline.Data, inline.MIMEType),
			genai.NewPartFromText(prompts.BuildVariationInstruction(scenario)),
		}
		images, err := g.generateImages(ctx, "generate_variation", g.cfg.Models.Image, parts, imageOptions(VariationAspectRatio), ErrVariationsFailed)
		if errors.Is(err, ErrVariationsFailed) {
			slog.WarnContext(ctx, "バリエーションを1件スキップします", "scenario", i+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("バリエーション %d の生成に失敗しました: %w", i+1, err)
		}
		for _, img := range images {
			results = append(results, encodeImage(img))
		}
	}

	if len(results) == 0 {
		return nil, ErrVariationsFailed
	}
	return results, nil
}

// GenerateThumbnail は台本からコンセプトを考え、最適化したプロンプトでサムネイルを生成します。
func (g *AssetGenerator) GenerateThumbnail(ctx context.Context, script string, refs []string) (Thumbnail, error) {
	concept, err := g.generateText(ctx, "thumbnail_concept", g.cfg.Models.Text, prompts.BuildThumbnailConceptPrompt(script))
	if err != nil {
		return Thumbnail{}, err
	}
	if concept == "" {
		concept = prompts.FallbackThumbnailConcept
	}

	optimized, err := g.OptimizePrompt(ctx, concept, OptimizeThumbnail)
	if err != nil {
		return Thumbnail{}, err
	}

	if len(refs) > MaxThumbnailRefs {
		refs = refs[:MaxThumbnailRefs]
	}
	parts, err := referenceParts(refs)
	if err != nil {
		return Thumbnail{}, err
	}
	parts = append(parts, genai.NewPartFromText(prompts.BuildThumbnailInstruction(optimized)))

	url, err := g.generateImage(ctx, "generate_thumbnail", g.cfg.Models.Image, parts, imageOptions(ThumbnailAspectRatio), ErrThumbnailFailed)
	if err != nil {
		return Thumbnail{}, err
	}
	return Thumbnail{URL: url, Prompt: optimized}, nil
}

// RestyleImage は source の構図を styleRef の画風で描き直します。
func (g *AssetGenerator) RestyleImage(ctx context.Context, source, styleRef, prompt string) (string, error) {
	parts, err := referenceParts([]string{source, styleRef})
	if err != nil {
		return "", err
	}
	parts = append(parts, genai.NewPartFromText(prompts.BuildRestyleInstruction(prompt)))

	return g.generateImage(ctx, "restyle_image", g.cfg.Models.Image, parts, imageOptions(ThumbnailAspectRatio), ErrRestyleFailed)
}

// EditImage は自由記述の指示で画像を編集します。プロンプト最適化は行いません。
func (g *AssetGenerator) EditImage(ctx context.Context, source, instruction string) (string, error) {
	parts, err := referenceParts([]string{source})
	if err != nil {
		return "", err
	}
	parts = append(parts, genai.NewPartFromText(prompts.BuildEditInstruction(instruction)))

	return g.generateImage(ctx, "edit_image", g.cfg.Models.Image, parts, gemini.GenerateOptions{}, ErrEditFailed)
}
