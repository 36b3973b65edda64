package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/retry"

	"github.com/shouni/gemini-image-kit/ports"
	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

// デフォルトのモデル名なのだ
const (
	DefaultTextModel     = "gemini-3-flash-preview"
	DefaultAnalysisModel = "gemini-3-pro-preview"
	DefaultImageModel    = "gemini-2.5-flash-image"
	DefaultProImageModel = "gemini-3-pro-image-preview"
	DefaultSpeechModel   = "gemini-2.5-flash-preview-tts"
	DefaultVideoModel    = "veo-3.1-fast-generate-preview"
)

// 出力が得られなかった場合のエラーです。再試行の対象にはしません。
var (
	ErrImageFailed      = errors.New("画像生成に失敗しました")
	ErrProImageFailed   = errors.New("Pro 画像生成に失敗しました")
	ErrVariationsFailed = errors.New("キャラクターバリエーションの生成に失敗しました")
	ErrThumbnailFailed  = errors.New("サムネイル生成に失敗しました")
	ErrRestyleFailed    = errors.New("スタイルの適用に失敗しました")
	ErrEditFailed       = errors.New("画像の編集に失敗しました")
	ErrNarrationFailed  = errors.New("ナレーション音声の生成に失敗しました")
	ErrAnalysisFailed   = errors.New("台本の解析に失敗しました")
	ErrEmptyScript      = errors.New("台本が空です")
)

// Models は用途ごとのモデル名です。
type Models struct {
	Text     string
	Analysis string
	Image    string
	ProImage string
	Speech   string
	Video    string
}

// DefaultModels は既定のモデル構成を返します。
func DefaultModels() Models {
	return Models{
		Text:     DefaultTextModel,
		Analysis: DefaultAnalysisModel,
		Image:    DefaultImageModel,
		ProImage: DefaultProImageModel,
		Speech:   DefaultSpeechModel,
		Video:    DefaultVideoModel,
	}
}

// Config は AssetGenerator の動作設定です。
type Config struct {
	Models            Models
	Retry             retry.Policy
	DisplayLanguage   string
	NarrationLanguage string
	NarrationVoice    string
}

// DefaultConfig は推奨されるデフォルト設定を返すのだ。
func DefaultConfig() Config {
	return Config{
		Models:            DefaultModels(),
		Retry:             retry.DefaultPolicy(),
		DisplayLanguage:   prompts.DefaultDisplayLanguage,
		NarrationLanguage: prompts.DefaultNarrationLanguage,
		NarrationVoice:    prompts.DefaultNarrationVoice,
	}
}

// AssetGenerator はプロンプト最適化、台本解析、画像・音声生成をまとめて提供します。
type AssetGenerator struct {
	cfg     Config
	text    adapters.TextGenerator
	content adapters.ContentGenerator
	images  adapters.ImageGenerator
	prompts prompts.PromptBuilder
}

// NewAssetGenerator は依存関係を注入して AssetGenerator を初期化します。
// 標準モデルの画像は images、それ以外のマルチモーダル生成は content に送ります。
func NewAssetGenerator(cfg Config, text adapters.TextGenerator, content adapters.ContentGenerator, images adapters.ImageGenerator, pb prompts.PromptBuilder) (*AssetGenerator, error) {
	if text == nil {
		return nil, fmt.Errorf("TextGenerator は必須です")
	}
	if content == nil {
		return nil, fmt.Errorf("ContentGenerator は必須です")
	}
	if images == nil {
		return nil, fmt.Errorf("ImageGenerator は必須です")
	}
	if pb == nil {
		built, err := prompts.NewTextPromptBuilder()
		if err != nil {
			return nil, fmt.Errorf("TextPromptBuilder の新規作成に失敗しました: %w", err)
		}
		pb = built
	}
	return &AssetGenerator{cfg: cfg, text: text, content: content, images: images, prompts: pb}, nil
}

// generateText は再試行付きでテキスト生成を呼び出します。
func (g *AssetGenerator) generateText(ctx context.Context, name, model, prompt string) (string, error) {
	return retry.Do(ctx, g.cfg.Retry, name, func(ctx context.Context) (string, error) {
		return g.text.GenerateText(ctx, model, prompt)
	})
}

// generateContent は再試行付きでマルチモーダル生成を呼び出します。
func (g *AssetGenerator) generateContent(ctx context.Context, name, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return retry.Do(ctx, g.cfg.Retry, name, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return g.content.GenerateContent(ctx, model, parts, config)
	})
}

// generateImages は再試行付きで画像モデルを呼び出します。
// 画像が得られなかった場合は再試行せず failure を返すのだ。
func (g *AssetGenerator) generateImages(ctx context.Context, name, model string, parts []*genai.Part, opts gemini.GenerateOptions, failure error) ([]*ports.ImageResponse, error) {
	images, err := retry.Do(ctx, g.cfg.Retry, name, func(ctx context.Context) ([]*ports.ImageResponse, error) {
		images, err := g.images.GenerateImages(ctx, model, parts, opts)
		if errors.Is(err, adapters.ErrNoImage) {
			return nil, retry.Permanent(err)
		}
		return images, err
	})
	if err != nil && !errors.Is(err, adapters.ErrNoImage) {
		return nil, err
	}
	if len(images) == 0 {
		slog.WarnContext(ctx, "応答に画像が含まれていません", "operation", name, "model", model, "error", err)
		return nil, failure
	}
	return images, nil
}

// generateImage は generateImages の最初の画像を data URI にして返します。
func (g *AssetGenerator) generateImage(ctx context.Context, name, model string, parts []*genai.Part, opts gemini.GenerateOptions, failure error) (string, error) {
	images, err := g.generateImages(ctx, name, model, parts, opts, failure)
	if err != nil {
		return "", err
	}
	return encodeImage(images[0]), nil
}

// generateContentImage は genai の設定をそのまま使ってリクエストを送り、最初のインライン画像を data URI にして返します。
// 検索ツールや解像度指定が必要な Pro モデル用なのだ。
func (g *AssetGenerator) generateContentImage(ctx context.Context, name, model string, parts []*genai.Part, config *genai.GenerateContentConfig, failure error) (string, error) {
	resp, err := g.generateContent(ctx, name, model, parts, config)
	if err != nil {
		return "", err
	}
	img, ok := adapters.FirstInlineData(resp)
	if !ok {
		slog.WarnContext(ctx, "応答に画像が含まれていません", "operation", name, "model", model)
		return "", failure
	}
	return encodeImage(img), nil
}

func encodeImage(img *ports.ImageResponse) string {
	mimeType := img.MimeType
	if mimeType == "" {
		mimeType = domain.DefaultImageMIMEType
	}
	return domain.BuildDataURI(mimeType, img.Data)
}

// referenceParts は data URI の参照画像をリクエスト用パーツに変換します。
func referenceParts(refs []string) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(refs)+1)
	for i, ref := range refs {
		inline, err := domain.ParseDataURI(ref)
		if err != nil {
			return nil, fmt.Errorf("参照画像 #%d を読み込めません: %w", i+1, err)
		}
		parts = append(parts, adapters.InlinePart(inline.Data, inline.MIMEType))
	}
	return parts, nil
}

func imageOptions(aspect domain.AspectRatio) gemini.GenerateOptions {
	return gemini.GenerateOptions{AspectRatio: string(aspect)}
}

func searchTools() []*genai.Tool {
	return []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
}
