package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	imagekit "github.com/shouni/gemini-image-kit/generator"
	"github.com/shouni/gemini-image-kit/ports"
	"github.com/shouni/go-gemini-client/gemini"

	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"
)

const (
	imageCacheExpiration = 30 * time.Minute
	imageCacheCleanup    = 1 * time.Hour
)

var (
	// ErrNoImage は応答に画像が含まれなかったことを表します。送り直しても結果は変わりません。
	ErrNoImage = errors.New("応答に画像が含まれていません")
	// ErrRemoteImageUnsupported は URL やクラウドストレージ上の参照画像を取得しようとしたときのエラーです。
	// 参照画像はすべて data URI として渡します。
	ErrRemoteImageUnsupported = errors.New("リモートの参照画像には対応していません")
)

// GeminiImageClient は gemini-image-kit の GeminiImageCore を ImageGenerator として使うためのアダプターです。
type GeminiImageClient struct {
	aiClient gemini.Generator
	core     *imagekit.GeminiImageCore
}

// NewGeminiImageClient は aiClient を共有する画像生成アダプターを初期化します。
func NewGeminiImageClient(aiClient gemini.GenerativeModel) (*GeminiImageClient, error) {
	core, err := imagekit.NewGeminiImageCore(
		aiClient,
		noRemoteFetch{},
		noRemoteFetch{},
		cache.New(imageCacheExpiration, imageCacheCleanup),
		imageCacheExpiration,
		false,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗しました: %w", err)
	}
	return &GeminiImageClient{aiClient: aiClient, core: core}, nil
}

// GenerateImages は1回の送信で返ってきた画像をすべて返します。
// 1枚も無い場合や生成がブロックされた場合は ErrNoImage を包んで返すのだ。
func (c *GeminiImageClient) GenerateImages(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) ([]*ports.ImageResponse, error) {
	slog.DebugContext(ctx, "画像モデルにリクエストを送信します", "model", model, "parts", len(parts), "aspect", opts.AspectRatio)
	resp, err := c.aiClient.GenerateWithParts(ctx, model, parts, opts)
	if err != nil {
		var blocked *gemini.APIResponseError
		if errors.As(err, &blocked) {
			return nil, fmt.Errorf("%w (model=%s): %v", ErrNoImage, model, err)
		}
		return nil, fmt.Errorf("画像生成 API の呼び出しに失敗しました (model=%s): %w", model, err)
	}

	if _, err := c.core.ParseToResponse(resp, ports.DereferenceSeed(opts.Seed)); err != nil {
		return nil, fmt.Errorf("%w (model=%s): %v", ErrNoImage, model, err)
	}
	images := AllInlineData(resp.RawResponse)
	if len(images) == 0 {
		return nil, fmt.Errorf("%w (model=%s): 画像データが空です", ErrNoImage, model)
	}
	return images, nil
}

// noRemoteFetch は GeminiImageCore のリモート取得口を塞ぐための実装です。
type noRemoteFetch struct{}

func (noRemoteFetch) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("%w: %s", ErrRemoteImageUnsupported, uri)
}

func (noRemoteFetch) GetStream(ctx context.Context, url string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("%w: %s", ErrRemoteImageUnsupported, url)
}

func (noRemoteFetch) FetchStream(ctx context.Context, url string, fn func(io.Reader) error) error {
	return fmt.Errorf("%w: %s", ErrRemoteImageUnsupported, url)
}
