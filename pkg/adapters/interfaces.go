package adapters

import (
	"context"

	"github.com/shouni/gemini-image-kit/ports"
	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

// TextGenerator はテキストだけを返す軽量な生成を担うのだ
type TextGenerator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// ContentGenerator は画像・テキスト・音声のパーツを組み合わせたマルチモーダル生成を担うのだ
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ImageGenerator は画像モデルへの送信と、応答からの画像の取り出しを担うのだ
type ImageGenerator interface {
	GenerateImages(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) ([]*ports.ImageResponse, error)
}

// VideoClient は Veo の非同期ジョブの投入、状態取得、ダウンロードを担うのだ
type VideoClient interface {
	SubmitVideo(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	PollVideo(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
	DownloadVideo(ctx context.Context, video *genai.GeneratedVideo) ([]byte, error)
}
