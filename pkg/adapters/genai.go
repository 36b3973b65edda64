package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// 以下は *genai.Client の各サービスのうち、GenAIClient が使うメソッドです。
type modelService interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateVideos(ctx context.Context, model string, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
}

type operationService interface {
	GetVideosOperation(ctx context.Context, operation *genai.GenerateVideosOperation, config *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error)
}

type fileService interface {
	Download(ctx context.Context, uri genai.DownloadURI, config *genai.DownloadFileConfig) ([]byte, error)
}

// GenAIClient は google.golang.org/genai のクライアントを ContentGenerator と VideoClient として包みます。
// limiter が設定されている場合、外部呼び出しの前に待機します。
type GenAIClient struct {
	models     modelService
	operations operationService
	files      fileService
	limiter    *rate.Limiter
}

// NewGenAIClient は Gemini API バックエンドのクライアントを生成します。
func NewGenAIClient(ctx context.Context, apiKey string, limiter *rate.Limiter) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("APIキーが設定されていません")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの初期化に失敗しました: %w", err)
	}
	return &GenAIClient{
		models:     client.Models,
		operations: client.Operations,
		files:      client.Files,
		limiter:    limiter,
	}, nil
}

func (c *GenAIClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("レートリミッターの待機中にエラーが発生しました: %w", err)
	}
	return nil
}

// GenerateContent はパーツを1つのユーザーメッセージとして送信します。
func (c *GenAIClient) GenerateContent(ctx context.Context, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	slog.DebugContext(ctx, "Gemini にリクエストを送信します", "model", model, "parts", len(parts))
	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API の呼び出しに失敗しました (model=%s): %w", model, err)
	}
	return resp, nil
}

// SubmitVideo は動画生成ジョブを投入し、オペレーションハンドルを返します。
func (c *GenAIClient) SubmitVideo(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	op, err := c.models.GenerateVideos(ctx, model, prompt, image, config)
	if err != nil {
		return nil, fmt.Errorf("動画生成ジョブの投入に失敗しました (model=%s): %w", model, err)
	}
	return op, nil
}

// PollVideo はオペレーションの最新状態を取得します。
func (c *GenAIClient) PollVideo(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	if op == nil {
		return nil, fmt.Errorf("動画オペレーションが指定されていません")
	}
	latest, err := c.operations.GetVideosOperation(ctx, op, nil)
	if err != nil {
		return nil, fmt.Errorf("動画オペレーションの状態取得に失敗しました (name=%s): %w", op.Name, err)
	}
	return latest, nil
}

// DownloadVideo は生成済み動画のバイト列を取得します。認証には API キーが使われます。
func (c *GenAIClient) DownloadVideo(ctx context.Context, video *genai.GeneratedVideo) ([]byte, error) {
	data, err := c.files.Download(ctx, genai.NewDownloadURIFromGeneratedVideo(video), nil)
	if err != nil {
		return nil, fmt.Errorf("動画のダウンロードに失敗しました: %w", err)
	}
	return data, nil
}
