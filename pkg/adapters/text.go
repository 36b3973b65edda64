package adapters

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

const defaultGeminiTemperature = float32(0.2)

// GeminiTextClient は go-gemini-client を TextGenerator として使うためのアダプターです。
type GeminiTextClient struct {
	aiClient gemini.ContentGenerator
}

// NewGeminiClient は gemini クライアントを初期化します。テキストと画像のアダプターで共有します。
func NewGeminiClient(ctx context.Context, apiKey string) (*gemini.Client, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// NewGeminiTextClient は既存の gemini クライアントを包みます。
func NewGeminiTextClient(aiClient gemini.ContentGenerator) (*GeminiTextClient, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient は必須です")
	}
	return &GeminiTextClient{aiClient: aiClient}, nil
}

// GenerateText はプロンプトを送り、応答テキストを返します。
func (c *GeminiTextClient) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.aiClient.GenerateContent(ctx, model, prompt)
	if err != nil {
		return "", fmt.Errorf("テキスト生成に失敗しました (model=%s): %w", model, err)
	}
	return resp.Text, nil
}
