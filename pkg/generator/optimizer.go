package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/prompts"
)

// OptimizeMode はプロンプト最適化のテンプレート種別です。
type OptimizeMode string

const (
	// OptimizeCinematic は撮影監督としてリアルな描写へ書き換えます。
	OptimizeCinematic OptimizeMode = prompts.ModeCinematic
	// OptimizeThumbnail はサムネイル戦略家として書き換えます。
	OptimizeThumbnail OptimizeMode = prompts.ModeThumbnail
)

// OptimizePrompt は生の描写を専門的な画像生成プロンプトに書き換えます。
// 応答が空なら元のテキストをそのまま返すのだ。
func (g *AssetGenerator) OptimizePrompt(ctx context.Context, raw string, mode OptimizeMode) (string, error) {
	finalPrompt, err := g.prompts.Build(string(mode), prompts.TemplateData{InputText: raw})
	if err != nil {
		return "", fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	text, err := g.generateText(ctx, "optimize_prompt", g.cfg.Models.Text, finalPrompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return raw, nil
	}
	return text, nil
}
