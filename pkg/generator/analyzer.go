package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"

	"google.golang.org/genai"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// sceneListSchema は解析結果に要求する JSON の形なのだ。
func sceneListSchema(displayLanguage string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"scenes": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"timestamp": {Type: genai.TypeString},
						"description": {
							Type:        genai.TypeString,
							Description: fmt.Sprintf("Short visual description in %s for the user.", displayLanguage),
						},
						"imagePrompt": {
							Type:        genai.TypeString,
							Description: "Detailed visual prompt in ENGLISH for the image generator.",
						},
					},
					Required:         []string{"timestamp", "description", "imagePrompt"},
					PropertyOrdering: []string{"timestamp", "description", "imagePrompt"},
				},
			},
		},
		Required: []string{"scenes"},
	}
}

// AnalyzeScript は台本をシーンのリストに分解します。
// 失敗はすべて ErrAnalysisFailed として返すので、呼び出し側は既存のシーンを変更してはいけません。
func (g *AssetGenerator) AnalyzeScript(ctx context.Context, script string, useSearch bool) (domain.Scenes, error) {
	if strings.TrimSpace(script) == "" {
		return nil, ErrEmptyScript
	}

	finalPrompt, err := g.prompts.Build(prompts.ModeAnalyze, prompts.TemplateData{
		InputText:       script,
		DisplayLanguage: g.cfg.DisplayLanguage,
	})
	if err != nil {
		return nil, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   sceneListSchema(g.cfg.DisplayLanguage),
	}
	if useSearch {
		config.Tools = searchTools()
	}

	slog.InfoContext(ctx, "台本を解析します", "model", g.cfg.Models.Analysis, "search", useSearch, "chars", len(script))
	resp, err := g.generateContent(ctx, "analyze_script", g.cfg.Models.Analysis, []*genai.Part{genai.NewPartFromText(finalPrompt)}, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	analysis, err := parseAnalysis(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	scenes := analysis.ToScenes()
	slog.InfoContext(ctx, "台本の解析が完了しました", "scenes", len(scenes))
	return scenes, nil
}

// parseAnalysis は AI 応答から JSON を取り出してデコードします。
func parseAnalysis(raw string) (domain.ScriptAnalysis, error) {
	raw = strings.TrimSpace(raw)
	rawJSON := raw

	if matches := jsonBlockRegex.FindStringSubmatch(raw); len(matches) > 1 {
		rawJSON = matches[1]
	} else {
		firstBracket := strings.Index(raw, "{")
		lastBracket := strings.LastIndex(raw, "}")
		if firstBracket != -1 && lastBracket > firstBracket {
			rawJSON = raw[firstBracket : lastBracket+1]
		}
	}

	var analysis domain.ScriptAnalysis
	if err := json.Unmarshal([]byte(rawJSON), &analysis); err != nil {
		return domain.ScriptAnalysis{}, fmt.Errorf("AIからの応答に含まれるJSONの解析に失敗しました (応答抜粋: %q): %w", truncateString(raw, 200), err)
	}
	if analysis.Scenes == nil {
		return domain.ScriptAnalysis{}, fmt.Errorf("AIからの応答に scenes が含まれていません (応答抜粋: %q)", truncateString(raw, 200))
	}
	return analysis, nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
