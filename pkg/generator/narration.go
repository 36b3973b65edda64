package generator

import (
	"context"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"

	"google.golang.org/genai"
)

// NarrationMIMEType は生成した音声の data URI に付ける MIME タイプです。
const NarrationMIMEType = "audio/wav"

// GenerateNarration はテキストを固定の言語と音声で読み上げ、音声の data URI を返します。
func (g *AssetGenerator) GenerateNarration(ctx context.Context, text string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.cfg.NarrationVoice},
			},
		},
	}
	parts := []*genai.Part{genai.NewPartFromText(prompts.BuildNarrationPrompt(g.cfg.NarrationLanguage, text))}

	slog.InfoContext(ctx, "ナレーションを生成します", "model", g.cfg.Models.Speech, "voice", g.cfg.NarrationVoice)
	resp, err := g.generateContent(ctx, "generate_narration", g.cfg.Models.Speech, parts, config)
	if err != nil {
		return "", err
	}

	audio, ok := adapters.LeadingInlineData(resp)
	if !ok {
		return "", ErrNarrationFailed
	}
	return domain.BuildDataURI(NarrationMIMEType, audio.Data), nil
}
