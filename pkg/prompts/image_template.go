package prompts

import (
	"fmt"
	"strings"
)

const (
	// FallbackThumbnailConcept はコンセプト生成が空だった場合に使う既定値なのだ。
	FallbackThumbnailConcept = "High impact cinematic shot."

	// DefaultNarrationVoice は TTS のプリセット音声名です。
	DefaultNarrationVoice = "Kore"
	// DefaultNarrationLanguage はナレーションの言語です。
	DefaultNarrationLanguage = "Portuguese"
	// DefaultDisplayLanguage はシーン説明の表示言語です。
	DefaultDisplayLanguage = "PORTUGUÊS DO BRASIL"

	// identityRules は標準モデル向けの人物同一性ルールです。
	identityRules = `IDENTITY RULES:
1. PROTAGONIST: Use references ONLY for characters labeled 'PROTAGONIST'.
2. OTHERS: For anyone else, generate unique faces that match the scene's historical/geographic context. DO NOT use reference faces for these people.`

	// proIdentityRules は Pro モデル向けの人物同一性ルールです。
	proIdentityRules = `PRO IDENTITY MANAGEMENT:
- references ONLY for 'PROTAGONIST'.
- all other figures MUST have unique, era-accurate, diverse faces.`
)

// VariationScenarios はキャラクター参照を増やすための固定シナリオなのだ。
var VariationScenarios = []string{
	"Full-body studio portrait, neutral background.",
	"Candid full-body shot walking in a city.",
	"Dramatic low-angle shot in nature.",
}

// QuickEdit はエディタのワンクリック編集です。
type QuickEdit struct {
	Key    string
	Label  string
	Prompt string
}

// QuickEdits は用意済みの編集指示の一覧です。
var QuickEdits = []QuickEdit{
	{Key: "studio", Label: "Iluminação de Estúdio", Prompt: "Adicionar iluminação de estúdio profissional, luz de contorno e sombras suaves"},
	{Key: "realism", Label: "Máximo Realismo", Prompt: "Aumentar detalhes da pele, poros, texturas orgânicas e nitidez cinematográfica"},
	{Key: "golden-hour", Label: "Luz Natural (Golden Hour)", Prompt: "Mudar a iluminação para o pôr do sol, tons quentes e luz natural suave"},
	{Key: "remove-background", Label: "Remover Fundo", Prompt: "Remover o fundo e manter apenas o objeto principal com bordas perfeitas"},
}

// FindQuickEdit はキーに一致するワンクリック編集を返します。
func FindQuickEdit(key string) (QuickEdit, bool) {
	for _, q := range QuickEdits {
		if q.Key == key {
			return q, true
		}
	}
	return QuickEdit{}, false
}

// BuildIdentityInstruction は参照画像と一緒に送る標準モデル用の指示を生成します。
func BuildIdentityInstruction(style string) string {
	return fmt.Sprintf("%s\n\nSTYLE: %s", identityRules, style)
}

// BuildProIdentityInstruction は Pro モデル用の指示を生成します。
func BuildProIdentityInstruction(style string) string {
	return fmt.Sprintf("%s\n\nSTYLE: %s", proIdentityRules, style)
}

// BuildVariationInstruction は主人公の全身バリエーション用の指示です。
func BuildVariationInstruction(scenario string) string {
	return fmt.Sprintf("Full-body view of THIS PROTAGONIST. 100%% facial fidelity. Scenario: %s", scenario)
}

// BuildThumbnailConceptPrompt はサムネイルのコンセプトを考えさせるプロンプトです。
func BuildThumbnailConceptPrompt(script string) string {
	return fmt.Sprintf("Viral YouTube thumbnail concept for: %s. Prompt in English.", script)
}

// BuildThumbnailInstruction はサムネイル画像生成の指示です。
func BuildThumbnailInstruction(concept string) string {
	return fmt.Sprintf("PROTAGONIST: Use references. CONCEPT: %s", concept)
}

// BuildRestyleInstruction は1枚目の構図を2枚目の画風で描き直させる指示です。
func BuildRestyleInstruction(subject string) string {
	var sb strings.Builder
	sb.WriteString("ACT AS A HIGH-END ART DIRECTOR. ")
	sb.WriteString("Redraw the content and composition of the FIRST image using the EXACT artistic style, lighting, color palette, and mood of the SECOND image. ")
	sb.WriteString("Maintain the original subject matter: ")
	sb.WriteString(subject)
	return sb.String()
}

// BuildEditInstruction は写真編集の指示です。
func BuildEditInstruction(instruction string) string {
	return fmt.Sprintf("PHOTO EDIT: %s. Professional photorealistic blending.", instruction)
}

// BuildNarrationPrompt は TTS に渡す読み上げ指示です。
func BuildNarrationPrompt(language, text string) string {
	return fmt.Sprintf("Narrate in %s: %s", language, text)
}

// BuildVideoPrompt は Veo に渡す動画プロンプトです。
func BuildVideoPrompt(prompt string) string {
	return fmt.Sprintf("Cinematic: %s. Realistic motion.", prompt)
}
