package prompts

import (
	_ "embed"
)

const (
	// ModeCinematic は撮影監督として描写を技術的なプロンプトに書き換えるモードなのだ。
	ModeCinematic = "cinematic"
	// ModeThumbnail はサムネイル戦略家として高 CTR 向けに書き換えるモードなのだ。
	ModeThumbnail = "thumbnail"
	// ModeAnalyze は台本をシーンに分解させるモードです。
	ModeAnalyze = "analyze"
)

// TemplateData はテンプレートに渡すデータ構造です。
type TemplateData struct {
	InputText       string
	DisplayLanguage string
}

var (
	//go:embed templates/cinematic.md
	CinematicPrompt string
	//go:embed templates/thumbnail.md
	ThumbnailPrompt string
	//go:embed templates/analyze.md
	AnalyzePrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップなのだ。
var allTemplates = map[string]string{
	ModeCinematic: CinematicPrompt,
	ModeThumbnail: ThumbnailPrompt,
	ModeAnalyze:   AnalyzePrompt,
}
