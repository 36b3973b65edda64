package prompts

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"
)

// ErrUnknownMode は登録されていないテンプレートモードを表します。
var ErrUnknownMode = errors.New("未登録のプロンプトモードです")

// PromptBuilder は、モード名とデータから AI に渡す指示文を作ります。
type PromptBuilder interface {
	Build(mode string, data TemplateData) (string, error)
}

// TextPromptBuilder は go:embed のテンプレート群を起動時にまとめて解析して保持します。
// 解析後は読み取りのみなので、複数の goroutine から同時に Build できます。
type TextPromptBuilder struct {
	set *template.Template
}

// NewTextPromptBuilder は埋め込みテンプレートをすべて解析します。
// 空のテンプレートや未定義のキー参照を含むものがあれば失敗します。
func NewTextPromptBuilder() (*TextPromptBuilder, error) {
	set := template.New("prompts").Option("missingkey=error")
	for _, mode := range slices.Sorted(maps.Keys(allTemplates)) {
		body := allTemplates[mode]
		if strings.TrimSpace(body) == "" {
			return nil, fmt.Errorf("テンプレート %q が空です", mode)
		}
		if _, err := set.New(mode).Parse(body); err != nil {
			return nil, fmt.Errorf("テンプレート %q を解析できません: %w", mode, err)
		}
	}
	return &TextPromptBuilder{set: set}, nil
}

// Modes は登録済みのモード名を名前順で返します。
func (b *TextPromptBuilder) Modes() []string {
	return slices.Sorted(maps.Keys(allTemplates))
}

// Build は mode のテンプレートに data を流し込み、前後の空白を除いた指示文を返します。
func (b *TextPromptBuilder) Build(mode string, data TemplateData) (string, error) {
	tmpl := b.set.Lookup(mode)
	if tmpl == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("テンプレート %q の展開に失敗しました: %w", mode, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
