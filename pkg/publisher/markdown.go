package publisher

import (
	"fmt"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// sceneEntry は Markdown の1セクションに対応する、書き出し済みの参照付きシーンです。
type sceneEntry struct {
	domain.Scene
	Image     string
	Video     string
	Narration string
}

// buildMarkdown はシーンごとに見出し、説明、画像、動画、ナレーションを並べた Markdown を返します。
func buildMarkdown(title string, entries []sceneEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("## %s [%s]\n\n", e.ID, e.Timestamp))
		sb.WriteString(e.Description + "\n\n")
		if e.Image != "" {
			sb.WriteString(fmt.Sprintf("![%s](%s)\n\n", e.ID, e.Image))
		}
		sb.WriteString(fmt.Sprintf("- prompt: %s\n", e.ImagePrompt))
		sb.WriteString(fmt.Sprintf("- status: %s\n", e.Status))
		if e.Video != "" {
			sb.WriteString(fmt.Sprintf("- video: %s\n", e.Video))
		}
		if e.Narration != "" {
			sb.WriteString(fmt.Sprintf("- narration: %s\n", e.Narration))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
