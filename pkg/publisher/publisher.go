package publisher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/asset"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"

	"github.com/shouni/go-utils/urlpath"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	Title     string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	MarkdownPath string   // 生成された storyboard.md のパス
	ImagePaths   []string // 保存されたシーン画像のパス
	AudioPaths   []string // 保存されたナレーションのパス
}

const (
	defaultStoryboardName = "storyboard.md"
	defaultImageDirName   = "images"
	defaultAudioDirName   = "audio"
	defaultTitle          = "Storyboard"
)

// StoryboardPublisher はワークスペースの成果物をファイルに書き出し、Markdown の台本にまとめます。
type StoryboardPublisher struct {
	writer OutputWriter
}

// NewStoryboardPublisher は writer を使う StoryboardPublisher を生成します。
func NewStoryboardPublisher(writer OutputWriter) *StoryboardPublisher {
	return &StoryboardPublisher{writer: writer}
}

// Publish はシーン画像とナレーションの保存、Markdownの構築を一括して実行し、生成されたファイル情報を返却するのだ！
func (p *StoryboardPublisher) Publish(ctx context.Context, state workspace.State, opts Options) (PublishResult, error) {
	result := PublishResult{}

	markdown, err := asset.ResolveOutputPath(opts.OutputDir, defaultStoryboardName)
	if err != nil {
		return result, err
	}
	result.MarkdownPath = markdown

	entries := make([]sceneEntry, 0, len(state.Scenes))
	for _, scene := range state.Scenes {
		entry := sceneEntry{Scene: scene, Video: videoLink(opts.OutputDir, scene.VideoURL)}

		if scene.HasImage() {
			saved, err := p.saveInline(ctx, opts.OutputDir, defaultImageDirName, scene.ID, scene.ImageURL)
			if err != nil {
				return result, fmt.Errorf("シーン画像の書き込みに失敗しました (%s): %w", scene.ID, err)
			}
			result.ImagePaths = append(result.ImagePaths, saved)
			entry.Image = path.Join(defaultImageDirName, filepath.Base(saved))
		}
		if scene.NarrationURL != "" {
			saved, err := p.saveInline(ctx, opts.OutputDir, defaultAudioDirName, scene.ID, scene.NarrationURL)
			if err != nil {
				return result, fmt.Errorf("ナレーションの書き込みに失敗しました (%s): %w", scene.ID, err)
			}
			result.AudioPaths = append(result.AudioPaths, saved)
			entry.Narration = path.Join(defaultAudioDirName, filepath.Base(saved))
		}
		entries = append(entries, entry)
	}

	title := opts.Title
	if title == "" {
		title = defaultTitle
	}
	content := buildMarkdown(title, entries)
	if err := p.writer.Write(ctx, markdown, strings.NewReader(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "ストーリーボードを書き出しました",
		"markdown", markdown,
		"images", len(result.ImagePaths),
		"audio", len(result.AudioPaths))
	return result, nil
}

// videoLink は保存済みの動画パスを storyboard.md から辿れる OutputDir 基準の相対パスにします。
// blob 参照や URL はそのまま返すのだ。相対化できない場合も元の値を使うのだ。
func videoLink(outputDir, videoURL string) string {
	if videoURL == "" || strings.HasPrefix(videoURL, asset.BlobScheme) || strings.Contains(videoURL, "://") || urlpath.IsRemoteURI(outputDir) {
		return videoURL
	}
	base, err := filepath.Abs(outputDir)
	if err != nil {
		return videoURL
	}
	target, err := filepath.Abs(videoURL)
	if err != nil {
		return videoURL
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return videoURL
	}
	return filepath.ToSlash(rel)
}

// saveInline は data URI をデコードして dir 配下に name + 拡張子で保存します。
// data URI でない参照（保存済みの動画パスなど）は書き出しません。
func (p *StoryboardPublisher) saveInline(ctx context.Context, baseDir, dir, name, uri string) (string, error) {
	inline, err := domain.ParseDataURI(uri)
	if err != nil {
		return "", err
	}
	subDir, err := asset.ResolveOutputPath(baseDir, dir)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	fullPath, err := asset.ResolveOutputPath(subDir, name+asset.PreferredExtension(inline.MIMEType))
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, fullPath, bytes.NewReader(inline.Data), inline.MIMEType); err != nil {
		return "", err
	}
	return fullPath, nil
}
