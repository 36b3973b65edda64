package asset

import (
	"mime"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultVideoDir は生成された動画を格納するデフォルトのディレクトリ名です。
	DefaultVideoDir = "videos"
	// DefaultWorkspaceFile はワークスペースのスナップショットを保存するファイル名です。
	DefaultWorkspaceFile = "workspace.json"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}

// PreferredExtension は MIME タイプに対応する拡張子を返します。分からない場合は ".bin" です。
func PreferredExtension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "video/mp4":
		return ".mp4"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
