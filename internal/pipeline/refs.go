package pipeline

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/runner"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

// ErrNotAnImage は画像として扱えない入力を表すのだ。
var ErrNotAnImage = runner.ErrNotAnImage

// LoadImageRef は入力を画像の data URI に解決するのだ。
// data URI はそのまま、ギャラリーのアセット ID はその URL、それ以外はローカルファイルとして読み込むのだ。
func LoadImageRef(ws *workspace.Workspace, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("画像が指定されていないのだ")
	}
	if strings.HasPrefix(ref, "data:") {
		if _, err := domain.ParseDataURI(ref); err != nil {
			return "", err
		}
		return ref, nil
	}

	if a, err := ws.Asset(ref); err == nil {
		if !a.Type.IsImage() {
			return "", fmt.Errorf("%w: %s は %s です", ErrNotAnImage, ref, a.Type)
		}
		return a.URL, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("画像ファイル '%s' の読み込みに失敗したのだ: %w", ref, err)
	}
	mimeType := detectImageType(ref, data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: %s (%s)", ErrNotAnImage, ref, mimeType)
	}
	return domain.BuildDataURI(mimeType, data), nil
}

func detectImageType(path string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return strings.SplitN(t, ";", 2)[0]
	}
	return http.DetectContentType(data)
}
