package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ImageSize は Pro 画像生成の解像度ティアです。
type ImageSize string

const (
	// ImageSize1K は標準的な解像度の設定（1024x1024相当）です。
	ImageSize1K ImageSize = "1K"
	// ImageSize2K は高解像度の設定（2048x2048相当）です。
	ImageSize2K ImageSize = "2K"
	// ImageSize4K は超高解像度の設定（4096x4096相当）です。
	ImageSize4K ImageSize = "4K"
)

// AspectRatio は生成画像・動画の縦横比です。
type AspectRatio string

const (
	AspectWide     AspectRatio = "16:9"
	AspectPortrait AspectRatio = "9:16"
	AspectSquare   AspectRatio = "1:1"
	AspectClassic  AspectRatio = "4:3"
	AspectTall     AspectRatio = "3:4"
)

// ParseImageSize は文字列を ImageSize に変換します。
func ParseImageSize(s string) (ImageSize, error) {
	switch ImageSize(strings.ToUpper(strings.TrimSpace(s))) {
	case ImageSize1K:
		return ImageSize1K, nil
	case ImageSize2K:
		return ImageSize2K, nil
	case ImageSize4K:
		return ImageSize4K, nil
	}
	return "", fmt.Errorf("未対応の画像サイズです: %q", s)
}

// ParseAspectRatio は文字列を AspectRatio に変換します。
func ParseAspectRatio(s string) (AspectRatio, error) {
	switch r := AspectRatio(strings.TrimSpace(s)); r {
	case AspectWide, AspectPortrait, AspectSquare, AspectClassic, AspectTall:
		return r, nil
	}
	return "", fmt.Errorf("未対応のアスペクト比です: %q", s)
}

// DefaultImageMIMEType は応答に MIME タイプが無い場合に使う値なのだ。
const DefaultImageMIMEType = "image/png"

// ErrInvalidDataURI は data URI として解釈できない入力を表します。
var ErrInvalidDataURI = errors.New("data URI の形式が不正です")

// InlineData は data URI から取り出したバイナリとその MIME タイプです。
type InlineData struct {
	MIMEType string
	Data     []byte
}

// ParseDataURI は "data:<mime>;base64,<payload>" を分解します。
func ParseDataURI(uri string) (InlineData, error) {
	if !strings.HasPrefix(uri, "data:") {
		return InlineData{}, ErrInvalidDataURI
	}
	header, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return InlineData{}, ErrInvalidDataURI
	}
	mimeType, _, _ := strings.Cut(strings.TrimPrefix(header, "data:"), ";")
	if mimeType == "" {
		return InlineData{}, ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return InlineData{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return InlineData{MIMEType: mimeType, Data: data}, nil
}

// BuildDataURI はバイナリを base64 の data URI に変換します。
func BuildDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
