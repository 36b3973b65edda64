package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssetType はギャラリーに追加される生成物の種類です。
type AssetType string

const (
	AssetTypeImage     AssetType = "image"
	AssetTypeVideo     AssetType = "video"
	AssetTypeNarration AssetType = "narration"
	AssetTypeThumbnail AssetType = "thumbnail"
)

// IsImage は静止画として扱える種類かどうかを返します。
func (t AssetType) IsImage() bool {
	return t == AssetTypeImage || t == AssetTypeThumbnail
}

// GeneratedAsset はギャラリーの1エントリです。追加後は変更しません。
type GeneratedAsset struct {
	ID        string    `json:"id"`
	Type      AssetType `json:"type"`
	URL       string    `json:"url"`
	Prompt    string    `json:"prompt"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAsset は新しい ID と現在時刻を付与したアセットを作ります。
func NewAsset(t AssetType, url, prompt string) GeneratedAsset {
	return GeneratedAsset{
		ID:        uuid.NewString(),
		Type:      t,
		URL:       url,
		Prompt:    prompt,
		Timestamp: time.Now(),
	}
}

// MaxCharacterRefs はキャラクター参照画像の上限なのだ。
const MaxCharacterRefs = 4

// CapCharacterRefs は既存の参照に追加分を連結し、先頭から上限件数までに切り詰めます。
func CapCharacterRefs(current, added []string) []string {
	merged := make([]string, 0, len(current)+len(added))
	merged = append(merged, current...)
	merged = append(merged, added...)
	if len(merged) > MaxCharacterRefs {
		merged = merged[:MaxCharacterRefs]
	}
	return merged
}
