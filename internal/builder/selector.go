package builder

import (
	"context"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/config"
)

// BillingSelector は、有料モデルの利用可否を環境変数とフラグから判定する KeySelector です。
// CLI では対話的なキー選択ができないので、SelectKey は設定方法を案内するだけです。
type BillingSelector struct {
	cfg *config.Config
}

// NewBillingSelector は BillingSelector を生成します。
func NewBillingSelector(cfg *config.Config) *BillingSelector {
	return &BillingSelector{cfg: cfg}
}

// HasSelectedKey は有料キーが使える状態かを返します。
func (s *BillingSelector) HasSelectedKey(ctx context.Context) (bool, error) {
	return s.cfg.BillingEnabled(), nil
}

// SelectKey は有料キーの設定方法をログで案内します。
func (s *BillingSelector) SelectKey(ctx context.Context) error {
	slog.WarnContext(ctx, "有料モデルには課金が有効なキーが必要です",
		"env", "GEMINI_PAID_API_KEY",
		"flag", "--billing-enabled")
	return nil
}
