package workflow

import (
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/asset"
	"github.com/shouni/go-storyboard-kit/pkg/generator"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/retry"
)

// デフォルト値の定義なのだ
const (
	DefaultRateInterval = 2 * time.Second
	DefaultRateBurst    = 2
)

// Config はストーリーボードの各 Runner を動作させるための基本設定なのだ。
type Config struct {
	// --- AI Model Settings ---
	GeminiAPIKey string
	Models       generator.Models

	// --- Generation Settings ---
	DisplayLanguage   string
	NarrationLanguage string
	NarrationVoice    string
	VideoResolution   string
	RateInterval      time.Duration
	RateBurst         int

	// --- Storage Settings ---
	// VideoDir が空の場合、動画はメモリ上に保持します。
	VideoDir string
	BlobTTL  time.Duration

	// --- Timeout & Retries ---
	RetryCount      uint64
	RetryDelay      time.Duration
	PollInterval    time.Duration
	MaxPollInterval time.Duration
	MaxVideoWait    time.Duration
}

// NewConfig はデフォルト値で初期化された Config を作成し、必要最小限の値をセットして返すのだ。
func NewConfig(apiKey string) Config {
	cfg := DefaultConfig()
	cfg.GeminiAPIKey = apiKey
	return cfg
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数なのだ。
func DefaultConfig() Config {
	return Config{
		Models:            generator.DefaultModels(),
		DisplayLanguage:   prompts.DefaultDisplayLanguage,
		NarrationLanguage: prompts.DefaultNarrationLanguage,
		NarrationVoice:    prompts.DefaultNarrationVoice,
		VideoResolution:   generator.DefaultVideoResolution,
		RateInterval:      DefaultRateInterval,
		RateBurst:         DefaultRateBurst,
		BlobTTL:           asset.DefaultBlobTTL,
		RetryCount:        retry.DefaultRetries,
		RetryDelay:        retry.DefaultDelay,
		PollInterval:      generator.DefaultPollInterval,
		MaxPollInterval:   generator.DefaultMaxPollInterval,
		MaxVideoWait:      generator.DefaultMaxVideoWait,
	}
}

func (c Config) retryPolicy() retry.Policy {
	return retry.Policy{Retries: c.RetryCount, Delay: c.RetryDelay}
}

func (c Config) generatorConfig() generator.Config {
	cfg := generator.DefaultConfig()
	cfg.Models = c.Models
	cfg.Retry = c.retryPolicy()
	if c.DisplayLanguage != "" {
		cfg.DisplayLanguage = c.DisplayLanguage
	}
	if c.NarrationLanguage != "" {
		cfg.NarrationLanguage = c.NarrationLanguage
	}
	if c.NarrationVoice != "" {
		cfg.NarrationVoice = c.NarrationVoice
	}
	return cfg
}

func (c Config) videoConfig() generator.VideoConfig {
	cfg := generator.DefaultVideoConfig()
	cfg.Retry = c.retryPolicy()
	if c.Models.Video != "" {
		cfg.Model = c.Models.Video
	}
	if c.VideoResolution != "" {
		cfg.Resolution = c.VideoResolution
	}
	if c.PollInterval > 0 {
		cfg.PollInterval = c.PollInterval
	}
	if c.MaxPollInterval > 0 {
		cfg.MaxPollInterval = c.MaxPollInterval
	}
	if c.MaxVideoWait > 0 {
		cfg.MaxWait = c.MaxVideoWait
	}
	return cfg
}
