package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/generator"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/workflow"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultOutputDir    = "output" // ワークスペースと動画を置くディレクトリなのだ
	DefaultEnvFile      = ".env"
	DefaultMaxVideoWait = 10 * time.Minute
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey string
	// PaidAPIKey が設定されていれば、有料モデルの前提条件を満たしたとみなすのだ。
	PaidAPIKey string

	TextModel     string
	AnalysisModel string
	ImageModel    string
	ProImageModel string
	SpeechModel   string
	VideoModel    string

	DisplayLanguage   string
	NarrationLanguage string
	NarrationVoice    string

	PollInterval time.Duration
	MaxVideoWait time.Duration

	Options GenerateOptions
}

// LoadDotEnv は path の .env を環境変数に読み込むのだ。ファイルが無ければ何もしないのだ。
// すでに設定されている環境変数は上書きしないのだ。
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf(".env ファイル '%s' の読み込みに失敗したのだ: %w", path, err)
	}
	return nil
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:      envutil.GetEnv("GEMINI_API_KEY", ""),
		PaidAPIKey:        envutil.GetEnv("GEMINI_PAID_API_KEY", ""),
		TextModel:         envutil.GetEnv("GEMINI_MODEL", generator.DefaultTextModel),
		AnalysisModel:     envutil.GetEnv("ANALYSIS_GEMINI_MODEL", generator.DefaultAnalysisModel),
		ImageModel:        envutil.GetEnv("IMAGE_GEMINI_MODEL", generator.DefaultImageModel),
		ProImageModel:     envutil.GetEnv("PRO_IMAGE_GEMINI_MODEL", generator.DefaultProImageModel),
		SpeechModel:       envutil.GetEnv("SPEECH_GEMINI_MODEL", generator.DefaultSpeechModel),
		VideoModel:        envutil.GetEnv("VIDEO_MODEL", generator.DefaultVideoModel),
		DisplayLanguage:   envutil.GetEnv("DISPLAY_LANGUAGE", prompts.DefaultDisplayLanguage),
		NarrationLanguage: envutil.GetEnv("NARRATION_LANGUAGE", prompts.DefaultNarrationLanguage),
		NarrationVoice:    envutil.GetEnv("NARRATION_VOICE", prompts.DefaultNarrationVoice),
		PollInterval:      parseDuration(envutil.GetEnv("VIDEO_POLL_INTERVAL", ""), generator.DefaultPollInterval),
		MaxVideoWait:      parseDuration(envutil.GetEnv("VIDEO_MAX_WAIT", ""), DefaultMaxVideoWait),
	}
}

// WorkflowConfig は環境設定と CLI フラグを合成して workflow.Config を作るのだ。
func (c *Config) WorkflowConfig() workflow.Config {
	apiKey := c.GeminiAPIKey
	if c.PaidAPIKey != "" {
		apiKey = c.PaidAPIKey
	}
	cfg := workflow.NewConfig(apiKey)
	cfg.Models = generator.Models{
		Text:     c.TextModel,
		Analysis: c.AnalysisModel,
		Image:    c.ImageModel,
		ProImage: c.ProImageModel,
		Speech:   c.SpeechModel,
		Video:    c.VideoModel,
	}
	cfg.DisplayLanguage = c.DisplayLanguage
	cfg.NarrationLanguage = c.NarrationLanguage
	cfg.NarrationVoice = c.NarrationVoice
	cfg.PollInterval = c.PollInterval
	cfg.MaxVideoWait = c.MaxVideoWait
	cfg.VideoDir = c.Options.VideoDir
	return cfg
}

// BillingEnabled は有料モデルを使ってよいかを返すのだ。
func (c *Config) BillingEnabled() bool {
	return c.PaidAPIKey != "" || c.Options.BillingEnabled
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 入出力関連
	OutputDir     string // --output-dir
	WorkspaceFile string // --workspace: 空なら OutputDir 配下の workspace.json
	VideoDir      string // --video-dir: 空なら OutputDir 配下の videos
	ScriptFile    string // --script-file
	EnvFile       string // --env-file

	// 生成設定
	UseSearch bool   // --search
	Pro       bool   // --pro
	Size      string // --size
	Aspect    string // --aspect
	Quick     string // --quick
	Magic     bool   // --magic

	// 実行制御
	BillingEnabled bool // --billing-enabled
}
