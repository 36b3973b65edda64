package workflow

import (
	"context"
	"fmt"

	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/asset"
	"github.com/shouni/go-storyboard-kit/pkg/generator"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/runner"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"

	"golang.org/x/time/rate"
)

// ManagerArgs は Manager の初期化に必要な依存関係です。
// クライアントやストアを省略した場合は Config から生成します。
type ManagerArgs struct {
	Config        Config
	Workspace     *workspace.Workspace
	KeySelector   runner.KeySelector
	TextClient    adapters.TextGenerator
	ContentClient adapters.ContentGenerator
	ImageClient   adapters.ImageGenerator
	VideoClient   adapters.VideoClient
	Store         asset.Store
	PromptBuilder prompts.PromptBuilder
}

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
type Manager struct {
	cfg    Config
	ws     *workspace.Workspace
	gate   runner.Capability
	assets *generator.AssetGenerator
	videos *generator.VideoGenerator
}

// New は、設定とワークスペースを基に新しい Manager を初期化します。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	if args.Workspace == nil {
		return nil, fmt.Errorf("Workspace は必須です")
	}

	textClient, imageClient, err := initializeGeminiClients(ctx, args.TextClient, args.ImageClient, args.Config.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	content, video, err := initializeGenAIClients(ctx, args.ContentClient, args.VideoClient, args.Config)
	if err != nil {
		return nil, err
	}

	store, err := initializeStore(args.Store, args.Config)
	if err != nil {
		return nil, err
	}

	assets, err := generator.NewAssetGenerator(args.Config.generatorConfig(), textClient, content, imageClient, args.PromptBuilder)
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}
	videos, err := generator.NewVideoGenerator(args.Config.videoConfig(), video, store)
	if err != nil {
		return nil, fmt.Errorf("動画生成エンジンの初期化に失敗しました: %w", err)
	}

	var gate runner.Capability = runner.Unrestricted{}
	if args.KeySelector != nil {
		gate = runner.NewKeyGate("paid-model", args.KeySelector)
	}

	return &Manager{
		cfg:    args.Config,
		ws:     args.Workspace,
		gate:   gate,
		assets: assets,
		videos: videos,
	}, nil
}

// Workspace は Manager が操作するワークスペースを返します。
func (m *Manager) Workspace() *workspace.Workspace {
	return m.ws
}

// initializeGeminiClients はテキスト生成と標準モデルの画像生成のクライアントを用意します。
// どちらかが省略されていれば gemini クライアントを1つ作り、両方のアダプターで共有します。
func initializeGeminiClients(ctx context.Context, text adapters.TextGenerator, images adapters.ImageGenerator, apiKey string) (adapters.TextGenerator, adapters.ImageGenerator, error) {
	if text != nil && images != nil {
		return text, images, nil
	}

	aiClient, err := adapters.NewGeminiClient(ctx, apiKey)
	if err != nil {
		return nil, nil, err
	}
	if text == nil {
		if text, err = adapters.NewGeminiTextClient(aiClient); err != nil {
			return nil, nil, err
		}
	}
	if images == nil {
		if images, err = adapters.NewGeminiImageClient(aiClient); err != nil {
			return nil, nil, err
		}
	}
	return text, images, nil
}

// initializeGenAIClients は、マルチモーダル生成と動画生成のクライアントを用意します。
// どちらかが省略されていれば genai クライアントを1つ作り、両方の役割に使います。
func initializeGenAIClients(ctx context.Context, content adapters.ContentGenerator, video adapters.VideoClient, cfg Config) (adapters.ContentGenerator, adapters.VideoClient, error) {
	if content != nil && video != nil {
		return content, video, nil
	}

	var limiter *rate.Limiter
	if cfg.RateInterval > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Every(cfg.RateInterval), burst)
	}
	client, err := adapters.NewGenAIClient(ctx, cfg.GeminiAPIKey, limiter)
	if err != nil {
		return nil, nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}

	if content == nil {
		content = client
	}
	if video == nil {
		video = client
	}
	return content, video, nil
}

// initializeStore は動画の保存先を用意します。
func initializeStore(store asset.Store, cfg Config) (asset.Store, error) {
	if store != nil {
		return store, nil
	}
	if cfg.VideoDir == "" {
		return asset.NewMemoryStore(cfg.BlobTTL), nil
	}
	dir, err := asset.NewDirStore(cfg.VideoDir)
	if err != nil {
		return nil, fmt.Errorf("動画の保存先の初期化に失敗しました: %w", err)
	}
	return dir, nil
}
