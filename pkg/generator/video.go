package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/asset"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/retry"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"
)

const (
	DefaultVideoResolution = "720p"
	DefaultPollInterval    = 8000 * time.Millisecond
	DefaultMaxPollInterval = 30 * time.Second
	DefaultPollMultiplier  = 1.5
	DefaultMaxVideoWait    = 10 * time.Minute
	defaultVideoMIMEType   = "video/mp4"
	defaultNumberOfVideos  = int32(1)
)

var (
	// ErrVideoTimeout はポーリングの上限時間内にジョブが完了しなかったことを表します。
	ErrVideoTimeout = errors.New("動画生成がタイムアウトしました")
	// ErrVideoFailed はジョブがエラーで終了したことを表します。
	ErrVideoFailed = errors.New("動画生成ジョブが失敗しました")
	// ErrVideoLinkNotFound は完了したジョブにダウンロード先が含まれていないことを表します。
	ErrVideoLinkNotFound = errors.New("動画のダウンロードリンクが見つかりません")
	// ErrNoOperation は動画生成ジョブのハンドルが空であることを表します。
	ErrNoOperation = errors.New("動画生成ジョブのハンドルが空です")
)

// VideoConfig は動画生成とポーリングの設定です。
type VideoConfig struct {
	Model      string
	Resolution string
	Retry      retry.Policy

	PollInterval    time.Duration
	MaxPollInterval time.Duration
	PollMultiplier  float64
	MaxWait         time.Duration

	// PollBackOff を設定すると上記のポーリング設定の代わりに使われます。
	PollBackOff func() backoff.BackOff
}

// DefaultVideoConfig は推奨されるデフォルト設定を返すのだ。
func DefaultVideoConfig() VideoConfig {
	return VideoConfig{
		Model:           DefaultVideoModel,
		Resolution:      DefaultVideoResolution,
		Retry:           retry.DefaultPolicy(),
		PollInterval:    DefaultPollInterval,
		MaxPollInterval: DefaultMaxPollInterval,
		PollMultiplier:  DefaultPollMultiplier,
		MaxWait:         DefaultMaxVideoWait,
	}
}

func (c VideoConfig) newBackOff() backoff.BackOff {
	if c.PollBackOff != nil {
		return c.PollBackOff()
	}
	return backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(c.PollInterval),
		backoff.WithMultiplier(c.PollMultiplier),
		backoff.WithMaxInterval(c.MaxPollInterval),
		backoff.WithMaxElapsedTime(c.MaxWait),
		backoff.WithRandomizationFactor(0),
	)
}

// VideoGenerator は Veo にジョブを投入し、完了まで待ってから動画を保存します。
type VideoGenerator struct {
	cfg    VideoConfig
	client adapters.VideoClient
	store  asset.Store
}

// NewVideoGenerator は VideoGenerator を初期化します。
func NewVideoGenerator(cfg VideoConfig, client adapters.VideoClient, store asset.Store) (*VideoGenerator, error) {
	if client == nil {
		return nil, fmt.Errorf("VideoClient は必須です")
	}
	if store == nil {
		return nil, fmt.Errorf("asset.Store は必須です")
	}
	return &VideoGenerator{cfg: cfg, client: client, store: store}, nil
}

// GenerateVideo はシード画像から動画を生成し、ローカルで参照できる URL を返します。
func (v *VideoGenerator) GenerateVideo(ctx context.Context, seed, prompt string, aspect domain.AspectRatio) (string, error) {
	op, err := v.Submit(ctx, seed, prompt, aspect)
	if err != nil {
		return "", err
	}
	return v.Await(ctx, op)
}

// Submit は動画生成ジョブを投入し、オペレーションハンドルを返します。
func (v *VideoGenerator) Submit(ctx context.Context, seed, prompt string, aspect domain.AspectRatio) (*genai.GenerateVideosOperation, error) {
	inline, err := domain.ParseDataURI(seed)
	if err != nil {
		return nil, fmt.Errorf("シード画像を読み込めません: %w", err)
	}
	image := &genai.Image{ImageBytes: inline.Data, MIMEType: inline.MIMEType}
	config := &genai.GenerateVideosConfig{
		NumberOfVideos: defaultNumberOfVideos,
		Resolution:     v.cfg.Resolution,
		AspectRatio:    string(aspect),
	}

	slog.InfoContext(ctx, "動画生成ジョブを投入します", "model", v.cfg.Model, "aspect", aspect, "resolution", v.cfg.Resolution)
	op, err := retry.Do(ctx, v.cfg.Retry, "submit_video", func(ctx context.Context) (*genai.GenerateVideosOperation, error) {
		return v.client.SubmitVideo(ctx, v.cfg.Model, prompts.BuildVideoPrompt(prompt), image, config)
	})
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrNoOperation
	}
	return op, nil
}

// Await はジョブが完了するまでポーリングし、動画を保存して参照を返します。
// 待機間隔はバックオフに従い、上限を超えたら ErrVideoTimeout を返すのだ。
func (v *VideoGenerator) Await(ctx context.Context, op *genai.GenerateVideosOperation) (string, error) {
	if op == nil {
		return "", ErrNoOperation
	}
	b := v.cfg.newBackOff()
	b.Reset()
	polls := 0

	for !op.Done {
		wait := b.NextBackOff()
		if wait == backoff.Stop {
			slog.WarnContext(ctx, "動画生成の待機上限に達しました", "name", op.Name, "polls", polls)
			return "", fmt.Errorf("%w (name=%s, polls=%d)", ErrVideoTimeout, op.Name, polls)
		}
		if err := sleepContext(ctx, wait); err != nil {
			return "", err
		}

		latest, err := retry.Do(ctx, v.cfg.Retry, "poll_video", func(ctx context.Context) (*genai.GenerateVideosOperation, error) {
			return v.client.PollVideo(ctx, op)
		})
		if err != nil {
			return "", err
		}
		if latest != nil {
			op = latest
		}
		polls++
		slog.DebugContext(ctx, "動画生成ジョブの状態を取得しました", "name", op.Name, "done", op.Done, "polls", polls)
	}

	if len(op.Error) > 0 {
		return "", fmt.Errorf("%w: %v", ErrVideoFailed, op.Error)
	}
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return "", ErrVideoLinkNotFound
	}
	generated := op.Response.GeneratedVideos[0]
	if generated == nil || generated.Video == nil {
		return "", ErrVideoLinkNotFound
	}

	data := generated.Video.VideoBytes
	if len(data) == 0 {
		if generated.Video.URI == "" {
			return "", ErrVideoLinkNotFound
		}
		downloaded, err := retry.Do(ctx, v.cfg.Retry, "download_video", func(ctx context.Context) ([]byte, error) {
			return v.client.DownloadVideo(ctx, generated)
		})
		if err != nil {
			return "", err
		}
		data = downloaded
	}
	return v.save(ctx, data, generated.Video.MIMEType)
}

func (v *VideoGenerator) save(ctx context.Context, data []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = defaultVideoMIMEType
	}
	ref, err := v.store.Put(ctx, data, mimeType)
	if err != nil {
		return "", fmt.Errorf("動画の保存に失敗しました: %w", err)
	}
	slog.InfoContext(ctx, "動画生成が完了しました", "ref", ref, "bytes", len(data))
	return ref, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
