package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// fakeServices は genai の Models / Operations / Files の代わりに呼び出しを記録します。
type fakeServices struct {
	err error

	contentModel string
	contents     []*genai.Content
	config       *genai.GenerateContentConfig
	contentCalls int

	videoModel  string
	videoPrompt string
	videoImage  *genai.Image

	polled     *genai.GenerateVideosOperation
	downloaded *genai.GeneratedVideo
}

func (f *fakeServices) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.contentCalls++
	f.contentModel = model
	f.contents = contents
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return respWithParts(genai.NewPartFromText("ok")), nil
}

func (f *fakeServices) GenerateVideos(ctx context.Context, model string, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	f.videoModel = model
	f.videoPrompt = prompt
	f.videoImage = image
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateVideosOperation{Name: "operations/1"}, nil
}

func (f *fakeServices) GetVideosOperation(ctx context.Context, operation *genai.GenerateVideosOperation, config *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
	f.polled = operation
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateVideosOperation{Name: operation.Name, Done: true}, nil
}

func (f *fakeServices) Download(ctx context.Context, uri genai.DownloadURI, config *genai.DownloadFileConfig) ([]byte, error) {
	if v, ok := uri.(*genai.GeneratedVideo); ok {
		f.downloaded = v
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp4"), nil
}

func newFakeGenAIClient(f *fakeServices, limiter *rate.Limiter) *GenAIClient {
	return &GenAIClient{models: f, operations: f, files: f, limiter: limiter}
}

func TestGenAIClient_GenerateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("パーツを1つのユーザーメッセージにまとめて送る", func(t *testing.T) {
		f := &fakeServices{}
		c := newFakeGenAIClient(f, nil)
		parts := []*genai.Part{genai.NewPartFromBytes([]byte("img"), "image/png"), genai.NewPartFromText("describe")}
		config := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

		resp, err := c.GenerateContent(ctx, "gemini-test", parts, config)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got := resp.Candidates[0].Content.Parts[0].Text; got != "ok" {
			t.Errorf("応答が不正です: %q", got)
		}
		if f.contentModel != "gemini-test" || f.config != config {
			t.Errorf("モデルか設定がそのまま渡っていません: %q %+v", f.contentModel, f.config)
		}
		if len(f.contents) != 1 {
			t.Fatalf("メッセージ数 got %d, want 1", len(f.contents))
		}
		if f.contents[0].Role != genai.RoleUser || len(f.contents[0].Parts) != 2 {
			t.Errorf("メッセージが不正です: role=%q parts=%d", f.contents[0].Role, len(f.contents[0].Parts))
		}
	})

	t.Run("API のエラーを包んで返す", func(t *testing.T) {
		apiErr := errors.New("quota exceeded")
		c := newFakeGenAIClient(&fakeServices{err: apiErr}, nil)
		if _, err := c.GenerateContent(ctx, "m", nil, nil); !errors.Is(err, apiErr) {
			t.Errorf("元のエラーが辿れません: %v", err)
		}
	})

	t.Run("レートリミッターの待機中にキャンセルされたら送信しない", func(t *testing.T) {
		f := &fakeServices{}
		c := newFakeGenAIClient(f, rate.NewLimiter(rate.Every(time.Hour), 1))
		if _, err := c.GenerateContent(ctx, "m", nil, nil); err != nil {
			t.Fatalf("1回目は待たずに送れるはずです: %v", err)
		}

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := c.GenerateContent(cancelled, "m", nil, nil); !errors.Is(err, context.Canceled) {
			t.Errorf("context.Canceled が返りません: %v", err)
		}
		if f.contentCalls != 1 {
			t.Errorf("待機に失敗したのに送信されました: %d", f.contentCalls)
		}
	})
}

func TestGenAIClient_Video(t *testing.T) {
	ctx := context.Background()

	t.Run("投入、状態取得、ダウンロードの引数をそのまま渡す", func(t *testing.T) {
		f := &fakeServices{}
		c := newFakeGenAIClient(f, nil)
		image := &genai.Image{ImageBytes: []byte("seed"), MIMEType: "image/png"}

		op, err := c.SubmitVideo(ctx, "veo-test", "a man walks", image, &genai.GenerateVideosConfig{AspectRatio: "16:9"})
		if err != nil {
			t.Fatalf("投入に失敗しました: %v", err)
		}
		if f.videoModel != "veo-test" || f.videoPrompt != "a man walks" || f.videoImage != image {
			t.Errorf("投入の引数が不正です: %q %q", f.videoModel, f.videoPrompt)
		}

		latest, err := c.PollVideo(ctx, op)
		if err != nil {
			t.Fatalf("状態取得に失敗しました: %v", err)
		}
		if f.polled != op || !latest.Done {
			t.Errorf("状態取得が不正です: %+v", latest)
		}

		video := &genai.GeneratedVideo{Video: &genai.Video{URI: "https://example.com/v.mp4"}}
		data, err := c.DownloadVideo(ctx, video)
		if err != nil {
			t.Fatalf("ダウンロードに失敗しました: %v", err)
		}
		if string(data) != "mp4" || f.downloaded != video {
			t.Errorf("ダウンロード先が生成された動画ではありません: %q", data)
		}
	})

	t.Run("空のオペレーションは問い合わせない", func(t *testing.T) {
		f := &fakeServices{}
		if _, err := newFakeGenAIClient(f, nil).PollVideo(ctx, nil); err == nil {
			t.Error("エラーが返りません")
		}
		if f.polled != nil {
			t.Error("状態取得が呼ばれました")
		}
	})

	t.Run("投入の失敗を包んで返す", func(t *testing.T) {
		apiErr := errors.New("invalid argument")
		if _, err := newFakeGenAIClient(&fakeServices{err: apiErr}, nil).SubmitVideo(ctx, "veo", "p", nil, nil); !errors.Is(err, apiErr) {
			t.Errorf("元のエラーが辿れません: %v", err)
		}
	})
}

func TestNewGenAIClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewGenAIClient(context.Background(), "", nil); err == nil {
		t.Error("APIキーなしでエラーが返りません")
	}
}
