package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/retry"

	"github.com/shouni/gemini-image-kit/ports"
	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

var errTransient = errors.New("transient failure")

// fakeText は TextGenerator のテスト用実装です。responses を順に返し、尽きたら最後の値を返し続けます。
type fakeText struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

func (f *fakeText) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	r := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return r, nil
}

type contentCall struct {
	model  string
	parts  []*genai.Part
	config *genai.GenerateContentConfig
}

// fakeContent は ContentGenerator のテスト用実装です。
type fakeContent struct {
	mu        sync.Mutex
	responses []*genai.GenerateContentResponse
	err       error
	calls     []contentCall
}

func (f *fakeContent) GenerateContent(ctx context.Context, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, contentCall{model: model, parts: parts, config: config})
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return &genai.GenerateContentResponse{}, nil
	}
	r := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return r, nil
}

func partsResponse(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func imageResponse(data string) *genai.GenerateContentResponse {
	return partsResponse(genai.NewPartFromBytes([]byte(data), "image/png"))
}

func textResponse(text string) *genai.GenerateContentResponse {
	return partsResponse(genai.NewPartFromText(text))
}

type imageCall struct {
	model string
	parts []*genai.Part
	opts  gemini.GenerateOptions
}

// fakeImages は ImageGenerator のテスト用実装です。空の応答は adapters.ErrNoImage になります。
type fakeImages struct {
	mu        sync.Mutex
	responses [][]*ports.ImageResponse
	err       error
	calls     []imageCall
}

func (f *fakeImages) GenerateImages(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) ([]*ports.ImageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, imageCall{model: model, parts: parts, opts: opts})
	if f.err != nil {
		return nil, f.err
	}
	var r []*ports.ImageResponse
	if len(f.responses) > 0 {
		r = f.responses[0]
		if len(f.responses) > 1 {
			f.responses = f.responses[1:]
		}
	}
	if len(r) == 0 {
		return nil, fmt.Errorf("%w: fake", adapters.ErrNoImage)
	}
	return r, nil
}

func pngImages(payloads ...string) []*ports.ImageResponse {
	out := make([]*ports.ImageResponse, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, &ports.ImageResponse{Data: []byte(p), MimeType: "image/png"})
	}
	return out
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Retry = retry.Policy{Retries: 2, Delay: time.Millisecond}
	return cfg
}

func newTestGenerator(text *fakeText, content *fakeContent) *AssetGenerator {
	return newImageTestGenerator(text, content, &fakeImages{})
}

func newImageTestGenerator(text *fakeText, content *fakeContent, images *fakeImages) *AssetGenerator {
	g, err := NewAssetGenerator(testConfig(), text, content, images, nil)
	if err != nil {
		panic(err)
	}
	return g
}

func sampleRef(payload string) string {
	return domain.BuildDataURI("image/jpeg", []byte(payload))
}

// fakeVideo は VideoClient のテスト用実装です。pendingPolls 回のポーリングの後に final を返します。
type fakeVideo struct {
	mu           sync.Mutex
	pendingPolls int
	final        *genai.GenerateVideosOperation
	submitErr    error
	downloaded   []byte
	submits      int
	polls        int
	downloads    int
	lastPrompt   string
	lastImage    *genai.Image
	lastConfig   *genai.GenerateVideosConfig
}

func (f *fakeVideo) SubmitVideo(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	f.lastPrompt = prompt
	f.lastImage = image
	f.lastConfig = config
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &genai.GenerateVideosOperation{Name: "operations/test"}, nil
}

func (f *fakeVideo) PollVideo(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if f.pendingPolls < 0 || f.polls <= f.pendingPolls {
		return &genai.GenerateVideosOperation{Name: op.Name}, nil
	}
	return f.final, nil
}

func (f *fakeVideo) DownloadVideo(ctx context.Context, video *genai.GeneratedVideo) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads++
	return f.downloaded, nil
}

func doneWithURI(uri string) *genai.GenerateVideosOperation {
	return &genai.GenerateVideosOperation{
		Name: "operations/test",
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{{Video: &genai.Video{URI: uri, MIMEType: "video/mp4"}}},
		},
	}
}
