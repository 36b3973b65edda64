package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/generator"
)

var errGen = errors.New("generation failed")

// fakeGen は runner が使う生成インターフェースをまとめて実装します。
type fakeGen struct {
	mu sync.Mutex

	scenes     domain.Scenes
	analyzeErr error

	failPrompts map[string]bool
	imageCalls  []imageCall
	proCalls    []generator.ProImageRequest

	videoErr   error
	videoCalls []videoCall

	narrationErrAfter int
	narrations        []string

	thumbRefs    []string
	restyleCalls [][3]string
	editCalls    [][2]string
	variations   []string
}

type imageCall struct {
	prompt string
	aspect domain.AspectRatio
	refs   []string
}

type videoCall struct {
	seed   string
	prompt string
	aspect domain.AspectRatio
}

func (f *fakeGen) AnalyzeScript(ctx context.Context, script string, useSearch bool) (domain.Scenes, error) {
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.scenes.Clone(), nil
}

func (f *fakeGen) GenerateImage(ctx context.Context, prompt string, aspect domain.AspectRatio, refs []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageCalls = append(f.imageCalls, imageCall{prompt: prompt, aspect: aspect, refs: refs})
	if f.failPrompts[prompt] {
		return "", errGen
	}
	return domain.BuildDataURI("image/png", []byte("img:"+prompt)), nil
}

func (f *fakeGen) GenerateProImage(ctx context.Context, req generator.ProImageRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.proCalls = append(f.proCalls, req)
	return domain.BuildDataURI("image/png", []byte("pro:"+req.Prompt)), nil
}

func (f *fakeGen) GenerateVideo(ctx context.Context, seed, prompt string, aspect domain.AspectRatio) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videoCalls = append(f.videoCalls, videoCall{seed: seed, prompt: prompt, aspect: aspect})
	if f.videoErr != nil {
		return "", f.videoErr
	}
	return fmt.Sprintf("blob:video-%d", len(f.videoCalls)), nil
}

func (f *fakeGen) GenerateNarration(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.narrationErrAfter > 0 && len(f.narrations) >= f.narrationErrAfter {
		return "", errGen
	}
	f.narrations = append(f.narrations, text)
	return domain.BuildDataURI("audio/wav", []byte(text)), nil
}

func (f *fakeGen) GenerateThumbnail(ctx context.Context, script string, refs []string) (generator.Thumbnail, error) {
	f.thumbRefs = refs
	return generator.Thumbnail{URL: "data:image/png;base64,dGh1bWI=", Prompt: "optimized thumbnail"}, nil
}

func (f *fakeGen) RestyleImage(ctx context.Context, source, styleRef, prompt string) (string, error) {
	f.restyleCalls = append(f.restyleCalls, [3]string{source, styleRef, prompt})
	return "data:image/png;base64,c3R5bGVk", nil
}

func (f *fakeGen) EditImage(ctx context.Context, source, instruction string) (string, error) {
	f.editCalls = append(f.editCalls, [2]string{source, instruction})
	return "data:image/png;base64,ZWRpdGVk", nil
}

func (f *fakeGen) GenerateCharacterVariations(ctx context.Context, face string) ([]string, error) {
	if len(f.variations) == 0 {
		return nil, generator.ErrVariationsFailed
	}
	return f.variations, nil
}

// fakeSelector は KeySelector のテスト用実装です。
type fakeSelector struct {
	selected   bool
	selectable bool
	selectErr  error
	asked      int
}

func (s *fakeSelector) HasSelectedKey(ctx context.Context) (bool, error) {
	return s.selected, nil
}

func (s *fakeSelector) SelectKey(ctx context.Context) error {
	s.asked++
	if s.selectErr != nil {
		return s.selectErr
	}
	s.selected = s.selectable
	return nil
}

func threeScenes() domain.Scenes {
	return domain.ScriptAnalysis{Scenes: []domain.AnalyzedScene{
		{Timestamp: "00:00", Description: "Cena A", ImagePrompt: "prompt a"},
		{Timestamp: "00:05", Description: "Cena B", ImagePrompt: "prompt b"},
		{Timestamp: "00:10", Description: "Cena C", ImagePrompt: "prompt c"},
	}}.ToScenes()
}
