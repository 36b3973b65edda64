package adapters

import (
	"context"
	"io"

	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

// fakeGemini は gemini.GenerativeModel のテスト用実装です。最後の呼び出しの引数を記録します。
type fakeGemini struct {
	text string
	raw  *genai.GenerateContentResponse
	err  error

	calls  int
	model  string
	prompt string
	parts  []*genai.Part
	opts   gemini.GenerateOptions
}

func (f *fakeGemini) GenerateContent(ctx context.Context, modelName string, prompt string) (*gemini.Response, error) {
	f.calls++
	f.model = modelName
	f.prompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return &gemini.Response{Text: f.text}, nil
}

func (f *fakeGemini) GenerateWithParts(ctx context.Context, modelName string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	f.calls++
	f.model = modelName
	f.parts = parts
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &gemini.Response{Text: f.text, RawResponse: f.raw}, nil
}

func (f *fakeGemini) IsVertexAI() bool { return false }

func (f *fakeGemini) UploadFile(ctx context.Context, r io.Reader, mimeType, displayName string) (string, string, error) {
	return "", "", ErrRemoteImageUnsupported
}

func (f *fakeGemini) DeleteFile(ctx context.Context, name string) error { return nil }
