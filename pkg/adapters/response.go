package adapters

import (
	"github.com/shouni/gemini-image-kit/ports"
	"google.golang.org/genai"
)

// firstCandidateParts は最初の候補のパーツを返します。無ければ nil です。
func firstCandidateParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return nil
	}
	return c.Content.Parts
}

func toImageResponse(blob *genai.Blob) *ports.ImageResponse {
	return &ports.ImageResponse{
		Data:     blob.Data,
		MimeType: blob.MIMEType,
	}
}

// FirstInlineData は最初の候補を走査し、最初に見つかったインラインバイナリを返します。
func FirstInlineData(resp *genai.GenerateContentResponse) (*ports.ImageResponse, bool) {
	for _, part := range firstCandidateParts(resp) {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return toImageResponse(part.InlineData), true
		}
	}
	return nil, false
}

// AllInlineData は最初の候補に含まれるすべてのインラインバイナリを順に返します。
func AllInlineData(resp *genai.GenerateContentResponse) []*ports.ImageResponse {
	var out []*ports.ImageResponse
	for _, part := range firstCandidateParts(resp) {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			out = append(out, toImageResponse(part.InlineData))
		}
	}
	return out
}

// LeadingInlineData は最初のパーツだけを見てインラインバイナリを返します。音声応答で使います。
func LeadingInlineData(resp *genai.GenerateContentResponse) (*ports.ImageResponse, bool) {
	parts := firstCandidateParts(resp)
	if len(parts) == 0 || parts[0] == nil || parts[0].InlineData == nil || len(parts[0].InlineData.Data) == 0 {
		return nil, false
	}
	return toImageResponse(parts[0].InlineData), true
}

// InlinePart はバイナリと MIME タイプからリクエスト用のパーツを作ります。
func InlinePart(data []byte, mimeType string) *genai.Part {
	return genai.NewPartFromBytes(data, mimeType)
}
