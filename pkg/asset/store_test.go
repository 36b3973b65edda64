package asset

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	ref, err := s.Put(ctx, []byte("mp4-bytes"), "video/mp4")
	if err != nil {
		t.Fatalf("保存に失敗しました: %v", err)
	}
	if !strings.HasPrefix(ref, BlobScheme) {
		t.Errorf("参照の形式が不正です: %s", ref)
	}

	blob, err := s.Get(ref)
	if err != nil {
		t.Fatalf("取得に失敗しました: %v", err)
	}
	if string(blob.Data) != "mp4-bytes" || blob.MIMEType != "video/mp4" {
		t.Errorf("取得結果が不正です: %+v", blob)
	}

	ref2, _ := s.Put(ctx, []byte("other"), "video/mp4")
	if ref2 == ref {
		t.Error("参照が重複しています")
	}
	if s.Len() != 2 {
		t.Errorf("件数が不正です: %d", s.Len())
	}

	if _, err := s.Get("blob:missing"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("ErrBlobNotFound が返りません: %v", err)
	}
	if _, err := s.Put(ctx, nil, "video/mp4"); err == nil {
		t.Error("空のバイナリでエラーが返りません")
	}
}

func TestNewDirStore_RejectsGCS(t *testing.T) {
	if _, err := NewDirStore("gs://bucket/videos"); err == nil {
		t.Error("GCS パスでエラーが返りません")
	}
}

func TestPreferredExtension(t *testing.T) {
	tests := map[string]string{
		"video/mp4":   ".mp4",
		"image/png":   ".png",
		"audio/wav":   ".wav",
		"unknown/zzz": ".bin",
	}
	for in, want := range tests {
		if got := PreferredExtension(in); got != want {
			t.Errorf("PreferredExtension(%q) = %q, want %q", in, got, want)
		}
	}
}
