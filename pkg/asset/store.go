package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// BlobScheme はメモリ上のバイナリを指す参照の接頭辞です。
const BlobScheme = "blob:"

// DefaultBlobTTL はメモリ上のバイナリを保持する期間です。
const DefaultBlobTTL = 2 * time.Hour

// ErrBlobNotFound は参照先のバイナリが存在しないことを表します。
var ErrBlobNotFound = errors.New("指定されたバイナリが見つかりません")

// Blob は保存されたバイナリとその MIME タイプです。
type Blob struct {
	Data     []byte
	MIMEType string
}

// Store はダウンロードしたバイナリを保存し、ローカルで参照できる文字列を返します。
type Store interface {
	Put(ctx context.Context, data []byte, mimeType string) (string, error)
}

// MemoryStore は go-cache を使ったプロセス内のバイナリ置き場なのだ。
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore は ttl の間バイナリを保持する MemoryStore を生成します。
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultBlobTTL
	}
	return &MemoryStore{cache: cache.New(ttl, ttl*2)}
}

// Put はバイナリを保存して "blob:<uuid>" 形式の参照を返します。
func (s *MemoryStore) Put(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("空のバイナリは保存できません")
	}
	ref := BlobScheme + uuid.NewString()
	s.cache.Set(ref, Blob{Data: data, MIMEType: mimeType}, cache.DefaultExpiration)
	slog.DebugContext(ctx, "バイナリをメモリに保存しました", "ref", ref, "bytes", len(data))
	return ref, nil
}

// Get は参照に対応するバイナリを返します。
func (s *MemoryStore) Get(ref string) (Blob, error) {
	v, ok := s.cache.Get(ref)
	if !ok {
		return Blob{}, fmt.Errorf("%w: %s", ErrBlobNotFound, ref)
	}
	return v.(Blob), nil
}

// Len は保持しているバイナリの件数です。
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}

// DirStore はローカルディレクトリにファイルとして保存する Store です。
type DirStore struct {
	baseDir string
}

// NewDirStore は baseDir 配下に書き込む DirStore を生成します。
func NewDirStore(baseDir string) (*DirStore, error) {
	if strings.HasPrefix(baseDir, "gs://") {
		return nil, fmt.Errorf("DirStore はローカルディレクトリのみ対応しています: %s", baseDir)
	}
	return &DirStore{baseDir: baseDir}, nil
}

// Put はバイナリを一意なファイル名で書き出し、そのパスを返します。
func (s *DirStore) Put(ctx context.Context, data []byte, mimeType string) (string, error) {
	fileName := uuid.NewString() + PreferredExtension(mimeType)
	path, err := ResolveOutputPath(s.baseDir, fileName)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("ファイルの書き込みに失敗しました: %w", err)
	}
	slog.InfoContext(ctx, "バイナリを保存しました", "path", path, "bytes", len(data))
	return path, nil
}
