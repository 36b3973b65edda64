package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

const filePerm = 0o644

// Save はワークスペースの内容を JSON として path に書き出します。
// 書き込み途中で壊れないよう、一時ファイルに書いてから置き換えるのだ。
func (w *Workspace) Save(path string) error {
	state := w.Snapshot()
	// 実行中の状態はプロセスを跨いで持ち越しません。
	state.Generation = domain.StateIdle

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("ワークスペースのエンコードに失敗しました: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ディレクトリの作成に失敗しました: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("ワークスペースの書き込みに失敗しました: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("ワークスペースの保存に失敗しました: %w", err)
	}
	return nil
}

// Load は path から保存済みのワークスペースを読み込みます。ファイルが無ければ空のワークスペースを返します。
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("ワークスペースの読み込みに失敗しました: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("ワークスペースのデコードに失敗しました (%s): %w", path, err)
	}
	if len(state.CharacterRefs) > domain.MaxCharacterRefs {
		state.CharacterRefs = state.CharacterRefs[:domain.MaxCharacterRefs]
	}
	return FromState(state), nil
}
