package workspace

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

var (
	// ErrSceneNotFound は指定した ID のシーンが存在しないことを表します。
	ErrSceneNotFound = errors.New("シーンが見つかりません")
	// ErrVideoWithoutImage は画像の無いシーンに動画を設定しようとしたことを表します。
	ErrVideoWithoutImage = errors.New("画像の無いシーンに動画は設定できません")
	// ErrNarrationWithoutVideo は動画の無いシーンにナレーションを設定しようとしたことを表します。
	ErrNarrationWithoutVideo = errors.New("動画の無いシーンにナレーションは設定できません")
	// ErrRefIndexOutOfRange は存在しない位置の参照画像を削除しようとしたことを表します。
	ErrRefIndexOutOfRange = errors.New("参照画像の位置が範囲外です")
	// ErrAssetNotFound はギャラリーに指定した ID のアセットが無いことを表します。
	ErrAssetNotFound = errors.New("アセットが見つかりません")
)

// State はワークスペースのある時点の内容です。Snapshot で取り出した値は自由に変更できます。
type State struct {
	Script         string                  `json:"script"`
	Scenes         domain.Scenes           `json:"scenes"`
	Gallery        []domain.GeneratedAsset `json:"gallery"`
	CharacterRefs  []string                `json:"characterRefs"`
	StyleReference string                  `json:"styleReference,omitempty"`
	Consistency    bool                    `json:"consistency"`
	Generation     domain.GenerationState  `json:"generation"`
}

func (s State) clone() State {
	out := s
	out.Scenes = s.Scenes.Clone()
	out.Gallery = slices.Clone(s.Gallery)
	out.CharacterRefs = slices.Clone(s.CharacterRefs)
	return out
}

// Workspace はひとつのセッションの台本、シーン、ギャラリー、参照画像をまとめて保持します。
// 変更はすべてロックの内側で新しいスライスに置き換えるので、取り出した値が後から書き換わることはありません。
type Workspace struct {
	mu    sync.RWMutex
	state State
}

// New は空のワークスペースを作ります。一貫性フラグは有効で始まります。
func New() *Workspace {
	return &Workspace{state: State{Consistency: true, Generation: domain.StateIdle}}
}

// FromState は保存済みの状態からワークスペースを復元します。
func FromState(s State) *Workspace {
	if s.Generation == "" {
		s.Generation = domain.StateIdle
	}
	return &Workspace{state: s.clone()}
}

// Snapshot は現在の状態のコピーを返します。
func (w *Workspace) Snapshot() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.clone()
}

// Script は台本を返します。
func (w *Workspace) Script() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Script
}

// Scenes はシーン一覧のコピーを返します。
func (w *Workspace) Scenes() domain.Scenes {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Scenes.Clone()
}

// Scene は ID に一致するシーンを返します。
func (w *Workspace) Scene(id string) (domain.Scene, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, idx := w.state.Scenes.Find(id)
	if idx < 0 {
		return domain.Scene{}, fmt.Errorf("%w: %s", ErrSceneNotFound, id)
	}
	return s, nil
}

// Gallery はギャラリーを新しい順に返します。
func (w *Workspace) Gallery() []domain.GeneratedAsset {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.state.Gallery)
}

// Asset は ID に一致するギャラリーのアセットを返します。
func (w *Workspace) Asset(id string) (domain.GeneratedAsset, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, a := range w.state.Gallery {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.GeneratedAsset{}, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
}

// CharacterRefs はキャラクター参照画像を返します。
func (w *Workspace) CharacterRefs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.state.CharacterRefs)
}

// ConsistencyRefs は一貫性フラグが有効なときだけ参照画像を返します。
func (w *Workspace) ConsistencyRefs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.state.Consistency {
		return nil
	}
	return slices.Clone(w.state.CharacterRefs)
}

// StyleReference はスタイル参照画像を返します。
func (w *Workspace) StyleReference() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.StyleReference
}

// Generation は進行中の処理を返します。
func (w *Workspace) Generation() domain.GenerationState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Generation
}

// SequencerScenes は動画を持つシーンを台本の順に返すのだ。
func (w *Workspace) SequencerScenes() domain.Scenes {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Scenes.WithVideo()
}

// SetScript は台本を置き換えます。
func (w *Workspace) SetScript(script string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Script = script
}

// ReplaceScenes はシーン一覧を丸ごと置き換えます。
func (w *Workspace) ReplaceScenes(scenes domain.Scenes) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Scenes = scenes.Clone()
}

// UpdateScene は ID に一致するシーンに fn を適用し、結果を保存します。
// 画像の無いシーンへの動画、動画の無いシーンへのナレーションは拒否します。
func (w *Workspace) UpdateScene(id string, fn func(domain.Scene) domain.Scene) (domain.Scene, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	current, idx := w.state.Scenes.Find(id)
	if idx < 0 {
		return domain.Scene{}, fmt.Errorf("%w: %s", ErrSceneNotFound, id)
	}
	updated := fn(current)
	updated.ID = current.ID
	if err := validateScene(updated); err != nil {
		return domain.Scene{}, fmt.Errorf("シーン %s: %w", id, err)
	}

	scenes := w.state.Scenes.Clone()
	scenes[idx] = updated
	w.state.Scenes = scenes
	return updated, nil
}

func validateScene(s domain.Scene) error {
	if s.HasVideo() && !s.HasImage() {
		return ErrVideoWithoutImage
	}
	if s.NarrationURL != "" && !s.HasVideo() {
		return ErrNarrationWithoutVideo
	}
	return nil
}

// ReplaceSceneImage は画像が oldURL に一致するすべてのシーンを newURL に差し替え、件数を返します。
func (w *Workspace) ReplaceSceneImage(oldURL, newURL string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if oldURL == "" {
		return 0
	}
	scenes := w.state.Scenes.Clone()
	n := 0
	for i := range scenes {
		if scenes[i].ImageURL == oldURL {
			scenes[i].ImageURL = newURL
			n++
		}
	}
	if n > 0 {
		w.state.Scenes = scenes
	}
	return n
}

// AddAsset はギャラリーの先頭に追加します。
func (w *Workspace) AddAsset(a domain.GeneratedAsset) {
	w.mu.Lock()
	defer w.mu.Unlock()

	gallery := make([]domain.GeneratedAsset, 0, len(w.state.Gallery)+1)
	gallery = append(gallery, a)
	gallery = append(gallery, w.state.Gallery...)
	w.state.Gallery = gallery
}

// AddCharacterRefs は参照画像を追加し、上限を超えた分を捨てた後の一覧を返します。
func (w *Workspace) AddCharacterRefs(refs ...string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.CharacterRefs = domain.CapCharacterRefs(w.state.CharacterRefs, refs)
	return slices.Clone(w.state.CharacterRefs)
}

// RemoveCharacterRef は指定位置の参照画像を削除します。
func (w *Workspace) RemoveCharacterRef(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if index < 0 || index >= len(w.state.CharacterRefs) {
		return fmt.Errorf("%w: %d", ErrRefIndexOutOfRange, index)
	}
	w.state.CharacterRefs = slices.Delete(slices.Clone(w.state.CharacterRefs), index, index+1)
	return nil
}

// SetStyleReference はスタイル参照画像を設定します。空文字で解除します。
func (w *Workspace) SetStyleReference(ref string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.StyleReference = ref
}

// SetConsistency はシーン画像に参照画像を使うかどうかを切り替えます。
func (w *Workspace) SetConsistency(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Consistency = enabled
}

// SetState は進行中の処理を設定します。
func (w *Workspace) SetState(s domain.GenerationState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Generation = s
}
