package workflow

import (
	"github.com/shouni/go-storyboard-kit/pkg/runner"
)

// BuildScriptRunner は、台本解析を担当する Runner を作成します。
func (m *Manager) BuildScriptRunner() (ScriptRunner, error) {
	return runner.NewStoryboardScriptRunner(m.assets, m.ws), nil
}

// BuildSceneImageRunner は、シーン画像の生成を担当する Runner を作成します。
func (m *Manager) BuildSceneImageRunner() (SceneImageRunner, error) {
	return runner.NewSceneImageRunner(m.assets, m.ws), nil
}

// BuildSceneVideoRunner は、動画生成を担当する Runner を作成します。
func (m *Manager) BuildSceneVideoRunner() (SceneVideoRunner, error) {
	return runner.NewSceneVideoRunner(m.videos, m.gate, m.ws), nil
}

// BuildFinalizeRunner は、ナレーション付与とシーケンサーの組み立てを担当する Runner を作成します。
func (m *Manager) BuildFinalizeRunner() (FinalizeRunner, error) {
	return runner.NewFinalizeRunner(m.assets, m.ws), nil
}

// BuildThumbnailRunner は、サムネイル生成を担当する Runner を作成します。
func (m *Manager) BuildThumbnailRunner() (ThumbnailRunner, error) {
	return runner.NewThumbnailRunner(m.assets, m.ws), nil
}

// BuildCreatorRunner は、独立した画像生成を担当する Runner を作成します。
func (m *Manager) BuildCreatorRunner() (CreatorRunner, error) {
	return runner.NewCreatorRunner(m.assets, m.gate, m.ws), nil
}

// BuildEditRunner は、画像編集を担当する Runner を作成します。
func (m *Manager) BuildEditRunner() (EditRunner, error) {
	return runner.NewEditRunner(m.assets, m.ws), nil
}

// BuildCharacterRunner は、キャラクター参照画像を担当する Runner を作成します。
func (m *Manager) BuildCharacterRunner() (CharacterRunner, error) {
	return runner.NewCharacterRunner(m.assets, m.ws), nil
}

var _ Workflow = (*Manager)(nil)
