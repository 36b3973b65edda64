package runner

import (
	"errors"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

// ワークフローの入力条件を満たさない場合のエラーです。
var (
	ErrNoVideoScenes    = errors.New("動画のあるシーンがありません。先に少なくとも1本の動画を生成してください")
	ErrNoStyleReference = errors.New("スタイル参照画像が設定されていません")
	ErrNoScript         = errors.New("台本が設定されていません")
	ErrNoCharacterRefs  = errors.New("キャラクター参照画像がありません")
	ErrSceneHasNoImage  = errors.New("シーンに画像がありません")
	ErrEmptyPrompt      = errors.New("プロンプトが空です")
	ErrUnknownQuickEdit = errors.New("未知のクイック編集です")
	ErrNotAnImage       = errors.New("画像ではない入力です")
)

// SceneAspectRatio はストーリーボードのシーン画像と動画のフォーマットなのだ。
const SceneAspectRatio = domain.AspectWide

// trackState はワークスペースの処理状態を s にして、元に戻す関数を返します。
func trackState(ws *workspace.Workspace, s domain.GenerationState) func() {
	prev := ws.Generation()
	ws.SetState(s)
	return func() { ws.SetState(prev) }
}
