package workflow

import (
	"context"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/runner"
)

// Workflow は、ストーリーボード制作の各工程を担当する Runner を構築するためのインターフェースを定義します。
type Workflow interface {
	BuildScriptRunner() (ScriptRunner, error)
	BuildSceneImageRunner() (SceneImageRunner, error)
	BuildSceneVideoRunner() (SceneVideoRunner, error)
	BuildFinalizeRunner() (FinalizeRunner, error)
	BuildThumbnailRunner() (ThumbnailRunner, error)
	BuildCreatorRunner() (CreatorRunner, error)
	BuildEditRunner() (EditRunner, error)
	BuildCharacterRunner() (CharacterRunner, error)
}

// ScriptRunner は、台本を解析してシーン一覧を作る責務を持ちます。
type ScriptRunner interface {
	Run(ctx context.Context, script string, useSearch bool) (domain.Scenes, error)
}

// SceneImageRunner は、シーン画像の個別生成と一括生成の責務を持ちます。
type SceneImageRunner interface {
	Run(ctx context.Context, sceneID string) (domain.Scene, error)
	RunAll(ctx context.Context) (runner.RunReport, error)
}

// SceneVideoRunner は、画像から動画を生成する責務を持ちます。
type SceneVideoRunner interface {
	Run(ctx context.Context, sceneID string) (domain.Scene, error)
	Animate(ctx context.Context, image, prompt string, aspect domain.AspectRatio) (domain.GeneratedAsset, error)
}

// FinalizeRunner は、ナレーションを付けてシーケンサー用の一覧を返す責務を持ちます。
type FinalizeRunner interface {
	Run(ctx context.Context) (domain.Scenes, error)
}

// ThumbnailRunner は、サムネイルの生成とスタイル変換の責務を持ちます。
type ThumbnailRunner interface {
	Run(ctx context.Context) (domain.GeneratedAsset, error)
	Restyle(ctx context.Context, assetID string) (domain.GeneratedAsset, error)
}

// CreatorRunner は、シーンに紐付かない画像生成の責務を持ちます。
type CreatorRunner interface {
	Run(ctx context.Context, req runner.CreateRequest) (domain.GeneratedAsset, error)
}

// EditRunner は、画像編集と編集結果の反映の責務を持ちます。
type EditRunner interface {
	Run(ctx context.Context, source, instruction string) (domain.GeneratedAsset, error)
	QuickEdit(ctx context.Context, source, key string) (domain.GeneratedAsset, error)
	MagicEdit(ctx context.Context, source, instruction string) (domain.GeneratedAsset, int, error)
}

// CharacterRunner は、キャラクター参照画像とバリエーションの責務を持ちます。
type CharacterRunner interface {
	AddRefs(refs ...string) ([]string, error)
	Variations(ctx context.Context) ([]string, error)
}
