package runner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/generator"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

func TestStoryboardScriptRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("解析結果でシーンを置き換える", func(t *testing.T) {
		ws := workspace.New()
		gen := &fakeGen{scenes: threeScenes()}
		scenes, err := NewStoryboardScriptRunner(gen, ws).Run(ctx, "roteiro", false)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if len(scenes) != 3 || len(ws.Scenes()) != 3 {
			t.Errorf("シーン数が不正です: %d / %d", len(scenes), len(ws.Scenes()))
		}
		if ws.Script() != "roteiro" {
			t.Error("台本が保存されていません")
		}
		if ws.Generation() != domain.StateIdle {
			t.Errorf("処理状態が戻っていません: %s", ws.Generation())
		}
	})

	t.Run("失敗しても既存のシーンは変わらない", func(t *testing.T) {
		ws := workspace.New()
		ws.ReplaceScenes(threeScenes())
		gen := &fakeGen{analyzeErr: generator.ErrAnalysisFailed}
		if _, err := NewStoryboardScriptRunner(gen, ws).Run(ctx, "x", true); !errors.Is(err, generator.ErrAnalysisFailed) {
			t.Fatalf("ErrAnalysisFailed が返りません: %v", err)
		}
		if got := ws.Scenes(); len(got) != 3 || got[0].Description != "Cena A" {
			t.Errorf("既存のシーンが変更されました: %+v", got)
		}
	})
}

func TestSceneImageRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("成功したシーンは completed になりギャラリーに追加される", func(t *testing.T) {
		ws := workspace.New()
		ws.ReplaceScenes(threeScenes())
		ws.AddCharacterRefs("data:image/png;base64,AA==")
		gen := &fakeGen{}

		scene, err := NewSceneImageRunner(gen, ws).Run(ctx, "scene-1")
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if scene.Status != domain.SceneStatusCompleted || !scene.HasImage() {
			t.Errorf("シーンの状態が不正です: %+v", scene)
		}
		call := gen.imageCalls[0]
		if call.prompt != "prompt b" || call.aspect != domain.AspectWide || len(call.refs) != 1 {
			t.Errorf("生成の引数が不正です: %+v", call)
		}
		g := ws.Gallery()
		if len(g) != 1 || g[0].Type != domain.AssetTypeImage || g[0].Prompt != "Cena B" {
			t.Errorf("ギャラリーが不正です: %+v", g)
		}
	})

	t.Run("一貫性が無効なら参照画像を渡さない", func(t *testing.T) {
		ws := workspace.New()
		ws.ReplaceScenes(threeScenes())
		ws.AddCharacterRefs("data:image/png;base64,AA==")
		ws.SetConsistency(false)
		gen := &fakeGen{}
		if _, err := NewSceneImageRunner(gen, ws).Run(ctx, "scene-0"); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if gen.imageCalls[0].refs != nil {
			t.Error("参照画像が渡されています")
		}
	})

	t.Run("失敗したシーンは error になりギャラリーは増えない", func(t *testing.T) {
		ws := workspace.New()
		ws.ReplaceScenes(threeScenes())
		gen := &fakeGen{failPrompts: map[string]bool{"prompt a": true}}
		if _, err := NewSceneImageRunner(gen, ws).Run(ctx, "scene-0"); !errors.Is(err, errGen) {
			t.Fatalf("元のエラーが返りません: %v", err)
		}
		s, _ := ws.Scene("scene-0")
		if s.Status != domain.SceneStatusError {
			t.Errorf("状態 got %s, want error", s.Status)
		}
		if len(ws.Gallery()) != 0 {
			t.Error("失敗したのにギャラリーが増えています")
		}
	})

	t.Run("一括生成は失敗を飛ばして最後まで進む", func(t *testing.T) {
		ws := workspace.New()
		ws.ReplaceScenes(threeScenes())
		gen := &fakeGen{failPrompts: map[string]bool{"prompt b": true}}

		report, err := NewSceneImageRunner(gen, ws).RunAll(ctx)
		if err != nil {
			t.Fatalf("一括生成はエラーを返さないはずです: %v", err)
		}
		if report.Done() != 2 || report.Failed() != 1 {
			t.Errorf("集計が不正です: done=%d failed=%d", report.Done(), report.Failed())
		}
		order := []string{gen.imageCalls[0].prompt, gen.imageCalls[1].prompt, gen.imageCalls[2].prompt}
		if strings.Join(order, ",") != "prompt a,prompt b,prompt c" {
			t.Errorf("生成順が不正です: %v", order)
		}
		scenes := ws.Scenes()
		if scenes[0].Status != domain.SceneStatusCompleted || scenes[1].Status != domain.SceneStatusError || scenes[2].Status != domain.SceneStatusCompleted {
			t.Errorf("シーンの状態が不正です: %+v", scenes)
		}
		if len(ws.Gallery()) != 2 {
			t.Errorf("ギャラリー件数 got %d, want 2", len(ws.Gallery()))
		}
	})

	t.Run("存在しないシーン", func(t *testing.T) {
		ws := workspace.New()
		if _, err := NewSceneImageRunner(&fakeGen{}, ws).Run(ctx, "scene-9"); !errors.Is(err, workspace.ErrSceneNotFound) {
			t.Errorf("ErrSceneNotFound が返りません: %v", err)
		}
	})
}

func TestSceneVideoRunner(t *testing.T) {
	ctx := context.Background()

	withImage := func() *workspace.Workspace {
		ws := workspace.New()
		scenes := threeScenes()
		scenes[0].ImageURL = "data:image/png;base64,AA=="
		ws.ReplaceScenes(scenes)
		return ws
	}

	t.Run("画像から動画を作り同じシーンに付ける", func(t *testing.T) {
		ws := withImage()
		gen := &fakeGen{}
		scene, err := NewSceneVideoRunner(gen, Unrestricted{}, ws).Run(ctx, "scene-0")
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if scene.VideoURL != "blob:video-1" {
			t.Errorf("動画 URL が不正です: %q", scene.VideoURL)
		}
		call := gen.videoCalls[0]
		if call.seed != "data:image/png;base64,AA==" || call.prompt != "prompt a" || call.aspect != domain.AspectWide {
			t.Errorf("生成の引数が不正です: %+v", call)
		}
		if g := ws.Gallery(); len(g) != 1 || g[0].Type != domain.AssetTypeVideo {
			t.Errorf("ギャラリーが不正です: %+v", g)
		}
	})

	t.Run("画像が無いシーンは投入しない", func(t *testing.T) {
		ws := withImage()
		gen := &fakeGen{}
		if _, err := NewSceneVideoRunner(gen, nil, ws).Run(ctx, "scene-1"); !errors.Is(err, ErrSceneHasNoImage) {
			t.Errorf("ErrSceneHasNoImage が返りません: %v", err)
		}
		if len(gen.videoCalls) != 0 {
			t.Error("動画が投入されました")
		}
	})

	t.Run("前提条件を満たさなければ投入しない", func(t *testing.T) {
		ws := withImage()
		gen := &fakeGen{}
		gate := NewKeyGate("video", &fakeSelector{})
		if _, err := NewSceneVideoRunner(gen, gate, ws).Run(ctx, "scene-0"); !errors.Is(err, ErrPreconditionNotMet) {
			t.Errorf("ErrPreconditionNotMet が返りません: %v", err)
		}
		if len(gen.videoCalls) != 0 {
			t.Error("前提条件を満たさないまま投入されました")
		}
	})

	t.Run("失敗したらシーンは変わらない", func(t *testing.T) {
		ws := withImage()
		gen := &fakeGen{videoErr: generator.ErrVideoTimeout}
		if _, err := NewSceneVideoRunner(gen, nil, ws).Run(ctx, "scene-0"); !errors.Is(err, generator.ErrVideoTimeout) {
			t.Errorf("ErrVideoTimeout が返りません: %v", err)
		}
		if s, _ := ws.Scene("scene-0"); s.HasVideo() {
			t.Error("失敗したのに動画が設定されています")
		}
	})

	t.Run("クリエイターの画像を動画にする", func(t *testing.T) {
		ws := workspace.New()
		gen := &fakeGen{}
		asset, err := NewSceneVideoRunner(gen, nil, ws).Animate(ctx, "data:image/png;base64,AA==", "a castle", domain.AspectPortrait)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if asset.Type != domain.AssetTypeVideo || asset.Prompt != "a castle" {
			t.Errorf("アセットが不正です: %+v", asset)
		}
		if gen.videoCalls[0].aspect != domain.AspectPortrait {
			t.Errorf("アスペクト比 got %s", gen.videoCalls[0].aspect)
		}
	})
}

func TestFinalizeRunner(t *testing.T) {
	ctx := context.Background()

	// A は動画とナレーションあり、B は動画のみ、C は動画なし。
	setup := func() *workspace.Workspace {
		ws := workspace.New()
		scenes := threeScenes()
		scenes[0].ImageURL, scenes[0].VideoURL, scenes[0].NarrationURL = "img-a", "blob:a", "data:audio/wav;base64,YQ=="
		scenes[1].ImageURL, scenes[1].VideoURL = "img-b", "blob:b"
		scenes[2].ImageURL = "img-c"
		ws.ReplaceScenes(scenes)
		return ws
	}

	t.Run("動画がありナレーションの無いシーンだけを読み上げる", func(t *testing.T) {
		ws := setup()
		before := ws.Scenes()
		gen := &fakeGen{}

		seq, err := NewFinalizeRunner(gen, ws).Run(ctx)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		after := ws.Scenes()
		if after[0] != before[0] {
			t.Errorf("A が変更されました: %+v", after[0])
		}
		if after[1].NarrationURL == "" {
			t.Error("B にナレーションが付いていません")
		}
		if after[2] != before[2] {
			t.Errorf("C が変更されました: %+v", after[2])
		}
		if len(gen.narrations) != 1 || gen.narrations[0] != "Cena B" {
			t.Errorf("読み上げ対象が不正です: %v", gen.narrations)
		}

		g := ws.Gallery()
		if len(g) != 1 || g[0].Type != domain.AssetTypeNarration || g[0].Prompt != "Narração: Cena B" {
			t.Errorf("ギャラリーが不正です: %+v", g)
		}
		if len(seq) != 2 || seq[0].ID != "scene-0" || seq[1].ID != "scene-1" || seq[1].NarrationURL == "" {
			t.Errorf("シーケンサーの一覧が不正です: %+v", seq)
		}
		if ws.Generation() != domain.StateIdle {
			t.Errorf("処理状態が戻っていません: %s", ws.Generation())
		}
	})

	t.Run("動画が1本も無ければ何もしない", func(t *testing.T) {
		ws := workspace.New()
		ws.ReplaceScenes(threeScenes())
		gen := &fakeGen{}
		if _, err := NewFinalizeRunner(gen, ws).Run(ctx); !errors.Is(err, ErrNoVideoScenes) {
			t.Errorf("ErrNoVideoScenes が返りません: %v", err)
		}
		if len(gen.narrations) != 0 {
			t.Error("ナレーションが生成されました")
		}
	})

	t.Run("途中で失敗したら一覧を返さない", func(t *testing.T) {
		ws := workspace.New()
		scenes := threeScenes()
		for i := range scenes {
			scenes[i].ImageURL = "img"
			scenes[i].VideoURL = "blob:v"
		}
		ws.ReplaceScenes(scenes)
		gen := &fakeGen{narrationErrAfter: 1}

		seq, err := NewFinalizeRunner(gen, ws).Run(ctx)
		if !errors.Is(err, errGen) {
			t.Fatalf("元のエラーが返りません: %v", err)
		}
		if seq != nil {
			t.Error("失敗したのに一覧が返りました")
		}
		got := ws.Scenes()
		if got[0].NarrationURL == "" || got[1].NarrationURL != "" || got[2].NarrationURL != "" {
			t.Errorf("ナレーションの付与状態が不正です: %+v", got)
		}
	})
}

func TestThumbnailRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("台本が無ければ生成しない", func(t *testing.T) {
		if _, err := NewThumbnailRunner(&fakeGen{}, workspace.New()).Run(ctx); !errors.Is(err, ErrNoScript) {
			t.Errorf("ErrNoScript が返りません: %v", err)
		}
	})

	t.Run("先頭3枚のシーン画像を参照に使う", func(t *testing.T) {
		ws := workspace.New()
		ws.SetScript("roteiro")
		scenes := append(threeScenes(), domain.Scene{ID: "scene-3", ImageURL: "img-d"})
		scenes[0].ImageURL = "img-a"
		scenes[2].ImageURL = "img-c"
		scenes = append(scenes, domain.Scene{ID: "scene-4", ImageURL: "img-e"})
		ws.ReplaceScenes(scenes)
		gen := &fakeGen{}

		asset, err := NewThumbnailRunner(gen, ws).Run(ctx)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if strings.Join(gen.thumbRefs, ",") != "img-a,img-c,img-d" {
			t.Errorf("参照画像が不正です: %v", gen.thumbRefs)
		}
		if asset.Type != domain.AssetTypeThumbnail || asset.Prompt != "optimized thumbnail" {
			t.Errorf("アセットが不正です: %+v", asset)
		}
	})

	t.Run("スタイル参照が無ければ描き直さない", func(t *testing.T) {
		ws := workspace.New()
		thumb := domain.NewAsset(domain.AssetTypeThumbnail, "u", "p")
		ws.AddAsset(thumb)
		if _, err := NewThumbnailRunner(&fakeGen{}, ws).Restyle(ctx, thumb.ID); !errors.Is(err, ErrNoStyleReference) {
			t.Errorf("ErrNoStyleReference が返りません: %v", err)
		}
	})

	t.Run("動画やナレーションは描き直さない", func(t *testing.T) {
		ws := workspace.New()
		ws.SetStyleReference("style-ref")
		video := domain.NewAsset(domain.AssetTypeVideo, "blob://v", "a castle")
		narration := domain.NewAsset(domain.AssetTypeNarration, "data:audio/wav;base64,AA==", "olá")
		ws.AddAsset(video)
		ws.AddAsset(narration)
		gen := &fakeGen{}

		for _, a := range []domain.GeneratedAsset{video, narration} {
			if _, err := NewThumbnailRunner(gen, ws).Restyle(ctx, a.ID); !errors.Is(err, ErrNotAnImage) {
				t.Errorf("%s: ErrNotAnImage が返りません: %v", a.Type, err)
			}
		}
		if len(gen.restyleCalls) != 0 {
			t.Errorf("生成が呼ばれました: %v", gen.restyleCalls)
		}
		if len(ws.Gallery()) != 2 {
			t.Errorf("ギャラリーが変更されました: %+v", ws.Gallery())
		}
	})

	t.Run("シーン画像も描き直せる", func(t *testing.T) {
		ws := workspace.New()
		ws.SetStyleReference("style-ref")
		img := domain.NewAsset(domain.AssetTypeImage, "img-url", "a bar")
		ws.AddAsset(img)
		if _, err := NewThumbnailRunner(&fakeGen{}, ws).Restyle(ctx, img.ID); err != nil {
			t.Errorf("予期しないエラー: %v", err)
		}
	})

	t.Run("描き直しは新しい項目として追加し元は残す", func(t *testing.T) {
		ws := workspace.New()
		ws.SetStyleReference("style-ref")
		thumb := domain.NewAsset(domain.AssetTypeThumbnail, "thumb-url", "epic shot")
		ws.AddAsset(thumb)
		gen := &fakeGen{}

		restyled, err := NewThumbnailRunner(gen, ws).Restyle(ctx, thumb.ID)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if gen.restyleCalls[0] != [3]string{"thumb-url", "style-ref", "epic shot"} {
			t.Errorf("描き直しの引数が不正です: %v", gen.restyleCalls[0])
		}
		if restyled.Prompt != "Estilizado: epic shot" || restyled.ID == thumb.ID {
			t.Errorf("新しいアセットが不正です: %+v", restyled)
		}
		g := ws.Gallery()
		if len(g) != 2 || g[1] != thumb {
			t.Errorf("元のサムネイルが変更されました: %+v", g)
		}
	})
}

func TestCreatorRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("Pro モードは前提条件を確認してから生成する", func(t *testing.T) {
		ws := workspace.New()
		ws.AddCharacterRefs("data:image/png;base64,AA==")
		gen := &fakeGen{}
		sel := &fakeSelector{selectable: true}

		asset, err := NewCreatorRunner(gen, NewKeyGate("pro-image", sel), ws).Run(ctx, CreateRequest{
			Prompt: "a castle", Pro: true, Size: domain.ImageSize2K, Aspect: domain.AspectSquare, UseSearch: true,
		})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if sel.asked != 1 {
			t.Error("前提条件が確認されていません")
		}
		req := gen.proCalls[0]
		if req.Size != domain.ImageSize2K || !req.UseSearch || len(req.Refs) != 1 {
			t.Errorf("Pro の要求が不正です: %+v", req)
		}
		if asset.Type != domain.AssetTypeImage || asset.Prompt != "a castle" {
			t.Errorf("アセットが不正です: %+v", asset)
		}
	})

	t.Run("Pro でも前提条件を満たさなければ生成しない", func(t *testing.T) {
		gen := &fakeGen{}
		_, err := NewCreatorRunner(gen, NewKeyGate("pro-image", &fakeSelector{}), workspace.New()).Run(ctx, CreateRequest{Prompt: "x", Pro: true})
		if !errors.Is(err, ErrPreconditionNotMet) || len(gen.proCalls) != 0 {
			t.Errorf("前提条件のチェックが不正です: %v", err)
		}
	})

	t.Run("標準モードは前提条件を確認しない", func(t *testing.T) {
		gen := &fakeGen{}
		sel := &fakeSelector{}
		if _, err := NewCreatorRunner(gen, NewKeyGate("pro-image", sel), workspace.New()).Run(ctx, CreateRequest{Prompt: "x"}); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if sel.asked != 0 || len(gen.imageCalls) != 1 || gen.imageCalls[0].aspect != domain.AspectWide {
			t.Errorf("標準モードの呼び出しが不正です: %+v", gen.imageCalls)
		}
	})

	t.Run("空のプロンプトは拒否する", func(t *testing.T) {
		if _, err := NewCreatorRunner(&fakeGen{}, nil, workspace.New()).Run(ctx, CreateRequest{Prompt: " "}); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("ErrEmptyPrompt が返りません: %v", err)
		}
	})
}

func TestEditRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("クイック編集は用意済みの指示を使う", func(t *testing.T) {
		gen := &fakeGen{}
		ws := workspace.New()
		asset, err := NewEditRunner(gen, ws).QuickEdit(ctx, "src", "golden-hour")
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if !strings.HasPrefix(gen.editCalls[0][1], "Mudar a iluminação para o pôr do sol") {
			t.Errorf("指示が不正です: %q", gen.editCalls[0][1])
		}
		if asset.Prompt != gen.editCalls[0][1] {
			t.Errorf("ギャラリーのプロンプトが不正です: %q", asset.Prompt)
		}
	})

	t.Run("未知のクイック編集", func(t *testing.T) {
		if _, err := NewEditRunner(&fakeGen{}, workspace.New()).QuickEdit(ctx, "src", "sepia"); !errors.Is(err, ErrUnknownQuickEdit) {
			t.Errorf("ErrUnknownQuickEdit が返りません: %v", err)
		}
	})

	t.Run("マジック編集は同じ画像のシーンをすべて差し替える", func(t *testing.T) {
		ws := workspace.New()
		scenes := threeScenes()
		scenes[0].ImageURL = "shared"
		scenes[1].ImageURL = "shared"
		scenes[2].ImageURL = "other"
		ws.ReplaceScenes(scenes)

		asset, n, err := NewEditRunner(&fakeGen{}, ws).MagicEdit(ctx, "shared", "add rain")
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if n != 2 {
			t.Errorf("差し替え件数 got %d, want 2", n)
		}
		got := ws.Scenes()
		if got[0].ImageURL != asset.URL || got[1].ImageURL != asset.URL || got[2].ImageURL != "other" {
			t.Errorf("差し替え結果が不正です: %+v", got)
		}
		if asset.Prompt != MagicEditPrompt {
			t.Errorf("ギャラリーのプロンプト got %q", asset.Prompt)
		}
	})
}

func TestCharacterRunner(t *testing.T) {
	ctx := context.Background()
	ref := "data:image/png;base64,AA=="

	t.Run("参照画像が無ければ生成しない", func(t *testing.T) {
		if _, err := NewCharacterRunner(&fakeGen{}, workspace.New()).Variations(ctx); !errors.Is(err, ErrNoCharacterRefs) {
			t.Errorf("ErrNoCharacterRefs が返りません: %v", err)
		}
	})

	t.Run("バリエーションは上限まで追加される", func(t *testing.T) {
		ws := workspace.New()
		r := NewCharacterRunner(&fakeGen{variations: []string{"v1", "v2", "v3"}}, ws)
		if _, err := r.AddRefs(ref, ref); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		refs, err := r.Variations(ctx)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if len(refs) != domain.MaxCharacterRefs || refs[2] != "v1" || refs[3] != "v2" {
			t.Errorf("参照画像が不正です: %v", refs)
		}
	})

	t.Run("data URI でない参照画像は拒否する", func(t *testing.T) {
		if _, err := NewCharacterRunner(&fakeGen{}, workspace.New()).AddRefs("https://example.com/a.png"); !errors.Is(err, domain.ErrInvalidDataURI) {
			t.Errorf("ErrInvalidDataURI が返りません: %v", err)
		}
	})
}
