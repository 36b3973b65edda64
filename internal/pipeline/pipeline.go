package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/builder"
	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/publisher"
	"github.com/shouni/go-storyboard-kit/pkg/runner"
)

// execute は AppContext を用意して fn を実行し、結果にかかわらずワークスペースを保存するのだ。
func execute(ctx context.Context, cfg *config.Config, fn func(context.Context, *builder.AppContext) error) error {
	appCtx, err := builder.BuildAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	runErr := fn(ctx, appCtx)
	if err := appCtx.Workspace.Save(appCtx.WorkspacePath()); err != nil {
		return errors.Join(runErr, fmt.Errorf("ワークスペースの保存に失敗したのだ: %w", err))
	}
	return runErr
}

// ExecuteAnalyze は台本を解析し、シーン一覧をワークスペースに保存するのだ。
func ExecuteAnalyze(ctx context.Context, cfg *config.Config, script string, out io.Writer) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		r, err := appCtx.Workflow.BuildScriptRunner()
		if err != nil {
			return fmt.Errorf("ScriptRunnerの構築に失敗したのだ: %w", err)
		}
		scenes, err := r.Run(ctx, script, appCtx.Options.UseSearch)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "台本の解析が完了したのだ", "scenes", len(scenes))
		return PrintScenes(out, scenes)
	})
}

// ExecuteSceneImage は指定シーンの画像を生成するのだ。
func ExecuteSceneImage(ctx context.Context, cfg *config.Config, sceneID string) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		r, err := appCtx.Workflow.BuildSceneImageRunner()
		if err != nil {
			return fmt.Errorf("SceneImageRunnerの構築に失敗したのだ: %w", err)
		}
		_, err = r.Run(ctx, sceneID)
		return err
	})
}

// ExecuteAllImages はすべてのシーン画像を順番に生成するのだ。
// 失敗したシーンがあっても最後まで進めて、件数だけ報告するのだ。
func ExecuteAllImages(ctx context.Context, cfg *config.Config) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		r, err := appCtx.Workflow.BuildSceneImageRunner()
		if err != nil {
			return fmt.Errorf("SceneImageRunnerの構築に失敗したのだ: %w", err)
		}
		report, err := r.RunAll(ctx)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "一括画像生成が終わったのだ", "done", report.Done(), "failed", report.Failed())
		return nil
	})
}

// ExecuteSceneVideo は指定シーンの画像から動画を生成するのだ。
func ExecuteSceneVideo(ctx context.Context, cfg *config.Config, sceneID string) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		r, err := appCtx.Workflow.BuildSceneVideoRunner()
		if err != nil {
			return fmt.Errorf("SceneVideoRunnerの構築に失敗したのだ: %w", err)
		}
		scene, err := r.Run(ctx, sceneID)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "動画を生成したのだ", "scene", scene.ID, "video", scene.VideoURL)
		return nil
	})
}

// ExecuteFinalize はナレーションを付けて、シーケンサーの再生順を出力するのだ。
func ExecuteFinalize(ctx context.Context, cfg *config.Config, out io.Writer) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		r, err := appCtx.Workflow.BuildFinalizeRunner()
		if err != nil {
			return fmt.Errorf("FinalizeRunnerの構築に失敗したのだ: %w", err)
		}
		seq, err := r.Run(ctx)
		if err != nil {
			return err
		}
		return PrintSequencer(out, seq)
	})
}

// ExecuteThumbnail は台本からサムネイルを生成するのだ。
func ExecuteThumbnail(ctx context.Context, cfg *config.Config, out io.Writer) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		r, err := appCtx.Workflow.BuildThumbnailRunner()
		if err != nil {
			return fmt.Errorf("ThumbnailRunnerの構築に失敗したのだ: %w", err)
		}
		asset, err := r.Run(ctx)
		if err != nil {
			return err
		}
		return PrintAsset(out, asset)
	})
}

// ExecuteRestyle はギャラリーの画像をスタイル参照画像に合わせて描き直すのだ。
// styleRef が指定されていれば、先にスタイル参照として登録するのだ。
func ExecuteRestyle(ctx context.Context, cfg *config.Config, assetID, styleRef string, out io.Writer) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		if styleRef != "" {
			ref, err := LoadImageRef(appCtx.Workspace, styleRef)
			if err != nil {
				return err
			}
			appCtx.Workspace.SetStyleReference(ref)
		}
		r, err := appCtx.Workflow.BuildThumbnailRunner()
		if err != nil {
			return fmt.Errorf("ThumbnailRunnerの構築に失敗したのだ: %w", err)
		}
		asset, err := r.Restyle(ctx, assetID)
		if err != nil {
			return err
		}
		return PrintAsset(out, asset)
	})
}

// ExecuteCreate はシーンに紐付かない画像を生成するのだ。
func ExecuteCreate(ctx context.Context, cfg *config.Config, prompt string, out io.Writer) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		req, err := createRequest(appCtx.Options, prompt)
		if err != nil {
			return err
		}
		r, err := appCtx.Workflow.BuildCreatorRunner()
		if err != nil {
			return fmt.Errorf("CreatorRunnerの構築に失敗したのだ: %w", err)
		}
		asset, err := r.Run(ctx, req)
		if err != nil {
			return err
		}
		return PrintAsset(out, asset)
	})
}

// ExecuteAnimate は任意の画像から動画を生成するのだ。
func ExecuteAnimate(ctx context.Context, cfg *config.Config, source, prompt string, out io.Writer) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		image, err := LoadImageRef(appCtx.Workspace, source)
		if err != nil {
			return err
		}
		aspect, err := parseAspect(appCtx.Options.Aspect)
		if err != nil {
			return err
		}
		r, err := appCtx.Workflow.BuildSceneVideoRunner()
		if err != nil {
			return fmt.Errorf("SceneVideoRunnerの構築に失敗したのだ: %w", err)
		}
		asset, err := r.Animate(ctx, image, prompt, aspect)
		if err != nil {
			return err
		}
		return PrintAsset(out, asset)
	})
}

// ExecuteEdit は画像を編集するのだ。--magic ならその画像を使うシーンも差し替えるのだ。
func ExecuteEdit(ctx context.Context, cfg *config.Config, source, instruction string, out io.Writer) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		image, err := LoadImageRef(appCtx.Workspace, source)
		if err != nil {
			return err
		}
		r, err := appCtx.Workflow.BuildEditRunner()
		if err != nil {
			return fmt.Errorf("EditRunnerの構築に失敗したのだ: %w", err)
		}

		opts := appCtx.Options
		if opts.Quick != "" {
			instruction = opts.Quick
		}

		var asset domain.GeneratedAsset
		switch {
		case opts.Magic:
			var n int
			asset, n, err = r.MagicEdit(ctx, image, instruction)
			if err == nil {
				slog.InfoContext(ctx, "シーン画像を差し替えたのだ", "scenes", n)
			}
		case opts.Quick != "":
			asset, err = r.QuickEdit(ctx, image, opts.Quick)
		default:
			asset, err = r.Run(ctx, image, instruction)
		}
		if err != nil {
			return err
		}
		return PrintAsset(out, asset)
	})
}

// ExecuteAddRefs はキャラクター参照画像を追加するのだ。
func ExecuteAddRefs(ctx context.Context, cfg *config.Config, sources []string) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		refs := make([]string, 0, len(sources))
		for _, src := range sources {
			ref, err := LoadImageRef(appCtx.Workspace, src)
			if err != nil {
				return err
			}
			refs = append(refs, ref)
		}
		r, err := appCtx.Workflow.BuildCharacterRunner()
		if err != nil {
			return fmt.Errorf("CharacterRunnerの構築に失敗したのだ: %w", err)
		}
		all, err := r.AddRefs(refs...)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "キャラクター参照画像を追加したのだ", "refs", len(all), "max", domain.MaxCharacterRefs)
		return nil
	})
}

// ExecuteRemoveRef は index 番目のキャラクター参照画像を取り除くのだ。
func ExecuteRemoveRef(ctx context.Context, cfg *config.Config, index int) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		return appCtx.Workspace.RemoveCharacterRef(index)
	})
}

// ExecuteVariations は最初の参照画像から別アングルの参照画像を作るのだ。
func ExecuteVariations(ctx context.Context, cfg *config.Config) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		r, err := appCtx.Workflow.BuildCharacterRunner()
		if err != nil {
			return fmt.Errorf("CharacterRunnerの構築に失敗したのだ: %w", err)
		}
		refs, err := r.Variations(ctx)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "バリエーションを追加したのだ", "refs", len(refs))
		return nil
	})
}

// ExecuteConsistency はシーン画像に参照画像を使うかどうかを切り替えるのだ。
func ExecuteConsistency(ctx context.Context, cfg *config.Config, enabled bool) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		appCtx.Workspace.SetConsistency(enabled)
		slog.InfoContext(ctx, "一貫性モードを切り替えたのだ", "enabled", enabled)
		return nil
	})
}

// ExecuteShow はシーン一覧、ギャラリー、参照画像の状態を出力するのだ。
func ExecuteShow(ctx context.Context, cfg *config.Config, out io.Writer) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		return PrintWorkspace(out, appCtx.Workspace.Snapshot())
	})
}

// ExecutePublish はシーン画像とナレーションをファイルに書き出し、Markdown の台本にまとめるのだ。
func ExecutePublish(ctx context.Context, cfg *config.Config, title string) error {
	return execute(ctx, cfg, func(ctx context.Context, appCtx *builder.AppContext) error {
		pub := publisher.NewStoryboardPublisher(publisher.LocalWriter{})
		res, err := pub.Publish(ctx, appCtx.Workspace.Snapshot(), publisher.Options{
			OutputDir: appCtx.Options.OutputDir,
			Title:     title,
		})
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "ストーリーボードを公開したのだ", "markdown", res.MarkdownPath)
		return nil
	})
}

func createRequest(opts config.GenerateOptions, prompt string) (runner.CreateRequest, error) {
	req := runner.CreateRequest{Prompt: prompt, Pro: opts.Pro, UseSearch: opts.UseSearch}
	if opts.Size != "" {
		size, err := domain.ParseImageSize(opts.Size)
		if err != nil {
			return req, err
		}
		req.Size = size
	}
	aspect, err := parseAspect(opts.Aspect)
	if err != nil {
		return req, err
	}
	req.Aspect = aspect
	return req, nil
}

func parseAspect(raw string) (domain.AspectRatio, error) {
	if raw == "" {
		return domain.AspectWide, nil
	}
	return domain.ParseAspectRatio(raw)
}
