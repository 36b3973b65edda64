package domain

import "fmt"

// SceneIDPrefix は解析結果の位置から ID を作るための接頭辞です。
const SceneIDPrefix = "scene-"

// SceneIDFor はシーンの位置から安定した ID を生成するのだ。
func SceneIDFor(index int) string {
	return fmt.Sprintf("%s%d", SceneIDPrefix, index)
}

// ToScenes は解析結果を ID 付き、idle 状態の Scene に変換します。
func (a ScriptAnalysis) ToScenes() Scenes {
	scenes := make(Scenes, 0, len(a.Scenes))
	for i, s := range a.Scenes {
		scenes = append(scenes, Scene{
			ID:          SceneIDFor(i),
			Timestamp:   s.Timestamp,
			Description: s.Description,
			ImagePrompt: s.ImagePrompt,
			Status:      SceneStatusIdle,
		})
	}
	return scenes
}

// Find は ID に一致するシーンとその位置を返します。見つからない場合は -1 です。
func (ss Scenes) Find(id string) (Scene, int) {
	for i, s := range ss {
		if s.ID == id {
			return s, i
		}
	}
	return Scene{}, -1
}

// WithVideo は動画を持つシーンだけを順序を保って返します。
func (ss Scenes) WithVideo() Scenes {
	var out Scenes
	for _, s := range ss {
		if s.HasVideo() {
			out = append(out, s)
		}
	}
	return out
}

// ImageURLs は生成済み画像の URL を順に最大 limit 件返します。limit が 0 以下なら全件です。
func (ss Scenes) ImageURLs(limit int) []string {
	var urls []string
	for _, s := range ss {
		if !s.HasImage() {
			continue
		}
		if limit > 0 && len(urls) >= limit {
			break
		}
		urls = append(urls, s.ImageURL)
	}
	return urls
}

// Clone はスライスのコピーを返します。Scene は値型なので浅いコピーで十分なのだ。
func (ss Scenes) Clone() Scenes {
	if ss == nil {
		return nil
	}
	out := make(Scenes, len(ss))
	copy(out, ss)
	return out
}
