package domain

// SceneStatus はシーンの生成状態を表します。
type SceneStatus string

const (
	SceneStatusIdle       SceneStatus = "idle"
	SceneStatusGenerating SceneStatus = "generating"
	SceneStatusCompleted  SceneStatus = "completed"
	SceneStatusError      SceneStatus = "error"
)

// Scene は台本から切り出された1つの場面です。
// Description は表示言語、ImagePrompt は英語で保持します。
type Scene struct {
	ID           string      `json:"id"`
	Timestamp    string      `json:"timestamp"`
	Description  string      `json:"description"`
	ImagePrompt  string      `json:"imagePrompt"`
	Status       SceneStatus `json:"status"`
	ImageURL     string      `json:"imageUrl,omitempty"`
	VideoURL     string      `json:"videoUrl,omitempty"`
	NarrationURL string      `json:"narrationUrl,omitempty"`
}

// HasImage は画像が生成済みかどうかを返します。
func (s Scene) HasImage() bool { return s.ImageURL != "" }

// HasVideo は動画が生成済みかどうかを返します。
func (s Scene) HasVideo() bool { return s.VideoURL != "" }

// NeedsNarration は動画があり、ナレーションがまだ無いシーンかどうかを返すのだ。
func (s Scene) NeedsNarration() bool {
	return s.HasVideo() && s.NarrationURL == ""
}

// ScriptAnalysis は台本解析で AI から返される構造です。
type ScriptAnalysis struct {
	Scenes []AnalyzedScene `json:"scenes"`
}

// AnalyzedScene は解析結果の1シーン分で、ID や状態はまだ持ちません。
type AnalyzedScene struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
	ImagePrompt string `json:"imagePrompt"`
}

// Scenes はシーンのスライスです。
type Scenes []Scene

// GenerationState はワークスペース全体で進行中の処理を表します。
type GenerationState string

const (
	StateIdle       GenerationState = "idle"
	StateAnalyzing  GenerationState = "analyzing"
	StateGenerating GenerationState = "generating"
	StateFinalizing GenerationState = "finalizing"
)
