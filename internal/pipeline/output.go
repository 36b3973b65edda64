package pipeline

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/workspace"
)

const maxShownURL = 48

// PrintScenes はシーン一覧を表形式で出力するのだ。
func PrintScenes(out io.Writer, scenes domain.Scenes) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTATUS\tIMAGE\tVIDEO\tNARRATION\tDESCRIPTION")
	for _, s := range scenes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Timestamp, s.Status,
			mark(s.HasImage()), mark(s.HasVideo()), mark(s.NarrationURL != ""),
			s.Description)
	}
	return w.Flush()
}

// PrintSequencer はシーケンサーの再生順を出力するのだ。
func PrintSequencer(out io.Writer, scenes domain.Scenes) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tTIME\tVIDEO\tNARRATION")
	for i, s := range scenes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, s.ID, s.Timestamp, ShortURL(s.VideoURL), ShortURL(s.NarrationURL))
	}
	return w.Flush()
}

// PrintAsset は生成したアセットを1行で出力するのだ。
func PrintAsset(out io.Writer, a domain.GeneratedAsset) error {
	_, err := fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", a.ID, a.Type, ShortURL(a.URL), a.Prompt)
	return err
}

// PrintWorkspace はワークスペース全体の概要を出力するのだ。
func PrintWorkspace(out io.Writer, s workspace.State) error {
	fmt.Fprintf(out, "state: %s  consistency: %t  refs: %d/%d  style: %s\n\n",
		s.Generation, s.Consistency, len(s.CharacterRefs), domain.MaxCharacterRefs, mark(s.StyleReference != ""))
	if err := PrintScenes(out, s.Scenes); err != nil {
		return err
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ASSET\tTYPE\tCREATED\tURL\tPROMPT")
	for _, a := range s.Gallery {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Type, a.Timestamp.Format("2006-01-02 15:04:05"), ShortURL(a.URL), a.Prompt)
	}
	return w.Flush()
}

// ShortURL は data URI を MIME タイプとサイズの表記に縮めるのだ。
func ShortURL(url string) string {
	if url == "" {
		return "-"
	}
	if d, err := domain.ParseDataURI(url); err == nil {
		return fmt.Sprintf("data:%s (%d bytes)", d.MIMEType, len(d.Data))
	}
	if len(url) > maxShownURL {
		return url[:maxShownURL-3] + "..."
	}
	return url
}

func mark(ok bool) string {
	if ok {
		return "o"
	}
	return "-"
}
