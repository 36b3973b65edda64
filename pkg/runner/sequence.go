package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Policy は途中のタスクが失敗したときの振る舞いです。
type Policy int

const (
	// StopOnError は最初の失敗で残りのタスクを打ち切ります。
	StopOnError Policy = iota
	// ContinueOnError は失敗をログに残して次のタスクへ進みます。
	ContinueOnError
)

func (p Policy) String() string {
	switch p {
	case StopOnError:
		return "stop-on-error"
	case ContinueOnError:
		return "continue-on-error"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Task は順番に実行される1つの処理です。
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// TaskResult はタスク1件の実行結果です。
type TaskResult struct {
	Name string
	Err  error
}

// RunReport は Sequence の実行結果をまとめたものです。
type RunReport struct {
	Policy  Policy
	Results []TaskResult
}

// Done は成功したタスクの件数を返します。
func (r RunReport) Done() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed は失敗したタスクの件数を返します。
func (r RunReport) Failed() int {
	return len(r.Results) - r.Done()
}

// Err は失敗したタスクのエラーを連結して返します。失敗が無ければ nil です。
func (r RunReport) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Sequence はタスクを宣言された順に1件ずつ実行するのだ。
type Sequence struct {
	Policy Policy
}

// Run は tasks を順に実行します。
// StopOnError では最初の失敗をラップして返し、ContinueOnError では失敗してもエラーを返しません。
// コンテキストがキャンセルされた場合は次のタスクを始めずに ctx.Err() を返します。
func (s Sequence) Run(ctx context.Context, tasks []Task) (RunReport, error) {
	report := RunReport{Policy: s.Policy, Results: make([]TaskResult, 0, len(tasks))}

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		err := task.Run(ctx)
		report.Results = append(report.Results, TaskResult{Name: task.Name, Err: err})
		if err == nil {
			continue
		}

		if s.Policy == StopOnError {
			return report, fmt.Errorf("タスク %s が失敗しました: %w", task.Name, err)
		}
		slog.ErrorContext(ctx, "タスクが失敗しました。次のタスクへ進みます", "task", task.Name, "error", err)
	}

	slog.InfoContext(ctx, "シーケンスが完了しました",
		"policy", s.Policy.String(),
		"done", report.Done(),
		"failed", report.Failed(),
	)
	return report, nil
}
