// Package retry は外部 API 呼び出しを固定間隔で再試行するためのヘルパーなのだ。
package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultRetries は初回呼び出しの後に許される再試行回数です。
	DefaultRetries = 2
	// DefaultDelay は再試行の前に待つ固定時間です。
	DefaultDelay = 2000 * time.Millisecond
)

// Policy は再試行回数と待機時間を表します。
// Permanent で包まれたもの以外は、失敗の種類を区別せずに再試行します。
type Policy struct {
	Retries uint64
	Delay   time.Duration
}

// DefaultPolicy は 2 回・2 秒固定の再試行ポリシーを返します。
func DefaultPolicy() Policy {
	return Policy{Retries: DefaultRetries, Delay: DefaultDelay}
}

// NoRetry は再試行を行わないポリシーです。
func NoRetry() Policy {
	return Policy{}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Delay), p.Retries)
	return backoff.WithContext(b, ctx)
}

// Do は op を実行し、失敗したら Policy に従って再試行します。
// 再試行を使い切った場合は最後のエラーをそのまま返すのだ。
func Do[T any](ctx context.Context, p Policy, name string, op func(ctx context.Context) (T, error)) (T, error) {
	attempt := 0
	operation := func() (T, error) {
		attempt++
		return op(ctx)
	}
	notify := func(err error, wait time.Duration) {
		slog.WarnContext(ctx, "API 呼び出しに失敗したため再試行します",
			"operation", name,
			"attempt", attempt,
			"remaining", int(p.Retries)-attempt+1,
			"wait", wait,
			"error", err,
		)
	}
	return backoff.RetryNotifyWithData(operation, p.backOff(ctx), notify)
}

// Permanent は err を再試行しないエラーとして包みます。Do は包まれた元のエラーを返します。
func Permanent(err error) error {
	return backoff.Permanent(err)
}
