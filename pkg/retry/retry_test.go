package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo(t *testing.T) {
	fastPolicy := func(n uint64) Policy {
		return Policy{Retries: n, Delay: time.Millisecond}
	}

	t.Run("失敗し続ける場合は N+1 回呼び出して最後のエラーを返す", func(t *testing.T) {
		for _, budget := range []uint64{0, 1, 2, 5} {
			calls := 0
			var lastErr error
			_, err := Do(context.Background(), fastPolicy(budget), "test", func(ctx context.Context) (string, error) {
				calls++
				lastErr = errors.New("boom")
				return "", lastErr
			})
			if calls != int(budget)+1 {
				t.Errorf("budget=%d: 呼び出し回数 got %d, want %d", budget, calls, budget+1)
			}
			if err != lastErr {
				t.Errorf("budget=%d: 最後のエラーがそのまま返っていません: %v", budget, err)
			}
		}
	})

	t.Run("途中で成功したら値を返す", func(t *testing.T) {
		calls := 0
		got, err := Do(context.Background(), fastPolicy(2), "test", func(ctx context.Context) (int, error) {
			calls++
			if calls < 2 {
				return 0, errors.New("transient")
			}
			return 42, nil
		})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got != 42 || calls != 2 {
			t.Errorf("got %d (calls=%d), want 42 (calls=2)", got, calls)
		}
	})

	t.Run("待機中にキャンセルされたら context のエラーを返す", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		p := Policy{Retries: 3, Delay: time.Hour}
		calls := 0
		_, err := Do(ctx, p, "test", func(ctx context.Context) (int, error) {
			calls++
			cancel()
			return 0, errors.New("boom")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("context.Canceled が返りません: %v", err)
		}
		if calls != 1 {
			t.Errorf("キャンセル後に再試行されています: calls=%d", calls)
		}
	})

	t.Run("Permanent で包んだエラーは再試行せずに元のエラーを返す", func(t *testing.T) {
		sentinel := errors.New("no output")
		calls := 0
		_, err := Do(context.Background(), fastPolicy(3), "test", func(ctx context.Context) (string, error) {
			calls++
			return "", Permanent(sentinel)
		})
		if err != sentinel {
			t.Errorf("元のエラーが返りません: %v", err)
		}
		if calls != 1 {
			t.Errorf("再試行されています: calls=%d", calls)
		}
	})
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.Retries != 2 || p.Delay != 2*time.Second {
		t.Errorf("デフォルトポリシーが不正です: %+v", p)
	}
}
