package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrPreconditionNotMet は有料モデルを呼び出すための前提条件が満たされていないことを表します。
var ErrPreconditionNotMet = errors.New("前提条件を満たしていません")

// PreconditionError はどの機能の確認に失敗したかを保持します。errors.Is で ErrPreconditionNotMet に一致します。
type PreconditionError struct {
	Capability string
	Err        error
}

func (e *PreconditionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrPreconditionNotMet, e.Capability, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrPreconditionNotMet, e.Capability)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionNotMet
}

// Capability は外部呼び出しの前に確認する前提条件です。
type Capability interface {
	Check(ctx context.Context) error
}

// KeySelector は課金可能な API キーが選択されているかを確認し、必要なら選択を促します。
type KeySelector interface {
	HasSelectedKey(ctx context.Context) (bool, error)
	SelectKey(ctx context.Context) error
}

// KeyGate は KeySelector を使って有料機能の前提条件を確認します。
type KeyGate struct {
	name     string
	selector KeySelector
}

// NewKeyGate は KeyGate を作成します。
func NewKeyGate(name string, selector KeySelector) *KeyGate {
	return &KeyGate{name: name, selector: selector}
}

// Check はキーが選択済みか確認し、未選択なら一度だけ選択を促してから再確認するのだ。
func (g *KeyGate) Check(ctx context.Context) error {
	ok, err := g.selector.HasSelectedKey(ctx)
	if err != nil {
		return &PreconditionError{Capability: g.name, Err: err}
	}
	if ok {
		return nil
	}

	slog.InfoContext(ctx, "API キーが選択されていません。選択を要求します", "capability", g.name)
	if err := g.selector.SelectKey(ctx); err != nil {
		return &PreconditionError{Capability: g.name, Err: err}
	}

	ok, err = g.selector.HasSelectedKey(ctx)
	if err != nil {
		return &PreconditionError{Capability: g.name, Err: err}
	}
	if !ok {
		return &PreconditionError{Capability: g.name}
	}
	return nil
}

// Unrestricted は常に前提条件を満たす Capability です。
type Unrestricted struct{}

func (Unrestricted) Check(context.Context) error { return nil }
