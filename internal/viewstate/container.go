// Package viewstate は画面ごとの読み込み状態を保持するコンテナを提供します
//
// 同じコンテナで新しい Load が始まると、実行中の取得はキャンセルされ、
// その結果は破棄されます。最後に選択されたキーの結果だけが反映されます。
package viewstate

import (
	"context"
	"sync"
)

// Phase は画面の読み込み段階です
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLoading  Phase = "loading"
	PhaseReady    Phase = "ready"
	PhaseNotFound Phase = "not_found"
	PhaseFailed   Phase = "failed"
)

// State はコンテナが保持する状態です
type State[V any] struct {
	Phase Phase
	Value V
	Err   error
}

// Message はエラーの文言を返します。エラーがない場合は空文字です
func (s State[V]) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// FetchFunc はキーに対応する値を取得する関数です
type FetchFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Container はキーごとの取得結果を1つだけ保持します
type Container[K comparable, V any] struct {
	fetch      FetchFunc[K, V]
	isNotFound func(error) bool

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	key        K
	state      State[V]
}

// New は新しいContainerを作成します
// isNotFound が true を返すエラーは failed ではなく not_found として扱います
func New[K comparable, V any](fetch FetchFunc[K, V], isNotFound func(error) bool) *Container[K, V] {
	return &Container[K, V]{
		fetch:      fetch,
		isNotFound: isNotFound,
		state:      State[V]{Phase: PhaseIdle},
	}
}

// Load はキーの値を取得して状態に反映します
// 取得中に別の Load が始まった場合、結果は反映されず applied は false になります
func (c *Container[K, V]) Load(ctx context.Context, key K) (state State[V], applied bool) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	gen := c.generation
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.key = key
	c.state = State[V]{Phase: PhaseLoading}
	c.mu.Unlock()
	defer cancel()

	value, err := c.fetch(ctx, key)
	next := c.resolve(value, err)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return next, false
	}
	c.state = next
	c.cancel = nil
	return next, true
}

func (c *Container[K, V]) resolve(value V, err error) State[V] {
	switch {
	case err == nil:
		return State[V]{Phase: PhaseReady, Value: value}
	case c.isNotFound != nil && c.isNotFound(err):
		return State[V]{Phase: PhaseNotFound, Err: err}
	default:
		return State[V]{Phase: PhaseFailed, Err: err}
	}
}

// Reset は実行中の取得をキャンセルし、状態を idle に戻します
func (c *Container[K, V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	var zero K
	c.key = zero
	c.state = State[V]{Phase: PhaseIdle}
}

// Current は現在の状態を返します
func (c *Container[K, V]) Current() State[V] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Key は最後に Load されたキーを返します
func (c *Container[K, V]) Key() K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key
}
