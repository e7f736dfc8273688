// Package debounce поиск с задержкой: каждый ввод перезапускает таймер, запрос уходит
// только по последнему вводу, устаревшие ответы отбрасываются.
package debounce

import (
	"context"
	"sync"
	"time"
)

const (
	MinDelay     = 350 * time.Millisecond
	MaxDelay     = 400 * time.Millisecond
	DefaultDelay = MinDelay
)

type SearchFunc[T any] func(ctx context.Context, query string) (T, error)

type ResultFunc[T any] func(query string, result T, err error)

type Search[T any] struct {
	delay    time.Duration
	search   SearchFunc[T]
	onResult ResultFunc[T]

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	cancel     context.CancelFunc
}

// New задержка вне диапазона 350-400 мс приводится к ближайшей границе
func New[T any](delay time.Duration, search SearchFunc[T], onResult ResultFunc[T]) *Search[T] {
	return &Search[T]{
		delay:    ClampDelay(delay),
		search:   search,
		onResult: onResult,
	}
}

func ClampDelay(delay time.Duration) time.Duration {
	if delay <= 0 {
		return DefaultDelay
	}
	if delay < MinDelay {
		return MinDelay
	}
	if delay > MaxDelay {
		return MaxDelay
	}
	return delay
}

// Input новый ввод: предыдущий таймер останавливается, запрос по старому вводу отменяется
func (s *Search[T]) Input(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.stopLocked()
	generation := s.generation
	s.timer = time.AfterFunc(s.delay, func() {
		s.fire(ctx, query, generation)
	})
}

// Stop отмена ожидающего таймера и запроса в полете
func (s *Search[T]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.stopLocked()
}

func (s *Search[T]) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Search[T]) fire(parent context.Context, query string, generation uint64) {
	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.timer = nil
	s.mu.Unlock()

	result, err := s.search(ctx, query)

	s.mu.Lock()
	current := generation == s.generation
	if current {
		s.cancel = nil
	}
	s.mu.Unlock()
	cancel()
	if !current {
		return
	}
	s.onResult(query, result, err)
}
