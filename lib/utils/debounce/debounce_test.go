package debounce

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	queries []string
	results []string
	done    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 10)}
}

func (r *recorder) search(ctx context.Context, query string) (string, error) {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()
	return "result:" + query, nil
}

func (r *recorder) onResult(query string, result string, err error) {
	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) snapshot() ([]string, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.queries...), append([]string{}, r.results...)
}

func TestClampDelay(t *testing.T) {
	t.Run("границы задержки", func(t *testing.T) {
		require.Equal(t, DefaultDelay, ClampDelay(0))
		require.Equal(t, MinDelay, ClampDelay(10*time.Millisecond))
		require.Equal(t, MaxDelay, ClampDelay(time.Second))
		require.Equal(t, 380*time.Millisecond, ClampDelay(380*time.Millisecond))
	})
}

func TestSearch(t *testing.T) {
	t.Run("серия ввода дает один запрос по последнему значению", func(t *testing.T) {
		rec := newRecorder()
		s := New[string](MinDelay, rec.search, rec.onResult)
		for _, q := range []string{"a", "ac", "acm", "acme"} {
			s.Input(context.Background(), q)
			time.Sleep(20 * time.Millisecond)
		}
		select {
		case <-rec.done:
		case <-time.After(2 * time.Second):
			t.Fatal("поиск не выполнен")
		}
		time.Sleep(MaxDelay)
		queries, results := rec.snapshot()
		require.Equal(t, []string{"acme"}, queries)
		require.Equal(t, []string{"result:acme"}, results)
	})
	t.Run("устаревший ответ отбрасывается, запрос отменяется", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		var mu sync.Mutex
		var results []string
		var cancelled bool
		done := make(chan struct{}, 2)
		search := func(ctx context.Context, query string) (string, error) {
			if query == "old" {
				close(started)
				<-release
				mu.Lock()
				cancelled = ctx.Err() != nil
				mu.Unlock()
			}
			return query, nil
		}
		onResult := func(query, result string, err error) {
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			done <- struct{}{}
		}
		s := New[string](MinDelay, search, onResult)
		s.Input(context.Background(), "old")
		<-started
		s.Input(context.Background(), "new")
		close(release)
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("поиск не выполнен")
		}
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []string{"new"}, results)
		require.True(t, cancelled)
	})
	t.Run("остановка отменяет ожидающий поиск", func(t *testing.T) {
		rec := newRecorder()
		s := New[string](MinDelay, rec.search, rec.onResult)
		s.Input(context.Background(), "acme")
		s.Stop()
		time.Sleep(MaxDelay + 100*time.Millisecond)
		queries, results := rec.snapshot()
		require.Empty(t, queries)
		require.Empty(t, results)
	})
}
