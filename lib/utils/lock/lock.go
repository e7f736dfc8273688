package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

const retryInterval = 20 * time.Millisecond

func QuotationKey(quotationID uint) string {
	return fmt.Sprintf("quotation:%v", quotationID)
}

// WithDelay выполняет safeCode под ключом, ожидая освобождения не дольше wait.
// success=false если ключ не освободился, при завершении контекста возвращается его ошибка
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	timeout := time.NewTimer(wait)
	defer timeout.Stop()
	for {
		if _, loaded := lockMap.LoadOrStore(key, struct{}{}); !loaded {
			break
		}
		select {
		case <-timeout.C:
			return false, nil
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}
