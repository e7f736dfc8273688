package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(workerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    workerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run запускает jobFunc периодически до завершения ctx
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context) error) {
	logger := i.GetLogger()
	timer := time.NewTimer(i.firstRunDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-timer.C:
			i.runJob(ctx, logger, jobFunc)
			timer.Reset(i.runInterval)
		}
	}
}

func (i BaseImpl) runJob(ctx context.Context, logger *log.Entry, jobFunc func(ctx context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	start := time.Now()
	if err := jobFunc(ctx); err != nil {
		logger.WithError(err).Error("Задача завершилась с ошибкой")
		return
	}
	logger.WithField("duration", time.Since(start).String()).Debug("Задача выполнена")
}
