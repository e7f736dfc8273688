package quotationworkflow

import (
	log "github.com/sirupsen/logrus"
)

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notifier итоговое сообщение пользователю, одно на вызов Confirm/Respond
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

// LogNotifier выводит сообщения через logrus
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(level NoticeLevel, message string) {
	logger := n.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	entry := logger.WithField("notice", level)
	if level == NoticeError {
		entry.Error(message)
		return
	}
	entry.Info(message)
}
