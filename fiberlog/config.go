package fiberlog

import "github.com/sirupsen/logrus"

// Config настройки middleware
type Config struct {
	// Logger nil означает стандартный логгер logrus
	Logger *logrus.Logger
	Tags   []string
}

var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		TagRequestID,
	},
}
