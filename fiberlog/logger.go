package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields, len(ftm))
	for k, ft := range ftm {
		value := ft(c, d)
		if strValue, ok := value.(string); ok {
			if strValue != "" {
				f[k] = strValue
			}
			continue
		}
		f[k] = value
	}
	return f
}

// New логирует каждый запрос, ответы со статусом >= 300 уровнем Warn
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		d := &data{
			pid:   pid,
			start: time.Now(),
		}
		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}
		if err != nil {
			// статус ответа выставляет обработчик ошибок fiber
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		var entry *log.Entry
		if cfg.Logger != nil {
			entry = cfg.Logger.WithFields(getLogrusFields(ftm, c, d))
		} else {
			entry = log.WithFields(getLogrusFields(ftm, c, d))
		}
		if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			entry.Warn(requestMessage)
		} else {
			entry.Info(requestMessage)
		}
		return err
	}
}

const requestMessage = "запрос api"
