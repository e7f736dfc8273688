package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

var notifyClient = &http.Client{Timeout: 10 * time.Second}

// ErrNotify отправляет 5xx ответы в бот оповещений
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if addr == "" {
			return err
		}
		statusCode := c.Response().StatusCode()
		if statusCode < http.StatusInternalServerError {
			return err
		}

		var data struct {
			Message string `json:"message"`
		}
		body := c.Response().Body()
		if unmErr := json.Unmarshal(body, &data); unmErr != nil {
			log.WithError(unmErr).Debug("ответ не в формате api")
		}
		msg := data.Message
		if msg == "" {
			msg = string(body)
		}

		method := strings.Clone(c.Method())
		path := strings.Clone(c.OriginalURL())
		if r := c.Route(); r != nil {
			path = strings.Clone(r.Path)
		}

		go func() {
			payload := fmt.Sprintf(
				`{"code":%d,"method":%q,"path":%q,"error":%q}`,
				statusCode, method, path, msg)
			resp, reqErr := notifyClient.Post(addr, "application/json", strings.NewReader(payload))
			if reqErr != nil {
				log.WithError(reqErr).Warn("ошибка отправки оповещения об ошибке")
				return
			}
			resp.Body.Close()
		}()
		return err
	}
}
