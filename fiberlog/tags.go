package fiberlog

import (
	"os"
	authutils "quotation-backend/lib/utils/auth-utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagRequestID = "request_id"
	TagLatency   = "latency"
	TagStatus    = "status"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagIP        = "ip"
	TagUserAgent = "user_agent"
	TagBody      = "body"
	TagResBody   = "res_body"
	TagUserID    = "user_id"
)

// FuncTag значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

var pid = os.Getpid()

var tagFuncs = map[string]FuncTag{
	TagPid: func(c *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagRequestID: func(c *fiber.Ctx, d *data) interface{} {
		return c.GetRespHeader(fiber.HeaderXRequestID)
	},
	TagLatency: func(c *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagStatus: func(c *fiber.Ctx, d *data) interface{} {
		return c.Response().StatusCode()
	},
	TagMethod: func(c *fiber.Ctx, d *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, d *data) interface{} {
		return c.Path()
	},
	TagURL: func(c *fiber.Ctx, d *data) interface{} {
		return c.OriginalURL()
	},
	TagIP: func(c *fiber.Ctx, d *data) interface{} {
		return c.IP()
	},
	TagUserAgent: func(c *fiber.Ctx, d *data) interface{} {
		return c.Get(fiber.HeaderUserAgent)
	},
	TagBody: func(c *fiber.Ctx, d *data) interface{} {
		if isMultipart(c) {
			return ""
		}
		return string(c.Body())
	},
	TagResBody: func(c *fiber.Ctx, d *data) interface{} {
		if !isJSONResponse(c) {
			return ""
		}
		return string(c.Response().Body())
	},
	TagUserID: func(c *fiber.Ctx, d *data) interface{} {
		userID, _ := authutils.GetClaims(c)["sub"].(string)
		return userID
	},
}

// getFuncTagMap функции для тегов из конфига, неизвестные теги пропускаются
func getFuncTagMap(cfg Config) map[string]FuncTag {
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := tagFuncs[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func isMultipart(c *fiber.Ctx) bool {
	return len(c.Request().Header.MultipartFormBoundary()) > 0
}

func isJSONResponse(c *fiber.Ctx) bool {
	contentType := string(c.Response().Header.ContentType())
	return len(contentType) >= len(fiber.MIMEApplicationJSON) && contentType[:len(fiber.MIMEApplicationJSON)] == fiber.MIMEApplicationJSON
}
