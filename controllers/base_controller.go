package controllers

import (
	"quotation-backend/middleware"
	apimodels "quotation-backend/models/api"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (uint, error) {
	return c.GetUintParam(ctx, "id")
}

func (c *BaseAPIController) GetUintParam(ctx *fiber.Ctx, name string) (uint, error) {
	value, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	if err != nil || value == 0 {
		return 0, errors.Errorf("некорректный идентификатор: %v", ctx.Params(name))
	}
	return uint(value), nil
}

// GetPage параметры page/size из query, нумерация страниц с 0
func (c *BaseAPIController) GetPage(ctx *fiber.Ctx, defaultSize int) (page, size int, err error) {
	var pagination apimodels.Pagination
	if err = ctx.QueryParser(&pagination); err != nil {
		return 0, 0, errors.New("некорректные параметры страницы")
	}
	page, size = pagination.GetPage(defaultSize)
	return page, size, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError ошибки с кодом уходят клиенту как есть, остальные логируются и отдаются с 500 и общим сообщением
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	var coded apimodels.CodedError
	if errors.As(err, &coded) {
		logger.WithField("code", coded.Code).Debug(coded.Message)
		return ctx.Status(coded.HttpStatus).JSON(apimodels.NewCodeError(coded.Code, coded.Message))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewCodeError(apimodels.CodeInternal, msg))
}
