package apiv1

import (
	"quotation-backend/controllers"
	producthandler "quotation-backend/lib/catalog/product"
	apimodels "quotation-backend/models/api"
	catalogapimodels "quotation-backend/models/api/catalog"

	"github.com/gofiber/fiber/v2"
)

type productApiController struct {
	controllers.BaseAPIController
}

// InitProductPublicRouters просмотр каталога без авторизации
func InitProductPublicRouters(app *fiber.App) {
	controller := productApiController{}
	app.Route("producto", func(router fiber.Router) {
		router.Get("paginated", controller.list)
		router.Get("dashboard-search", controller.list)
		router.Get(":id<int>", controller.get)
	})
}

func InitProductApiRouters(app *fiber.App) {
	controller := productApiController{}
	app.Route("producto", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("dashboard-quantity", controller.quantity)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Каталог товаров
// @Tags Каталог
// @Param   busqueda          	query   string  	false        "строка поиска"
// @Param   categoria          	query   int  	false        "ID категории"
// @Param   page          		query   int  	false        "страница с 0"
// @Param   size          		query   int  	false        "размер страницы"
// @Success 200 {object} apimodels.Response{data=apimodels.Page[catalogapimodels.ProductView]}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/producto/paginated [get]
// @router /api/v1/producto/dashboard-search [get]
func (c *productApiController) list(ctx *fiber.Ctx) error {
	var filter catalogapimodels.ProductFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры поиска"))
	}
	page, size, err := c.GetPage(ctx, defaultPageSize)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := producthandler.Instance.List(filter, page, size)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения каталога товаров")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Товар по ИД
// @Tags Каталог
// @Param   id          		path    int  	true         "ID товара"
// @Success 200 {object} apimodels.Response{data=catalogapimodels.ProductView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/producto/{id} [get]
func (c *productApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := producthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения товара")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание товара
// @Tags Каталог
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 catalogapimodels.ProductRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/producto [post]
func (c *productApiController) create(ctx *fiber.Ctx) error {
	var payload catalogapimodels.ProductRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, hMsg, err := producthandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания товара")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Количество товаров
// @Tags Каталог
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/producto/dashboard-quantity [get]
func (c *productApiController) quantity(ctx *fiber.Ctx) error {
	resp, err := producthandler.Instance.Quantity()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подсчета товаров")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление товара
// @Tags Каталог
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID товара"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/producto/{id} [delete]
func (c *productApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = producthandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления товара")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
