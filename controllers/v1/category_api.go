package apiv1

import (
	"quotation-backend/controllers"
	categoryhandler "quotation-backend/lib/catalog/category"
	apimodels "quotation-backend/models/api"
	catalogapimodels "quotation-backend/models/api/catalog"

	"github.com/gofiber/fiber/v2"
)

type categoryApiController struct {
	controllers.BaseAPIController
}

func InitCategoryPublicRouters(app *fiber.App) {
	controller := categoryApiController{}
	app.Route("categoria", func(router fiber.Router) {
		router.Get("", controller.list)
	})
}

func InitCategoryApiRouters(app *fiber.App) {
	controller := categoryApiController{}
	app.Route("categoria", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Put(":id", controller.update)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Список категорий
// @Tags Каталог
// @Success 200 {object} apimodels.Response{data=[]catalogapimodels.CategoryView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categoria [get]
func (c *categoryApiController) list(ctx *fiber.Ctx) error {
	resp, err := categoryhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка категорий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание категории
// @Tags Каталог
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 catalogapimodels.CategoryRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categoria [post]
func (c *categoryApiController) create(ctx *fiber.Ctx) error {
	var payload catalogapimodels.CategoryRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := categoryhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания категории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Изменение категории
// @Tags Каталог
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID категории"
// @Param	body body	 catalogapimodels.CategoryRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categoria/{id} [put]
func (c *categoryApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload catalogapimodels.CategoryRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = categoryhandler.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения категории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление категории
// @Tags Каталог
// @Description Категорию с товарами удалить нельзя, код CATEGORY_HAS_PRODUCTS
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID категории"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/categoria/{id} [delete]
func (c *categoryApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = categoryhandler.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления категории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
