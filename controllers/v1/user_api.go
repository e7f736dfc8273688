package apiv1

import (
	"quotation-backend/controllers"
	"quotation-backend/lib/rbac"
	usershandler "quotation-backend/lib/users"
	"quotation-backend/middleware"
	apimodels "quotation-backend/models/api"
	quotationapimodels "quotation-backend/models/api/quotation"

	"github.com/gofiber/fiber/v2"
)

type userApiController struct {
	controllers.BaseAPIController
}

func InitUserApiRouters(app *fiber.App) {
	controller := userApiController{}
	app.Route("usuario", func(router fiber.Router) {
		router.Get("permisos", controller.permissions)
		router.Get("dashboard-paginated", middleware.ManagerRequired(), controller.list)
		router.Get("dashboard-quantity", middleware.ManagerRequired(), controller.quantity)
		router.Get(":id", controller.get)
	})
}

// @Summary Права текущего пользователя
// @Tags Пользователи
// @Description Модули и разрешения по роли из токена
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=map[string][]string}
// @Failure 403
// @router /api/v1/usuario/permisos [get]
func (c *userApiController) permissions(ctx *fiber.Ctx) error {
	resp := rbac.Instance.GetPermissions(middleware.GetUserRole(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Профиль пользователя
// @Tags Пользователи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID пользователя"
// @Success 200 {object} apimodels.Response{data=usersapimodels.Profile}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/usuario/{id} [get]
func (c *userApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := usershandler.Instance.GetProfile(middleware.GetUserIDUint(ctx), middleware.GetUserRole(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения профиля пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список пользователей
// @Tags Пользователи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   busqueda          	query   string  	false        "строка поиска"
// @Param   page          		query   int  	false        "страница с 0"
// @Param   size          		query   int  	false        "размер страницы"
// @Success 200 {object} apimodels.Response{data=apimodels.Page[usersapimodels.DashboardView]}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/usuario/dashboard-paginated [get]
func (c *userApiController) list(ctx *fiber.Ctx) error {
	var filter quotationapimodels.SearchFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры поиска"))
	}
	page, size, err := c.GetPage(ctx, defaultPageSize)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := usershandler.Instance.List(filter.Busqueda, page, size)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка пользователей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Количество пользователей
// @Tags Пользователи
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/usuario/dashboard-quantity [get]
func (c *userApiController) quantity(ctx *fiber.Ctx) error {
	resp, err := usershandler.Instance.Quantity()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подсчета пользователей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
