package apiv1

import (
	"fmt"
	"io"
	"quotation-backend/controllers"
	quotationhandler "quotation-backend/lib/quotation"
	"quotation-backend/middleware"
	apimodels "quotation-backend/models/api"
	quotationapimodels "quotation-backend/models/api/quotation"
	"time"

	"github.com/gofiber/fiber/v2"
)

type quotationApiController struct {
	controllers.BaseAPIController
}

const (
	defaultPageSize      = 10
	defaultItemsPageSize = 2
)

func InitQuotationApiRouters(app *fiber.App) {
	controller := quotationApiController{}
	app.Route("cotizacion", func(router fiber.Router) {
		router.Post("create", controller.create)
		router.Get("by-usuario-paginated/:id", controller.listByUser)
		router.Get("dashboard-paginated", controller.dashboardList)
		router.Get("dashboard-search", controller.dashboardSearch)
		router.Get("dashboard-quantity", controller.quantity)
		router.Get("dashboard-stats", controller.stats)
		router.Get("export", controller.export)
		router.Put("observaciones/:id", controller.updateObservation)
		router.Put("change-state/:id", controller.changeState)
		router.Post("create_pdf/:id", controller.uploadPdf)
		router.Get("productos-por-cotizacion/:id", controller.items)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("pdf", controller.downloadPdf)
			idRoute.Get("productos", controller.itemsPage)
			idRoute.Get("historial", controller.history)
			idRoute.Get("resumen", controller.summary)
		})
	})
}

func (c *quotationApiController) actor(ctx *fiber.Ctx) quotationhandler.Actor {
	return quotationhandler.Actor{
		ID:   middleware.GetUserIDUint(ctx),
		Name: middleware.GetUserName(ctx),
		Role: middleware.GetUserRole(ctx),
	}
}

// @Summary Создание котировки
// @Tags Котировка
// @Description Оформление котировки клиентом, статус PENDIENTE
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 quotationapimodels.CreateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=quotationapimodels.CreateResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/create [post]
func (c *quotationApiController) create(ctx *fiber.Ctx) error {
	var payload quotationapimodels.CreateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := quotationhandler.Instance.Create(c.actor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания котировки")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Котировки пользователя
// @Tags Котировка
// @Description Список котировок пользователя постранично
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID пользователя"
// @Param   page          		query   int  	false        "страница с 0"
// @Param   size          		query   int  	false        "размер страницы"
// @Success 200 {object} apimodels.Response{data=apimodels.Page[quotationapimodels.FullView]}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/by-usuario-paginated/{id} [get]
func (c *quotationApiController) listByUser(ctx *fiber.Ctx) error {
	userID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	page, size, err := c.GetPage(ctx, defaultPageSize)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := quotationhandler.Instance.ListByUser(c.actor(ctx), userID, page, size)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка котировок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список котировок для панели
// @Tags Котировка
// @Description Все котировки постранично, новые сверху
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page          		query   int  	false        "страница с 0"
// @Param   size          		query   int  	false        "размер страницы"
// @Success 200 {object} apimodels.Response{data=apimodels.Page[quotationapimodels.DashboardView]}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/dashboard-paginated [get]
func (c *quotationApiController) dashboardList(ctx *fiber.Ctx) error {
	page, size, err := c.GetPage(ctx, defaultPageSize)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := quotationhandler.Instance.ListDashboard("", page, size)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка котировок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Поиск котировок
// @Tags Котировка
// @Description Поиск по номеру, клиенту, документу и статусу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   busqueda          	query   string  	false        "строка поиска"
// @Param   page          		query   int  	false        "страница с 0"
// @Param   size          		query   int  	false        "размер страницы"
// @Success 200 {object} apimodels.Response{data=apimodels.Page[quotationapimodels.DashboardView]}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/dashboard-search [get]
func (c *quotationApiController) dashboardSearch(ctx *fiber.Ctx) error {
	var filter quotationapimodels.SearchFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры поиска"))
	}
	page, size, err := c.GetPage(ctx, defaultPageSize)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := quotationhandler.Instance.ListDashboard(filter.Busqueda, page, size)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка поиска котировок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Количество котировок
// @Tags Котировка
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/dashboard-quantity [get]
func (c *quotationApiController) quantity(ctx *fiber.Ctx) error {
	resp, err := quotationhandler.Instance.Quantity()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подсчета котировок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Статистика котировок
// @Tags Котировка
// @Description Количество по статусам, за текущий и прошлый месяц
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=quotationapimodels.StatsView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/dashboard-stats [get]
func (c *quotationApiController) stats(ctx *fiber.Ctx) error {
	resp, err := quotationhandler.Instance.Stats()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статистики котировок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузка котировок в Excel
// @Tags Котировка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   busqueda          	query   string  	false        "строка поиска"
// @Success 200
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/export [get]
func (c *quotationApiController) export(ctx *fiber.Ctx) error {
	var filter quotationapimodels.SearchFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры поиска"))
	}
	data, err := quotationhandler.Instance.Export(filter.Busqueda)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки котировок в Excel")
	}
	fileName := fmt.Sprintf("cotizaciones-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Обновление примечания
// @Tags Котировка
// @Description Примечание персонала, пустое значение очищает его
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID котировки"
// @Param	body body	 quotationapimodels.ObservationRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=quotationapimodels.ObservationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/observaciones/{id} [put]
func (c *quotationApiController) updateObservation(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload quotationapimodels.ObservationRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := quotationhandler.Instance.UpdateObservation(ctx.UserContext(), c.actor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления примечания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Смена статуса
// @Tags Котировка
// @Description Менеджер меняет статус по таблице переходов, клиент может только принять или отклонить отправленную котировку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID котировки"
// @Param	body body	 quotationapimodels.ChangeStateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=quotationapimodels.ChangeStateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/change-state/{id} [put]
func (c *quotationApiController) changeState(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload quotationapimodels.ChangeStateRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewCodeError(apimodels.CodeValidation, err.Error()))
	}
	resp, err := quotationhandler.Instance.ChangeState(ctx.UserContext(), c.actor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса котировки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Загрузка pdf котировки
// @Tags Котировка
// @Description Доступно после выхода из статуса PENDIENTE
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID котировки"
// @Param   archivo				formData	file 	true 	"pdf файл"
// @Success 200 {object} apimodels.Response{data=quotationapimodels.PdfView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/create_pdf/{id} [post]
func (c *quotationApiController) uploadPdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := ctx.FormFile("archivo")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewCodeError(apimodels.CodeValidation, "не передан файл archivo"))
	}
	buffer, err := file.Open()
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("Ошибка при получении файла pdf")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("Ошибка при загрузке файла pdf")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := quotationhandler.Instance.AttachPdf(ctx.UserContext(), c.actor(ctx), id, quotationhandler.PdfFile{
		Name:        file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Body:        fileBody,
	})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки pdf котировки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение по ИД
// @Tags Котировка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID котировки"
// @Success 200 {object} apimodels.Response{data=quotationapimodels.FullView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/{id} [get]
func (c *quotationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := quotationhandler.Instance.GetByID(c.actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения котировки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Скачать pdf котировки
// @Tags Котировка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID котировки"
// @Success 200
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/{id}/pdf [get]
func (c *quotationApiController) downloadPdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileName, body, err := quotationhandler.Instance.GetPdf(ctx.UserContext(), c.actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения pdf котировки")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `inline; filename="`+fileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Товары котировки
// @Tags Котировка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID котировки"
// @Success 200 {object} apimodels.Response{data=[]quotationapimodels.ItemView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/productos-por-cotizacion/{id} [get]
func (c *quotationApiController) items(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := quotationhandler.Instance.Items(c.actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения товаров котировки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Товары котировки постранично
// @Tags Котировка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID котировки"
// @Param   page          		query   int  	false        "страница с 0"
// @Param   size          		query   int  	false        "размер страницы, по умолчанию 2"
// @Success 200 {object} apimodels.Response{data=apimodels.Page[quotationapimodels.ItemView]}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/{id}/productos [get]
func (c *quotationApiController) itemsPage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	page, size, err := c.GetPage(ctx, defaultItemsPageSize)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := quotationhandler.Instance.ItemsPage(c.actor(ctx), id, page, size)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения товаров котировки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary История статусов
// @Tags Котировка
// @Description Записи в порядке изменения, старые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID котировки"
// @Success 200 {object} apimodels.Response{data=[]quotationapimodels.HistoryView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/{id}/historial [get]
func (c *quotationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := quotationhandler.Instance.History(c.actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории котировки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Сводка котировки в pdf
// @Tags Котировка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    int  	true         "ID котировки"
// @Success 200
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/cotizacion/{id}/resumen [get]
func (c *quotationApiController) summary(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileName, body, err := quotationhandler.Instance.Summary(c.actor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования сводки котировки")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}
