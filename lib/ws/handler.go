package ws

import (
	wsclient "quotation-backend/lib/ws/client"
	connectionhub "quotation-backend/lib/ws/hub/connection-hub"
	"quotation-backend/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("userID", middleware.GetUserID(ctx))
		ctx.Locals("isManager", middleware.GetUserRole(ctx).CanManage())
		return ctx.Next()
	})
	app.Get("/", websocket.New(statusPushHandler))
}

// @Summary Пуши о смене статуса котировок
// @Tags Websocket
// @Description Владелец котировки и менеджеры получают событие QUOTATION_STATUS
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /ws [get]
func statusPushHandler(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	isManager, _ := c.Locals("isManager").(bool)
	connectionhub.Instance.AddClient(userID, isManager, c)
	defer connectionhub.Instance.DeleteClient(userID, c)
	wsclient.NewClient(userID, c).Dispatch()
}
