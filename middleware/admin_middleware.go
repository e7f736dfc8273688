package middleware

import (
	apimodels "quotation-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// ManagerRequired пропускает только ADMIN и SUPERADMIN
func ManagerRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).CanManage() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewCodeError(apimodels.CodeForbidden, "операция недоступна"))
		}
		return ctx.Next()
	}
}
