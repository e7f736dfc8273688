package middleware

import (
	"quotation-backend/lib/rbac"
	apimodels "quotation-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		userRole := GetUserRole(ctx)
		if userID == "" || !userRole.IsValid() {
			return rbacForbidden(ctx)
		}

		handler, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			log.
				WithField("user_id", userID).
				WithField("method", ctx.Method()).
				WithField("path", ctx.Path()).
				Debug("нет правила rbac для маршрута")
			return rbacForbidden(ctx)
		}

		if !handler(userID, userRole, ctx.Path()) {
			log.
				WithField("user_id", userID).
				WithField("role", userRole).
				WithField("path", ctx.Path()).
				Debug("доступ отклонен rbac")
			return rbacForbidden(ctx)
		}

		return ctx.Next()
	}
}

func rbacForbidden(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewCodeError(apimodels.CodeForbidden, "RBAC_FORBIDDEN"))
}
