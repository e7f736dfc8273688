package middleware

import (
	"quotation-backend/config"
	authutils "quotation-backend/lib/utils/auth-utils"
	"quotation-backend/models"
	apimodels "quotation-backend/models/api"
	"strconv"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewCodeError("UNAUTHORIZED", "требуется авторизация"))
		},
	})
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

func GetUserIDUint(ctx *fiber.Ctx) uint {
	id, err := strconv.ParseUint(GetUserID(ctx), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func GetUserName(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if name, ok := claims["name"].(string); ok {
		return name
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, ok := claims["role"].(string); ok && role != "" {
		return models.UserRole(role)
	}
	return ""
}
