package authutils

import (
	"quotation-backend/config"
	"quotation-backend/models"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

func GetToken(userID uint, name string, role models.UserRole) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name":   name,
		"sub":    strconv.FormatUint(uint64(userID), 10),
		"role":   string(role),
		"manage": role.CanManage(),
		"exp":    time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec)).Unix(),
		"iat":    time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

func GetRefreshToken(userID uint, name string) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name":    name,
		"sub":     strconv.FormatUint(uint64(userID), 10),
		"refresh": true,
		"exp":     time.Now().Add(time.Second * time.Duration(config.Conf.Auth.JWTRefreshExpireInSec)).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Conf.Auth.JWTSecret))
}

// ParseRefreshToken возвращает id пользователя из refresh токена
func ParseRefreshToken(tokenString string) (userID uint, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(config.Conf.Auth.JWTSecret), nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "некорректный refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("некорректный refresh token")
	}
	if isRefresh, _ := claims["refresh"].(bool); !isRefresh {
		return 0, errors.New("передан не refresh token")
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "некорректный идентификатор пользователя в токене")
	}
	return uint(id), nil
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	return token.Claims.(jwt.MapClaims)
}
