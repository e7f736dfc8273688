// Package session данные вошедшего пользователя, которые явно передаются
// в каждый вызов клиентского ядра котировок.
package session

import (
	"quotation-backend/models"
	authapimodels "quotation-backend/models/api/auth"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

type Session struct {
	UserID   uint
	UserName string
	Role     models.UserRole
	Token    string
}

func (s Session) CanManage() bool {
	return s.Role.CanManage()
}

func (s Session) Validate() error {
	if s.Token == "" {
		return errors.New("сессия без токена")
	}
	if s.UserID == 0 {
		return errors.New("сессия без пользователя")
	}
	return nil
}

// FromLogin сессия по ответу /auth/login
func FromLogin(resp authapimodels.LoginResponse) Session {
	name := resp.Usuario.Nombre
	if resp.Usuario.Apellido != "" {
		name += " " + resp.Usuario.Apellido
	}
	return Session{
		UserID:   resp.Usuario.ID,
		UserName: name,
		Role:     resp.Usuario.Rol,
		Token:    resp.Token,
	}
}

// FromToken сессия по ранее выданному токену. Подпись проверяет бэкенд,
// здесь только читаются claims.
func FromToken(token string) (Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, errors.Wrap(err, "некорректный токен")
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return Session{}, errors.Errorf("некорректный идентификатор пользователя в токене: %v", sub)
	}
	if isRefresh, _ := claims["refresh"].(bool); isRefresh {
		return Session{}, errors.New("передан refresh token")
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	return Session{
		UserID:   uint(id),
		UserName: name,
		Role:     models.UserRole(role),
		Token:    token,
	}, nil
}
