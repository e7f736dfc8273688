package authapimodels

import (
	"quotation-backend/models"
	usersapimodels "quotation-backend/models/api/users"
	"strings"

	"github.com/pkg/errors"
)

// TokenPair access токен и refresh токен, роль дублируется для клиента без разбора jwt
type TokenPair struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	Rol          models.UserRole `json:"rol"`
}

type LoginResponse struct {
	TokenPair
	Usuario usersapimodels.Profile `json:"usuario"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r RefreshRequest) Validate() error {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return errors.New("не указан refresh token")
	}
	return nil
}
