package usershandler

import (
	"quotation-backend/db"
	usersstore "quotation-backend/lib/users/store"
	authutils "quotation-backend/lib/utils/auth-utils"
	"quotation-backend/models"
	apimodels "quotation-backend/models/api"
	authapimodels "quotation-backend/models/api/auth"
	usersapimodels "quotation-backend/models/api/users"
	dbmodels "quotation-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Register(data usersapimodels.RegisterRequest) (resp authapimodels.LoginResponse, hMsg string, err error)
	Login(data authapimodels.LoginRequest) (resp authapimodels.LoginResponse, hMsg string, err error)
	RefreshToken(refreshToken string) (resp authapimodels.TokenPair, hMsg string, err error)
	GetProfile(actorID uint, actorRole models.UserRole, userID uint) (usersapimodels.Profile, error)
	List(search string, page, size int) (apimodels.Page[usersapimodels.DashboardView], error)
	Quantity() (int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

const badCredentials = "неверная почта или пароль"

func (i impl) Register(data usersapimodels.RegisterRequest) (resp authapimodels.LoginResponse, hMsg string, err error) {
	logger := log.WithField("email", data.Email)
	exist, err := i.store.FindByEmail(data.Email)
	if err != nil {
		return resp, "", errors.Wrap(err, "ошибка поиска пользователя по почте")
	}
	if exist != nil {
		return resp, "пользователь с такой почтой уже зарегистрирован", nil
	}
	password, err := authutils.HashPassword(data.Password)
	if err != nil {
		return resp, "", err
	}
	rec := dbmodels.User{
		Password:     password,
		FirstName:    strings.TrimSpace(data.Nombre),
		LastName:     strings.TrimSpace(data.Apellido),
		Email:        data.Email,
		PhoneNumber:  strings.TrimSpace(data.Telefono),
		DocumentType: strings.TrimSpace(data.TipoDocumento),
		Document:     strings.TrimSpace(data.Documento),
		IsActive:     true,
		Role:         models.UserRoleClient,
	}
	rec.ID, err = i.store.Create(rec)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return resp, "", apimodels.ErrDuplicate("пользователь с такой почтой уже зарегистрирован")
		}
		return resp, "", errors.Wrap(err, "ошибка создания пользователя")
	}
	logger.WithField("user_id", rec.ID).Info("зарегистрирован пользователь")
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))
	return i.issueTokens(rec)
}

func (i impl) Login(data authapimodels.LoginRequest) (resp authapimodels.LoginResponse, hMsg string, err error) {
	logger := log.WithField("email", data.Email)
	user, err := i.store.FindByEmail(data.Email)
	if err != nil {
		return resp, "", errors.Wrap(err, "ошибка поиска пользователя по почте")
	}
	if user == nil {
		logger.Debug("пользователь с такой почтой не найден")
		return resp, badCredentials, nil
	}
	if !authutils.CheckPassword(user.Password, data.Password) {
		logger.Debug("пользователь не прошел проверку пароля")
		return resp, badCredentials, nil
	}
	if !user.IsActive {
		return resp, "пользователь заблокирован", nil
	}
	resp, hMsg, err = i.issueTokens(*user)
	if err != nil || hMsg != "" {
		return resp, hMsg, err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"last_login": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка обновления даты последнего входа")
	}
	return resp, "", nil
}

func (i impl) RefreshToken(refreshToken string) (resp authapimodels.TokenPair, hMsg string, err error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		log.WithError(err).Debug("refresh token отклонен")
		return resp, "недействительный refresh token", nil
	}
	user, err := i.store.GetByID(userID)
	if err != nil {
		return resp, "", errors.Wrap(err, "ошибка получения пользователя")
	}
	if user == nil || !user.IsActive {
		return resp, "недействительный refresh token", nil
	}
	loginResp, hMsg, err := i.issueTokens(*user)
	return loginResp.TokenPair, hMsg, err
}

func (i impl) GetProfile(actorID uint, actorRole models.UserRole, userID uint) (usersapimodels.Profile, error) {
	if actorID != userID && !actorRole.CanManage() {
		return usersapimodels.Profile{}, apimodels.ErrForbidden("нет доступа к профилю пользователя")
	}
	user, err := i.store.GetByID(userID)
	if err != nil {
		return usersapimodels.Profile{}, errors.Wrap(err, "ошибка получения пользователя")
	}
	if user == nil {
		return usersapimodels.Profile{}, apimodels.ErrNotFound("пользователь не найден")
	}
	return user.ToProfile(), nil
}

func (i impl) List(search string, page, size int) (result apimodels.Page[usersapimodels.DashboardView], err error) {
	list, rowCount, err := i.store.List(search, page, size)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения списка пользователей")
	}
	content := make([]usersapimodels.DashboardView, 0, len(list))
	for _, rec := range list {
		content = append(content, rec.ToDashboard())
	}
	return apimodels.NewPage(content, page, size, rowCount), nil
}

func (i impl) Quantity() (int64, error) {
	return i.store.Count()
}

func (i impl) issueTokens(user dbmodels.User) (resp authapimodels.LoginResponse, hMsg string, err error) {
	resp.Token, err = authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		return resp, "", errors.Wrap(err, "ошибка генерации JWT")
	}
	resp.RefreshToken, err = authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return resp, "", errors.Wrap(err, "ошибка генерации refresh JWT")
	}
	resp.Rol = user.Role
	resp.Usuario = user.ToProfile()
	return resp, "", nil
}
