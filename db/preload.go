package db

import (
	"quotation-backend/config"
	usersstore "quotation-backend/lib/users/store"
	authutils "quotation-backend/lib/utils/auth-utils"
	"quotation-backend/models"
	dbmodels "quotation-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addSuperAdmin()
}

func addSuperAdmin() {
	if config.Conf.Admin.Email == "" {
		log.Warn("суперадмин не добавлен, отсутвует настройка ADMIN_EMAIL")
		return
	}
	userStore := usersstore.NewInstance(DB)
	existedRec, err := userStore.FindByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("ошибка добавления суперадмина")
		return
	}
	if existedRec != nil {
		return
	}
	password, err := authutils.HashPassword(config.Conf.Admin.Password)
	if err != nil {
		log.WithError(err).Error("ошибка добавления суперадмина")
		return
	}
	rec := dbmodels.User{
		IsActive:  true,
		Role:      models.UserRoleSuperAdmin,
		Password:  password,
		FirstName: config.Conf.Admin.FirstName,
		LastName:  config.Conf.Admin.LastName,
		Email:     config.Conf.Admin.Email,
	}
	_, err = userStore.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления суперадмина")
	}
}
