package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "quotation-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.Category{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Category")
	}
	if err := DB.AutoMigrate(&dbmodels.Product{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Product")
	}
	if err := DB.AutoMigrate(&dbmodels.Quotation{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Quotation")
	}
	if err := DB.AutoMigrate(&dbmodels.QuotationItem{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры QuotationItem")
	}
	if err := DB.AutoMigrate(&dbmodels.QuotationStatusChange{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры QuotationStatusChange")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
