package quotationitemstore

import (
	dbmodels "quotation-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	List(quotationID uint) (list []dbmodels.QuotationItem, err error)
	ListPage(quotationID uint, page, size int) (list []dbmodels.QuotationItem, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) List(quotationID uint) (list []dbmodels.QuotationItem, err error) {
	list = []dbmodels.QuotationItem{}
	err = i.db.
		Where("quotation_id = ?", quotationID).
		Preload("Product").
		Order("id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListPage(quotationID uint, page, size int) (list []dbmodels.QuotationItem, rowCount int64, err error) {
	list = []dbmodels.QuotationItem{}
	tx := i.db.
		Model(&dbmodels.QuotationItem{}).
		Where("quotation_id = ?", quotationID)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Preload("Product").
		Order("id").
		Limit(size).
		Offset(page * size).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}
