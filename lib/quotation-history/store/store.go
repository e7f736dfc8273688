package quotationhistorystore

import (
	dbmodels "quotation-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.QuotationStatusChange) (id uint, err error)
	List(quotationID uint) (list []dbmodels.QuotationStatusChange, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.QuotationStatusChange) (id uint, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// List история по возрастанию времени
func (i impl) List(quotationID uint) (list []dbmodels.QuotationStatusChange, err error) {
	list = []dbmodels.QuotationStatusChange{}
	err = i.db.
		Where("quotation_id = ?", quotationID).
		Order("created_at ASC, id ASC").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return list, nil
		}
		return nil, err
	}
	return list, nil
}
