package categorystore

import (
	dbmodels "quotation-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Category) (id uint, err error)
	GetByID(id uint) (rec *dbmodels.Category, err error)
	Update(id uint, updMap map[string]interface{}) error
	Delete(id uint) error
	List() (list []dbmodels.Category, err error)
	ProductCount(id uint) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Category) (id uint, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.Category, error) {
	rec := dbmodels.Category{}
	err := i.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Category{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(id uint) error {
	return i.db.Delete(&dbmodels.Category{}, id).Error
}

func (i impl) List() (list []dbmodels.Category, err error) {
	list = []dbmodels.Category{}
	err = i.db.Order("name").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ProductCount(id uint) (rowCount int64, err error) {
	err = i.db.
		Model(&dbmodels.Product{}).
		Where("category_id = ?", id).
		Count(&rowCount).
		Error
	return rowCount, err
}
