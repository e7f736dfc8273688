package productstore

import (
	dbmodels "quotation-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Product) (id uint, err error)
	GetByID(id uint) (rec *dbmodels.Product, err error)
	GetByIDs(ids []uint) (list []dbmodels.Product, err error)
	Delete(id uint) error
	List(filter Filter) (list []dbmodels.Product, rowCount int64, err error)
	Count() (int64, error)
}

type Filter struct {
	Search     string
	CategoryID uint
	Page       int
	Size       int
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Product) (id uint, err error) {
	err = i.db.Omit(clause.Associations).Save(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.Product, error) {
	rec := dbmodels.Product{}
	err := i.db.
		Where("id = ?", id).
		Preload("Category").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByIDs(ids []uint) (list []dbmodels.Product, err error) {
	list = []dbmodels.Product{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.Where("id IN ?", ids).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id uint) error {
	return i.db.Delete(&dbmodels.Product{}, id).Error
}

func (i impl) List(filter Filter) (list []dbmodels.Product, rowCount int64, err error) {
	list = []dbmodels.Product{}
	tx := i.db.Model(&dbmodels.Product{})
	if filter.CategoryID != 0 {
		tx = tx.Where("category_id = ?", filter.CategoryID)
	}
	search := strings.TrimSpace(filter.Search)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", like, like)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Preload("Category").
		Order("name").
		Limit(filter.Size).
		Offset(filter.Page * filter.Size).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) Count() (rowCount int64, err error) {
	err = i.db.Model(&dbmodels.Product{}).Count(&rowCount).Error
	return rowCount, err
}
