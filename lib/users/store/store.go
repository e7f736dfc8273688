package usersstore

import (
	"quotation-backend/models"
	dbmodels "quotation-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.User) (id uint, err error)
	GetByID(id uint) (rec *dbmodels.User, err error)
	FindByEmail(email string) (rec *dbmodels.User, err error)
	Update(id uint, updMap map[string]interface{}) error
	List(search string, page, size int) (list []dbmodels.User, rowCount int64, err error)
	Count() (int64, error)
	ListManagers() (list []dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (id uint, err error) {
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))
	err = i.db.Save(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) FindByEmail(email string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
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

func (i impl) Update(id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.User{}).
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

func (i impl) List(search string, page, size int) (list []dbmodels.User, rowCount int64, err error) {
	list = []dbmodels.User{}
	tx := i.db.Model(&dbmodels.User{})
	search = strings.TrimSpace(search)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR document LIKE ?",
			like, like, like, like)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("created_at DESC").
		Limit(size).
		Offset(page * size).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) Count() (rowCount int64, err error) {
	err = i.db.Model(&dbmodels.User{}).Count(&rowCount).Error
	return rowCount, err
}

func (i impl) ListManagers() (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	err = i.db.
		Where("role IN ?", []models.UserRole{models.UserRoleAdmin, models.UserRoleSuperAdmin}).
		Where("is_active = ?", true).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
