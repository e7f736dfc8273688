package quotationstore

import (
	"quotation-backend/lib/utils/helpers"
	"quotation-backend/models"
	dbmodels "quotation-backend/models/db"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Quotation) (id uint, number string, err error)
	GetByID(id uint) (rec *dbmodels.Quotation, err error)
	GetForUpdate(id uint) (rec *dbmodels.Quotation, err error)
	Update(id uint, updMap map[string]interface{}) error
	List(filter Filter) (list []dbmodels.Quotation, rowCount int64, err error)
	ListForExport(search string) (list []dbmodels.Quotation, err error)
	ListByStatusBefore(status models.QuotationStatus, before time.Time) (list []dbmodels.Quotation, err error)
	Count() (int64, error)
	CountByStatus() (map[models.QuotationStatus]int64, error)
	CountCreatedBetween(from, to time.Time) (int64, error)
}

type Filter struct {
	UserID uint
	Search string
	Page   int
	Size   int
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Create сохраняет котировку вместе с позициями и присваивает номер.
// Вызывать внутри транзакции.
func (i impl) Create(rec dbmodels.Quotation) (id uint, number string, err error) {
	rec.History = nil
	// временное уникальное значение до получения id
	rec.Number = uuid.NewString()
	err = i.db.Save(&rec).Error
	if err != nil {
		return 0, "", err
	}
	number = dbmodels.QuotationNumber(rec.ID)
	err = i.db.
		Model(&dbmodels.Quotation{}).
		Where("id = ?", rec.ID).
		Update("number", number).
		Error
	if err != nil {
		return 0, "", errors.Wrap(err, "ошибка присвоения номера котировки")
	}
	return rec.ID, number, nil
}

func (i impl) GetByID(id uint) (*dbmodels.Quotation, error) {
	rec := dbmodels.Quotation{}
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

func (i impl) GetForUpdate(id uint) (*dbmodels.Quotation, error) {
	rec := dbmodels.Quotation{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
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

func (i impl) Update(id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Quotation{}).
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

func (i impl) List(filter Filter) (list []dbmodels.Quotation, rowCount int64, err error) {
	list = []dbmodels.Quotation{}
	tx := i.filtered(filter.UserID, filter.Search)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("created_at DESC").
		Limit(filter.Size).
		Offset(filter.Page * filter.Size).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListForExport(search string) (list []dbmodels.Quotation, err error) {
	list = []dbmodels.Quotation{}
	err = i.filtered(0, search).
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByStatusBefore(status models.QuotationStatus, before time.Time) (list []dbmodels.Quotation, err error) {
	list = []dbmodels.Quotation{}
	err = i.db.
		Where("status = ?", status).
		Where("created_at < ?", before).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Count() (rowCount int64, err error) {
	err = i.db.Model(&dbmodels.Quotation{}).Count(&rowCount).Error
	return rowCount, err
}

func (i impl) CountByStatus() (map[models.QuotationStatus]int64, error) {
	type statusCount struct {
		Status models.QuotationStatus
		Total  int64
	}
	rows := []statusCount{}
	err := i.db.
		Model(&dbmodels.Quotation{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := make(map[models.QuotationStatus]int64, len(models.QuotationStatuses))
	for _, status := range models.QuotationStatuses {
		result[status] = 0
	}
	for _, row := range rows {
		result[row.Status] = row.Total
	}
	return result, nil
}

func (i impl) CountCreatedBetween(from, to time.Time) (rowCount int64, err error) {
	err = i.db.
		Model(&dbmodels.Quotation{}).
		Where("created_at >= ?", from).
		Where("created_at <= ?", to).
		Count(&rowCount).
		Error
	return rowCount, err
}

func (i impl) filtered(userID uint, search string) *gorm.DB {
	tx := i.db.Model(&dbmodels.Quotation{})
	if userID != 0 {
		tx = tx.Where("user_id = ?", userID)
	}
	if like := helpers.LikePattern(search); like != "" {
		tx = tx.Where("number ILIKE ? OR client_name ILIKE ? OR document ILIKE ? OR status ILIKE ?",
			like, like, like, like)
	}
	return tx
}
