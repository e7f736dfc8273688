package categoryhandler

import (
	"fmt"
	"net/http"
	"quotation-backend/db"
	categorystore "quotation-backend/lib/catalog/category/store"
	apimodels "quotation-backend/models/api"
	catalogapimodels "quotation-backend/models/api/catalog"
	dbmodels "quotation-backend/models/db"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(data catalogapimodels.CategoryRequest) (id uint, err error)
	Update(id uint, data catalogapimodels.CategoryRequest) error
	Delete(id uint) error
	List() ([]catalogapimodels.CategoryView, error)
	ResetCache()
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: categorystore.NewInstance(db.DB),
		cache: cache.New(listCacheTTL, 2*listCacheTTL),
	}
}

const (
	listCacheKey = "category-list"
	listCacheTTL = time.Minute
)

type impl struct {
	store categorystore.Provider
	cache *cache.Cache
}

// ResetCache список категорий содержит счетчики товаров, сбрасывается при любом изменении каталога
func (i impl) ResetCache() {
	if i.cache != nil {
		i.cache.Delete(listCacheKey)
	}
}

func (i impl) Create(data catalogapimodels.CategoryRequest) (id uint, err error) {
	rec := dbmodels.Category{
		Name:        strings.TrimSpace(data.Nombre),
		Description: strings.TrimSpace(data.Descripcion),
	}
	id, err = i.store.Create(rec)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, apimodels.ErrDuplicate("категория с таким наименованием уже существует")
		}
		return 0, errors.Wrap(err, "ошибка создания категории")
	}
	i.ResetCache()
	log.WithField("category_id", id).Info("создана категория")
	return id, nil
}

func (i impl) Update(id uint, data catalogapimodels.CategoryRequest) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения категории")
	}
	if rec == nil {
		return apimodels.ErrNotFound("категория не найдена")
	}
	err = i.store.Update(id, map[string]interface{}{
		"name":        strings.TrimSpace(data.Nombre),
		"description": strings.TrimSpace(data.Descripcion),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apimodels.ErrDuplicate("категория с таким наименованием уже существует")
		}
		return errors.Wrap(err, "ошибка обновления категории")
	}
	i.ResetCache()
	return nil
}

// Delete категорию с товарами удалить нельзя
func (i impl) Delete(id uint) error {
	logger := log.WithField("category_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения категории")
	}
	if rec == nil {
		return apimodels.ErrNotFound("категория не найдена")
	}
	count, err := i.store.ProductCount(id)
	if err != nil {
		return errors.Wrap(err, "ошибка подсчета товаров категории")
	}
	if count > 0 {
		logger.WithField("product_count", count).Info("удаление категории отклонено, есть товары")
		return apimodels.NewCodedError(http.StatusConflict, apimodels.CodeCategoryHasProducts,
			fmt.Sprintf("категория содержит товары (%v), сначала удалите или перенесите их", count))
	}
	err = i.store.Delete(id)
	if err != nil {
		return errors.Wrap(err, "ошибка удаления категории")
	}
	i.ResetCache()
	logger.Info("удалена категория")
	return nil
}

func (i impl) List() ([]catalogapimodels.CategoryView, error) {
	if i.cache != nil {
		if cached, ok := i.cache.Get(listCacheKey); ok {
			return cached.([]catalogapimodels.CategoryView), nil
		}
	}
	list, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка категорий")
	}
	result := make([]catalogapimodels.CategoryView, 0, len(list))
	for _, rec := range list {
		count, err := i.store.ProductCount(rec.ID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка подсчета товаров категории")
		}
		result = append(result, rec.ToModel(count))
	}
	if i.cache != nil {
		i.cache.SetDefault(listCacheKey, result)
	}
	return result, nil
}
