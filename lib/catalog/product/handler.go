package producthandler

import (
	"quotation-backend/db"
	categoryhandler "quotation-backend/lib/catalog/category"
	categorystore "quotation-backend/lib/catalog/category/store"
	productstore "quotation-backend/lib/catalog/product/store"
	apimodels "quotation-backend/models/api"
	catalogapimodels "quotation-backend/models/api/catalog"
	dbmodels "quotation-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(data catalogapimodels.ProductRequest) (id uint, hMsg string, err error)
	GetByID(id uint) (catalogapimodels.ProductView, error)
	Delete(id uint) error
	List(filter catalogapimodels.ProductFilter, page, size int) (apimodels.Page[catalogapimodels.ProductView], error)
	Quantity() (int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         productstore.NewInstance(db.DB),
		categoryStore: categorystore.NewInstance(db.DB),
	}
}

type impl struct {
	store         productstore.Provider
	categoryStore categorystore.Provider
}

func (i impl) Create(data catalogapimodels.ProductRequest) (id uint, hMsg string, err error) {
	category, err := i.categoryStore.GetByID(data.CategoriaID)
	if err != nil {
		return 0, "", errors.Wrap(err, "ошибка получения категории")
	}
	if category == nil {
		return 0, "категория не найдена", nil
	}
	rec := dbmodels.Product{
		Name:        strings.TrimSpace(data.Nombre),
		Description: strings.TrimSpace(data.Descripcion),
		Brand:       strings.TrimSpace(data.Marca),
		ImageUrl:    strings.TrimSpace(data.Imagen),
		CategoryID:  category.ID,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return 0, "", errors.Wrap(err, "ошибка создания товара")
	}
	resetCategoryCache()
	log.WithField("product_id", id).Info("создан товар")
	return id, "", nil
}

func (i impl) GetByID(id uint) (catalogapimodels.ProductView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return catalogapimodels.ProductView{}, errors.Wrap(err, "ошибка получения товара")
	}
	if rec == nil {
		return catalogapimodels.ProductView{}, apimodels.ErrNotFound("товар не найден")
	}
	return rec.ToModel(), nil
}

// Delete позиции котировок хранят наименование товара, поэтому удаление их не затрагивает
func (i impl) Delete(id uint) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения товара")
	}
	if rec == nil {
		return apimodels.ErrNotFound("товар не найден")
	}
	err = i.store.Delete(id)
	if err != nil {
		return errors.Wrap(err, "ошибка удаления товара")
	}
	resetCategoryCache()
	log.WithField("product_id", id).Info("удален товар")
	return nil
}

func (i impl) List(filter catalogapimodels.ProductFilter, page, size int) (result apimodels.Page[catalogapimodels.ProductView], err error) {
	list, rowCount, err := i.store.List(productstore.Filter{
		Search:     filter.Busqueda,
		CategoryID: filter.Categoria,
		Page:       page,
		Size:       size,
	})
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения списка товаров")
	}
	content := make([]catalogapimodels.ProductView, 0, len(list))
	for _, rec := range list {
		content = append(content, rec.ToModel())
	}
	return apimodels.NewPage(content, page, size, rowCount), nil
}

func (i impl) Quantity() (int64, error) {
	return i.store.Count()
}

func resetCategoryCache() {
	if categoryhandler.Instance != nil {
		categoryhandler.Instance.ResetCache()
	}
}
