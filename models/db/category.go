package dbmodels

import catalogapimodels "quotation-backend/models/api/catalog"

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(150);uniqueIndex"`
	Description string `gorm:"type:text"`
}

func (r Category) ToModel(productCount int64) catalogapimodels.CategoryView {
	return catalogapimodels.CategoryView{
		ID:                r.ID,
		Nombre:            r.Name,
		Descripcion:       r.Description,
		CantidadProductos: productCount,
	}
}
