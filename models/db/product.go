package dbmodels

import catalogapimodels "quotation-backend/models/api/catalog"

type Product struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);index"`
	Description string    `gorm:"type:text"`
	Brand       string    `gorm:"type:varchar(150)"`
	ImageUrl    string    `gorm:"type:varchar(512)"`
	CategoryID  uint      `gorm:"index"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
}

func (r Product) ToModel() catalogapimodels.ProductView {
	result := catalogapimodels.ProductView{
		ID:          r.ID,
		Nombre:      r.Name,
		Descripcion: r.Description,
		Marca:       r.Brand,
		Imagen:      r.ImageUrl,
		CategoriaID: r.CategoryID,
	}
	if r.Category != nil {
		result.Categoria = r.Category.Name
	}
	return result
}
