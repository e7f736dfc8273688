package dbmodels

import quotationapimodels "quotation-backend/models/api/quotation"

type QuotationItem struct {
	BaseModel
	QuotationID uint     `gorm:"index"`
	ProductID   uint     `gorm:"index"`
	Product     *Product `gorm:"foreignKey:ProductID"`
	ProductName string   `gorm:"type:varchar(255)"`
	Quantity    int
}

func (r QuotationItem) ToModel() quotationapimodels.ItemView {
	result := quotationapimodels.ItemView{
		ID:         r.ID,
		ProductoID: r.ProductID,
		Nombre:     r.ProductName,
		Cantidad:   r.Quantity,
	}
	if r.Product != nil {
		result.Imagen = r.Product.ImageUrl
		result.Marca = r.Product.Brand
	}
	return result
}
