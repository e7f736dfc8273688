package dbmodels

import (
	"fmt"
	"quotation-backend/models"
	quotationapimodels "quotation-backend/models/api/quotation"
)

type Quotation struct {
	BaseModel
	Number       string                 `gorm:"type:varchar(40);uniqueIndex"`
	Status       models.QuotationStatus `gorm:"type:varchar(20);index"`
	Observations string                 `gorm:"type:text"`
	Comment      string                 `gorm:"type:text"`
	PdfLink      string                 `gorm:"type:varchar(512)"`
	PdfObject    string                 `gorm:"type:varchar(512)"`
	UserID       uint                   `gorm:"index"`
	// снимок контактных данных на момент оформления
	ClientName   string `gorm:"type:varchar(255)"`
	DocumentType string `gorm:"type:varchar(20)"`
	Document     string `gorm:"type:varchar(30)"`
	Email        string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(20)"`

	Items   []QuotationItem         `gorm:"foreignKey:QuotationID"`
	History []QuotationStatusChange `gorm:"foreignKey:QuotationID"`
}

func QuotationNumber(id uint) string {
	return fmt.Sprintf("COT-%06d", id)
}

func (r Quotation) ToFull() quotationapimodels.FullView {
	return quotationapimodels.FullView{
		ID:               r.ID,
		Numero:           r.Number,
		Estado:           r.Status,
		Observaciones:    r.Observations,
		Comentario:       r.Comment,
		Creacion:         r.CreatedAt,
		CotizacionEnlace: r.PdfLink,
		Cliente:          r.ClientName,
		TipoDocumento:    r.DocumentType,
		Documento:        r.Document,
		Email:            r.Email,
		Telefono:         r.Phone,
		UsuarioID:        r.UserID,
	}
}

func (r Quotation) ToDashboard() quotationapimodels.DashboardView {
	return quotationapimodels.DashboardView{
		ID:               r.ID,
		NumeroCotizacion: r.Number,
		ClienteNombre:    r.ClientName,
		ClienteDocumento: r.Document,
		Creacion:         r.CreatedAt,
		Comentario:       r.Comment,
		Estado:           r.Status,
		Observaciones:    r.Observations,
	}
}
