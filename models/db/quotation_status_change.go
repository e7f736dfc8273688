package dbmodels

import (
	"quotation-backend/models"
	quotationapimodels "quotation-backend/models/api/quotation"
)

// QuotationStatusChange запись истории, только добавляется
type QuotationStatusChange struct {
	BaseModel
	QuotationID    uint                   `gorm:"index"`
	PreviousStatus models.QuotationStatus `gorm:"type:varchar(20)"`
	NewStatus      models.QuotationStatus `gorm:"type:varchar(20)"`
	UserID         *uint
	UserName       string `gorm:"type:varchar(255)"`
	Observation    string `gorm:"type:text"`
}

func (r QuotationStatusChange) ToModel() quotationapimodels.HistoryView {
	return quotationapimodels.HistoryView{
		ID:             r.ID,
		EstadoAnterior: r.PreviousStatus,
		EstadoNuevo:    r.NewStatus,
		UsuarioNombre:  r.UserName,
		FechaCambio:    r.CreatedAt,
		Observacion:    r.Observation,
	}
}
