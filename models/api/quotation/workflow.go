package quotationapimodels

import (
	"quotation-backend/models"
	"strings"

	"github.com/pkg/errors"
)

type ObservationRequest struct {
	Observaciones string `json:"observaciones"`
}

func (r ObservationRequest) Validate() error {
	if len(r.Observaciones) > 4000 {
		return errors.New("слишком длинное примечание")
	}
	return nil
}

type ObservationView struct {
	ID            uint   `json:"id"`
	Observaciones string `json:"observaciones"`
}

type ChangeStateRequest struct {
	NuevoEstado models.QuotationStatus `json:"nuevoEstado"`
	Observacion string                 `json:"observacion"`
	UsuarioID   uint                   `json:"usuarioId"`
}

func (r ChangeStateRequest) Validate() error {
	if !r.NuevoEstado.IsValid() {
		return errors.Errorf("неизвестный статус: %v", r.NuevoEstado)
	}
	if len(strings.TrimSpace(r.Observacion)) > 4000 {
		return errors.New("слишком длинное примечание")
	}
	return nil
}

type ChangeStateView struct {
	ID             uint                   `json:"id"`
	EstadoAnterior models.QuotationStatus `json:"estadoAnterior"`
	EstadoNuevo    models.QuotationStatus `json:"estadoNuevo"`
	Observacion    string                 `json:"observacion"`
}

type PdfView struct {
	Archivo string `json:"archivo"`
}

type SearchFilter struct {
	Busqueda string `query:"busqueda"`
}
