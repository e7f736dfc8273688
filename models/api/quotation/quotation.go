package quotationapimodels

import (
	"quotation-backend/models"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type CreateRequest struct {
	Cliente       string        `json:"cliente"`
	TipoDocumento string        `json:"tipoDocumento"`
	Documento     string        `json:"documento"`
	Email         string        `json:"email"`
	Telefono      string        `json:"telefono"`
	Comentario    string        `json:"comentario"`
	Productos     []ItemRequest `json:"productos"`
}

type ItemRequest struct {
	ProductoID uint `json:"productoId"`
	Cantidad   int  `json:"cantidad"`
}

func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.Cliente) == "" {
		return errors.New("не указан клиент")
	}
	if strings.TrimSpace(r.Email) == "" && strings.TrimSpace(r.Telefono) == "" {
		return errors.New("не указаны контактные данные")
	}
	if len(r.Productos) == 0 {
		return errors.New("не указаны товары")
	}
	for _, item := range r.Productos {
		if item.ProductoID == 0 {
			return errors.New("не указан товар")
		}
		if item.Cantidad <= 0 {
			return errors.Errorf("некорректное количество товара %v", item.ProductoID)
		}
	}
	return nil
}

type CreateResponse struct {
	ID     uint   `json:"id"`
	Numero string `json:"numero"`
}

type FullView struct {
	ID               uint                   `json:"id"`
	Numero           string                 `json:"numero"`
	Estado           models.QuotationStatus `json:"estado"`
	Observaciones    string                 `json:"observaciones"`
	Comentario       string                 `json:"comentario"`
	Creacion         time.Time              `json:"creacion"`
	CotizacionEnlace string                 `json:"cotizacionEnlace"`
	Cliente          string                 `json:"cliente"`
	TipoDocumento    string                 `json:"tipoDocumento"`
	Documento        string                 `json:"documento"`
	Email            string                 `json:"email"`
	Telefono         string                 `json:"telefono"`
	UsuarioID        uint                   `json:"usuarioId"`
}

type DashboardView struct {
	ID               uint                   `json:"id"`
	NumeroCotizacion string                 `json:"numeroCotizacion"`
	ClienteNombre    string                 `json:"clienteNombre"`
	ClienteDocumento string                 `json:"clienteDocumento"`
	Creacion         time.Time              `json:"creacion"`
	Comentario       string                 `json:"comentario"`
	Estado           models.QuotationStatus `json:"estado"`
	Observaciones    string                 `json:"observaciones"`
}

type ItemView struct {
	ID         uint   `json:"id"`
	ProductoID uint   `json:"productoId"`
	Nombre     string `json:"nombre"`
	Marca      string `json:"marca,omitempty"`
	Imagen     string `json:"imagen,omitempty"`
	Cantidad   int    `json:"cantidad"`
}

type HistoryView struct {
	ID             uint                   `json:"id"`
	EstadoAnterior models.QuotationStatus `json:"estadoAnterior"`
	EstadoNuevo    models.QuotationStatus `json:"estadoNuevo"`
	UsuarioNombre  string                 `json:"usuarioNombre"`
	FechaCambio    time.Time              `json:"fechaCambio"`
	Observacion    string                 `json:"observacion"`
}

type StatsView struct {
	Total       int64                            `json:"total"`
	PorEstado   map[models.QuotationStatus]int64 `json:"porEstado"`
	MesActual   int64                            `json:"mesActual"`
	MesAnterior int64                            `json:"mesAnterior"`
}
