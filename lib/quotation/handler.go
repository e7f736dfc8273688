package quotationhandler

import (
	"bytes"
	"context"
	"quotation-backend/config"
	"quotation-backend/db"
	productstore "quotation-backend/lib/catalog/product/store"
	pdfexport "quotation-backend/lib/export/pdf"
	xlsexport "quotation-backend/lib/export/xls"
	filestorage "quotation-backend/lib/file-storage"
	quotationhistorystore "quotation-backend/lib/quotation-history/store"
	quotationitemstore "quotation-backend/lib/quotation-items/store"
	quotationstore "quotation-backend/lib/quotation/store"
	"quotation-backend/lib/smtp"
	statuspolicy "quotation-backend/lib/status-policy"
	"quotation-backend/lib/utils/helpers"
	connectionhub "quotation-backend/lib/ws/hub/connection-hub"
	"quotation-backend/models"
	apimodels "quotation-backend/models/api"
	quotationapimodels "quotation-backend/models/api/quotation"
	dbmodels "quotation-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(actor Actor, data quotationapimodels.CreateRequest) (resp quotationapimodels.CreateResponse, hMsg string, err error)
	GetByID(actor Actor, id uint) (quotationapimodels.FullView, error)
	ListByUser(actor Actor, userID uint, page, size int) (apimodels.Page[quotationapimodels.FullView], error)
	ListDashboard(search string, page, size int) (apimodels.Page[quotationapimodels.DashboardView], error)
	Quantity() (int64, error)
	Stats() (quotationapimodels.StatsView, error)
	UpdateObservation(ctx context.Context, actor Actor, id uint, data quotationapimodels.ObservationRequest) (quotationapimodels.ObservationView, error)
	ChangeState(ctx context.Context, actor Actor, id uint, data quotationapimodels.ChangeStateRequest) (quotationapimodels.ChangeStateView, error)
	AttachPdf(ctx context.Context, actor Actor, id uint, file PdfFile) (quotationapimodels.PdfView, error)
	GetPdf(ctx context.Context, actor Actor, id uint) (fileName string, body []byte, err error)
	History(actor Actor, id uint) ([]quotationapimodels.HistoryView, error)
	Items(actor Actor, id uint) ([]quotationapimodels.ItemView, error)
	ItemsPage(actor Actor, id uint, page, size int) (apimodels.Page[quotationapimodels.ItemView], error)
	Export(search string) (*bytes.Buffer, error)
	Summary(actor Actor, id uint) (fileName string, body []byte, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        quotationstore.NewInstance(db.DB),
		itemStore:    quotationitemstore.NewInstance(db.DB),
		historyStore: quotationhistorystore.NewInstance(db.DB),
		productStore: productstore.NewInstance(db.DB),
		fileStorage:  filestorage.Instance,
		mail:         smtp.Instance,
		hub:          connectionhub.Instance,
		xls:          xlsexport.Instance,
		policy:       statuspolicy.NewDefault(),
		publicUrl:    config.Conf.App.PublicUrl,
		salesEmail:   config.Conf.Sales.Email,
		pdfMaxSize:   config.Conf.Workflow.PdfMaxSizeBytes,
	}
}

type impl struct {
	store        quotationstore.Provider
	itemStore    quotationitemstore.Provider
	historyStore quotationhistorystore.Provider
	productStore productstore.Provider
	fileStorage  filestorage.Provider
	mail         smtp.Provider
	hub          connectionhub.Provider
	xls          xlsexport.Provider
	policy       *statuspolicy.Policy
	publicUrl    string
	salesEmail   string
	pdfMaxSize   int64
}

// Actor пользователь, выполняющий запрос
type Actor struct {
	ID   uint
	Name string
	Role models.UserRole
}

func (a Actor) CanManage() bool {
	return a.Role.CanManage()
}

func (i impl) Create(actor Actor, data quotationapimodels.CreateRequest) (resp quotationapimodels.CreateResponse, hMsg string, err error) {
	logger := log.WithField("user_id", actor.ID)
	items := mergeItems(data.Productos)
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductoID)
	}
	products, err := i.productStore.GetByIDs(ids)
	if err != nil {
		return resp, "", errors.Wrap(err, "ошибка получения товаров")
	}
	productNames := make(map[uint]string, len(products))
	for _, product := range products {
		productNames[product.ID] = product.Name
	}
	rec := dbmodels.Quotation{
		Status:       models.QuotationPending,
		Comment:      strings.TrimSpace(data.Comentario),
		UserID:       actor.ID,
		ClientName:   strings.TrimSpace(data.Cliente),
		DocumentType: strings.TrimSpace(data.TipoDocumento),
		Document:     strings.TrimSpace(data.Documento),
		Email:        strings.TrimSpace(data.Email),
		Phone:        strings.TrimSpace(data.Telefono),
	}
	for _, item := range items {
		name, ok := productNames[item.ProductoID]
		if !ok {
			return resp, "товар не найден", nil
		}
		rec.Items = append(rec.Items, dbmodels.QuotationItem{
			ProductID:   item.ProductoID,
			ProductName: name,
			Quantity:    item.Cantidad,
		})
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		resp.ID, resp.Numero, err = quotationstore.NewInstance(tx).Create(rec)
		return err
	})
	if err != nil {
		return resp, "", errors.Wrap(err, "ошибка создания котировки")
	}
	rec.ID = resp.ID
	rec.Number = resp.Numero
	logger.
		WithField("quotation_id", resp.ID).
		WithField("number", resp.Numero).
		Info("создана котировка")
	go i.sendNewQuotationAlert(rec)
	return resp, "", nil
}

func (i impl) GetByID(actor Actor, id uint) (quotationapimodels.FullView, error) {
	rec, err := i.getAccessible(actor, id)
	if err != nil {
		return quotationapimodels.FullView{}, err
	}
	return rec.ToFull(), nil
}

func (i impl) ListByUser(actor Actor, userID uint, page, size int) (result apimodels.Page[quotationapimodels.FullView], err error) {
	if !actor.CanManage() && actor.ID != userID {
		return result, apimodels.ErrForbidden("нет доступа к котировкам пользователя")
	}
	list, rowCount, err := i.store.List(quotationstore.Filter{
		UserID: userID,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения списка котировок")
	}
	content := make([]quotationapimodels.FullView, 0, len(list))
	for _, rec := range list {
		content = append(content, rec.ToFull())
	}
	return apimodels.NewPage(content, page, size, rowCount), nil
}

func (i impl) ListDashboard(search string, page, size int) (result apimodels.Page[quotationapimodels.DashboardView], err error) {
	list, rowCount, err := i.store.List(quotationstore.Filter{
		Search: search,
		Page:   page,
		Size:   size,
	})
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения списка котировок")
	}
	content := make([]quotationapimodels.DashboardView, 0, len(list))
	for _, rec := range list {
		content = append(content, rec.ToDashboard())
	}
	return apimodels.NewPage(content, page, size, rowCount), nil
}

func (i impl) Quantity() (int64, error) {
	return i.store.Count()
}

func (i impl) Stats() (result quotationapimodels.StatsView, err error) {
	result.PorEstado, err = i.store.CountByStatus()
	if err != nil {
		return result, errors.Wrap(err, "ошибка подсчета котировок по статусам")
	}
	for _, count := range result.PorEstado {
		result.Total += count
	}
	now := time.Now()
	from, to := helpers.MonthRange(now)
	result.MesActual, err = i.store.CountCreatedBetween(from, to)
	if err != nil {
		return result, errors.Wrap(err, "ошибка подсчета котировок за месяц")
	}
	from, to = helpers.PrevMonthRange(now)
	result.MesAnterior, err = i.store.CountCreatedBetween(from, to)
	if err != nil {
		return result, errors.Wrap(err, "ошибка подсчета котировок за прошлый месяц")
	}
	return result, nil
}

func (i impl) History(actor Actor, id uint) ([]quotationapimodels.HistoryView, error) {
	if _, err := i.getAccessible(actor, id); err != nil {
		return nil, err
	}
	list, err := i.historyStore.List(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения истории котировки")
	}
	result := make([]quotationapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) Items(actor Actor, id uint) ([]quotationapimodels.ItemView, error) {
	if _, err := i.getAccessible(actor, id); err != nil {
		return nil, err
	}
	list, err := i.itemStore.List(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения товаров котировки")
	}
	result := make([]quotationapimodels.ItemView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) ItemsPage(actor Actor, id uint, page, size int) (result apimodels.Page[quotationapimodels.ItemView], err error) {
	if _, err = i.getAccessible(actor, id); err != nil {
		return result, err
	}
	list, rowCount, err := i.itemStore.ListPage(id, page, size)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения товаров котировки")
	}
	content := make([]quotationapimodels.ItemView, 0, len(list))
	for _, rec := range list {
		content = append(content, rec.ToModel())
	}
	return apimodels.NewPage(content, page, size, rowCount), nil
}

func (i impl) Export(search string) (*bytes.Buffer, error) {
	list, err := i.store.ListForExport(search)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка котировок")
	}
	return i.xls.ExportQuotationList(list)
}

func (i impl) Summary(actor Actor, id uint) (fileName string, body []byte, err error) {
	rec, err := i.getAccessible(actor, id)
	if err != nil {
		return "", nil, err
	}
	items, err := i.itemStore.List(id)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка получения товаров котировки")
	}
	history, err := i.historyStore.List(id)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка получения истории котировки")
	}
	body, err = pdfexport.GenerateQuotationSummary(*rec, items, history)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка формирования pdf")
	}
	return rec.Number + "-resumen.pdf", body, nil
}

func (i impl) getAccessible(actor Actor, id uint) (*dbmodels.Quotation, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения котировки")
	}
	if err = checkAccess(actor, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// checkAccess котировка доступна владельцу и менеджерам
func checkAccess(actor Actor, rec *dbmodels.Quotation) error {
	if rec == nil {
		return apimodels.ErrNotFound("котировка не найдена")
	}
	if actor.CanManage() || rec.UserID == actor.ID {
		return nil
	}
	return apimodels.ErrForbidden("нет доступа к котировке")
}

// mergeItems складывает количество повторяющихся товаров, порядок первого вхождения сохраняется
func mergeItems(items []quotationapimodels.ItemRequest) []quotationapimodels.ItemRequest {
	result := make([]quotationapimodels.ItemRequest, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, item := range items {
		if pos, ok := index[item.ProductoID]; ok {
			result[pos].Cantidad += item.Cantidad
			continue
		}
		index[item.ProductoID] = len(result)
		result = append(result, item)
	}
	return result
}
