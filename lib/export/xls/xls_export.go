package xlsexport

import (
	"bytes"
	dbmodels "quotation-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportQuotationList(list []dbmodels.Quotation) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const quotationSheet = "Cotizaciones"

var quotationHeaders = []string{"Número", "Cliente", "Documento", "Email", "Teléfono", "Fecha", "Estado", "Comentario", "Observaciones", "PDF"}

func (i impl) ExportQuotationList(list []dbmodels.Quotation) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	if err := f.SetSheetName("Sheet1", quotationSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	w := sheetWriter{f: f, sheet: quotationSheet}
	row, err := w.header(0, quotationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		if err = writeQuotationData(w, list, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	return f.WriteToBuffer()
}

func writeQuotationData(w sheetWriter, list []dbmodels.Quotation, row int) error {
	if err := w.dataStyle(1, row+1, len(quotationHeaders), row+len(list)); err != nil {
		return err
	}
	for _, item := range list {
		row++
		err := w.row(row,
			item.Number,
			item.ClientName,
			item.DocumentType+" "+item.Document,
			item.Email,
			item.Phone,
			formatDate(item.CreatedAt),
			item.Status.ToHuman(),
			item.Comment,
			item.Observations,
			item.PdfLink,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
