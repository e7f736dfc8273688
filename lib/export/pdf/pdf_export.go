package pdfexport

import (
	"bytes"
	"fmt"
	dbmodels "quotation-backend/models/db"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const summaryDateLayout = "02/01/2006 15:04"

// GenerateQuotationSummary сводка по заявке: контакты, позиции и история статусов
func GenerateQuotationSummary(rec dbmodels.Quotation, items []dbmodels.QuotationItem, history []dbmodels.QuotationStatusChange) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateQuotationSummary panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(rec.Number, true)
	pdf.AddPage()

	// заголовок
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Cotización "+rec.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Estado: "+rec.Status.ToHuman()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Fecha: "+rec.CreatedAt.Format(summaryDateLayout)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// контакты
	sectionTitle(pdf, tr, "Datos del cliente")
	keyValue(pdf, tr, "Cliente", rec.ClientName)
	keyValue(pdf, tr, "Documento", fmt.Sprintf("%v %v", rec.DocumentType, rec.Document))
	keyValue(pdf, tr, "Email", rec.Email)
	keyValue(pdf, tr, "Teléfono", rec.Phone)
	if rec.Comment != "" {
		keyValue(pdf, tr, "Comentario", rec.Comment)
	}
	if rec.Observations != "" {
		keyValue(pdf, tr, "Observaciones", rec.Observations)
	}
	pdf.Ln(4)

	// позиции
	sectionTitle(pdf, tr, "Productos")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(221, 235, 247)
	pdf.CellFormat(15, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(135, 7, "Producto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Cantidad", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for idx, item := range items {
		pdf.CellFormat(15, 7, strconv.Itoa(idx+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(135, 7, tr(item.ProductName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, strconv.Itoa(item.Quantity), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// история
	if len(history) != 0 {
		sectionTitle(pdf, tr, "Historial")
		pdf.SetFont("Helvetica", "", 10)
		for _, change := range history {
			line := fmt.Sprintf("%v  %v -> %v  (%v)",
				change.CreatedAt.Format(summaryDateLayout),
				change.PreviousStatus.ToHuman(),
				change.NewStatus.ToHuman(),
				change.UserName)
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
			if change.Observation != "" {
				pdf.SetX(pdf.GetX() + 5)
				pdf.MultiCell(0, 6, tr(change.Observation), "", "L", false)
			}
		}
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func keyValue(pdf *fpdf.Fpdf, tr func(string) string, key, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 6, tr(key+":"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, tr(value), "", "L", false)
}
