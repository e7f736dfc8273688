package quotationhandler

import (
	"fmt"
	"quotation-backend/models"
	dbmodels "quotation-backend/models/db"
	wsmodels "quotation-backend/models/ws"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

func (i impl) sendNewQuotationAlert(rec dbmodels.Quotation) {
	if i.mail == nil || i.salesEmail == "" {
		return
	}
	logger := log.WithField("quotation_id", rec.ID)
	err := i.mail.SendEMail(i.salesEmail, newQuotationMessage(rec), "Nueva cotización "+rec.Number)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки уведомления о новой котировке")
	}
}

func newQuotationMessage(rec dbmodels.Quotation) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Se ha registrado la cotización %v.\r\n\r\n", rec.Number))
	sb.WriteString(fmt.Sprintf("Cliente: %v\r\n", rec.ClientName))
	if rec.Document != "" {
		sb.WriteString(fmt.Sprintf("Documento: %v %v\r\n", rec.DocumentType, rec.Document))
	}
	if rec.Email != "" {
		sb.WriteString(fmt.Sprintf("Email: %v\r\n", rec.Email))
	}
	if rec.Phone != "" {
		sb.WriteString(fmt.Sprintf("Teléfono: %v\r\n", rec.Phone))
	}
	if rec.Comment != "" {
		sb.WriteString(fmt.Sprintf("Comentario: %v\r\n", rec.Comment))
	}
	sb.WriteString("\r\nProductos:\r\n")
	for _, item := range rec.Items {
		sb.WriteString(fmt.Sprintf(" - %v x %v\r\n", item.ProductName, item.Quantity))
	}
	return sb.String()
}

func (i impl) pushStatus(rec dbmodels.Quotation, status models.QuotationStatus) {
	if i.hub == nil {
		return
	}
	i.hub.SendMessage(statusMessage(rec, status, time.Now()))
}

func statusMessage(rec dbmodels.Quotation, status models.QuotationStatus, at time.Time) wsmodels.ServerMessage {
	return wsmodels.ServerMessage{
		ToUserID:    strconv.FormatUint(uint64(rec.UserID), 10),
		ToManagers:  true,
		Time:        at.Format("02.01.2006 15:04:05"),
		Code:        wsmodels.QuotationStatusCode,
		Msg:         fmt.Sprintf("Cotización %v: %v", rec.Number, strings.ToLower(status.ToHuman())),
		QuotationID: rec.ID,
		Status:      string(status),
	}
}
