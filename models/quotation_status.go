package models

import "strings"

type QuotationStatus string

const (
	QuotationPending    QuotationStatus = "PENDIENTE"
	QuotationInProgress QuotationStatus = "EN_PROCESO"
	QuotationSent       QuotationStatus = "ENVIADA"
	QuotationAccepted   QuotationStatus = "ACEPTADA"
	QuotationRejected   QuotationStatus = "RECHAZADA"
	QuotationClosed     QuotationStatus = "CERRADA"
)

// QuotationStatuses в порядке основного сценария
var QuotationStatuses = []QuotationStatus{
	QuotationPending,
	QuotationInProgress,
	QuotationSent,
	QuotationAccepted,
	QuotationRejected,
	QuotationClosed,
}

var quotationStatusHumanName = map[QuotationStatus]string{
	QuotationPending:    "Pendiente",
	QuotationInProgress: "En proceso",
	QuotationSent:       "Enviada",
	QuotationAccepted:   "Aceptada",
	QuotationRejected:   "Rechazada",
	QuotationClosed:     "Cerrada",
}

func (s QuotationStatus) ToHuman() string {
	if human, exist := quotationStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s QuotationStatus) IsValid() bool {
	_, ok := quotationStatusHumanName[s]
	return ok
}

// IsMilestone статусы, значимые для ответа клиента
func (s QuotationStatus) IsMilestone() bool {
	return s == QuotationSent || s == QuotationAccepted || s == QuotationRejected
}

// IsCustomerResponse статусы, которые может выставить клиент
func (s QuotationStatus) IsCustomerResponse() bool {
	return s == QuotationAccepted || s == QuotationRejected
}

// AllowsPdf pdf прикладывается только после выхода из начального статуса
func (s QuotationStatus) AllowsPdf() bool {
	return s.IsValid() && s != QuotationPending
}

func ParseQuotationStatus(value string) (QuotationStatus, bool) {
	status := QuotationStatus(strings.ToUpper(strings.TrimSpace(value)))
	return status, status.IsValid()
}
