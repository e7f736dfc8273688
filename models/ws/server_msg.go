package wsmodels

type ServerMessage struct {
	ToUserID    string `json:"-"`
	ToManagers  bool   `json:"-"`
	Time        string `json:"time"`                   // время события
	Code        string `json:"code"`                   // код события
	Msg         string `json:"msg"`                    // текст события
	QuotationID uint   `json:"quotationId,omitempty"` // котировка
	Status      string `json:"estado,omitempty"`      // новый статус
}

const QuotationStatusCode = "QUOTATION_STATUS"
