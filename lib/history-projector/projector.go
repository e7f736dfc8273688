package historyprojector

import (
	quotationapimodels "quotation-backend/models/api/quotation"
	"strings"
	"time"
)

// Milestone последнее значимое для клиента событие котировки
type Milestone struct {
	Status    string
	ActorName string
	Timestamp time.Time
}

// Latest история упорядочена от старых к новым; ищем с конца первую запись
// со статусом ENVIADA, ACEPTADA или RECHAZADA
func Latest(history []quotationapimodels.HistoryView) (Milestone, bool) {
	for idx := len(history) - 1; idx >= 0; idx-- {
		entry := history[idx]
		if !entry.EstadoNuevo.IsMilestone() {
			continue
		}
		return Milestone{
			Status:    strings.ToLower(string(entry.EstadoNuevo)),
			ActorName: entry.UsuarioNombre,
			Timestamp: entry.FechaCambio,
		}, true
	}
	return Milestone{}, false
}
