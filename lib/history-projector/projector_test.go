package historyprojector

import (
	"quotation-backend/models"
	quotationapimodels "quotation-backend/models/api/quotation"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func entry(status models.QuotationStatus, actor string, ts time.Time) quotationapimodels.HistoryView {
	return quotationapimodels.HistoryView{EstadoNuevo: status, UsuarioNombre: actor, FechaCambio: ts}
}

func TestLatest(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	t.Run("пустая история", func(t *testing.T) {
		_, ok := Latest(nil)
		require.False(t, ok)
	})
	t.Run("котировка не выходила из начальных статусов", func(t *testing.T) {
		_, ok := Latest([]quotationapimodels.HistoryView{
			entry(models.QuotationPending, "A", t1),
			entry(models.QuotationInProgress, "B", t2),
		})
		require.False(t, ok)
	})
	t.Run("обратный проход пропускает не значимые записи", func(t *testing.T) {
		history := []quotationapimodels.HistoryView{
			entry(models.QuotationSent, "A", t1),
			entry(models.QuotationAccepted, "B", t2),
			entry(models.QuotationPending, "C", t3),
		}
		milestone, ok := Latest(history)
		require.True(t, ok)
		require.Equal(t, Milestone{Status: "aceptada", ActorName: "B", Timestamp: t2}, milestone)

		again, ok := Latest(history)
		require.True(t, ok)
		require.Equal(t, milestone, again)
	})
	t.Run("берется последняя значимая запись", func(t *testing.T) {
		milestone, ok := Latest([]quotationapimodels.HistoryView{
			entry(models.QuotationSent, "A", t1),
			entry(models.QuotationRejected, "B", t2),
			entry(models.QuotationSent, "C", t3),
		})
		require.True(t, ok)
		require.Equal(t, "enviada", milestone.Status)
		require.Equal(t, "C", milestone.ActorName)
	})
	t.Run("закрытие не является значимой записью", func(t *testing.T) {
		milestone, ok := Latest([]quotationapimodels.HistoryView{
			entry(models.QuotationAccepted, "A", t1),
			entry(models.QuotationClosed, "B", t2),
		})
		require.True(t, ok)
		require.Equal(t, "aceptada", milestone.Status)
		require.Equal(t, "A", milestone.ActorName)
	})
}
