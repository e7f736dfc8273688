package quotationworkflow

import (
	"context"
	"quotation-backend/lib/session"
	statuspolicy "quotation-backend/lib/status-policy"
	"quotation-backend/models"
	quotationapimodels "quotation-backend/models/api/quotation"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type call struct {
	method string
	id     uint
	value  string
	status models.QuotationStatus
	userID uint
}

type fakeClient struct {
	calls          []call
	observationErr error
	changeErr      error
}

func (f *fakeClient) UpdateObservation(ctx context.Context, sess session.Session, id uint, observation string) (quotationapimodels.ObservationView, error) {
	f.calls = append(f.calls, call{method: "observation", id: id, value: observation})
	if f.observationErr != nil {
		return quotationapimodels.ObservationView{}, f.observationErr
	}
	return quotationapimodels.ObservationView{ID: id, Observaciones: observation}, nil
}

func (f *fakeClient) ChangeState(ctx context.Context, sess session.Session, id uint, req quotationapimodels.ChangeStateRequest) (quotationapimodels.ChangeStateView, error) {
	f.calls = append(f.calls, call{method: "state", id: id, value: req.Observacion, status: req.NuevoEstado, userID: req.UsuarioID})
	if f.changeErr != nil {
		return quotationapimodels.ChangeStateView{}, f.changeErr
	}
	return quotationapimodels.ChangeStateView{ID: id, EstadoNuevo: req.NuevoEstado}, nil
}

type notice struct {
	level   NoticeLevel
	message string
}

type recordNotifier struct {
	notices []notice
}

func (n *recordNotifier) Notify(level NoticeLevel, message string) {
	n.notices = append(n.notices, notice{level: level, message: message})
}

var (
	staff    = session.Session{UserID: 10, UserName: "Marta", Role: models.UserRoleAdmin, Token: "t"}
	customer = session.Session{UserID: 20, UserName: "Luis", Role: models.UserRoleClient, Token: "t"}
)

func newCoordinator() (*Coordinator, *fakeClient, *recordNotifier) {
	client := &fakeClient{}
	notifier := &recordNotifier{}
	return NewCoordinator(client, statuspolicy.NewDefault(), notifier), client, notifier
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	t.Run("без изменений нет вызовов", func(t *testing.T) {
		c, client, notifier := newCoordinator()
		rec := quotationapimodels.FullView{ID: 1, Estado: models.QuotationPending, Observaciones: "old"}
		outcome, err := c.Confirm(ctx, staff, rec, "old", models.QuotationPending)
		require.NoError(t, err)
		require.Empty(t, client.calls)
		require.False(t, outcome.Refetch())
		require.Equal(t, []notice{{level: NoticeInfo, message: MsgNothingToDo}}, notifier.notices)
	})
	t.Run("примечание записывается только при изменении после trim", func(t *testing.T) {
		cases := []struct {
			candidate string
			stored    string
			expected  bool
		}{
			{candidate: "", stored: "old", expected: false},
			{candidate: "   ", stored: "old", expected: false},
			{candidate: " old ", stored: "old", expected: false},
			{candidate: "old", stored: " old ", expected: false},
			{candidate: "new", stored: "old", expected: true},
			{candidate: "new", stored: "", expected: true},
		}
		for _, tc := range cases {
			c, client, _ := newCoordinator()
			rec := quotationapimodels.FullView{ID: 1, Estado: models.QuotationPending, Observaciones: tc.stored}
			_, err := c.Confirm(ctx, staff, rec, tc.candidate, "")
			require.NoError(t, err)
			written := len(client.calls) == 1 && client.calls[0].method == "observation"
			require.Equal(t, tc.expected, written, "candidate %q stored %q", tc.candidate, tc.stored)
		}
	})
	t.Run("сначала примечание, затем статус с новым примечанием", func(t *testing.T) {
		c, client, notifier := newCoordinator()
		rec := quotationapimodels.FullView{ID: 3, Estado: models.QuotationPending, Observaciones: "old"}
		outcome, err := c.Confirm(ctx, staff, rec, " revisar stock ", models.QuotationInProgress)
		require.NoError(t, err)
		require.Len(t, client.calls, 2)
		require.Equal(t, call{method: "observation", id: 3, value: "revisar stock"}, client.calls[0])
		require.Equal(t, call{method: "state", id: 3, value: "revisar stock", status: models.QuotationInProgress, userID: 10}, client.calls[1])
		require.True(t, outcome.ObservationUpdated)
		require.True(t, outcome.StatusChanged)
		require.True(t, outcome.Refetch())
		require.Equal(t, []notice{{level: NoticeSuccess, message: MsgUpdated}}, notifier.notices)
	})
	t.Run("только статус передает сохраненное примечание", func(t *testing.T) {
		c, client, _ := newCoordinator()
		rec := quotationapimodels.FullView{ID: 3, Estado: models.QuotationInProgress, Observaciones: "old"}
		_, err := c.Confirm(ctx, staff, rec, "", models.QuotationSent)
		require.NoError(t, err)
		require.Len(t, client.calls, 1)
		require.Equal(t, "state", client.calls[0].method)
		require.Equal(t, "old", client.calls[0].value)
	})
	t.Run("ошибка примечания прерывает смену статуса", func(t *testing.T) {
		c, client, notifier := newCoordinator()
		client.observationErr = errors.New("нет связи")
		rec := quotationapimodels.FullView{ID: 3, Estado: models.QuotationPending}
		outcome, err := c.Confirm(ctx, staff, rec, "nota", models.QuotationInProgress)
		require.Error(t, err)
		require.Len(t, client.calls, 1)
		require.False(t, outcome.Refetch())
		require.Len(t, notifier.notices, 1)
		require.Equal(t, NoticeError, notifier.notices[0].level)
	})
	t.Run("ошибка статуса не откатывает примечание", func(t *testing.T) {
		c, client, notifier := newCoordinator()
		client.changeErr = errors.New("timeout")
		rec := quotationapimodels.FullView{ID: 3, Estado: models.QuotationPending}
		outcome, err := c.Confirm(ctx, staff, rec, "nota", models.QuotationInProgress)
		require.Error(t, err)
		require.Len(t, client.calls, 2)
		require.True(t, outcome.ObservationUpdated)
		require.False(t, outcome.StatusChanged)
		require.True(t, outcome.Refetch())
		require.Len(t, notifier.notices, 1)
		require.Equal(t, NoticeError, notifier.notices[0].level)
	})
	t.Run("запрещенный переход без вызовов", func(t *testing.T) {
		client := &fakeClient{}
		notifier := &recordNotifier{}
		strict := statuspolicy.NewPolicy(statuspolicy.Table{
			models.QuotationPending: {models.QuotationInProgress},
		})
		c := NewCoordinator(client, strict, notifier)
		rec := quotationapimodels.FullView{ID: 3, Estado: models.QuotationPending}
		_, err := c.Confirm(ctx, staff, rec, "nota", models.QuotationClosed)
		require.ErrorIs(t, err, statuspolicy.ErrNotAllowed)
		require.Empty(t, client.calls)
		require.Len(t, notifier.notices, 1)
	})
	t.Run("неизвестный статус без вызовов", func(t *testing.T) {
		c, client, _ := newCoordinator()
		rec := quotationapimodels.FullView{ID: 3, Estado: models.QuotationPending}
		_, err := c.Confirm(ctx, staff, rec, "", models.QuotationStatus("BORRADOR"))
		require.ErrorIs(t, err, statuspolicy.ErrUnknownStatus)
		require.Empty(t, client.calls)
	})
	t.Run("клиент не пишет примечание персонала", func(t *testing.T) {
		c, client, notifier := newCoordinator()
		rec := quotationapimodels.FullView{ID: 4, Estado: models.QuotationSent, Observaciones: "nota staff"}
		outcome, err := c.Confirm(ctx, customer, rec, " texto del cliente ", models.QuotationAccepted)
		require.NoError(t, err)
		require.Equal(t, []call{{method: "state", id: 4, value: "texto del cliente", status: models.QuotationAccepted, userID: 20}}, client.calls)
		require.False(t, outcome.ObservationUpdated)
		require.True(t, outcome.StatusChanged)
		require.Equal(t, "nota staff", outcome.Observation)
		require.Equal(t, []notice{{level: NoticeSuccess, message: MsgUpdated}}, notifier.notices)
	})
	t.Run("клиент без смены статуса получает отказ", func(t *testing.T) {
		c, client, notifier := newCoordinator()
		rec := quotationapimodels.FullView{ID: 4, Estado: models.QuotationSent, Observaciones: "nota staff"}
		_, err := c.Confirm(ctx, customer, rec, "solo nota", "")
		require.ErrorIs(t, err, statuspolicy.ErrNotAllowed)
		require.Empty(t, client.calls)
		require.Len(t, notifier.notices, 1)
		require.Equal(t, NoticeError, notifier.notices[0].level)
	})
}

func TestRespond(t *testing.T) {
	ctx := context.Background()
	t.Run("принятие с пустым комментарием", func(t *testing.T) {
		c, client, notifier := newCoordinator()
		rec := quotationapimodels.FullView{ID: 8, Estado: models.QuotationSent, Observaciones: "nota interna"}
		outcome, err := c.Respond(ctx, customer, rec, true, "")
		require.NoError(t, err)
		require.Equal(t, []call{{method: "state", id: 8, value: "", status: models.QuotationAccepted, userID: 20}}, client.calls)
		require.Equal(t, models.QuotationAccepted, outcome.Status)
		require.Equal(t, []notice{{level: NoticeSuccess, message: MsgAccepted}}, notifier.notices)
	})
	t.Run("отклонение с комментарием", func(t *testing.T) {
		c, client, notifier := newCoordinator()
		rec := quotationapimodels.FullView{ID: 8, Estado: models.QuotationSent}
		_, err := c.Respond(ctx, customer, rec, false, " muy caro ")
		require.NoError(t, err)
		require.Equal(t, "muy caro", client.calls[0].value)
		require.Equal(t, models.QuotationRejected, client.calls[0].status)
		require.Equal(t, MsgRejected, notifier.notices[0].message)
	})
	t.Run("ответ доступен только для отправленной", func(t *testing.T) {
		for _, status := range models.QuotationStatuses {
			c, client, _ := newCoordinator()
			rec := quotationapimodels.FullView{ID: 8, Estado: status}
			_, err := c.Respond(ctx, customer, rec, true, "")
			if status == models.QuotationSent {
				require.NoError(t, err)
				require.Len(t, client.calls, 1)
				continue
			}
			require.Error(t, err, status)
			require.Empty(t, client.calls, status)
			require.Equal(t, status == models.QuotationSent, statuspolicy.CanRespond(status))
		}
	})
}

func TestAdvance(t *testing.T) {
	ctx := context.Background()
	t.Run("переход с заметкой", func(t *testing.T) {
		c, client, notifier := newCoordinator()
		rec := quotationapimodels.FullView{ID: 4, Estado: models.QuotationInProgress}
		advanced, err := c.Advance(ctx, staff, rec, models.QuotationSent, "Se ha subido el PDF de la cotización.")
		require.NoError(t, err)
		require.True(t, advanced)
		require.Equal(t, "Se ha subido el PDF de la cotización.", client.calls[0].value)
		require.Empty(t, notifier.notices)
	})
	t.Run("текущий статус пропускается", func(t *testing.T) {
		c, client, _ := newCoordinator()
		rec := quotationapimodels.FullView{ID: 4, Estado: models.QuotationSent}
		advanced, err := c.Advance(ctx, staff, rec, models.QuotationSent, "nota")
		require.NoError(t, err)
		require.False(t, advanced)
		require.Empty(t, client.calls)
	})
}
