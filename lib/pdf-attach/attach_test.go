package pdfattach

import (
	"context"
	quotationworkflow "quotation-backend/lib/quotation-workflow"
	"quotation-backend/lib/session"
	statuspolicy "quotation-backend/lib/status-policy"
	"quotation-backend/models"
	quotationapimodels "quotation-backend/models/api/quotation"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	calls int
	err   error
}

func (f *fakeUploader) UploadPdf(ctx context.Context, sess session.Session, id uint, fileName string, file []byte) (quotationapimodels.PdfView, error) {
	f.calls++
	if f.err != nil {
		return quotationapimodels.PdfView{}, f.err
	}
	return quotationapimodels.PdfView{Archivo: "http://localhost/api/v1/cotizacion/1/pdf"}, nil
}

type fakeAdvancer struct {
	calls  int
	target models.QuotationStatus
	note   string
	err    error
}

func (f *fakeAdvancer) Advance(ctx context.Context, sess session.Session, rec quotationapimodels.FullView, target models.QuotationStatus, note string) (bool, error) {
	f.calls++
	f.target = target
	f.note = note
	if f.err != nil {
		return false, f.err
	}
	return rec.Estado != target, nil
}

type fakeStateClient struct {
	changes int
	last    quotationapimodels.ChangeStateRequest
}

func (f *fakeStateClient) UpdateObservation(ctx context.Context, sess session.Session, id uint, observation string) (quotationapimodels.ObservationView, error) {
	return quotationapimodels.ObservationView{ID: id, Observaciones: observation}, nil
}

func (f *fakeStateClient) ChangeState(ctx context.Context, sess session.Session, id uint, req quotationapimodels.ChangeStateRequest) (quotationapimodels.ChangeStateView, error) {
	f.changes++
	f.last = req
	return quotationapimodels.ChangeStateView{ID: id, EstadoNuevo: req.NuevoEstado}, nil
}

var staff = session.Session{UserID: 1, Role: models.UserRoleAdmin, Token: "t"}

func pdf(size int) File {
	return NewFile("cot.pdf", ContentType, make([]byte, size))
}

func TestValidate(t *testing.T) {
	t.Run("граница размера", func(t *testing.T) {
		require.NoError(t, Validate(File{ContentType: ContentType, Size: MaxSize}))
		require.ErrorIs(t, Validate(File{ContentType: ContentType, Size: MaxSize + 1}), ErrFileTooLarge)
	})
	t.Run("тип файла", func(t *testing.T) {
		require.ErrorIs(t, Validate(File{ContentType: "image/png", Size: 10}), ErrNotPDF)
		require.ErrorIs(t, Validate(File{ContentType: "", Size: 10}), ErrNotPDF)
	})
}

func TestAttach(t *testing.T) {
	ctx := context.Background()
	t.Run("файл 12 МБ отклоняется без загрузки", func(t *testing.T) {
		uploader, advancer := &fakeUploader{}, &fakeAdvancer{}
		rec := &quotationapimodels.FullView{ID: 1, Estado: models.QuotationInProgress}
		_, err := NewFlow(uploader, advancer).Attach(ctx, staff, rec, pdf(12*1024*1024))
		require.ErrorIs(t, err, ErrFileTooLarge)
		require.Zero(t, uploader.calls)
		require.Zero(t, advancer.calls)
	})
	t.Run("загрузка и переход в ENVIADA", func(t *testing.T) {
		uploader, advancer := &fakeUploader{}, &fakeAdvancer{}
		rec := &quotationapimodels.FullView{ID: 1, Estado: models.QuotationInProgress}
		result, err := NewFlow(uploader, advancer).Attach(ctx, staff, rec, pdf(100))
		require.NoError(t, err)
		require.True(t, result.Advanced)
		require.Equal(t, "http://localhost/api/v1/cotizacion/1/pdf", rec.CotizacionEnlace)
		require.Equal(t, models.QuotationSent, rec.Estado)
		require.Equal(t, models.QuotationSent, advancer.target)
		require.Equal(t, UploadNote, advancer.note)
	})
	t.Run("ошибка загрузки без перехода", func(t *testing.T) {
		uploader, advancer := &fakeUploader{err: errors.New("409")}, &fakeAdvancer{}
		rec := &quotationapimodels.FullView{ID: 1, Estado: models.QuotationInProgress}
		_, err := NewFlow(uploader, advancer).Attach(ctx, staff, rec, pdf(100))
		require.Error(t, err)
		require.Empty(t, rec.CotizacionEnlace)
		require.Zero(t, advancer.calls)
	})
	t.Run("ошибка перехода оставляет ссылку", func(t *testing.T) {
		uploader, advancer := &fakeUploader{}, &fakeAdvancer{err: errors.New("timeout")}
		rec := &quotationapimodels.FullView{ID: 1, Estado: models.QuotationInProgress}
		result, err := NewFlow(uploader, advancer).Attach(ctx, staff, rec, pdf(100))
		require.ErrorIs(t, err, ErrTransitionAfterUpload)
		var transitionErr *TransitionError
		require.True(t, errors.As(err, &transitionErr))
		require.Equal(t, rec.CotizacionEnlace, transitionErr.Reference)
		require.NotEmpty(t, result.Reference)
		require.Equal(t, models.QuotationInProgress, rec.Estado)
		require.Equal(t, 1, advancer.calls)
	})
	t.Run("уже отправленная котировка, переход пропускается", func(t *testing.T) {
		uploader, client := &fakeUploader{}, &fakeStateClient{}
		coordinator := quotationworkflow.NewCoordinator(client, statuspolicy.NewDefault(), nil)
		rec := &quotationapimodels.FullView{ID: 1, Estado: models.QuotationSent}
		result, err := NewFlow(uploader, coordinator).Attach(ctx, staff, rec, pdf(100))
		require.NoError(t, err)
		require.False(t, result.Advanced)
		require.Zero(t, client.changes)
		require.Equal(t, 1, uploader.calls)
	})
	t.Run("переход через координатор", func(t *testing.T) {
		uploader, client := &fakeUploader{}, &fakeStateClient{}
		coordinator := quotationworkflow.NewCoordinator(client, statuspolicy.NewDefault(), nil)
		rec := &quotationapimodels.FullView{ID: 1, Estado: models.QuotationInProgress}
		result, err := NewFlow(uploader, coordinator).Attach(ctx, staff, rec, pdf(100))
		require.NoError(t, err)
		require.True(t, result.Advanced)
		require.Equal(t, 1, client.changes)
		require.Equal(t, UploadNote, client.last.Observacion)
		require.Equal(t, models.QuotationSent, client.last.NuevoEstado)
	})
}
