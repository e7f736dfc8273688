package quotationhandler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	quotationstore "quotation-backend/lib/quotation/store"
	statuspolicy "quotation-backend/lib/status-policy"
	"quotation-backend/lib/utils/lock"
	"quotation-backend/models"
	apimodels "quotation-backend/models/api"
	quotationapimodels "quotation-backend/models/api/quotation"
	dbmodels "quotation-backend/models/db"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeQuotationStore struct {
	quotationstore.Provider
	recs     map[uint]dbmodels.Quotation
	byStatus map[models.QuotationStatus]int64
	lastList quotationstore.Filter
}

func (s *fakeQuotationStore) GetByID(id uint) (*dbmodels.Quotation, error) {
	rec, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *fakeQuotationStore) List(filter quotationstore.Filter) ([]dbmodels.Quotation, int64, error) {
	s.lastList = filter
	list := []dbmodels.Quotation{}
	for _, rec := range s.recs {
		if filter.UserID != 0 && rec.UserID != filter.UserID {
			continue
		}
		list = append(list, rec)
	}
	return list, int64(len(list)), nil
}

func (s *fakeQuotationStore) CountByStatus() (map[models.QuotationStatus]int64, error) {
	return s.byStatus, nil
}

func (s *fakeQuotationStore) CountCreatedBetween(from, to time.Time) (int64, error) {
	if from.Month() == time.Now().Month() {
		return 3, nil
	}
	return 1, nil
}

type fakeFileStorage struct {
	files map[string][]byte
}

func (f fakeFileStorage) UploadQuotationPdf(ctx context.Context, quotationID uint, fileName string, file []byte) (string, error) {
	return "", errors.New("not implemented")
}

func (f fakeFileStorage) GetFile(ctx context.Context, objectName string) ([]byte, error) {
	body, ok := f.files[objectName]
	if !ok {
		return nil, errors.New("not found")
	}
	return body, nil
}

func (f fakeFileStorage) DeleteFile(ctx context.Context, objectName string) error {
	return nil
}

var (
	owner    = Actor{ID: 10, Name: "Ana Torres", Role: models.UserRoleClient}
	stranger = Actor{ID: 11, Name: "Luis Paz", Role: models.UserRoleClient}
	manager  = Actor{ID: 1, Name: "Admin", Role: models.UserRoleAdmin}
)

func newTestHandler() (impl, *fakeQuotationStore) {
	store := &fakeQuotationStore{
		recs: map[uint]dbmodels.Quotation{
			1: {
				BaseModel: dbmodels.BaseModel{ID: 1},
				Number:    "COT-000001",
				Status:    models.QuotationSent,
				UserID:    owner.ID,
				PdfObject: "quotations/1/a.pdf",
			},
			2: {
				BaseModel: dbmodels.BaseModel{ID: 2},
				Number:    "COT-000002",
				Status:    models.QuotationPending,
				UserID:    stranger.ID,
			},
		},
		byStatus: map[models.QuotationStatus]int64{
			models.QuotationPending: 4,
			models.QuotationSent:    2,
		},
	}
	return impl{
		store:       store,
		fileStorage: fakeFileStorage{files: map[string][]byte{"quotations/1/a.pdf": []byte("%PDF-1.4")}},
		publicUrl:   "http://localhost:8080/",
		pdfMaxSize:  10 * 1024 * 1024,
	}, store
}

func requireCode(t *testing.T, err error, httpStatus int, code string) {
	var coded apimodels.CodedError
	require.True(t, errors.As(err, &coded))
	require.Equal(t, httpStatus, coded.HttpStatus)
	require.Equal(t, code, coded.Code)
}

func TestGetByID(t *testing.T) {
	h, _ := newTestHandler()
	t.Run("owner", func(t *testing.T) {
		view, err := h.GetByID(owner, 1)
		require.Nil(t, err)
		require.Equal(t, "COT-000001", view.Numero)
	})
	t.Run("manager", func(t *testing.T) {
		_, err := h.GetByID(manager, 2)
		require.Nil(t, err)
	})
	t.Run("stranger forbidden", func(t *testing.T) {
		_, err := h.GetByID(stranger, 1)
		requireCode(t, err, http.StatusForbidden, apimodels.CodeForbidden)
	})
	t.Run("not found", func(t *testing.T) {
		_, err := h.GetByID(manager, 99)
		requireCode(t, err, http.StatusNotFound, apimodels.CodeNotFound)
	})
}

func TestListByUser(t *testing.T) {
	h, store := newTestHandler()
	t.Run("own list", func(t *testing.T) {
		page, err := h.ListByUser(owner, owner.ID, 0, 10)
		require.Nil(t, err)
		require.Len(t, page.Content, 1)
		require.Equal(t, int64(1), page.TotalElements)
		require.Equal(t, 1, page.TotalPages)
		require.Equal(t, owner.ID, store.lastList.UserID)
	})
	t.Run("other user list forbidden", func(t *testing.T) {
		_, err := h.ListByUser(owner, stranger.ID, 0, 10)
		requireCode(t, err, http.StatusForbidden, apimodels.CodeForbidden)
	})
	t.Run("manager sees any user", func(t *testing.T) {
		page, err := h.ListByUser(manager, stranger.ID, 0, 10)
		require.Nil(t, err)
		require.Len(t, page.Content, 1)
	})
}

func TestListDashboard(t *testing.T) {
	h, store := newTestHandler()
	page, err := h.ListDashboard("cot", 1, 5)
	require.Nil(t, err)
	require.Equal(t, "cot", store.lastList.Search)
	require.Equal(t, 1, page.Number)
	require.Equal(t, 5, page.Size)
	require.Len(t, page.Content, 2)
}

func TestStats(t *testing.T) {
	h, _ := newTestHandler()
	stats, err := h.Stats()
	require.Nil(t, err)
	require.Equal(t, int64(6), stats.Total)
	require.Equal(t, int64(3), stats.MesActual)
	require.Equal(t, int64(1), stats.MesAnterior)
}

func TestGetPdf(t *testing.T) {
	h, _ := newTestHandler()
	t.Run("stored pdf", func(t *testing.T) {
		name, body, err := h.GetPdf(context.Background(), owner, 1)
		require.Nil(t, err)
		require.Equal(t, "COT-000001.pdf", name)
		require.Equal(t, []byte("%PDF-1.4"), body)
	})
	t.Run("pdf not uploaded", func(t *testing.T) {
		_, _, err := h.GetPdf(context.Background(), manager, 2)
		requireCode(t, err, http.StatusNotFound, apimodels.CodeNotFound)
	})
}

func TestValidatePdf(t *testing.T) {
	pdfBody := []byte("%PDF-1.4\n%âãÏÓ\n")
	t.Run("valid pdf", func(t *testing.T) {
		require.Nil(t, validatePdf(PdfFile{Name: "a.pdf", ContentType: "application/pdf", Body: pdfBody}, 1024))
	})
	t.Run("too large", func(t *testing.T) {
		err := validatePdf(PdfFile{ContentType: "application/pdf", Body: bytes.Repeat([]byte("a"), 2048)}, 1024)
		requireCode(t, err, http.StatusBadRequest, apimodels.CodeValidation)
	})
	t.Run("wrong content type", func(t *testing.T) {
		err := validatePdf(PdfFile{ContentType: "image/png", Body: pdfBody}, 1024)
		requireCode(t, err, http.StatusBadRequest, apimodels.CodeValidation)
	})
	t.Run("declared pdf with other content", func(t *testing.T) {
		err := validatePdf(PdfFile{ContentType: "application/pdf", Body: []byte("hello")}, 1024)
		requireCode(t, err, http.StatusBadRequest, apimodels.CodeValidation)
	})
	t.Run("empty file", func(t *testing.T) {
		err := validatePdf(PdfFile{ContentType: "application/pdf"}, 1024)
		requireCode(t, err, http.StatusBadRequest, apimodels.CodeValidation)
	})
}

func TestMergeItems(t *testing.T) {
	items := mergeItems([]quotationapimodels.ItemRequest{
		{ProductoID: 3, Cantidad: 1},
		{ProductoID: 5, Cantidad: 2},
		{ProductoID: 3, Cantidad: 4},
	})
	require.Equal(t, []quotationapimodels.ItemRequest{
		{ProductoID: 3, Cantidad: 5},
		{ProductoID: 5, Cantidad: 2},
	}, items)
}

func TestPdfLink(t *testing.T) {
	require.Equal(t, "http://localhost:8080/api/v1/cotizacion/42/pdf", pdfLink("http://localhost:8080/", 42))
}

func TestStatusMessage(t *testing.T) {
	rec := dbmodels.Quotation{BaseModel: dbmodels.BaseModel{ID: 7}, Number: "COT-000007", UserID: 10}
	msg := statusMessage(rec, models.QuotationAccepted, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	require.Equal(t, "10", msg.ToUserID)
	require.True(t, msg.ToManagers)
	require.Equal(t, "02.01.2025 03:04:05", msg.Time)
	require.Equal(t, "ACEPTADA", msg.Status)
	require.Equal(t, "Cotización COT-000007: aceptada", msg.Msg)
}

func TestNewQuotationMessage(t *testing.T) {
	msg := newQuotationMessage(dbmodels.Quotation{
		Number:     "COT-000003",
		ClientName: "Ana Torres",
		Email:      "ana@example.com",
		Items:      []dbmodels.QuotationItem{{ProductName: "Router", Quantity: 2}},
	})
	require.True(t, strings.HasPrefix(msg, "Se ha registrado la cotización COT-000003."))
	require.Contains(t, msg, "Email: ana@example.com")
	require.Contains(t, msg, " - Router x 2")
	require.NotContains(t, msg, "Teléfono")
}

func TestQuotationLock(t *testing.T) {
	t.Run("busy quotation answers 409", func(t *testing.T) {
		h, _ := newTestHandler()
		held := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = lock.WithDelay(context.Background(), lock.QuotationKey(5), time.Second, func() error {
				close(held)
				<-release
				return nil
			})
		}()
		<-held

		defaultWait := lockWait
		lockWait = 50 * time.Millisecond
		defer func() { lockWait = defaultWait }()
		called := false
		err := h.withQuotationLock(context.Background(), 5, func() error {
			called = true
			return nil
		})
		close(release)
		<-done
		requireCode(t, err, http.StatusConflict, apimodels.CodeBusy)
		require.False(t, called)
	})
	t.Run("cancelled request is not busy", func(t *testing.T) {
		h, _ := newTestHandler()
		held := make(chan struct{})
		release := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = lock.WithDelay(context.Background(), lock.QuotationKey(7), time.Second, func() error {
				close(held)
				<-release
				return nil
			})
		}()
		<-held

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := h.withQuotationLock(ctx, 7, func() error { return nil })
		close(release)
		<-done
		require.ErrorIs(t, err, context.Canceled)
		var coded apimodels.CodedError
		require.False(t, errors.As(err, &coded))
	})
	t.Run("free quotation runs code", func(t *testing.T) {
		h, _ := newTestHandler()
		called := false
		err := h.withQuotationLock(context.Background(), 6, func() error {
			called = true
			return nil
		})
		require.Nil(t, err)
		require.True(t, called)
	})
}

func TestTransitionRejected(t *testing.T) {
	decision := statuspolicy.NewDefault().Evaluate(statuspolicy.Request{
		Current: models.QuotationAccepted,
		Target:  models.QuotationAccepted,
		Actor:   statuspolicy.ActorStaff,
	})
	require.False(t, decision.Allowed)
	requireCode(t, transitionRejected(decision), http.StatusUnprocessableEntity, apimodels.CodeTransitionRejected)
}

func TestUpdateObservationManagerOnly(t *testing.T) {
	h, _ := newTestHandler()
	_, err := h.UpdateObservation(context.Background(), owner, 1, quotationapimodels.ObservationRequest{Observaciones: "nota del cliente"})
	requireCode(t, err, http.StatusForbidden, apimodels.CodeForbidden)
}
