package apiv1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	quotationhandler "quotation-backend/lib/quotation"
	"quotation-backend/models"
	apimodels "quotation-backend/models/api"
	quotationapimodels "quotation-backend/models/api/quotation"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeQuotationHandler struct {
	quotationhandler.Provider
	actor      quotationhandler.Actor
	changeReq  quotationapimodels.ChangeStateRequest
	changeErr  error
	pdf        quotationhandler.PdfFile
	itemsSize  int
	dashSearch string
}

func (f *fakeQuotationHandler) GetByID(actor quotationhandler.Actor, id uint) (quotationapimodels.FullView, error) {
	f.actor = actor
	if id == 404 {
		return quotationapimodels.FullView{}, apimodels.ErrNotFound("котировка не найдена")
	}
	return quotationapimodels.FullView{ID: id, Numero: "COT-1"}, nil
}

func (f *fakeQuotationHandler) ChangeState(ctx context.Context, actor quotationhandler.Actor, id uint, data quotationapimodels.ChangeStateRequest) (quotationapimodels.ChangeStateView, error) {
	f.actor = actor
	f.changeReq = data
	if f.changeErr != nil {
		return quotationapimodels.ChangeStateView{}, f.changeErr
	}
	return quotationapimodels.ChangeStateView{ID: id, EstadoAnterior: models.QuotationPending, EstadoNuevo: data.NuevoEstado}, nil
}

func (f *fakeQuotationHandler) AttachPdf(ctx context.Context, actor quotationhandler.Actor, id uint, file quotationhandler.PdfFile) (quotationapimodels.PdfView, error) {
	f.pdf = file
	return quotationapimodels.PdfView{Archivo: "http://localhost/api/v1/cotizacion/1/pdf"}, nil
}

func (f *fakeQuotationHandler) ItemsPage(actor quotationhandler.Actor, id uint, page, size int) (apimodels.Page[quotationapimodels.ItemView], error) {
	f.itemsSize = size
	return apimodels.NewPage([]quotationapimodels.ItemView{{ID: 1}}, page, size, 1), nil
}

func (f *fakeQuotationHandler) ListDashboard(search string, page, size int) (apimodels.Page[quotationapimodels.DashboardView], error) {
	f.dashSearch = search
	return apimodels.NewPage[quotationapimodels.DashboardView](nil, page, size, 0), nil
}

func (f *fakeQuotationHandler) Export(search string) (*bytes.Buffer, error) {
	f.dashSearch = search
	return bytes.NewBufferString("xlsx"), nil
}

func withClaims(id, name string, role models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals("user", &jwt.Token{Claims: jwt.MapClaims{
			"sub":  id,
			"name": name,
			"role": string(role),
		}})
		return ctx.Next()
	}
}

func newQuotationApp(fake *fakeQuotationHandler, role models.UserRole) *fiber.App {
	quotationhandler.Instance = fake
	app := fiber.New()
	app.Use(withClaims("7", "Ana Ruiz", role))
	InitQuotationApiRouters(app)
	return app
}

func decodeResponse(t *testing.T, resp *http.Response) apimodels.Response {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var result apimodels.Response
	require.NoError(t, json.Unmarshal(body, &result))
	return result
}

func TestQuotationApi(t *testing.T) {
	t.Run("получение по ИД с актором из токена", func(t *testing.T) {
		fake := &fakeQuotationHandler{}
		app := newQuotationApp(fake, models.UserRoleClient)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cotizacion/5", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, uint(7), fake.actor.ID)
		require.Equal(t, "Ana Ruiz", fake.actor.Name)
		require.Equal(t, models.UserRoleClient, fake.actor.Role)
		result := decodeResponse(t, resp)
		require.Equal(t, "success", result.Status)
	})
	t.Run("ошибка с кодом отдается со своим статусом", func(t *testing.T) {
		app := newQuotationApp(&fakeQuotationHandler{}, models.UserRoleClient)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cotizacion/404", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		result := decodeResponse(t, resp)
		require.Equal(t, apimodels.CodeNotFound, result.Code)
	})
	t.Run("некорректный ИД", func(t *testing.T) {
		app := newQuotationApp(&fakeQuotationHandler{}, models.UserRoleClient)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cotizacion/abc", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
	t.Run("смена статуса", func(t *testing.T) {
		fake := &fakeQuotationHandler{}
		app := newQuotationApp(fake, models.UserRoleAdmin)
		body := `{"nuevoEstado":"EN_PROCESO","observacion":" en revisión ","usuarioId":7}`
		req := httptest.NewRequest(http.MethodPut, "/cotizacion/change-state/3", bytes.NewBufferString(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, models.QuotationInProgress, fake.changeReq.NuevoEstado)
		require.Equal(t, models.UserRoleAdmin, fake.actor.Role)
	})
	t.Run("неизвестный статус отклоняется до обработчика", func(t *testing.T) {
		fake := &fakeQuotationHandler{}
		app := newQuotationApp(fake, models.UserRoleAdmin)
		req := httptest.NewRequest(http.MethodPut, "/cotizacion/change-state/3", bytes.NewBufferString(`{"nuevoEstado":"BORRADOR"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		result := decodeResponse(t, resp)
		require.Equal(t, apimodels.CodeValidation, result.Code)
		require.Empty(t, fake.changeReq.NuevoEstado)
	})
	t.Run("недопустимый переход", func(t *testing.T) {
		fake := &fakeQuotationHandler{
			changeErr: apimodels.NewCodedError(http.StatusUnprocessableEntity, apimodels.CodeTransitionRejected, "переход запрещен"),
		}
		app := newQuotationApp(fake, models.UserRoleClient)
		req := httptest.NewRequest(http.MethodPut, "/cotizacion/change-state/3", bytes.NewBufferString(`{"nuevoEstado":"CERRADA"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		result := decodeResponse(t, resp)
		require.Equal(t, apimodels.CodeTransitionRejected, result.Code)
	})
	t.Run("внутренняя ошибка скрывается", func(t *testing.T) {
		fake := &fakeQuotationHandler{changeErr: io.ErrUnexpectedEOF}
		app := newQuotationApp(fake, models.UserRoleAdmin)
		req := httptest.NewRequest(http.MethodPut, "/cotizacion/change-state/3", bytes.NewBufferString(`{"nuevoEstado":"EN_PROCESO"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		result := decodeResponse(t, resp)
		require.Equal(t, apimodels.CodeInternal, result.Code)
		require.NotContains(t, result.Message, "unexpected EOF")
	})
	t.Run("загрузка pdf из поля archivo", func(t *testing.T) {
		fake := &fakeQuotationHandler{}
		app := newQuotationApp(fake, models.UserRoleAdmin)
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("archivo", "cot.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())
		req := httptest.NewRequest(http.MethodPost, "/cotizacion/create_pdf/1", &buf)
		req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "cot.pdf", fake.pdf.Name)
		require.Equal(t, []byte("%PDF-1.4 test"), fake.pdf.Body)
	})
	t.Run("загрузка без файла", func(t *testing.T) {
		app := newQuotationApp(&fakeQuotationHandler{}, models.UserRoleAdmin)
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/cotizacion/create_pdf/1", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
	t.Run("товары постранично по 2 по умолчанию", func(t *testing.T) {
		fake := &fakeQuotationHandler{}
		app := newQuotationApp(fake, models.UserRoleClient)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cotizacion/1/productos", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, defaultItemsPageSize, fake.itemsSize)
	})
	t.Run("поиск передает строку в обработчик", func(t *testing.T) {
		fake := &fakeQuotationHandler{}
		app := newQuotationApp(fake, models.UserRoleAdmin)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cotizacion/dashboard-search?busqueda=acme", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "acme", fake.dashSearch)
	})
	t.Run("выгрузка в excel", func(t *testing.T) {
		fake := &fakeQuotationHandler{}
		app := newQuotationApp(fake, models.UserRoleAdmin)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cotizacion/export?busqueda=x", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "cotizaciones-")
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "xlsx", string(body))
	})
}
