// Package quotationclient REST клиент бэкенда котировок (/api/v1)
package quotationclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"quotation-backend/lib/session"
	apimodels "quotation-backend/models/api"
	authapimodels "quotation-backend/models/api/auth"
	quotationapimodels "quotation-backend/models/api/quotation"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	loginPath             = "/auth/login"
	quotationPath         = "/cotizacion/%v"
	historyPath           = "/cotizacion/%v/historial"
	itemsPath             = "/cotizacion/%v/productos"
	dashboardSearchPath   = "/cotizacion/dashboard-search"
	observationPath       = "/cotizacion/observaciones/%v"
	changeStatePath       = "/cotizacion/change-state/%v"
	uploadPdfPath         = "/cotizacion/create_pdf/%v"
	categoryPath          = "/categoria/%v"
	pdfFormField          = "archivo"
	pdfContentType        = "application/pdf"
	defaultRequestTimeout = 30 * time.Second
)

type Client struct {
	baseUrl string
	http    *http.Client
}

func NewClient(baseUrl string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (authapimodels.LoginResponse, error) {
	body, err := json.Marshal(authapimodels.LoginRequest{Email: email, Password: password})
	if err != nil {
		return authapimodels.LoginResponse{}, errors.Wrap(err, "ошибка сериализации запроса")
	}
	return send[authapimodels.LoginResponse](ctx, c, "", http.MethodPost, loginPath, bytes.NewReader(body), jsonContentType)
}

func (c *Client) GetQuotation(ctx context.Context, sess session.Session, id uint) (quotationapimodels.FullView, error) {
	return send[quotationapimodels.FullView](ctx, c, sess.Token, http.MethodGet, fmt.Sprintf(quotationPath, id), nil, "")
}

func (c *Client) History(ctx context.Context, sess session.Session, id uint) ([]quotationapimodels.HistoryView, error) {
	return send[[]quotationapimodels.HistoryView](ctx, c, sess.Token, http.MethodGet, fmt.Sprintf(historyPath, id), nil, "")
}

func (c *Client) ItemsPage(ctx context.Context, sess session.Session, id uint, page, size int) (apimodels.Page[quotationapimodels.ItemView], error) {
	path := fmt.Sprintf(itemsPath, id) + "?" + pageQuery(page, size).Encode()
	return send[apimodels.Page[quotationapimodels.ItemView]](ctx, c, sess.Token, http.MethodGet, path, nil, "")
}

func (c *Client) SearchDashboard(ctx context.Context, sess session.Session, search string, page, size int) (apimodels.Page[quotationapimodels.DashboardView], error) {
	query := pageQuery(page, size)
	query.Set("busqueda", search)
	return send[apimodels.Page[quotationapimodels.DashboardView]](ctx, c, sess.Token, http.MethodGet, dashboardSearchPath+"?"+query.Encode(), nil, "")
}

func (c *Client) UpdateObservation(ctx context.Context, sess session.Session, id uint, observation string) (quotationapimodels.ObservationView, error) {
	body, err := json.Marshal(quotationapimodels.ObservationRequest{Observaciones: observation})
	if err != nil {
		return quotationapimodels.ObservationView{}, errors.Wrap(err, "ошибка сериализации запроса")
	}
	return send[quotationapimodels.ObservationView](ctx, c, sess.Token, http.MethodPut, fmt.Sprintf(observationPath, id), bytes.NewReader(body), jsonContentType)
}

func (c *Client) ChangeState(ctx context.Context, sess session.Session, id uint, req quotationapimodels.ChangeStateRequest) (quotationapimodels.ChangeStateView, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return quotationapimodels.ChangeStateView{}, errors.Wrap(err, "ошибка сериализации запроса")
	}
	return send[quotationapimodels.ChangeStateView](ctx, c, sess.Token, http.MethodPut, fmt.Sprintf(changeStatePath, id), bytes.NewReader(body), jsonContentType)
}

func (c *Client) UploadPdf(ctx context.Context, sess session.Session, id uint, fileName string, file []byte) (quotationapimodels.PdfView, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, pdfFormField, fileName))
	header.Set("Content-Type", pdfContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return quotationapimodels.PdfView{}, errors.Wrap(err, "ошибка формирования multipart")
	}
	if _, err = part.Write(file); err != nil {
		return quotationapimodels.PdfView{}, errors.Wrap(err, "ошибка формирования multipart")
	}
	if err = writer.Close(); err != nil {
		return quotationapimodels.PdfView{}, errors.Wrap(err, "ошибка формирования multipart")
	}
	return send[quotationapimodels.PdfView](ctx, c, sess.Token, http.MethodPost, fmt.Sprintf(uploadPdfPath, id), &buf, writer.FormDataContentType())
}

func (c *Client) DeleteCategory(ctx context.Context, sess session.Session, id uint) error {
	_, err := send[json.RawMessage](ctx, c, sess.Token, http.MethodDelete, fmt.Sprintf(categoryPath, id), nil, "")
	return err
}

const jsonContentType = "application/json"

func pageQuery(page, size int) url.Values {
	query := url.Values{}
	query.Set("page", fmt.Sprint(page))
	if size > 0 {
		query.Set("size", fmt.Sprint(size))
	}
	return query
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func send[T any](ctx context.Context, c *Client, token, method, path string, body io.Reader, contentType string) (result T, err error) {
	uri := c.baseUrl + path
	logger := log.
		WithField("external_request", uri).
		WithField("method", method)
	r, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return result, errors.Wrap(err, "ошибка формирования запроса")
	}
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	r.Header.Set("Accept", jsonContentType)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.http.Do(r)
	if err != nil {
		logger.WithError(err).Warn("ошибка отправки запроса")
		return result, networkError(err)
	}
	defer response.Body.Close()
	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return result, networkError(err)
	}

	var env envelope
	if len(responseBody) > 0 {
		if unmErr := json.Unmarshal(responseBody, &env); unmErr != nil && response.StatusCode < http.StatusBadRequest {
			return result, errors.Wrap(unmErr, "ошибка сериализации ответа")
		}
	}
	if response.StatusCode >= http.StatusBadRequest {
		apiErr := newApiError(response.StatusCode, apimodels.Response{Message: env.Message, Code: env.Code})
		logger.
			WithField("status", response.StatusCode).
			WithField("code", apiErr.Code).
			Debug(apiErr.Message)
		return result, apiErr
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return result, nil
	}
	if err = json.Unmarshal(env.Data, &result); err != nil {
		return result, errors.Wrap(err, "ошибка сериализации ответа")
	}
	return result, nil
}
