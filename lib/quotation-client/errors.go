package quotationclient

import (
	"fmt"
	"net/http"
	apimodels "quotation-backend/models/api"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not-found"
	KindConflict     ErrorKind = "conflict"
	KindServer       ErrorKind = "server"
	KindNetwork      ErrorKind = "network"
)

// ApiError ошибка обращения к бэкенду котировок
type ApiError struct {
	StatusCode int
	Code       string
	Message    string
	Kind       ErrorKind
	cause      error
}

func (e *ApiError) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("ошибка сети: %v", e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("%v (%v, %v)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%v (%v)", e.Message, e.StatusCode)
}

func (e *ApiError) Unwrap() error {
	return e.cause
}

func kindByStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= http.StatusInternalServerError:
		return KindServer
	}
	// 400, 413, 422
	return KindValidation
}

func newApiError(status int, envelope apimodels.Response) *ApiError {
	message := envelope.Message
	if message == "" {
		message = http.StatusText(status)
	}
	return &ApiError{
		StatusCode: status,
		Code:       envelope.Code,
		Message:    message,
		Kind:       kindByStatus(status),
	}
}

func networkError(err error) *ApiError {
	return &ApiError{
		Message: err.Error(),
		Kind:    KindNetwork,
		cause:   err,
	}
}

func AsApiError(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	apiErr, ok := AsApiError(err)
	return ok && apiErr.Kind == kind
}

// IsCategoryHasProducts категорию нельзя удалить, к ней привязаны товары
func IsCategoryHasProducts(err error) bool {
	apiErr, ok := AsApiError(err)
	return ok && apiErr.Code == apimodels.CodeCategoryHasProducts
}

func IsTransitionRejected(err error) bool {
	apiErr, ok := AsApiError(err)
	return ok && apiErr.Code == apimodels.CodeTransitionRejected
}
